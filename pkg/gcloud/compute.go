package gcloud

import (
	"context"

	"google.golang.org/api/compute/v1"
)

// computeAPI is the subset of the compute REST API used by the service.
type computeAPI interface {
	GetZoneOperation(ctx context.Context, name string) (*compute.Operation, error)
	GetGlobalOperation(ctx context.Context, name string) (*compute.Operation, error)
	GetImageFromFamily(ctx context.Context, family string) (*compute.Image, error)
	InsertImage(ctx context.Context, image *compute.Image) (*compute.Operation, error)
	DeleteImage(ctx context.Context, name string) (*compute.Operation, error)
	InsertInstance(ctx context.Context, instance *compute.Instance) (*compute.Operation, error)
	GetInstance(ctx context.Context, name string) (*compute.Instance, error)
	DeleteInstance(ctx context.Context, name string) (*compute.Operation, error)
	GetSerialPortOutput(ctx context.Context, name string, start int64) (*compute.SerialPortOutput, error)
}

type restCompute struct {
	computeService *compute.Service
	project, zone  string
}

func (r *restCompute) GetZoneOperation(ctx context.Context, name string) (*compute.Operation, error) {
	return r.computeService.ZoneOperations.Get(r.project, r.zone, name).Context(ctx).Do()
}

func (r *restCompute) GetGlobalOperation(ctx context.Context, name string) (*compute.Operation, error) {
	return r.computeService.GlobalOperations.Get(r.project, name).Context(ctx).Do()
}

func (r *restCompute) GetImageFromFamily(ctx context.Context, family string) (*compute.Image, error) {
	return r.computeService.Images.GetFromFamily(r.project, family).Context(ctx).Do()
}

func (r *restCompute) InsertImage(ctx context.Context, image *compute.Image) (*compute.Operation, error) {
	return r.computeService.Images.Insert(r.project, image).Context(ctx).Do()
}

func (r *restCompute) DeleteImage(ctx context.Context, name string) (*compute.Operation, error) {
	return r.computeService.Images.Delete(r.project, name).Context(ctx).Do()
}

func (r *restCompute) InsertInstance(ctx context.Context, instance *compute.Instance) (*compute.Operation, error) {
	return r.computeService.Instances.Insert(r.project, r.zone, instance).Context(ctx).Do()
}

func (r *restCompute) GetInstance(ctx context.Context, name string) (*compute.Instance, error) {
	return r.computeService.Instances.Get(r.project, r.zone, name).Context(ctx).Do()
}

func (r *restCompute) DeleteInstance(ctx context.Context, name string) (*compute.Operation, error) {
	return r.computeService.Instances.Delete(r.project, r.zone, name).Context(ctx).Do()
}

func (r *restCompute) GetSerialPortOutput(ctx context.Context, name string, start int64) (*compute.SerialPortOutput, error) {
	return r.computeService.Instances.GetSerialPortOutput(r.project, r.zone, name).Start(start).Context(ctx).Do()
}
