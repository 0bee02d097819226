package gcloud

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/christophwitzko/gce-ci-agent/pkg/config"
	"github.com/christophwitzko/gce-ci-agent/pkg/logger"
	"github.com/sirupsen/logrus/hooks/test"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/googleapi"
)

type fakeCompute struct {
	GetZoneOperationFunc    func(ctx context.Context, name string) (*compute.Operation, error)
	GetGlobalOperationFunc  func(ctx context.Context, name string) (*compute.Operation, error)
	GetImageFromFamilyFunc  func(ctx context.Context, family string) (*compute.Image, error)
	InsertImageFunc         func(ctx context.Context, image *compute.Image) (*compute.Operation, error)
	DeleteImageFunc         func(ctx context.Context, name string) (*compute.Operation, error)
	InsertInstanceFunc      func(ctx context.Context, instance *compute.Instance) (*compute.Operation, error)
	GetInstanceFunc         func(ctx context.Context, name string) (*compute.Instance, error)
	DeleteInstanceFunc      func(ctx context.Context, name string) (*compute.Operation, error)
	GetSerialPortOutputFunc func(ctx context.Context, name string, start int64) (*compute.SerialPortOutput, error)
}

func (f *fakeCompute) GetZoneOperation(ctx context.Context, name string) (*compute.Operation, error) {
	return f.GetZoneOperationFunc(ctx, name)
}

func (f *fakeCompute) GetGlobalOperation(ctx context.Context, name string) (*compute.Operation, error) {
	return f.GetGlobalOperationFunc(ctx, name)
}

func (f *fakeCompute) GetImageFromFamily(ctx context.Context, family string) (*compute.Image, error) {
	return f.GetImageFromFamilyFunc(ctx, family)
}

func (f *fakeCompute) InsertImage(ctx context.Context, image *compute.Image) (*compute.Operation, error) {
	return f.InsertImageFunc(ctx, image)
}

func (f *fakeCompute) DeleteImage(ctx context.Context, name string) (*compute.Operation, error) {
	return f.DeleteImageFunc(ctx, name)
}

func (f *fakeCompute) InsertInstance(ctx context.Context, instance *compute.Instance) (*compute.Operation, error) {
	return f.InsertInstanceFunc(ctx, instance)
}

func (f *fakeCompute) GetInstance(ctx context.Context, name string) (*compute.Instance, error) {
	return f.GetInstanceFunc(ctx, name)
}

func (f *fakeCompute) DeleteInstance(ctx context.Context, name string) (*compute.Operation, error) {
	return f.DeleteInstanceFunc(ctx, name)
}

func (f *fakeCompute) GetSerialPortOutput(ctx context.Context, name string, start int64) (*compute.SerialPortOutput, error) {
	return f.GetSerialPortOutputFunc(ctx, name, start)
}

type fakeUploader struct {
	uploads []string
	closed  bool
}

func (f *fakeUploader) UploadFile(ctx context.Context, bucketName, objectName, src string) (string, error) {
	f.uploads = append(f.uploads, fmt.Sprintf("%s -> %s/%s", src, bucketName, objectName))
	return "https://storage.googleapis.com/" + bucketName + "/" + objectName, nil
}

func (f *fakeUploader) Close() error {
	f.closed = true
	return nil
}

// fakeClock records every requested sleep instead of sleeping.
type fakeClock struct {
	sleeps []time.Duration
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	return nil
}

func (c *fakeClock) Elapsed() time.Duration {
	var total time.Duration
	for _, d := range c.sleeps {
		total += d
	}
	return total
}

func testConfig() *config.Config {
	return &config.Config{
		Project:         "ci-project",
		Zone:            "europe-west1-b",
		KeyFile:         "/tmp/key.json",
		Bucket:          "ci-images",
		ImageFamily:     "linuxkit-ci-builder",
		MachineType:     "custom-2-5120",
		TestMachineType: "n1-standard-1",
		MinCPUPlatform:  "Intel Haswell",
	}
}

func newTestService(t *testing.T, api *fakeCompute) (*service, *test.Hook, *fakeClock) {
	t.Helper()
	logrusLogger, hook := test.NewNullLogger()
	clock := &fakeClock{}
	s := newService(&logger.Logger{Logger: logrusLogger}, testConfig(), api, &fakeUploader{})
	s.sleep = clock.Sleep
	return s, hook, clock
}

func doneOp(name string) *compute.Operation {
	return &compute.Operation{Name: name, Status: "DONE"}
}

func notFoundErr() error {
	return &googleapi.Error{Code: 404, Message: "The resource was not found"}
}

func notReadyErr() error {
	return &googleapi.Error{
		Code:    400,
		Message: "The resource is not ready",
		Errors:  []googleapi.ErrorItem{{Reason: "resourceNotReady", Message: "The resource is not ready"}},
	}
}
