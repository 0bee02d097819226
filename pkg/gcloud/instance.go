package gcloud

import (
	"context"
	"fmt"

	"google.golang.org/api/compute/v1"
	"google.golang.org/api/googleapi"
)

const defaultNetwork = "global/networks/default"

func (s *service) machineType(name string) string {
	return fmt.Sprintf("zones/%s/machineTypes/%s", s.conf.Zone, name)
}

func bootDisk(image string) []*compute.AttachedDisk {
	return []*compute.AttachedDisk{
		{
			Boot:       true,
			AutoDelete: true,
			InitializeParams: &compute.AttachedDiskInitializeParams{
				SourceImage: image,
			},
		},
	}
}

// externalNetwork attaches the default network with an ephemeral external address.
func externalNetwork() []*compute.NetworkInterface {
	return []*compute.NetworkInterface{
		{
			Network: defaultNetwork,
			AccessConfigs: []*compute.AccessConfig{
				{
					Type: "ONE_TO_ONE_NAT",
					Name: "External NAT",
				},
			},
		},
	}
}

func (s *service) agentInstance(name, image string) *compute.Instance {
	return &compute.Instance{
		Name:              name,
		MachineType:       s.machineType(s.conf.MachineType),
		MinCpuPlatform:    s.conf.MinCPUPlatform,
		Disks:             bootDisk(image),
		NetworkInterfaces: externalNetwork(),
		ServiceAccounts: []*compute.ServiceAccount{
			{Email: "default"},
		},
	}
}

func (s *service) testInstance(name, image string) *compute.Instance {
	return &compute.Instance{
		Name:              name,
		MachineType:       s.machineType(s.conf.TestMachineType),
		Disks:             bootDisk(image),
		NetworkInterfaces: externalNetwork(),
		Scheduling: &compute.Scheduling{
			Preemptible:       false,
			OnHostMaintenance: "TERMINATE",
			AutomaticRestart:  googleapi.Bool(false),
			ForceSendFields:   []string{"Preemptible"},
		},
		Metadata: &compute.Metadata{
			Items: []*compute.MetadataItems{
				{Key: "serial-port-enable", Value: googleapi.String("true")},
			},
		},
	}
}

// CreateInstance boots an instance from the newest image of the configured
// family and returns its state once the insert operation is done.
func (s *service) CreateInstance(ctx context.Context, name string) (*compute.Instance, error) {
	image, err := s.LatestImageFromFamily(ctx, s.conf.ImageFamily)
	if err != nil {
		return nil, err
	}
	s.log.Infof("using source disk image %s", image)

	s.log.Infof("creating instance %s...", name)
	insertOp, err := s.api.InsertInstance(ctx, s.agentInstance(name, image))
	if err != nil {
		return nil, err
	}
	if _, err := s.WaitForOperation(ctx, insertOp, ZoneScope); err != nil {
		return nil, err
	}

	s.log.Infof("getting instance %s details...", name)
	return s.api.GetInstance(ctx, name)
}

func (s *service) DeleteInstance(ctx context.Context, name string) error {
	deleteOp, err := s.api.DeleteInstance(ctx, name)
	if err != nil {
		return err
	}
	_, err = s.WaitForOperation(ctx, deleteOp, ZoneScope)
	return err
}

// InsertTestInstance submits the instance insert without waiting for the
// operation. Short lived test instances may be gone before the operation
// reports done.
func (s *service) InsertTestInstance(ctx context.Context, name, image string) error {
	s.log.Infof("creating test instance %s from %s...", name, image)
	_, err := s.api.InsertInstance(ctx, s.testInstance(name, image))
	return err
}

// ExternalIP returns the NAT address of the first access config of the
// first network interface.
func ExternalIP(instance *compute.Instance) (string, error) {
	if len(instance.NetworkInterfaces) == 0 || len(instance.NetworkInterfaces[0].AccessConfigs) == 0 {
		return "", fmt.Errorf("%w: instance %s has no access config", ErrNoExternalAddress, instance.Name)
	}
	natIP := instance.NetworkInterfaces[0].AccessConfigs[0].NatIP
	if natIP == "" {
		return "", fmt.Errorf("%w: instance %s has no nat ip", ErrNoExternalAddress, instance.Name)
	}
	return natIP, nil
}
