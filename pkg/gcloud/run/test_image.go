package run

import (
	"context"
	"io"

	"github.com/christophwitzko/gce-ci-agent/pkg/gcloud"
	"github.com/christophwitzko/gce-ci-agent/pkg/logger"
)

func artifactObjectName(name string) string {
	return name + ".tar.gz"
}

func testImageName(name string) string {
	return name + "-test-image"
}

type TestImageConfig struct {
	Source string
	Name   string
}

// TestImage boots an instance from the raw disk at Source and streams its
// serial console to out until the instance is gone. Whether the workload
// passed has to be read from the console output.
func TestImage(ctx context.Context, log *logger.Logger, service gcloud.Service, tc TestImageConfig, out io.Writer) error {
	if err := service.Config().RequireBucket(); err != nil {
		return err
	}

	log.Infof("[%s] uploading %s...", tc.Name, tc.Source)
	rawDisk, err := service.UploadArtifact(ctx, tc.Source, artifactObjectName(tc.Name))
	if err != nil {
		return err
	}

	image, err := service.ReplaceImage(ctx, testImageName(tc.Name), rawDisk)
	if err != nil {
		return err
	}

	// the insert operation is not awaited, by the time it reports done the
	// instance may already have terminated and its console output be lost
	if err := service.InsertTestInstance(ctx, tc.Name, image); err != nil {
		return err
	}

	log.Infof("[%s] streaming serial console...", tc.Name)
	if err := service.TailSerialPort(ctx, tc.Name, out); err != nil {
		return err
	}
	log.Infof("[%s] instance finished", tc.Name)
	return nil
}
