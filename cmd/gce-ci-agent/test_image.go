package main

import (
	"context"
	"os"

	"github.com/christophwitzko/gce-ci-agent/pkg/cli"
	"github.com/christophwitzko/gce-ci-agent/pkg/gcloud"
	"github.com/christophwitzko/gce-ci-agent/pkg/gcloud/run"
	"github.com/christophwitzko/gce-ci-agent/pkg/logger"
	"github.com/spf13/cobra"
)

func testImageCmd(log *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "test-image <local-path> <name>",
		Short: "Boot a raw disk image and stream its serial console",
		Long: `Uploads the raw disk archive to the image bucket, registers it as <name>-test-image,
boots instance <name> from it and streams the serial console to stdout until the
instance is gone.`,
		Args: cobra.ExactArgs(2),
		Run:  cli.WrapRunE(log, testImageRun),
	}
}

func testImageRun(log *logger.Logger, cmd *cobra.Command, args []string) error {
	tc := run.TestImageConfig{
		Source: args[0],
		Name:   args[1],
	}
	return withService(log, func(ctx context.Context, service gcloud.Service) error {
		return run.TestImage(ctx, log, service, tc, os.Stdout)
	})
}
