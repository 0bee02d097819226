package main

import (
	"context"

	"github.com/christophwitzko/gce-ci-agent/pkg/cli"
	"github.com/christophwitzko/gce-ci-agent/pkg/gcloud"
	"github.com/christophwitzko/gce-ci-agent/pkg/gcloud/run"
	"github.com/christophwitzko/gce-ci-agent/pkg/logger"
	"github.com/spf13/cobra"
)

func destroyCmd(log *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "destroy <name>...",
		Short: "Delete ci agent instances",
		Args:  cobra.MinimumNArgs(1),
		Run:   cli.WrapRunE(log, destroyRun),
	}
}

func destroyRun(log *logger.Logger, cmd *cobra.Command, args []string) error {
	return withService(log, func(ctx context.Context, service gcloud.Service) error {
		return run.Destroy(ctx, log, service, args...)
	})
}
