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

func createCmd(log *logger.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a ci agent instance and print its external ip",
		Args:  cobra.ExactArgs(1),
		Run:   cli.WrapRunE(log, createRun),
	}
	cmd.Flags().Int("wait-for-port", 0, "wait until this tcp port of the instance accepts connections (0 disables)")
	return cmd
}

func createRun(log *logger.Logger, cmd *cobra.Command, args []string) error {
	cc := run.CreateConfig{
		Name:        args[0],
		WaitForPort: cli.MustGetInt(cmd, "wait-for-port"),
	}
	return withService(log, func(ctx context.Context, service gcloud.Service) error {
		return run.Create(ctx, log, service, cc, os.Stdout)
	})
}
