package main

import (
	"fmt"

	"github.com/christophwitzko/gce-ci-agent/pkg/cli"
	"github.com/christophwitzko/gce-ci-agent/pkg/config"
	"github.com/christophwitzko/gce-ci-agent/pkg/logger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func configCmd(log *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the current config",
		Args:  cobra.NoArgs,
		Run:   cli.WrapRunE(log, configRun),
	}
}

func configRun(log *logger.Logger, cmd *cobra.Command, args []string) error {
	c, err := config.NewConfig()
	if err != nil {
		return err
	}

	cfgStr, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	fmt.Printf("# gce-ci-agent config\n%s", cfgStr)
	return nil
}
