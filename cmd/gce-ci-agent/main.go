package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/christophwitzko/gce-ci-agent/pkg/cli"
	"github.com/christophwitzko/gce-ci-agent/pkg/config"
	"github.com/christophwitzko/gce-ci-agent/pkg/gcloud"
	"github.com/christophwitzko/gce-ci-agent/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	log := logger.New()
	rootCmd := &cobra.Command{
		Use:   "gce-ci-agent",
		Short: "manage ephemeral ci agents on google compute engine",
		Long: `gce-ci-agent creates and destroys compute instances used as ci build agents
and boots test images, streaming their serial console.`,
		Args: cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDebug(viper.GetBool("debug"))
			log.Debug(cli.GetBuildInfo())
		},
	}
	cobra.OnInitialize(func() {
		if err := config.InitConfig(rootCmd, "gce-ci-agent.yaml"); err != nil {
			log.Errorf("Config error: %v", err)
			os.Exit(1)
		}
		usedConfigFile := viper.ConfigFileUsed()
		if usedConfigFile != "" {
			log.Infof("using config: %s", cli.GetRelativePath(usedConfigFile))
		}
	})
	config.SetupFlagsAndViper(rootCmd)
	rootCmd.AddCommand(
		configCmd(log),
		createCmd(log),
		destroyCmd(log),
		testImageCmd(log),
	)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withService runs fn with a session built from the current config. The
// context is cancelled on SIGINT and SIGTERM.
func withService(log *logger.Logger, fn func(ctx context.Context, service gcloud.Service) error) error {
	conf, err := config.NewConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service, err := gcloud.NewService(ctx, log, conf)
	if err != nil {
		return err
	}
	defer service.Close()
	return fn(ctx, service)
}
