package config

import (
	"errors"
	"os"

	"github.com/christophwitzko/gce-ci-agent/pkg/cli"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	ErrMissingProject = errors.New("missing project")
	ErrMissingZone    = errors.New("missing zone")
	ErrMissingKeyFile = errors.New("missing service account key file")
	ErrMissingBucket  = errors.New("missing image bucket")
)

type Config struct {
	Project         string `yaml:"project"`
	Zone            string `yaml:"zone"`
	KeyFile         string `yaml:"key-file"`
	Bucket          string `yaml:"bucket,omitempty"`
	ImageFamily     string `yaml:"imageFamily"`
	MachineType     string `yaml:"machineType"`
	TestMachineType string `yaml:"testMachineType"`
	MinCPUPlatform  string `yaml:"minCpuPlatform,omitempty"`
}

// NewConfig reads the current viper state and validates the options every
// action needs.
func NewConfig() (*Config, error) {
	c := &Config{
		Project:         viper.GetString("project"),
		Zone:            viper.GetString("zone"),
		KeyFile:         viper.GetString("key-file"),
		Bucket:          viper.GetString("bucket"),
		ImageFamily:     viper.GetString("imageFamily"),
		MachineType:     viper.GetString("machineType"),
		TestMachineType: viper.GetString("testMachineType"),
		MinCPUPlatform:  viper.GetString("minCpuPlatform"),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports every missing option required to open a session.
func (c *Config) Validate() error {
	var confErr error
	if c.Project == "" {
		confErr = multierror.Append(confErr, ErrMissingProject)
	}
	if c.Zone == "" {
		confErr = multierror.Append(confErr, ErrMissingZone)
	}
	if c.KeyFile == "" {
		confErr = multierror.Append(confErr, ErrMissingKeyFile)
	}
	return confErr
}

// RequireBucket is used by actions that upload artifacts.
func (c *Config) RequireBucket() error {
	if c.Bucket == "" {
		return ErrMissingBucket
	}
	return nil
}

func SetupFlagsAndViper(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "config file")
	cmd.PersistentFlags().String("project", os.Getenv("CLOUDSDK_CORE_PROJECT"), "google cloud project")
	cmd.PersistentFlags().String("zone", os.Getenv("CLOUDSDK_COMPUTE_ZONE"), "compute zone")
	cmd.PersistentFlags().String("key-file", os.Getenv("CLOUDSDK_COMPUTE_KEYS"), "service account key file")
	cmd.PersistentFlags().String("bucket", os.Getenv("CLOUDSDK_IMAGE_BUCKET"), "storage bucket for test images")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cli.Must(viper.BindPFlags(cmd.PersistentFlags()))

	viper.SetDefault("imageFamily", "linuxkit-ci-builder")
	viper.SetDefault("machineType", "custom-2-5120")
	viper.SetDefault("testMachineType", "n1-standard-1")
	viper.SetDefault("minCpuPlatform", "Intel Haswell")
}

func InitConfig(cmd *cobra.Command, defaultConfigFile string) error {
	configFile := cli.MustGetString(cmd, "config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(defaultConfigFile)
	}
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}
