package run

import (
	"context"
	"fmt"
	"io"

	"github.com/christophwitzko/gce-ci-agent/pkg/gcloud"
	"github.com/christophwitzko/gce-ci-agent/pkg/logger"
	"github.com/christophwitzko/gce-ci-agent/pkg/netutil"
)

type CreateConfig struct {
	Name string
	// WaitForPort delays the output until the port accepts connections, 0 disables it.
	WaitForPort int
}

// Create provisions a build agent and writes its external address to out.
// Nothing else is written to out.
func Create(ctx context.Context, log *logger.Logger, service gcloud.Service, cc CreateConfig, out io.Writer) error {
	log.Infof("[%s] creating instance...", cc.Name)
	instance, err := service.CreateInstance(ctx, cc.Name)
	if err != nil {
		return err
	}
	ip, err := gcloud.ExternalIP(instance)
	if err != nil {
		return err
	}
	log.Infof("[%s] instance up (%s)", cc.Name, ip)

	if cc.WaitForPort > 0 {
		endpoint := netutil.Endpoint(ip, cc.WaitForPort)
		log.Infof("[%s] waiting for %s...", cc.Name, endpoint)
		if err := netutil.WaitForPortOpen(ctx, endpoint); err != nil {
			return fmt.Errorf("failed to wait for %s: %w", endpoint, err)
		}
	}
	_, err = fmt.Fprintln(out, ip)
	return err
}
