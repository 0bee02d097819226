package run

import (
	"context"
	"fmt"

	"github.com/christophwitzko/gce-ci-agent/pkg/gcloud"
	"github.com/christophwitzko/gce-ci-agent/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Destroy deletes the named instances in parallel. A failed deletion does not
// cancel the others, the first error is returned.
func Destroy(ctx context.Context, log *logger.Logger, service gcloud.Service, names ...string) error {
	var errGroup errgroup.Group
	for _, name := range names {
		name := name
		errGroup.Go(func() error {
			log.Warnf("[%s] destroying instance...", name)
			if err := service.DeleteInstance(ctx, name); err != nil {
				return fmt.Errorf("failed to destroy instance %s: %w", name, err)
			}
			log.Infof("[%s] instance destroyed", name)
			return nil
		})
	}
	return errGroup.Wait()
}
