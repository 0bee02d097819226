package gcloud

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/compute/v1"
)

const operationPollInterval = 5 * time.Second

// Scope is the location an operation was issued under. An operation can
// only be observed through the scope it belongs to.
type Scope int

const (
	ZoneScope Scope = iota
	GlobalScope
)

func (s Scope) String() string {
	switch s {
	case ZoneScope:
		return "zone"
	case GlobalScope:
		return "global"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// Sleeper pauses for d and returns early with the context error.
type Sleeper func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *service) getOperation(ctx context.Context, name string, scope Scope) (*compute.Operation, error) {
	switch scope {
	case ZoneScope:
		return s.api.GetZoneOperation(ctx, name)
	case GlobalScope:
		return s.api.GetGlobalOperation(ctx, name)
	default:
		return nil, fmt.Errorf("unknown operation scope: %s", scope)
	}
}

// WaitForOperation polls op until the provider reports it as done. There is
// no retry limit, only ctx ends the wait early.
func (s *service) WaitForOperation(ctx context.Context, op *compute.Operation, scope Scope) (*compute.Operation, error) {
	s.log.Infof("waiting for %s operation %s to finish...", scope, op.Name)
	for {
		current, err := s.getOperation(ctx, op.Name, scope)
		if err != nil {
			return nil, err
		}
		if current.Status == "DONE" {
			if current.Error != nil {
				return nil, &OperationFailedError{Op: current, Err: current.Error}
			}
			return current, nil
		}
		s.log.Infof("operation %s in progress (%s), waiting...", op.Name, current.Status)
		if err := s.sleep(ctx, operationPollInterval); err != nil {
			return nil, err
		}
	}
}
