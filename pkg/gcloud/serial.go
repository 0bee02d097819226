package gcloud

import (
	"context"
	"io"
	"net/http"
	"time"
)

const serialPortRetryDelay = time.Second

// TailSerialPort copies the serial console of instance name to w until the
// instance is gone. A 404 always ends the tail, resourceNotReady only ends it
// once output was seen, before that the console is just not up yet.
func (s *service) TailSerialPort(ctx context.Context, name string, w io.Writer) error {
	var start int64
	wasReady := false
	for {
		out, err := s.api.GetSerialPortOutput(ctx, name, start)
		if err == nil {
			wasReady = true
			if _, err := io.WriteString(w, out.Contents); err != nil {
				return err
			}
			start = out.Next
			continue
		}

		gErr, ok := apiError(err)
		if !ok {
			return err
		}
		if gErr.Code == http.StatusNotFound {
			s.log.Infof("instance %s is gone", name)
			return nil
		}
		reason := errorReason(gErr)
		s.log.Infof("error getting serial output (%s): %s", reason, gErr.Message)
		if reason == reasonResourceNotReady && wasReady {
			return nil
		}
		if err := s.sleep(ctx, serialPortRetryDelay); err != nil {
			return err
		}
	}
}
