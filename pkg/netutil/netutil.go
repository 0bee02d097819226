package netutil

import (
	"context"
	"net"
	"strconv"
	"time"
)

func Endpoint(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// WaitForPortOpen blocks until a tcp connection to endpoint can be established.
func WaitForPortOpen(ctx context.Context, endpoint string) error {
	var dialer net.Dialer
	for {
		dialCtx, cancel := context.WithTimeout(ctx, time.Second)
		conn, err := dialer.DialContext(dialCtx, "tcp4", endpoint)
		cancel()
		if err == nil {
			_ = conn.Close()
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
}
