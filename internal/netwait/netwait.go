// Package netwait blocks until a TCP endpoint accepts connections.
//
// It exists for one job: holding the integration test suite back until the
// database container is listening. The poll is a fixed-interval loop with a
// budget of one attempt per interval; the expected wait is a local service
// finishing startup, so there is no backoff.
package netwait

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"
)

// Spec describes one wait: the endpoint and the polling budget.
type Spec struct {
	// Host defaults to localhost.
	Host string
	Port int

	// Attempts is the total connection attempts before giving up, one per
	// interval. With the default interval this is the timeout in seconds.
	Attempts int

	// Interval is the pause after a failed attempt and the per-attempt
	// dial timeout. Zero means one second.
	Interval time.Duration
}

// TimeoutError reports that the endpoint never became reachable within the
// attempt budget.
type TimeoutError struct {
	Addr     string
	Attempts int
	LastErr  error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for %s after %d attempts: %v", e.Addr, e.Attempts, e.LastErr)
}

func (e *TimeoutError) Unwrap() error {
	return e.LastErr
}

func (s Spec) addr() string {
	host := s.Host
	if host == "" {
		host = "localhost"
	}
	return net.JoinHostPort(host, strconv.Itoa(s.Port))
}

// Wait polls the endpoint until it accepts a TCP connection, the attempt
// budget runs out, or the context is cancelled. Success closes the probe
// connection and returns immediately; exhaustion returns a *TimeoutError.
func Wait(ctx context.Context, spec Spec) error {
	interval := spec.Interval
	if interval <= 0 {
		interval = time.Second
	}
	attempts := spec.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	addr := spec.addr()

	var lastErr error
	for remaining := attempts; remaining > 0; remaining-- {
		dialer := net.Dialer{Timeout: interval}
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err == nil {
			conn.Close()
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		lastErr = err

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return &TimeoutError{Addr: addr, Attempts: attempts, LastErr: lastErr}
}
