package netwait

import (
	"context"
	"errors"
	"net"
	"strconv"
	"testing"
	"time"
)

// freePort grabs a port the kernel just released, so nothing listens on it.
func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port
}

func TestWaitSucceedsWhenListening(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	start := time.Now()
	err = Wait(context.Background(), Spec{
		Host:     "127.0.0.1",
		Port:     port,
		Attempts: 5,
		Interval: 100 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Wait failed against a live listener: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("success took %v, should not consume the budget", elapsed)
	}
}

func TestWaitTimesOutAfterBudget(t *testing.T) {
	port := freePort(t)
	interval := 50 * time.Millisecond

	start := time.Now()
	err := Wait(context.Background(), Spec{
		Host:     "127.0.0.1",
		Port:     port,
		Attempts: 2,
		Interval: interval,
	})
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("Wait succeeded against a dead port")
	}
	var timeout *TimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("expected *TimeoutError, got %T: %v", err, err)
	}
	if timeout.Attempts != 2 {
		t.Errorf("expected 2 recorded attempts, got %d", timeout.Attempts)
	}

	// Two failed attempts, one interval slept after each. Refused dials on
	// loopback return at once, so the floor is the slept intervals.
	if elapsed < 2*interval {
		t.Errorf("timed out after %v, want at least %v", elapsed, 2*interval)
	}
	if elapsed > 10*interval {
		t.Errorf("timed out after %v, budget was %v", elapsed, 2*interval)
	}
}

func TestWaitSucceedsWhenListenerAppears(t *testing.T) {
	port := freePort(t)

	go func() {
		time.Sleep(150 * time.Millisecond)
		ln, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
		if err != nil {
			return
		}
		time.Sleep(2 * time.Second)
		ln.Close()
	}()

	err := Wait(context.Background(), Spec{
		Host:     "127.0.0.1",
		Port:     port,
		Attempts: 20,
		Interval: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Wait failed although a listener appeared within budget: %v", err)
	}
}

func TestWaitCancelled(t *testing.T) {
	port := freePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(80 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := Wait(ctx, Spec{
		Host:     "127.0.0.1",
		Port:     port,
		Attempts: 100,
		Interval: 50 * time.Millisecond,
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancellation took %v to take effect", elapsed)
	}
}

func TestWaitDefaults(t *testing.T) {
	spec := Spec{Port: 5438}
	if got, want := spec.addr(), "localhost:5438"; got != want {
		t.Errorf("addr() = %q, want %q", got, want)
	}
}
