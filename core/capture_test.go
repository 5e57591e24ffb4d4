package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/lingvo-app/lingvo-core/core/capture"
)

func TestCaptureGatewayUnconfigured(t *testing.T) {
	gateway := newCaptureGateway()

	err := gateway.Start(context.Background())
	var captureErr *capture.Error
	if !errors.As(err, &captureErr) {
		t.Fatalf("expected a capture error, got %v", err)
	}
	if captureErr.Kind() != capture.KindUnsupported {
		t.Fatalf("expected the unsupported kind, got %s", captureErr.Kind())
	}

	if err := gateway.Stop(); err != nil {
		t.Fatalf("expected stop to be a no-op, got %v", err)
	}
	if gateway.IsListening() {
		t.Fatalf("expected an unconfigured gateway to report not listening")
	}
	if err := gateway.Close(context.Background()); err != nil {
		t.Fatalf("expected close to be a no-op, got %v", err)
	}
}

type closableCapture struct {
	stubCapture
	closed bool
}

func (c *closableCapture) Close(context.Context) error {
	c.closed = true
	return nil
}

func TestCaptureGatewayForwardsClose(t *testing.T) {
	client := &closableCapture{}
	gateway := newCaptureGateway()
	gateway.set(client)

	if err := gateway.Close(context.Background()); err != nil {
		t.Fatalf("expected close to succeed, got %v", err)
	}
	if !client.closed {
		t.Fatalf("expected Close forwarded to the client")
	}
}
