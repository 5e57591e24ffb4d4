package conversation

import (
	"context"
	"fmt"

	"github.com/lingvo-app/lingvo-core/core/capture"
)

// captureGateway is the controller-side facade over the configured capture
// client, normalizing optional wiring so the controller never branches on a
// nil capability.
type captureGateway struct {
	// client stores the configured capture implementation.
	client Capture
}

func newCaptureGateway() *captureGateway {
	return &captureGateway{}
}

func (g *captureGateway) set(client Capture) {
	if g != nil {
		g.client = client
	}
}

func (g *captureGateway) isConfigured() bool {
	return g != nil && g.client != nil
}

func (g *captureGateway) Start(ctx context.Context, opts ...capture.Option) error {
	if !g.isConfigured() {
		return capture.NewError(capture.KindUnsupported, nil)
	}

	return g.client.Start(ctx, opts...)
}

func (g *captureGateway) Stop() error {
	if !g.isConfigured() {
		return nil
	}

	return g.client.Stop()
}

func (g *captureGateway) IsListening() bool {
	return g.isConfigured() && g.client.IsListening()
}

func (g *captureGateway) Close(ctx context.Context) error {
	if !g.isConfigured() {
		return nil
	}

	switch c := g.client.(type) {
	case interface{ Close(context.Context) error }:
		if err := c.Close(ctx); err != nil {
			return fmt.Errorf("failed to close capture client: %w", err)
		}
	case interface{ Close(context.Context) }:
		c.Close(ctx)
	case interface{ Close() error }:
		if err := c.Close(); err != nil {
			return fmt.Errorf("failed to close capture client: %w", err)
		}
	case interface{ Close() }:
		c.Close()
	}

	return nil
}
