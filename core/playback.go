package conversation

import (
	"context"
	"sync"

	"github.com/lingvo-app/lingvo-core/core/events"
	"github.com/lingvo-app/lingvo-core/core/synthesis"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// playbackGateway owns the process-exclusive "currently speaking" resource.
// A new Speak preempts whatever utterance is in progress; the preempted
// utterance's completion is identified by its generation and silently
// dropped when it eventually resolves, so a stale completion can never fire
// after its successor's playback has started.
type playbackGateway struct {
	mu sync.Mutex
	// client stores the configured synthesis implementation.
	client Synthesizer
	// generation tags the utterance currently allowed to complete.
	generation uint64

	emit eventEmitter
}

func newPlaybackGateway() *playbackGateway {
	return &playbackGateway{emit: noopEventEmitter}
}

func (p *playbackGateway) set(client Synthesizer) {
	if p != nil {
		p.client = client
	}
}

func (p *playbackGateway) setEventEmitter(emit eventEmitter) {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if emit == nil {
		emit = noopEventEmitter
	}
	p.emit = emit
}

func (p *playbackGateway) IsSpeaking() bool {
	p.mu.Lock()
	client := p.client
	p.mu.Unlock()

	return client != nil && client.IsSpeaking()
}

// Speak dispatches an utterance and returns immediately; completion is
// reported through the playback-ended event unless the utterance is
// preempted first. With no synthesizer configured the utterance completes
// instantly so cycle bookkeeping keeps progressing.
func (p *playbackGateway) Speak(ctx context.Context, text, locale string) {
	p.mu.Lock()
	p.generation++
	generation := p.generation
	client := p.client
	emit := p.emit
	p.mu.Unlock()

	emit(events.NewPlaybackStarted(text, locale))

	if client == nil {
		emit(events.NewPlaybackEnded(text))
		return
	}

	// Preempt the in-progress utterance before starting its successor.
	if err := client.Stop(); err != nil {
		recordPlaybackError(ctx, err)
	}

	go func() {
		err := client.Speak(ctx, text, synthesis.WithLocale(locale))

		p.mu.Lock()
		stale := generation != p.generation
		emit := p.emit
		p.mu.Unlock()
		if stale {
			return
		}

		if err != nil {
			recordPlaybackError(ctx, err)
			return
		}
		emit(events.NewPlaybackEnded(text))
	}()
}

// Stop cancels the in-progress utterance without error and invalidates its
// completion.
func (p *playbackGateway) Stop() {
	p.mu.Lock()
	p.generation++
	client := p.client
	p.mu.Unlock()

	if client == nil {
		return
	}
	if err := client.Stop(); err != nil {
		recordPlaybackError(context.Background(), err)
	}
}

func recordPlaybackError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	logger.Warn("Playback failed", "error", err)
}
