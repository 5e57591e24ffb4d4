package sessionbus

import "sync"

// MemoryBus is an explicit process-wide registry of open channels, used when
// every participant context lives in the same process (two co-located
// speaker views, tests). It mirrors a browser broadcast channel: events
// published through one channel are delivered, synchronously and in
// publication order, to every other open channel, never back to the
// publishing one.
type MemoryBus struct {
	mu       sync.Mutex
	channels []*MemoryChannel
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{}
}

// Open registers a new channel on the bus. Each participant context opens its
// own channel; closing it detaches the channel from the registry.
func (b *MemoryBus) Open() *MemoryChannel {
	b.mu.Lock()
	defer b.mu.Unlock()

	channel := &MemoryChannel{bus: b}
	b.channels = append(b.channels, channel)
	return channel
}

func (b *MemoryBus) broadcast(from *MemoryChannel, event Event) {
	b.mu.Lock()
	channels := make([]*MemoryChannel, len(b.channels))
	copy(channels, b.channels)
	b.mu.Unlock()

	for _, channel := range channels {
		if channel == from {
			continue
		}
		channel.deliver(event)
	}
}

func (b *MemoryBus) detach(channel *MemoryChannel) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, c := range b.channels {
		if c == channel {
			b.channels = append(b.channels[:i], b.channels[i+1:]...)
			return
		}
	}
}

var _ Bus = (*MemoryChannel)(nil)

// MemoryChannel is one participant's connection to a MemoryBus.
type MemoryChannel struct {
	bus *MemoryBus

	mu       sync.Mutex
	handlers []memoryHandler
	nextID   int
	closed   bool
}

type memoryHandler struct {
	id      int
	handler Handler
}

func (c *MemoryChannel) Publish(event Event) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return
	}

	c.bus.broadcast(c, event)
}

func (c *MemoryChannel) Subscribe(handler Handler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.handlers = append(c.handlers, memoryHandler{id: id, handler: handler})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, h := range c.handlers {
			if h.id == id {
				c.handlers = append(c.handlers[:i], c.handlers[i+1:]...)
				return
			}
		}
	}
}

func (c *MemoryChannel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.handlers = nil
	c.mu.Unlock()

	c.bus.detach(c)
	return nil
}

func (c *MemoryChannel) deliver(event Event) {
	c.mu.Lock()
	handlers := make([]memoryHandler, len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h.handler(event)
	}
}
