package application

import (
	"context"
	"errors"
	"sync"

	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/kafka"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
	topics []string
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic string, ce kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, ce)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type mapCache struct {
	mu            sync.Mutex
	gen           int64
	pages         map[string][]byte
	hits          int
	writes        int
	invalidations int
}

func newMapCache() *mapCache { return &mapCache{pages: make(map[string][]byte)} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.pages[key]
	if ok {
		c.hits++
	}
	return v, c.gen, ok, nil
}

// Set drops writes for a retired generation, like the Redis cache does.
func (c *mapCache) Set(_ context.Context, gen int64, key string, page []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes++
	if gen == c.gen {
		c.pages[key] = page
	}
	return nil
}

func (c *mapCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.pages = make(map[string][]byte)
	c.invalidations++
	return nil
}

type fakeMedia struct {
	calls int
	err   error
}

func (m *fakeMedia) Store(_ context.Context, data []byte, mimeType string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return "https://media.example.com/pet-adoption/fake.jpg", nil
}

var errBrokerDown = errors.New("broker unavailable")
