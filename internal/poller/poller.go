package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"gonewsag/internal/aggregator"
)

// Poller refreshes every concrete category through the aggregation engine
// on a fixed interval, keeping the article catalog warm between requests
type Poller struct {
	aggregator *aggregator.Aggregator
	categories []string
	interval   time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	mu         sync.RWMutex
	lastPolled map[string]time.Time
	isPolling  bool
}

func New(agg *aggregator.Aggregator, categories []string, interval time.Duration) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		aggregator: agg,
		categories: categories,
		interval:   interval,
		ctx:        ctx,
		cancel:     cancel,
		lastPolled: make(map[string]time.Time),
	}
}

func (p *Poller) Start() {
	p.mu.Lock()
	if p.isPolling {
		p.mu.Unlock()
		return
	}
	p.isPolling = true
	p.mu.Unlock()

	log.Printf("Starting category poller with interval: %v", p.interval)

	p.wg.Add(1)
	go p.pollLoop()
}

func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.isPolling {
		p.mu.Unlock()
		return
	}
	p.isPolling = false
	p.mu.Unlock()

	log.Println("Stopping category poller...")
	p.cancel()
	p.wg.Wait()
	log.Println("Category poller stopped")
}

func (p *Poller) IsPolling() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isPolling
}

// ForcePoll refreshes one category immediately
func (p *Poller) ForcePoll(category string) error {
	if err := p.aggregator.RefreshCategory(category); err != nil {
		return err
	}
	p.markPolled(category)
	return nil
}

// GetLastPolledTimes returns when each category was last refreshed
func (p *Poller) GetLastPolledTimes() map[string]time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]time.Time, len(p.lastPolled))
	for category, at := range p.lastPolled {
		out[category] = at
	}
	return out
}

func (p *Poller) pollLoop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Poll immediately on start
	p.pollAll()

	for {
		select {
		case <-ticker.C:
			p.pollAll()
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Poller) pollAll() {
	log.Println("Starting background category refresh...")

	var wg sync.WaitGroup
	for _, category := range p.categories {
		wg.Add(1)
		go func(category string) {
			defer wg.Done()
			if err := p.aggregator.RefreshCategory(category); err != nil {
				log.Printf("Warning: failed to refresh category '%s': %v", category, err)
				return
			}
			p.markPolled(category)
		}(category)
	}

	wg.Wait()
	log.Println("Background category refresh completed")
}

func (p *Poller) markPolled(category string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastPolled[category] = time.Now()
}
