// Package monitor pkg/monitor/live.go
package monitor

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/mfreeman451/unradar/pkg/graphql"
	"github.com/mfreeman451/unradar/pkg/metrics"
	"github.com/mfreeman451/unradar/pkg/unraid"
)

const liveRetryInterval = 15 * time.Second

// liveFeed keeps one metric subscription connection per server and
// turns its messages into collector samples between polls. Samples are
// recorded once both utilization streams have reported.
type liveFeed struct {
	serverID  string
	subs      *graphql.SubscriptionClient
	collector metrics.MetricCollector

	mu      sync.Mutex
	cpu     float64
	memory  float64
	haveCPU bool
	haveMem bool
}

// startLiveFeed wires a subscription feed for the handle. A feed that
// cannot even be constructed is logged and skipped; connection failures
// after that retry forever.
func (s *Service) startLiveFeed(ctx context.Context, h *serverHandle) {
	subs, err := graphql.NewSubscriptionClient(h.transport.Endpoint(), h.cfg.APIKey, h.transport.Insecure())
	if err != nil {
		log.Printf("Live metrics for %s disabled: %v", h.cfg.ID, err)
		return
	}

	feed := &liveFeed{
		serverID:  h.cfg.ID,
		subs:      subs,
		collector: s.metrics,
	}

	h.live = feed

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		feed.run(ctx, s.done)
	}()
}

// run connects, resubscribes, and reconnects until shutdown. Handlers
// do not survive a reconnect, so every pass subscribes again.
func (f *liveFeed) run(ctx context.Context, done <-chan struct{}) {
	for {
		if err := f.connect(ctx); err != nil {
			log.Printf("Live feed for %s failed to connect: %v", f.serverID, err)

			select {
			case <-time.After(liveRetryInterval):
				continue
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}

		log.Printf("Live feed for %s connected", f.serverID)

		select {
		case <-ctx.Done():
			f.close()
			return
		case <-done:
			f.close()
			return
		case <-f.subs.Done():
			log.Printf("Live feed for %s lost; reconnecting", f.serverID)
		}
	}
}

func (f *liveFeed) connect(ctx context.Context) error {
	if err := f.subs.Connect(ctx); err != nil {
		return err
	}

	if _, err := f.subs.Subscribe(unraid.SubscriptionCPU, "CpuMetrics", f.onCPU); err != nil {
		f.close()
		return err
	}

	if _, err := f.subs.Subscribe(unraid.SubscriptionMemory, "MemoryMetrics", f.onMemory); err != nil {
		f.close()
		return err
	}

	return nil
}

func (f *liveFeed) onCPU(data json.RawMessage) {
	pct, err := unraid.ParseCPUSubscription(data)
	if err != nil {
		log.Printf("Ignoring malformed cpu sample for %s: %v", f.serverID, err)
		return
	}

	f.mu.Lock()
	f.cpu = pct
	f.haveCPU = true
	f.record()
	f.mu.Unlock()
}

func (f *liveFeed) onMemory(data json.RawMessage) {
	sample, err := unraid.ParseMemorySubscription(data)
	if err != nil {
		log.Printf("Ignoring malformed memory sample for %s: %v", f.serverID, err)
		return
	}

	f.mu.Lock()
	f.memory = sample.Percent
	f.haveMem = true
	f.record()
	f.mu.Unlock()
}

// record adds a sample once both streams have reported. Callers hold
// f.mu. Live samples carry no array reading; the poll cycle fills that.
func (f *liveFeed) record() {
	if !f.haveCPU || !f.haveMem {
		return
	}

	f.collector.AddSample(f.serverID, time.Now().UTC(), f.cpu, f.memory, nil)
}

// updateAPIKey stores the credential and forces a reconnect so the new
// key takes effect immediately instead of on the next natural drop.
func (f *liveFeed) updateAPIKey(apiKey string) {
	f.subs.UpdateAPIKey(apiKey)
	f.close()
}

func (f *liveFeed) close() {
	if err := f.subs.Close(); err != nil {
		log.Printf("Error closing live feed for %s: %v", f.serverID, err)
	}
}
