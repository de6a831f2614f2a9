package metrics

import (
	"testing"
	"time"

	"github.com/mfreeman451/unradar/pkg/models"
)

func TestManager(t *testing.T) {
	cfg := models.MetricsConfig{
		Enabled:   true,
		Retention: 100,
	}

	t.Run("adds samples and tracks active servers", func(t *testing.T) {
		manager := NewManager(cfg)
		now := time.Now()

		// Add samples for two servers
		manager.AddSample("tower", now, 12.5, 48.2, nil)
		manager.AddSample("backup", now, 3.1, 22.7, nil)

		// Verify active server count
		if count := manager.GetActiveServers(); count != 2 {
			t.Errorf("expected 2 active servers, got %d", count)
		}

		// Verify sample retrieval
		points := manager.GetMetrics("tower")
		if len(points) != 1 {
			t.Fatalf("expected 1 point, got %d", len(points))
		}

		if points[0].CPUPercent != 12.5 {
			t.Errorf("expected cpu 12.5, got %f", points[0].CPUPercent)
		}

		last := manager.GetLastPoint("backup")
		if last == nil || last.MemoryPercent != 22.7 {
			t.Errorf("expected memory 22.7, got %+v", last)
		}
	})

	t.Run("unknown server", func(t *testing.T) {
		manager := NewManager(cfg)

		if points := manager.GetMetrics("missing"); points != nil {
			t.Errorf("expected nil points for unknown server, got %v", points)
		}

		if last := manager.GetLastPoint("missing"); last != nil {
			t.Errorf("expected nil last point for unknown server, got %+v", last)
		}
	})

	t.Run("disabled collector", func(t *testing.T) {
		disabledCfg := models.MetricsConfig{Enabled: false}
		manager := NewManager(disabledCfg)

		manager.AddSample("tower", time.Now(), 50, 50, nil)

		if points := manager.GetMetrics("tower"); points != nil {
			t.Error("expected nil points when disabled")
		}

		if count := manager.GetActiveServers(); count != 0 {
			t.Errorf("expected 0 active servers when disabled, got %d", count)
		}
	})

	t.Run("default retention", func(t *testing.T) {
		manager := NewManager(models.MetricsConfig{Enabled: true})
		now := time.Now()

		for i := 0; i < defaultRetention+10; i++ {
			manager.AddSample("tower", now.Add(time.Duration(i)*time.Second), float64(i), 0, nil)
		}

		points := manager.GetMetrics("tower")
		if len(points) != defaultRetention {
			t.Errorf("expected %d points, got %d", defaultRetention, len(points))
		}
	})

	t.Run("concurrent access", func(*testing.T) {
		manager := NewManager(cfg)
		done := make(chan bool)

		const goroutines = 10

		const iterations = 100

		for i := 0; i < goroutines; i++ {
			go func(id int) {
				for j := 0; j < iterations; j++ {
					manager.AddSample("tower", time.Now(), float64(id), float64(j), nil)
				}
				done <- true
			}(i)
		}

		for i := 0; i < goroutines; i++ {
			<-done
		}
	})
}
