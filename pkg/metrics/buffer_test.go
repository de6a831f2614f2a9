package metrics

import (
	"testing"
	"time"
)

func TestLockFreeRingBuffer(t *testing.T) {
	t.Run("empty buffer", func(t *testing.T) {
		buffer := NewBuffer(10)

		if points := buffer.GetPoints(); len(points) != 0 {
			t.Errorf("expected no points, got %d", len(points))
		}

		if last := buffer.GetLastPoint(); last != nil {
			t.Errorf("expected nil last point, got %+v", last)
		}
	})

	t.Run("returns only written samples", func(t *testing.T) {
		buffer := NewBuffer(10)
		now := time.Now()

		buffer.Add(now, 10, 20, nil)
		buffer.Add(now.Add(time.Second), 30, 40, nil)

		points := buffer.GetPoints()
		if len(points) != 2 {
			t.Fatalf("expected 2 points, got %d", len(points))
		}

		// Newest first.
		if points[0].CPUPercent != 30 {
			t.Errorf("expected newest point first, got cpu %f", points[0].CPUPercent)
		}

		if points[1].CPUPercent != 10 {
			t.Errorf("expected oldest point last, got cpu %f", points[1].CPUPercent)
		}
	})

	t.Run("wraps once full", func(t *testing.T) {
		buffer := NewBuffer(3)
		now := time.Now()

		for i := 0; i < 5; i++ {
			buffer.Add(now.Add(time.Duration(i)*time.Second), float64(i), 0, nil)
		}

		points := buffer.GetPoints()
		if len(points) != 3 {
			t.Fatalf("expected 3 points after wrap, got %d", len(points))
		}

		for i, want := range []float64{4, 3, 2} {
			if points[i].CPUPercent != want {
				t.Errorf("point %d: expected cpu %f, got %f", i, want, points[i].CPUPercent)
			}
		}
	})

	t.Run("array usage propagates", func(t *testing.T) {
		buffer := NewBuffer(4)
		now := time.Now()
		usage := 72.5

		buffer.Add(now, 1, 2, nil)
		buffer.Add(now.Add(time.Second), 3, 4, &usage)

		last := buffer.GetLastPoint()
		if last == nil {
			t.Fatal("expected a last point")
		}

		if last.ArrayPercent == nil || *last.ArrayPercent != usage {
			t.Errorf("expected array percent %f, got %v", usage, last.ArrayPercent)
		}

		points := buffer.GetPoints()
		if points[1].ArrayPercent != nil {
			t.Errorf("expected nil array percent on first sample, got %v", points[1].ArrayPercent)
		}
	})

	t.Run("last point tracks newest write", func(t *testing.T) {
		buffer := NewBuffer(2)
		now := time.Now()

		buffer.Add(now, 1, 1, nil)
		buffer.Add(now.Add(time.Second), 2, 2, nil)
		buffer.Add(now.Add(2*time.Second), 3, 3, nil)

		last := buffer.GetLastPoint()
		if last == nil {
			t.Fatal("expected a last point")
		}

		if last.CPUPercent != 3 {
			t.Errorf("expected cpu 3, got %f", last.CPUPercent)
		}
	})
}
