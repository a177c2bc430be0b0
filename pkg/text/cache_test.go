package text

import (
	"sync"
	"sync/atomic"
	"testing"
)

type countingMetrics struct {
	builds atomic.Int32
}

func (c *countingMetrics) Font(key FontKey) Face {
	c.builds.Add(1)
	return Fixed{}.Font(key)
}

func TestCache_MemoizesPerKey(t *testing.T) {
	inner := &countingMetrics{}
	cache := NewCache(inner)

	a := cache.Font(FontKey{Size: 16, Weight: "normal", Style: "normal"})
	b := cache.Font(FontKey{Size: 16, Weight: "normal", Style: "normal"})
	cache.Font(FontKey{Size: 16, Weight: "bold", Style: "normal"})

	if a != b {
		t.Error("expected the same face for the same key")
	}
	if got := inner.builds.Load(); got != 2 {
		t.Errorf("expected 2 builds, got %d", got)
	}
	if cache.Len() != 2 {
		t.Errorf("expected 2 cached faces, got %d", cache.Len())
	}
}

func TestCache_ConcurrentAtMostOnce(t *testing.T) {
	inner := &countingMetrics{}
	cache := NewCache(inner)
	keys := []FontKey{
		{Size: 12, Weight: "normal", Style: "normal"},
		{Size: 12, Weight: "bold", Style: "normal"},
		{Size: 12, Weight: "normal", Style: "italic"},
		{Size: 20, Weight: "bold", Style: "italic"},
	}

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cache.Font(keys[i%len(keys)]).Measure("word")
		}(i)
	}
	wg.Wait()

	if got := inner.builds.Load(); got != int32(len(keys)) {
		t.Errorf("expected %d builds, got %d", len(keys), got)
	}
}

func TestFixed(t *testing.T) {
	face := Fixed{Advance: 1}.Font(FontKey{Size: 10})
	if w := face.Measure("héllo"); w != 50 {
		t.Errorf("expected width 50, got %v", w)
	}
	m := face.Metrics()
	if m.Ascent != 8 || m.Descent != 2 {
		t.Errorf("unexpected metrics %+v", m)
	}
}

func TestFontConfig_FontPath(t *testing.T) {
	fc := FontConfig{Regular: "r.ttf", Bold: "b.ttf"}
	tests := []struct {
		bold, italic bool
		want         string
	}{
		{false, false, "r.ttf"},
		{true, false, "b.ttf"},
		{true, true, "b.ttf"},
		{false, true, "r.ttf"},
	}
	for _, tt := range tests {
		if got := fc.FontPath(tt.bold, tt.italic); got != tt.want {
			t.Errorf("FontPath(%v, %v) = %q, want %q", tt.bold, tt.italic, got, tt.want)
		}
	}
}
