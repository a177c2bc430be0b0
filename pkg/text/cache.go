package text

import "sync"

// Cache memoizes faces from an underlying FontMetrics. Each key is built at
// most once, even under concurrent use. Faces are immutable once stored.
type Cache struct {
	metrics FontMetrics

	mu    sync.Mutex
	faces map[FontKey]Face
}

func NewCache(metrics FontMetrics) *Cache {
	return &Cache{
		metrics: metrics,
		faces:   make(map[FontKey]Face),
	}
}

func (c *Cache) Font(key FontKey) Face {
	c.mu.Lock()
	defer c.mu.Unlock()

	if face, ok := c.faces[key]; ok {
		return face
	}
	face := c.metrics.Font(key)
	c.faces[key] = face
	return face
}

// Len returns the number of cached faces.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.faces)
}
