package fixarena

// Offset returns the current cursor position.
func (a *Arena) Offset() int {
	return a.offset
}

// SizeInUse returns the number of bytes between the buffer start and the
// cursor, including alignment padding.
func (a *Arena) SizeInUse() int {
	return a.offset
}

// Capacity returns the length of the backing buffer.
func (a *Arena) Capacity() int {
	return len(a.buf)
}

// Available returns the number of bytes after the cursor.
func (a *Arena) Available() int {
	return len(a.buf) - a.offset
}

// Utilization returns the ratio of bytes in use to capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		Available:   a.Available(),
		Utilization: a.Utilization(),
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse   int     // Bytes up to the cursor
	Capacity    int     // Buffer length in bytes
	Available   int     // Bytes after the cursor
	Live        int     // Handles not yet released
	Generation  uint64  // Successful restarts, rebinds and reclaims
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}

// Metrics returns a snapshot of the coordinator's statistics.
func (c *Restartable) Metrics() ArenaMetrics {
	m := c.arena.Metrics()
	m.Live = c.Live()
	m.Generation = c.gen
	return m
}

// SizeInUse returns the number of bytes up to the cursor.
func (c *Restartable) SizeInUse() int {
	return c.arena.SizeInUse()
}

// Capacity returns the length of the current buffer.
func (c *Restartable) Capacity() int {
	return c.arena.Capacity()
}

// Thread-safe metrics for SafeRestartable

// Metrics thread-safely returns a snapshot of the coordinator's statistics.
func (s *SafeRestartable) Metrics() ArenaMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.arena.Metrics()
	m.Live = s.Live()
	m.Generation = s.gen.Load()
	return m
}

// SizeInUse thread-safely returns the number of bytes up to the cursor.
func (s *SafeRestartable) SizeInUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena.SizeInUse()
}

// Capacity thread-safely returns the length of the current buffer.
func (s *SafeRestartable) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena.Capacity()
}

// Utilization thread-safely returns the ratio of bytes in use to capacity.
func (s *SafeRestartable) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena.Utilization()
}
