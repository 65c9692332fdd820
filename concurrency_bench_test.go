package fixarena_test

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/pavanmanishd/fixarena"
)

// BenchmarkConcurrencyPatterns compares a shared SafeRestartable against an
// unsynchronized Restartable per goroutine.
func BenchmarkConcurrencyPatterns(b *testing.B) {

	b.Run("SafeRestartable_Sequential", func(b *testing.B) {
		s := fixarena.NewSafeRestartable(make([]byte, 1024*1024))

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			h, err := s.Alloc(64, 8)
			if err != nil {
				s.Restart()
				continue
			}
			h.Release()
		}
	})

	b.Run("SafeRestartable_Parallel", func(b *testing.B) {
		s := fixarena.NewSafeRestartable(make([]byte, 1024*1024))

		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				h, err := s.Alloc(64, 8)
				if err != nil {
					_ = s.TryRestart()
					continue
				}
				h.Release()
			}
		})
	})

	b.Run("Restartable_PerGoroutine", func(b *testing.B) {
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			c := fixarena.NewRestartable(make([]byte, 1024*1024))
			for pb.Next() {
				h, err := c.Alloc(64, 8)
				if err != nil {
					c.Restart()
					continue
				}
				h.Release()
			}
		})
	})

	b.Run("Builtin_Parallel", func(b *testing.B) {
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				_ = make([]byte, 64)
			}
		})
	})

	for _, size := range []int{32, 128, 512} {
		b.Run(fmt.Sprintf("SafeRestartable_Contention_%dB", size), func(b *testing.B) {
			s := fixarena.NewSafeRestartable(make([]byte, 2*1024*1024))

			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					h, err := s.Alloc(size, 8)
					if err != nil {
						_ = s.TryRestart()
						continue
					}
					h.Release()
				}
			})
		})
	}
}

// BenchmarkSafeRestartableOperations measures each thread-safe operation
// under parallel load.
func BenchmarkSafeRestartableOperations(b *testing.B) {
	s := fixarena.NewSafeRestartable(make([]byte, 1024*1024))

	b.Run("Alloc", func(b *testing.B) {
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				if h, err := s.Alloc(64, 8); err == nil {
					h.Release()
				} else {
					_ = s.TryRestart()
				}
			}
		})
	})

	b.Run("CreateIn", func(b *testing.B) {
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				if h, err := fixarena.CreateIn(s, int64(1)); err == nil {
					h.Release()
				} else {
					_ = s.TryRestart()
				}
			}
		})
	})

	b.Run("AllocSliceIn", func(b *testing.B) {
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				if h, err := fixarena.AllocSliceIn[int](s, 10); err == nil {
					h.Release()
				} else {
					_ = s.TryRestart()
				}
			}
		})
	})

	b.Run("Metrics", func(b *testing.B) {
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				_ = s.Metrics()
			}
		})
	})

	b.Run("Live", func(b *testing.B) {
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				_ = s.Live()
			}
		})
	})
}

// BenchmarkConcurrentRestart mixes allocation with restart attempts that
// fail whenever another goroutine holds a handle.
func BenchmarkConcurrentRestart(b *testing.B) {
	s := fixarena.NewSafeRestartable(make([]byte, 2*1024*1024))

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if i%1000 == 0 {
				_ = s.TryRestart()
			} else if h, err := s.Alloc(128, 8); err == nil {
				h.Release()
			}
			i++
		}
	})
}

// BenchmarkScalability shows how the shared mutex behaves as GOMAXPROCS
// grows.
func BenchmarkScalability(b *testing.B) {
	for _, procs := range []int{1, 2, 4, 8, 16} {
		b.Run(fmt.Sprintf("SafeRestartable_%dProcs", procs), func(b *testing.B) {
			s := fixarena.NewSafeRestartable(make([]byte, 4*1024*1024))

			old := runtime.GOMAXPROCS(procs)
			defer runtime.GOMAXPROCS(old)

			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					h, err := s.Alloc(128, 8)
					if err != nil {
						_ = s.TryRestart()
						continue
					}
					h.Release()
				}
			})
		})

		b.Run(fmt.Sprintf("Builtin_%dProcs", procs), func(b *testing.B) {
			old := runtime.GOMAXPROCS(procs)
			defer runtime.GOMAXPROCS(old)

			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					_ = make([]byte, 128)
				}
			})
		})
	}
}
