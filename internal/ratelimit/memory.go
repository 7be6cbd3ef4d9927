package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepInterval — период фоновой уборки опустевших окон.
const sweepInterval = 5 * time.Minute

// MemoryStore — процессное хранилище окон: map идентичность -> отметки времени
// (по возрастанию). История живёт в памяти одного инстанса: перезапуск
// обнуляет окна, при горизонтальном масштабировании лимит действует на каждый
// инстанс отдельно. Для общего лимита между инстансами см. RedisStore.
type MemoryStore struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	// window — последнее окно, с которым звали Take; его использует уборщик.
	window time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore создаёт хранилище и запускает фоновую уборку устаревших
// окон. Остановка — через Close.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		hits: make(map[string][]time.Time),
		stop: make(chan struct{}),
	}

	go s.janitor()

	return s
}

// Take — см. Store. Списание выполняется под одной блокировкой:
// вычистка, проверка ёмкости и запись неразделимы.
func (s *MemoryStore) Take(_ context.Context, identity string, now time.Time, window time.Duration, capacity int) (Usage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.window = window

	cutoff := now.Add(-window)
	hits := s.hits[identity]

	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	u := Usage{}
	if len(kept) < capacity {
		kept = append(kept, now)
		u.Recorded = true
	}

	if len(kept) == 0 {
		delete(s.hits, identity)
	} else {
		s.hits[identity] = kept
		u.Oldest = kept[0]
	}

	u.Count = len(kept)

	return u, nil
}

// Close останавливает уборщик.
func (s *MemoryStore) Close(context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })

	return nil
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep(time.Now())
		}
	}
}

// sweep выбрасывает отметки за пределами окна у идентичностей, которые давно
// не приходили, и удаляет опустевшие окна целиком.
func (s *MemoryStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.window <= 0 {
		return
	}

	cutoff := now.Add(-s.window)
	for identity, hits := range s.hits {
		kept := hits[:0]
		for _, t := range hits {
			if t.After(cutoff) {
				kept = append(kept, t)
			}
		}

		if len(kept) == 0 {
			delete(s.hits, identity)
			continue
		}

		s.hits[identity] = kept
	}
}
