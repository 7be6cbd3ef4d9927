// Package ratelimit реализует ограничение частоты запросов по строгому
// скользящему окну: учитывается фактическая история обращений за последние
// window, а не календарные интервалы.
//
// Решение о допуске принимает Limiter, историю окна держит Store — атомарная
// операция Take исключает гонку «вычистить-проверить-записать» между
// конкурентными запросами одной идентичности. В комплекте два хранилища:
// процессное (MemoryStore) и разделяемое между инстансами (RedisStore).
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Decision — итог проверки одного запроса.
type Decision struct {
	Allowed bool
	// Limit — ёмкость окна (N запросов на window).
	Limit int
	// Remaining — остаток квоты после этого запроса.
	Remaining int
	// ResetAt — момент, когда из окна уйдёт самая старая отметка
	// (при пустом окне — now+window).
	ResetAt time.Time
	// RetryAfter — через сколько можно повторить; ноль для допущенных.
	RetryAfter time.Duration
}

// Usage — состояние окна идентичности сразу после Take.
type Usage struct {
	// Recorded — запрос поместился в окно и был записан.
	Recorded bool
	// Count — отметок в окне после операции.
	Count int
	// Oldest — самая старая отметка окна; нулевое время — окно пусто.
	Oldest time.Time
}

// Store — хранилище скользящих окон. Take атомарно вычищает отметки старше
// now-window, при наличии места записывает новую и возвращает итоговое
// состояние окна.
type Store interface {
	Take(ctx context.Context, identity string, now time.Time, window time.Duration, capacity int) (Usage, error)
	Close(ctx context.Context) error
}

// Limiter — ограничитель частоты поверх Store.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

// New создаёт Limiter с ёмкостью limit запросов на окно window.
func New(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Admit проверяет и сразу учитывает запрос идентичности.
// Ошибка означает недоступность хранилища; решения в ней нет —
// вызывающая сторона сама выбирает политику (у HTTP-слоя это fail-open).
func (l *Limiter) Admit(ctx context.Context, identity string) (Decision, error) {
	const op = "ratelimit/Admit"

	now := l.now()

	u, err := l.store.Take(ctx, identity, now, l.window, l.limit)
	if err != nil {
		return Decision{}, fmt.Errorf("%s: %w", op, err)
	}

	d := Decision{
		Allowed: u.Recorded,
		Limit:   l.limit,
	}

	if rem := l.limit - u.Count; rem > 0 {
		d.Remaining = rem
	}

	if u.Oldest.IsZero() {
		d.ResetAt = now.Add(l.window)
	} else {
		d.ResetAt = u.Oldest.Add(l.window)
	}

	if !d.Allowed {
		if ra := d.ResetAt.Sub(now); ra > 0 {
			d.RetryAfter = ra
		}
	}

	return d, nil
}
