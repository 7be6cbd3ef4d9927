package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix — пространство ключей лимитера в Redis.
const redisKeyPrefix = "ratelimit:"

// takeScript — атомарный шаг окна на стороне Redis: вычистка устаревших
// отметок, проверка ёмкости, запись и продление TTL выполняются одним
// скриптом, поэтому конкурентные запросы одной идентичности с разных
// инстансов не обгоняют друг друга.
//
// Отметки хранятся в ZSET: score — unix-время в миллисекундах, member —
// уникален на каждый запрос. Возврат: {записан ли запрос, размер окна,
// score самой старой отметки (0 — окно пусто)}.
var takeScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local capacity = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

local count = redis.call('ZCARD', key)
local recorded = 0
if count < capacity then
  redis.call('ZADD', key, now, member)
  recorded = 1
  count = count + 1
end

redis.call('PEXPIRE', key, window)

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local oldest_score = 0
if oldest[2] then
  oldest_score = oldest[2]
end

return {recorded, count, oldest_score}
`)

// RedisStore — разделяемое хранилище окон: один лимит на все инстансы
// сервиса. Точность отметок — миллисекунда.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore подключается к Redis по URL (redis://[:pass@]host:port/db)
// и проверяет соединение.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Take — см. Store.
func (s *RedisStore) Take(ctx context.Context, identity string, now time.Time, window time.Duration, capacity int) (Usage, error) {
	const op = "ratelimit/redis/Take"

	res, err := takeScript.Run(ctx, s.client,
		[]string{redisKeyPrefix + identity},
		now.UnixMilli(), window.Milliseconds(), capacity, uuid.NewString(),
	).Slice()
	if err != nil {
		return Usage{}, fmt.Errorf("%s: %w", op, err)
	}

	if len(res) != 3 {
		return Usage{}, fmt.Errorf("%s: unexpected reply of %d elements", op, len(res))
	}

	recorded, err := replyInt(res[0])
	if err != nil {
		return Usage{}, fmt.Errorf("%s: recorded: %w", op, err)
	}

	count, err := replyInt(res[1])
	if err != nil {
		return Usage{}, fmt.Errorf("%s: count: %w", op, err)
	}

	oldestMS, err := replyInt(res[2])
	if err != nil {
		return Usage{}, fmt.Errorf("%s: oldest: %w", op, err)
	}

	u := Usage{
		Recorded: recorded == 1,
		Count:    int(count),
	}

	if oldestMS > 0 {
		u.Oldest = time.UnixMilli(oldestMS).UTC()
	}

	return u, nil
}

// Close закрывает соединение с Redis.
func (s *RedisStore) Close(context.Context) error {
	return s.client.Close()
}

// replyInt — числа из Lua-ответа приходят как int64, score из WITHSCORES —
// строкой.
func replyInt(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse %q: %w", x, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unexpected reply type %T", v)
	}
}
