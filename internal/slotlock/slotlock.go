package slotlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrHeld = errors.New("slotlock: slot held by another submission")

// libera só se o valor ainda for o nosso token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func Key(hangarID uint, date, clock string) string {
	return fmt.Sprintf("hangar:%d:slot:%sT%s", hangarID, date, clock)
}

func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("slotlock.Connect: %w", err)
	}
	return client, nil
}

type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl}
}

// Acquire segura o horário por no máximo ttl. A trava não substitui a
// recontagem transacional; apenas evita submissões duplicadas simultâneas.
func (l *RedisLocker) Acquire(
	ctx context.Context,
	hangarID uint,
	date string,
	clock string,
) (func(), error) {

	key := Key(hangarID, date, clock)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("slotlock.Acquire %s: %w", key, err)
	}
	if !ok {
		return nil, ErrHeld
	}

	release := func() {
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := releaseScript.Run(rctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("slot lock release failed")
		}
	}

	return release, nil
}

// Noop é usado quando não há Redis configurado.
type Noop struct{}

func (Noop) Acquire(context.Context, uint, string, string) (func(), error) {
	return func() {}, nil
}
