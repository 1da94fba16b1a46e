package notify

import (
	"context"
	"encoding/json"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisPublisher delivers notifications over Redis pub/sub channels, one
// channel per topic. Subscribers (the websocket gateway, admin dashboards)
// live outside this process.
//
// Publishes go through a circuit breaker: when the broker is down the order
// path fast-fails the notification instead of blocking on a dead connection.
type RedisPublisher struct {
	rdb *redis.Client
	cb  *infra.CircuitBreaker
}

func NewRedisPublisher(rdb *redis.Client, cb *infra.CircuitBreaker) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, cb: cb}
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	err = p.cb.Execute(func() error {
		return p.rdb.Publish(ctx, topic, data).Err()
	})
	if err != nil {
		log.Warn().Str("topic", topic).Err(err).Msg("notify: publish failed")
	}
	return err
}

// Breaker exposes the circuit breaker state for the health endpoint.
func (p *RedisPublisher) Breaker() *infra.CircuitBreaker { return p.cb }
