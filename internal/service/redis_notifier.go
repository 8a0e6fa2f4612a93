package service

import (
	"context"
	"encoding/json"
	"fmt"

	"employee-directory/internal/config"
	"employee-directory/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier publishes employee changes on "<prefix>.<action>" channels.
// Payloads omit the image.
type RedisNotifier struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisNotifier(rdb *redis.Client, prefix string) *RedisNotifier {
	if prefix == "" {
		prefix = "employees"
	}
	return &RedisNotifier{rdb: rdb, prefix: prefix}
}

func (n *RedisNotifier) Channel(action model.EmployeeAction) string {
	return n.prefix + "." + string(action)
}

func (n *RedisNotifier) Notify(ctx context.Context, event model.EmployeeEvent) error {
	payload, err := redisPayload(event)
	if err != nil {
		return err
	}
	if err := n.rdb.Publish(ctx, n.Channel(event.Action), payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event.Action, err)
	}
	return nil
}

func redisPayload(event model.EmployeeEvent) ([]byte, error) {
	if event.Employee != nil {
		stripped := *event.Employee
		stripped.Image = nil
		event.Employee = &stripped
	}
	return json.Marshal(event)
}
