package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"gamestore_bff/internal/config"
)

// ConnectRedis abre la conexión a Redis (sesiones, carritos, caché de
// catálogo y pub/sub). El cliente se inyecta a cada componente; no hay
// globales de paquete.
func ConnectRedis(ctx context.Context) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Getenv("REDIS_ADDR", "localhost:6379"),
		Password: config.Getenv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error conectando a Redis: %w", err)
	}
	return client, nil
}
