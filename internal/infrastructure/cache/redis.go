// Package cache implementa el puerto CacheBus sobre Redis: snapshots de
// reportes bajo claves por entidad y un canal pub/sub de invalidación.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/pkg/config"
)

var _ ports.CacheBus = (*RedisBus)(nil)

// RedisBus bus de caché e invalidación sobre Redis. Los errores de Redis se
// registran y se absorben: una caché caída nunca tumba la operación de negocio.
type RedisBus struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewRedisBus conecta a Redis con la configuración dada y verifica con un ping.
func NewRedisBus(cfg config.RedisConfig, log zerolog.Logger) (*RedisBus, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar a redis: %w", err)
	}
	return &RedisBus{client: client, log: log}, nil
}

// Close cierra la conexión subyacente.
func (b *RedisBus) Close() error {
	return b.client.Close()
}

func cacheKey(entity, key string) string {
	return "cache:" + entity + ":" + key
}

// PublishChange borra todas las claves cacheadas de la entidad y publica el
// evento en el canal "changed:<entidad>".
func (b *RedisBus) PublishChange(ctx context.Context, entity, id string) {
	pattern := "cache:" + entity + ":*"
	iter := b.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := b.client.Del(ctx, iter.Val()).Err(); err != nil {
			b.log.Warn().Err(err).Str("key", iter.Val()).Msg("no se pudo invalidar clave de caché")
		}
	}
	if err := iter.Err(); err != nil {
		b.log.Warn().Err(err).Str("entity", entity).Msg("scan de invalidación falló")
	}
	if err := b.client.Publish(ctx, "changed:"+entity, id).Err(); err != nil {
		b.log.Warn().Err(err).Str("entity", entity).Msg("publish de cambio falló")
	}
}

// Get devuelve el snapshot cacheado o (nil, nil) si la clave no existe.
func (b *RedisBus) Get(ctx context.Context, entity, key string) ([]byte, error) {
	val, err := b.client.Get(ctx, cacheKey(entity, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		b.log.Warn().Err(err).Str("entity", entity).Msg("lectura de caché falló")
		return nil, nil
	}
	return val, nil
}

// Set guarda un snapshot con TTL opcional (0 = sin expiración).
func (b *RedisBus) Set(ctx context.Context, entity, key string, value []byte, ttl time.Duration) error {
	if err := b.client.Set(ctx, cacheKey(entity, key), value, ttl).Err(); err != nil {
		b.log.Warn().Err(err).Str("entity", entity).Msg("escritura de caché falló")
	}
	return nil
}
