package ports

import (
	"context"
	"time"
)

// CacheBus define el puerto de salida para la caché de reportes y el bus de
// invalidación. El original invalidaba claves de query imperativamente desde
// cada mutación; aquí el contrato es explícito: los casos de uso publican
// "entidad cambió" y el adaptador borra las claves de esa entidad y notifica a
// los suscriptores. Siguiendo DIP, la aplicación solo conoce este contrato.
type CacheBus interface {
	// PublishChange anuncia que una entidad mutó (ej. "employees", "payout_runs").
	// Invalida las claves cacheadas de la entidad y publica el evento. Nunca
	// debe fallar la operación de negocio: los adaptadores absorben sus errores.
	PublishChange(ctx context.Context, entity, id string)

	// Get devuelve el snapshot cacheado o (nil, nil) si no existe.
	Get(ctx context.Context, entity, key string) ([]byte, error)

	// Set guarda un snapshot bajo la entidad indicada, con TTL opcional (0 = sin TTL).
	Set(ctx context.Context, entity, key string, value []byte, ttl time.Duration) error
}

// NoopBus implementación nula de CacheBus: sin Redis configurado la aplicación
// opera sin caché y las publicaciones se descartan. También se usa en tests.
type NoopBus struct{}

var _ CacheBus = NoopBus{}

func (NoopBus) PublishChange(context.Context, string, string) {}
func (NoopBus) Get(context.Context, string, string) ([]byte, error) {
	return nil, nil
}
func (NoopBus) Set(context.Context, string, string, []byte, time.Duration) error {
	return nil
}
