// Package cache contiene los adaptadores sobre Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/paytrack-api/internal/application/auth"
	"github.com/jhoicas/paytrack-api/pkg/config"
)

var _ auth.LoginLimiter = (*LoginLimiter)(nil)

const failureKeyFmt = "paytrack:login:fail:%s"

// NewClient abre y verifica la conexión a Redis.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// LoginLimiter cuenta intentos fallidos por login id en una ventana fija.
// La ventana empieza con el primer fallo y el contador expira solo.
type LoginLimiter struct {
	client      redis.Cmdable
	maxAttempts int64
	window      time.Duration
}

// NewLoginLimiter construye el limitador. maxAttempts <= 0 lo desactiva.
func NewLoginLimiter(client redis.Cmdable, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

func failureKey(loginID string) string {
	return fmt.Sprintf(failureKeyFmt, loginID)
}

// Allowed informa si todavía quedan intentos en la ventana actual.
func (l *LoginLimiter) Allowed(ctx context.Context, loginID string) (bool, error) {
	if l.maxAttempts <= 0 {
		return true, nil
	}
	n, err := l.client.Get(ctx, failureKey(loginID)).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("leer intentos: %w", err)
	}
	return n < l.maxAttempts, nil
}

// RecordFailure incrementa el contador y fija la expiración en el primer fallo.
func (l *LoginLimiter) RecordFailure(ctx context.Context, loginID string) error {
	if l.maxAttempts <= 0 {
		return nil
	}
	key := failureKey(loginID)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("incrementar intentos: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("expirar intentos: %w", err)
		}
	}
	return nil
}

// Reset borra el contador tras un login correcto.
func (l *LoginLimiter) Reset(ctx context.Context, loginID string) error {
	if err := l.client.Del(ctx, failureKey(loginID)).Err(); err != nil {
		return fmt.Errorf("reset intentos: %w", err)
	}
	return nil
}
