package maino

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jhoicas/opme-consignado/internal/domain"
)

// maxInterval tope de espera entre dos intentos.
const maxInterval = 30 * time.Second

// newBackOff backoff exponencial con jitter desde base, cortado en maxRetries reintentos
// y atado al contexto de la llamada.
func newBackOff(ctx context.Context, base time.Duration, maxRetries int) backoff.BackOffContext {
	if maxRetries <= 0 {
		// WithMaxRetries(b, 0) no corta nunca
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = base
	b.Multiplier = 2
	b.RandomizationFactor = 0.5
	b.MaxInterval = maxInterval
	b.MaxElapsedTime = 0 // el corte lo da maxRetries
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxRetries)), ctx)
}

// retryable: errores de red y 5xx/429. Los 4xx restantes no cambian al reintentar.
func retryable(err error) bool {
	var sErr *domain.ServiceError
	if !errors.As(err, &sErr) {
		return false
	}
	if sErr.StatusCode == 0 {
		return !errors.Is(err, context.Canceled)
	}
	return sErr.StatusCode >= http.StatusInternalServerError || sErr.StatusCode == http.StatusTooManyRequests
}
