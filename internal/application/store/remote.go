package store

import (
	"context"
	"sync"
	"time"

	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/pkg/logger"
)

const (
	defaultRemoteTimeout = 15 * time.Second
	defaultMaxInFlight   = 8
)

// remoteWriter lanza las llamadas remotas de las mutaciones sin bloquear al llamador.
// No hay reintentos ni cancelación: cada llamada termina por éxito, error o timeout.
type remoteWriter struct {
	wg      sync.WaitGroup
	sem     chan struct{}
	timeout time.Duration
	log     *logger.Logger
	onError func()
}

func newRemoteWriter(timeout time.Duration, maxInFlight int, log *logger.Logger, onError func()) *remoteWriter {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	if maxInFlight <= 0 {
		maxInFlight = defaultMaxInFlight
	}
	return &remoteWriter{
		sem:     make(chan struct{}, maxInFlight),
		timeout: timeout,
		log:     log,
		onError: onError,
	}
}

// Go ejecuta fn en segundo plano con su propio timeout, desligado del contexto de la petición.
func (w *remoteWriter) Go(op string, id entity.ID, fn func(ctx context.Context) error) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.sem <- struct{}{}
		defer func() { <-w.sem }()

		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			w.log.Warn().Err(err).Str("op", op).Str("id", id.String()).
				Msg("escritura remota fallida; se conserva el estado local")
			if w.onError != nil {
				w.onError()
			}
			return
		}
		w.log.Debug().Str("op", op).Str("id", id.String()).Msg("escritura remota confirmada")
	}()
}

// Wait bloquea hasta que no queden llamadas en curso.
func (w *remoteWriter) Wait() {
	w.wg.Wait()
}
