package shutdown

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/Leganyst/service-provider-api/internal/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// StopFunc позволяет передать в Graceful обычную функцию.
type StopFunc func(ctx context.Context) error

func (f StopFunc) Shutdown(ctx context.Context) error { return f(ctx) }

// Wait блокируется до первого сигнала из signals или до отмены ctx.
func Wait(ctx context.Context, signals ...os.Signal) {
	sigCtx, stop := signal.NotifyContext(ctx, signals...)
	defer stop()
	<-sigCtx.Done()
}

// Graceful останавливает компоненты по порядку с общим таймаутом.
// Ошибка одного компонента не мешает остановить остальные.
func Graceful(timeout time.Duration, log *logging.Logger, components ...Stoppable) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	failed := false
	for _, s := range components {
		if err := s.Shutdown(ctx); err != nil {
			failed = true
			log.Warn("graceful shutdown completed with error", "err", err)
		}
	}
	if !failed {
		log.Info("graceful shutdown completed successfully")
	}
}
