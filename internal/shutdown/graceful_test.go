package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Leganyst/service-provider-api/internal/logging"
)

func TestGraceful_StopsAllInOrder(t *testing.T) {
	var order []string
	stop := func(name string, err error) StopFunc {
		return func(ctx context.Context) error {
			if _, ok := ctx.Deadline(); !ok {
				t.Fatalf("%s: expected a deadline on shutdown context", name)
			}
			order = append(order, name)
			return err
		}
	}

	Graceful(time.Second, logging.Nop(),
		stop("http", nil),
		stop("grpc", errors.New("boom")),
		stop("db", nil),
	)

	want := []string{"http", "grpc", "db"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestWait_ReturnsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		Wait(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Wait did not return after context cancel")
	}
}
