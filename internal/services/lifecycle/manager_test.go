package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManager_ShutdownOrder(t *testing.T) {
	t.Parallel()

	m := New(time.Second, nil)
	var order []string
	for _, name := range []string{"store", "server", "janitor"} {
		name := name
		m.Register(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}
	m.Register("nil hook", nil)

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"janitor", "server", "store"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("hook %d: expected %s, got %s", i, want[i], order[i])
		}
	}

	if err := m.Shutdown(context.Background()); err != nil {
		t.Errorf("second shutdown: %v", err)
	}
	if len(order) != 3 {
		t.Error("hooks must run only once")
	}
}

func TestManager_ShutdownJoinsErrors(t *testing.T) {
	t.Parallel()

	errA := errors.New("a failed")
	errB := errors.New("b failed")
	ran := false

	m := New(0, nil)
	m.Register("a", func(context.Context) error { return errA })
	m.Register("ok", func(context.Context) error { ran = true; return nil })
	m.Register("b", func(context.Context) error { return errB })

	err := m.Shutdown(context.Background())
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("expected both errors, got %v", err)
	}
	if !ran {
		t.Error("a failing hook must not stop the others")
	}
}

func TestManager_ShutdownDeadline(t *testing.T) {
	t.Parallel()

	m := New(20*time.Millisecond, nil)
	m.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	if err := m.Shutdown(context.Background()); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}
