package resilience

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestBreaker(clock *fakeClock, transitions *[]string) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		Name:        "testimonials",
		MaxFailures: 2,
		Timeout:     time.Second,
		Now:         clock.Now,
		OnStateChange: func(_ string, from, to State) {
			*transitions = append(*transitions, from.String()+"->"+to.String())
		},
	})
}

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	var transitions []string
	cb := newTestBreaker(clock, &transitions)
	fail := errors.New("down")

	_ = cb.Execute(func() error { return fail })
	if cb.State() != StateClosed {
		t.Fatalf("expected closed after one failure, got %s", cb.State())
	}
	_ = cb.Execute(func() error { return fail })
	if cb.State() != StateOpen {
		t.Fatalf("expected open, got %s", cb.State())
	}

	err := cb.Execute(func() error {
		t.Error("function must not run while open")
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	var transitions []string
	cb := newTestBreaker(clock, &transitions)
	fail := errors.New("down")
	_ = cb.Execute(func() error { return fail })
	_ = cb.Execute(func() error { return fail })

	clock.Advance(time.Second)
	if cb.State() != StateHalfOpen {
		t.Fatalf("expected half-open after timeout, got %s", cb.State())
	}
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("trial should pass: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("expected closed after successful trial, got %s", cb.State())
	}

	want := []string{"closed->open", "open->half-open", "half-open->closed"}
	if len(transitions) != len(want) {
		t.Fatalf("expected transitions %v, got %v", want, transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d: expected %s, got %s", i, want[i], transitions[i])
		}
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	var transitions []string
	cb := newTestBreaker(clock, &transitions)
	fail := errors.New("down")
	_ = cb.Execute(func() error { return fail })
	_ = cb.Execute(func() error { return fail })
	clock.Advance(time.Second)

	_ = cb.Execute(func() error { return fail })
	if cb.State() != StateOpen {
		t.Errorf("expected open after failed trial, got %s", cb.State())
	}
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker(DefaultCircuitBreakerConfig("x"))
	_ = cb.Execute(func() error { return errors.New("x") })
	_ = cb.Execute(func() error { return nil })
	if cb.Failures() != 0 {
		t.Errorf("expected failures reset, got %d", cb.Failures())
	}
	cb.Reset()
	if cb.State() != StateClosed {
		t.Errorf("expected closed, got %s", cb.State())
	}
}
