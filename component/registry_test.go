package component

import (
	"context"
	"errors"
	"testing"
)

type fakeComponent struct {
	name     string
	startErr error
	events   *[]string
}

func (f *fakeComponent) Name() string { return f.name }

func (f *fakeComponent) Start(context.Context) error {
	*f.events = append(*f.events, "start:"+f.name)
	return f.startErr
}

func (f *fakeComponent) Stop(context.Context) error {
	*f.events = append(*f.events, "stop:"+f.name)
	return nil
}

func (f *fakeComponent) Health(context.Context) Health {
	return Health{Name: f.name, Status: StatusHealthy}
}

func TestRegistry_StartStopOrder(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	for _, n := range []string{"http", "feed"} {
		if err := r.Register(&fakeComponent{name: n, events: &events}); err != nil {
			t.Fatalf("register %s: %v", n, err)
		}
	}
	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := []string{"start:http", "start:feed", "stop:feed", "stop:http"}
	if len(events) != len(want) {
		t.Fatalf("expected %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], events[i])
		}
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&fakeComponent{name: "http", events: &events})
	if err := r.Register(&fakeComponent{name: "http", events: &events}); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestRegistry_StartFailureRollsBack(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&fakeComponent{name: "http", events: &events})
	_ = r.Register(&fakeComponent{name: "feed", events: &events, startErr: errors.New("boom")})

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected start error")
	}
	last := events[len(events)-1]
	if last != "stop:http" {
		t.Errorf("expected started component to be stopped, events %v", events)
	}
}

func TestRegistry_HealthAndGet(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&fakeComponent{name: "http", events: &events})
	if got := r.HealthAll(context.Background()); len(got) != 1 || got[0].Status != StatusHealthy {
		t.Errorf("unexpected health %v", got)
	}
	if r.Get("http") == nil || r.Get("missing") != nil {
		t.Error("unexpected Get result")
	}
}

func TestRegistry_All(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&fakeComponent{name: "http", events: &events})
	_ = r.Register(&fakeComponent{name: "feed", events: &events})

	all := r.All()
	if len(all) != 2 || all[0].Name() != "http" || all[1].Name() != "feed" {
		t.Errorf("unexpected components %v", all)
	}
}
