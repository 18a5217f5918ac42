package events

import (
	"testing"
	"time"

	"github.com/ExploreAritra/format-flex/internal/progress"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := New()
	defer bus.Close()

	received := make(chan ProgressEvent, 1)
	unsub := bus.Subscribe(func(e ProgressEvent) {
		received <- e
	})
	defer unsub()

	bus.Publish(ProgressEvent{
		Attempt: 1,
		Pass:    2,
		Report:  progress.Report{Percent: 0.5, ETAMs: 30000},
		Speed:   1.8,
	})

	select {
	case got := <-received:
		if got.Pass != 2 {
			t.Errorf("Pass = %d, want 2", got.Pass)
		}
		if got.Report.Percent != 0.5 {
			t.Errorf("Percent = %v, want 0.5", got.Report.Percent)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBusMultipleSubscribers(t *testing.T) {
	bus := New()
	defer bus.Close()

	r1 := make(chan StateEvent, 1)
	r2 := make(chan StateEvent, 1)
	unsub1 := bus.Subscribe(func(e StateEvent) { r1 <- e })
	defer unsub1()
	unsub2 := bus.Subscribe(func(e StateEvent) { r2 <- e })
	defer unsub2()

	bus.Publish(StateEvent{State: "encoding", Attempt: 1})

	for i, ch := range []chan StateEvent{r1, r2} {
		select {
		case got := <-ch:
			if got.State != "encoding" {
				t.Errorf("subscriber %d: State = %q, want encoding", i+1, got.State)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("subscriber %d: timed out", i+1)
		}
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := New()
	defer bus.Close()

	received := make(chan DoneEvent, 1)
	unsub := bus.Subscribe(func(e DoneEvent) { received <- e })
	unsub()

	bus.Publish(DoneEvent{Success: true, OutputPath: "/tmp/out.mp4"})

	select {
	case <-received:
		t.Error("received event after unsubscribe")
	case <-time.After(100 * time.Millisecond):
	}
}
