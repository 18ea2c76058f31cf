package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

type recordingInvoker struct {
	mu      sync.Mutex
	err     error
	invoked []string
	done    chan struct{}
}

func (i *recordingInvoker) Invoke(_ context.Context, req ports.ScoringRequest) error {
	i.mu.Lock()
	i.invoked = append(i.invoked, req.ApplicationID)
	i.mu.Unlock()
	if i.done != nil {
		i.done <- struct{}{}
	}
	return i.err
}

func (i *recordingInvoker) count() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.invoked)
}

func TestDispatcher_InvokesEnqueuedRequests(t *testing.T) {
	inv := &recordingInvoker{done: make(chan struct{}, 3)}
	d := NewDispatcher(2, inv, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, id := range []string{"app1", "app2", "app3"} {
		d.Enqueue(ports.ScoringRequest{ApplicationID: id})
	}

	for i := 0; i < 3; i++ {
		select {
		case <-inv.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for invocation %d", i)
		}
	}
	if inv.count() != 3 {
		t.Fatalf("expected 3 invocations, got %d", inv.count())
	}
}

func TestDispatcher_SameApplicationAlwaysSameShard(t *testing.T) {
	d := NewDispatcher(8, &recordingInvoker{}, zerolog.Nop())

	first := d.shardIndex("app42")
	for i := 0; i < 100; i++ {
		if got := d.shardIndex("app42"); got != first {
			t.Fatalf("shard index not stable: got %d, want %d", got, first)
		}
	}
}

func TestDispatcher_InvocationFailureDoesNotStopWorker(t *testing.T) {
	inv := &recordingInvoker{err: errors.New("lambda throttled"), done: make(chan struct{}, 2)}
	d := NewDispatcher(1, inv, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.ScoringRequest{ApplicationID: "app1"})
	d.Enqueue(ports.ScoringRequest{ApplicationID: "app2"})

	for i := 0; i < 2; i++ {
		select {
		case <-inv.done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker stopped after a failed invocation")
		}
	}
}
