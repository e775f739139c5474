package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueSubmitDoesNotWaitForJob(t *testing.T) {
	var q Queue
	release := make(chan struct{})
	results := make(chan interface{}, 1)

	submitted := make(chan struct{})
	go func() {
		q.Submit(func() interface{} {
			<-release
			return "flushed"
		}, func(v interface{}) { results <- v })
		close(submitted)
	}()

	select {
	case <-submitted:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a running job")
	}
	select {
	case <-results:
		t.Fatal("job finished before it was released")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	select {
	case v := <-results:
		assert.Equal(t, "flushed", v)
	case <-time.After(time.Second):
		t.Fatal("job never completed")
	}
}

func TestQueueKeepsOrder(t *testing.T) {
	var q Queue
	release := make(chan struct{})
	results := make(chan interface{}, 3)
	done := func(v interface{}) { results <- v }

	q.Submit(func() interface{} { <-release; return "initialize" }, done)
	q.Submit(func() interface{} { return "flush" }, done)
	q.Submit(func() interface{} { return "teardown" }, done)
	close(release)

	var got []interface{}
	for range 3 {
		select {
		case v := <-results:
			got = append(got, v)
		case <-time.After(time.Second):
			t.Fatal("queue stalled")
		}
	}
	require.Len(t, got, 3)
	assert.Equal(t, []interface{}{"initialize", "flush", "teardown"}, got)
}

func TestQueueRestartsAfterDraining(t *testing.T) {
	var q Queue
	results := make(chan interface{}, 1)
	done := func(v interface{}) { results <- v }

	for _, want := range []string{"first", "second"} {
		q.Submit(func() interface{} { return want }, done)
		select {
		case v := <-results:
			assert.Equal(t, want, v)
		case <-time.After(time.Second):
			t.Fatal("queue did not run job")
		}
	}
}
