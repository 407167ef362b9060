package recent

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_BoundedMostRecentFirst(t *testing.T) {
	t.Parallel()

	tr := NewTracker(5)
	for _, w := range []string{"one", "two", "three", "four", "five", "six"} {
		tr.Push(w)
	}

	assert.Equal(t, []string{"six", "five", "four", "three", "two"}, tr.List())
}

func TestTracker_DuplicateMovesToFront(t *testing.T) {
	t.Parallel()

	tr := NewTracker(5)
	for _, w := range []string{"one", "two", "three"} {
		tr.Push(w)
	}
	tr.Push("ONE")

	assert.Equal(t, []string{"ONE", "three", "two"}, tr.List())
}

func TestTracker_DuplicateAtCapacityDoesNotGrow(t *testing.T) {
	t.Parallel()

	tr := NewTracker(5)
	for _, w := range []string{"a1", "a2", "a3", "a4", "a5"} {
		tr.Push(w)
	}
	tr.Push("a2")

	assert.Equal(t, []string{"a2", "a5", "a4", "a3", "a1"}, tr.List())
}

func TestTracker_Remove(t *testing.T) {
	t.Parallel()

	tr := NewTracker(5)
	tr.Push("dog")
	tr.Push("cat")

	assert.True(t, tr.Remove("DOG"))
	assert.False(t, tr.Remove("dog"))
	assert.Equal(t, []string{"cat"}, tr.List())
}

func TestTracker_IgnoresBlank(t *testing.T) {
	t.Parallel()

	tr := NewTracker(0)
	tr.Push("  ")
	assert.Empty(t, tr.List())
	assert.Equal(t, DefaultCapacity, tr.capacity)
}

func TestTracker_ListIsACopy(t *testing.T) {
	t.Parallel()

	tr := NewTracker(5)
	tr.Push("dog")
	list := tr.List()
	list[0] = "mutated"

	assert.Equal(t, []string{"dog"}, tr.List())
}

func TestTracker_Subscribe(t *testing.T) {
	t.Parallel()

	tr := NewTracker(5)
	tr.Push("dog")

	ch, cancel := tr.Subscribe()
	defer cancel()

	require.Equal(t, []string{"dog"}, receive(t, ch))

	tr.Push("cat")
	assert.Equal(t, []string{"cat", "dog"}, receive(t, ch))

	tr.Remove("dog")
	assert.Equal(t, []string{"cat"}, receive(t, ch))
}

func TestTracker_SlowSubscriberSeesLatest(t *testing.T) {
	t.Parallel()

	tr := NewTracker(5)
	ch, cancel := tr.Subscribe()
	defer cancel()

	tr.Push("a")
	tr.Push("b")
	tr.Push("c")

	assert.Equal(t, []string{"c", "b", "a"}, receive(t, ch))
}

func TestTracker_CancelClosesChannel(t *testing.T) {
	t.Parallel()

	tr := NewTracker(5)
	ch, cancel := tr.Subscribe()
	<-ch
	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	tr.Push("after-cancel")
	assert.Equal(t, []string{"after-cancel"}, tr.List())
}

func TestTracker_ConcurrentPush(t *testing.T) {
	t.Parallel()

	tr := NewTracker(5)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Push(fmt.Sprintf("w%d", i))
		}()
	}
	wg.Wait()

	assert.Len(t, tr.List(), 5)
}

func receive(t *testing.T, ch <-chan []string) []string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}
