package folio

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebuildDebouncerCoalesces(t *testing.T) {
	req, trigger := setupRebuildDebouncer(20 * time.Millisecond)
	for i := 0; i < 5; i++ {
		trigger()
	}

	select {
	case <-req:
	case <-time.After(2 * time.Second):
		t.Fatal("no rebuild requested")
	}
	select {
	case <-req:
		t.Fatal("burst produced more than one rebuild")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatchRebuildsOnContentChange(t *testing.T) {
	f := newFixture(t)
	f.post(t, "hello.md", helloPost)
	f.item(t, "site.md", codingItem)
	site := f.site()

	var rebuilds atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- site.Watch(ctx, 20*time.Millisecond, func(context.Context) { rebuilds.Add(1) })
	}()

	// Give the watcher time to register its directories.
	time.Sleep(100 * time.Millisecond)
	f.post(t, "second.md", "---\nid: second\ntitle: Second\ndate: 2024-01-01\ncategory: casual\n---\n")

	assert.Eventually(t, func() bool { return rebuilds.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}
