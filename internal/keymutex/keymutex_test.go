package keymutex

import (
	"sync"
	"testing"
)

func TestSerializesSameKey(t *testing.T) {
	t.Parallel()

	km := New()
	const workers = 50

	var counter int
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			km.Lock("k")
			counter++
			km.Unlock("k")
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("counter = %d, want %d", counter, workers)
	}
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	t.Parallel()

	km := New()
	km.Lock("a")
	defer km.Unlock("a")

	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()
	<-done
}

func TestEntriesAreReleased(t *testing.T) {
	t.Parallel()

	km := New()
	km.Lock("k")
	km.Unlock("k")

	km.mu.Lock()
	defer km.mu.Unlock()
	if len(km.locks) != 0 {
		t.Fatalf("locks map has %d entries after unlock, want 0", len(km.locks))
	}
}

func TestUnlockUnheldKeyPanics(t *testing.T) {
	t.Parallel()

	km := New()
	defer func() {
		if recover() == nil {
			t.Fatal("unlock of unheld key did not panic")
		}
	}()
	km.Unlock("never-locked")
}
