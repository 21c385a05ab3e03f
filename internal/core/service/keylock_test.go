package service

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	l := newKeyLock()

	var inside int32
	var maxInside int32
	wg := sync.WaitGroup{}

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("buyer/session")
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			if n > atomic.LoadInt32(&maxInside) {
				atomic.StoreInt32(&maxInside, n)
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Empty(t, l.locks)
}

func TestKeyLock_IndependentKeys(t *testing.T) {
	l := newKeyLock()

	unlockA := l.Lock("a")
	done := make(chan struct{})
	go func() {
		unlockB := l.Lock("b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b waited for a")
	}
	unlockA()
}
