package ratelimiter

import (
	"sync"
	"testing"
	"time"
)

func TestFixedDelay_FirstCallDoesNotWait(t *testing.T) {
	t.Parallel()

	fd := NewFixedDelay(200 * time.Millisecond)

	start := time.Now()
	fd.WaitIfNeeded()
	elapsed := time.Since(start)

	if elapsed > 50*time.Millisecond {
		t.Errorf("first call should not wait, took %v", elapsed)
	}
}

func TestFixedDelay_SecondCallWaits(t *testing.T) {
	t.Parallel()

	fd := NewFixedDelay(100 * time.Millisecond)

	fd.WaitIfNeeded()
	start := time.Now()
	fd.WaitIfNeeded()
	elapsed := time.Since(start)

	if elapsed < 80*time.Millisecond {
		t.Errorf("second call should wait close to the interval, took %v", elapsed)
	}
}

func TestFixedDelay_ConcurrentCallers(t *testing.T) {
	t.Parallel()

	// 重なったcron発火を模して複数goroutineから同時に呼ぶ
	fd := NewFixedDelay(time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 3; j++ {
				fd.WaitIfNeeded()
			}
		}()
	}
	wg.Wait()
}

func TestFixedDelay_ZeroIntervalNeverWaits(t *testing.T) {
	t.Parallel()

	fd := NewFixedDelay(0)

	start := time.Now()
	for i := 0; i < 5; i++ {
		fd.WaitIfNeeded()
	}
	elapsed := time.Since(start)

	if elapsed > 50*time.Millisecond {
		t.Errorf("zero interval should never wait, took %v", elapsed)
	}
}
