package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesSameKey(t *testing.T) {
	var g SingleFlight[int]
	var calls int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			got, err, _ := g.Do("20240811", func() (int, error) {
				atomic.AddInt32(&calls, 1)
				time.Sleep(20 * time.Millisecond)
				return 7, nil
			})
			if err != nil || got != 7 {
				t.Errorf("unexpected result %d, %v", got, err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_DistinctKeysRunSeparately(t *testing.T) {
	var g SingleFlight[string]

	a, _, sharedA := g.Do("a", func() (string, error) { return "a", nil })
	b, _, sharedB := g.Do("b", func() (string, error) { return "b", nil })
	if a != "a" || b != "b" || sharedA || sharedB {
		t.Fatalf("unexpected results a=%q b=%q sharedA=%v sharedB=%v", a, b, sharedA, sharedB)
	}
}
