package metrics_test

import (
	"sync"
	"testing"

	"github.com/btormc/btormc/pkg/metrics"
)

func TestSATCollectorConcurrentUse(t *testing.T) {
	metrics.Register()
	c := metrics.NewSATCollector("gini")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddClause()
			c.CallSat()
			c.SetMaxVar(i)
		}()
	}
	wg.Wait()
}

func TestBMCCollectorSetReachedBound(t *testing.T) {
	metrics.Register()
	c := metrics.NewBMCCollector("engine-1")
	c.SetBound(3)
	c.SetReachedBound(0, 3)
	c.SetReachedBound(1, 5)
}
