package concurrent

import (
	"fmt"
	"testing"

	"github.com/lintang-b-s/skyroute/pkg/datastructure"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	n := 100
	workers := NewWorkerPool[SegmentJobItem, SegmentVerdict](4, n)
	for i := 0; i < n; i++ {
		from := datastructure.NewAirport(int32(i), fmt.Sprintf("A%02d", i%100), "", "", "", 0, 0)
		workers.AddJob(NewSegmentJobItem(i, from, from))
	}
	workers.Close()
	workers.Start(func(job SegmentJobItem) SegmentVerdict {
		return SegmentVerdict{PairID: job.PairID, Admissible: job.PairID%2 == 0}
	})
	workers.Wait()

	seen := make(map[int]bool)
	for v := range workers.CollectResults() {
		seen[v.PairID] = v.Admissible
	}
	assert.Len(t, seen, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, i%2 == 0, seen[i])
	}
}
