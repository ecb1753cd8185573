package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func generateRandomInteger(min int, max int) int {

	return min + rand.Intn(max-min)
}

func TestPriorityQueue(t *testing.T) {
	pq := NewMinHeap[string]()
	if pq == nil {
		t.Errorf("PriorityQueue is nil")
	}

	for i := 0; i < 10000; i++ {
		item := NewPriorityQueueNode(int64(generateRandomInteger(0, 10000)), "CGK")
		pq.Insert(item)
	}

	prevItem, ok := pq.ExtractMin()
	if !ok {
		t.Errorf("Error extract min")
	}

	for i := 1; i < 10000; i++ {
		item, ok := pq.ExtractMin()
		if !ok {
			t.Errorf("Error extract min")
		}

		if prevItem.Rank > item.Rank {
			t.Errorf("PriorityQueue is not sorted")
		}
		prevItem = item
	}

	assert.Equal(t, 0, pq.Size())
}

func TestPriorityQueueEmpty(t *testing.T) {
	pq := NewMinHeap[string]()

	_, ok := pq.ExtractMin()
	assert.False(t, ok)

	_, ok = pq.GetMin()
	assert.False(t, ok)
}

func TestPriorityQueueDuplicateItems(t *testing.T) {
	pq := NewMinHeap[string]()
	pq.Insert(NewPriorityQueueNode[string](50, "SIN"))
	pq.Insert(NewPriorityQueueNode[string](20, "SIN"))
	pq.Insert(NewPriorityQueueNode[string](30, "KUL"))

	minItem, ok := pq.GetMin()
	assert.True(t, ok)
	assert.Equal(t, int64(20), minItem.Rank)

	first, _ := pq.ExtractMin()
	second, _ := pq.ExtractMin()
	third, _ := pq.ExtractMin()
	assert.Equal(t, "SIN", first.Item)
	assert.Equal(t, "KUL", second.Item)
	assert.Equal(t, int64(50), third.Rank)
}
