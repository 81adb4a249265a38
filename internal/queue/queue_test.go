package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue(t *testing.T) {
	assert := assert.New(t)

	t.Run("Empty Queue", func(t *testing.T) {
		q := New[string](1)

		assert.True(q.IsEmpty())
		assert.Equal(0, q.Length())
		_, ok := q.Dequeue()
		assert.False(ok)
		_, ok = q.Peek()
		assert.False(ok)
	})

	t.Run("Enqueue and Dequeue", func(t *testing.T) {
		q := New[string](1)

		q.Enqueue("RI")
		assert.False(q.IsEmpty())
		assert.Equal(1, q.Length())

		q.Enqueue("1")
		assert.Equal(2, q.Length())

		item, ok := q.Dequeue()
		assert.True(ok)
		assert.Equal("RI", item)
		assert.Equal(1, q.Length())

		item, ok = q.Dequeue()
		assert.True(ok)
		assert.Equal("1", item)
		assert.True(q.IsEmpty())

		_, ok = q.Dequeue()
		assert.False(ok)
	})

	t.Run("Peek", func(t *testing.T) {
		q := New[int](1)
		q.Enqueue(11)
		q.Enqueue(18)

		item, ok := q.Peek()
		assert.True(ok)
		assert.Equal(11, item)
		assert.Equal(2, q.Length()) // Length should not change after peek
	})

	t.Run("Reset", func(t *testing.T) {
		q := New[int](4)
		for i := range 4 {
			q.Enqueue(i)
		}
		_, _ = q.Dequeue()
		q.Reset()

		assert.True(q.IsEmpty())
		q.Enqueue(42)
		item, ok := q.Dequeue()
		assert.True(ok)
		assert.Equal(42, item)
	})

	t.Run("Interleaved", func(t *testing.T) {
		q := New[int](2)
		q.Enqueue(1)
		q.Enqueue(2)
		first, _ := q.Dequeue()
		q.Enqueue(3)
		second, _ := q.Dequeue()
		third, _ := q.Dequeue()

		assert.Equal([]int{1, 2, 3}, []int{first, second, third})
		assert.True(q.IsEmpty())
	})
}
