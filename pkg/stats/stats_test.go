package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImporter(t *testing.T) {
	t.Run("ZeroValue", func(t *testing.T) {
		s := NewImporter()
		snap := s.Snapshot()

		assert.Zero(t, snap.Processed)
		assert.Zero(t, snap.Imported)
		assert.Zero(t, snap.Errors)
		assert.True(t, snap.LastActivity.IsZero())
	})

	t.Run("CountersAndActivity", func(t *testing.T) {
		s := NewImporter()

		s.MessageProcessed()
		s.MessageProcessed()
		s.MessageForwarded()
		s.ProductImported()
		s.Error()

		snap := s.Snapshot()
		assert.Equal(t, int64(2), snap.Processed)
		assert.Equal(t, int64(1), snap.Forwarded)
		assert.Equal(t, int64(1), snap.Imported)
		assert.Equal(t, int64(1), snap.Errors)
		require.False(t, snap.LastActivity.IsZero())
	})

	t.Run("ConcurrentUse", func(t *testing.T) {
		s := NewImporter()

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.MessageProcessed()
				s.ProductImported()
			}()
		}
		wg.Wait()

		snap := s.Snapshot()
		assert.Equal(t, int64(50), snap.Processed)
		assert.Equal(t, int64(50), snap.Imported)
	})
}
