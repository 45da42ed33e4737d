package kafka

import (
	"testing"

	"github.com/lovoo/goka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCountsGroupGraph(t *testing.T) {
	var p CategoryCountsProcessor
	p.opPrefix = "CategoryCountsProcessor"

	gg := p.groupGraph("imported-products", "category-counts", nil)

	require.Len(t, gg.InputStreams(), 1)
	assert.Equal(t, "imported-products", gg.InputStreams()[0].Topic())

	loop := gg.LoopStream()
	require.NotNil(t, loop, "rekeyed counts must travel over a loop edge")
	assert.Equal(t, "category-counts-loop", loop.Topic())

	table := gg.GroupTable()
	require.NotNil(t, table)
	assert.Equal(t, string(goka.GroupTable("category-counts")), table.Topic())
}

func TestCountValueCodec(t *testing.T) {
	codec := countValueCodec{}

	t.Run("RoundTrip", func(t *testing.T) {
		data, err := codec.Encode(countValue(42))
		require.NoError(t, err)
		assert.Equal(t, "42", string(data))

		v, err := codec.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, countValue(42), v)
	})

	t.Run("RejectsForeignType", func(t *testing.T) {
		_, err := codec.Encode("42")
		require.ErrorIs(t, err, ErrInvalidValueType)
	})

	t.Run("RejectsGarbage", func(t *testing.T) {
		_, err := codec.Decode([]byte("not a number"))
		require.Error(t, err)
	})
}
