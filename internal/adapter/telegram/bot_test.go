package telegram

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bazaarline/importer/internal/core/domain"
)

func TestFormatThousands(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{500, "500"},
		{25000, "25,000"},
		{1250000, "1,250,000"},
		{-45000, "-45,000"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, formatThousands(tc.in))
	}
}

func TestRejectionReply(t *testing.T) {
	t.Run("EmptyMessage", func(t *testing.T) {
		err := fmt.Errorf("op: %w", domain.ErrEmptyMessage)
		assert.Equal(t, replyEmpty, rejectionReply(err))
	})

	t.Run("NoProductData", func(t *testing.T) {
		err := fmt.Errorf("op: %w", domain.ErrNoProductData)
		assert.Equal(t, replyNoData, rejectionReply(err))
	})

	t.Run("Incomplete", func(t *testing.T) {
		err := fmt.Errorf("op: %w", domain.ErrIncomplete)
		assert.Equal(t, replyIncomplete, rejectionReply(err))
	})

	t.Run("StorageFailure", func(t *testing.T) {
		assert.Equal(t, replyStoreFailed, rejectionReply(fmt.Errorf("db down")))
	})
}

func TestSuccessReply(t *testing.T) {
	msg := successReply(domain.ImportOutcome{
		Action:    domain.ActionCreated,
		ProductID: 5,
		Product: domain.ExtractedProduct{
			Name:     "کیف دستی رزگلد",
			Price:    1250000,
			Category: "مد و پوشاک",
			Stock:    3,
		},
	})

	assert.Contains(t, msg, "کیف دستی رزگلد")
	assert.Contains(t, msg, "1,250,000 تومان")
	assert.Contains(t, msg, "مد و پوشاک")
	assert.Contains(t, msg, "3 عدد")
}
