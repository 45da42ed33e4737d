package schema_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bazaarline/importer/pkg/schema"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeImportedProductV1(t *testing.T) {

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeImportedProductV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeImportedProductV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("IdentifierAndSubjectOpts", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "imported-products-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.ImportedProductSchemaTextV1,
		).Return(schemaID, nil)

		_, err := schema.NewSerdeImportedProductV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "imported-products-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.ImportedProductSchemaTextV1,
		).Return(schemaID, nil)

		serde, err := schema.NewSerdeImportedProductV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		value := schema.ImportedProductV1{
			ProductID: 7,
			Name:      "هدفون بی سیم",
			Slug:      "هدفون-بی-سیم",
			Category:  "لوازم جانبی",
			Price:     750000,
			Currency:  "IRT",
			Stock:     10,
			Action:    "updated",
		}

		data, err := serde.Encode(value)
		require.NoError(t, err)

		var decoded schema.ImportedProductV1
		require.NoError(t, serde.Decode(data, &decoded))
		assert.Equal(t, value, decoded)
	})
}
