package schema

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/sr"
)

var _ SchemaIdentifier = SchemaCreater{}

// SchemaCreater registers schemas in the Confluent schema registry
// and hands back their IDs.
type SchemaCreater struct {
	client *sr.Client
}

func NewSchemaCreater(urls ...string) (SchemaCreater, error) {
	const op = "NewSchemaCreater"

	client, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		return SchemaCreater{}, fmt.Errorf("%s: %w", op, err)
	}
	return SchemaCreater{client}, nil
}

// DetermineID creates the subject's schema. Registration is
// idempotent: an already known schema returns its existing ID.
func (c SchemaCreater) DetermineID(
	ctx context.Context, subject, avroSchemaText string,
) (int, error) {
	const op = "SchemaCreater.DetermineID"

	ss, err := c.client.CreateSchema(ctx, subject, sr.Schema{
		Schema: avroSchemaText,
		Type:   sr.TypeAvro,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return ss.ID, nil
}
