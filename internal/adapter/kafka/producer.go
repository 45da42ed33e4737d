package kafka

import (
	"context"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/bazaarline/importer/internal/core/domain"
	"github.com/bazaarline/importer/internal/core/port"
)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(ctx context.Context, rs ...*kgo.Record) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

var _ port.ProductEventProducer = ImportedProductsProducer{}

// An ImportedProductsProducer publishes one record per catalog
// upsert, keyed by slug so consumers see updates for the same product
// in order.
type ImportedProductsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewImportedProductsProducer(
	opts ...ProducerOpt,
) (ImportedProductsProducer, error) {
	const op = "NewImportedProductsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ImportedProductsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "ImportedProductsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return ImportedProductsProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p ImportedProductsProducer) Close() {
	p.producer.close()
}

func (p ImportedProductsProducer) ProduceImported(
	ctx context.Context, v domain.ProductEvent,
) error {
	const op = "ProduceImported"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(v)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, &r); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p ImportedProductsProducer) createRecord(
	v domain.ProductEvent,
) (kgo.Record, error) {
	const op = "createRecord"

	s := eventToSchemaV1(v)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return kgo.Record{}, opErr(err, p.opPrefix, op)
	}
	return kgo.Record{Key: []byte(s.Slug), Value: b}, nil
}
