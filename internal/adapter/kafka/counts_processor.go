package kafka

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/lovoo/goka"

	"github.com/bazaarline/importer/internal/core/port"
	"github.com/bazaarline/importer/pkg/schema"
)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// An importedEventCodec used for serde [schema.ImportedProductV1]
type importedEventCodec struct {
	serde Serde
}

func newImportedEventCodec(s Serde) importedEventCodec {
	return importedEventCodec{s}
}

func (c importedEventCodec) Encode(v any) ([]byte, error) {
	const op = "importedEventCodec.Encode"
	if _, ok := v.(schema.ImportedProductV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c importedEventCodec) Decode(data []byte) (any, error) {
	const op = "importedEventCodec.Decode"
	var s schema.ImportedProductV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A countValue is the running import count for one category.
type countValue int64

// A countValueCodec used for serde [countValue]
type countValueCodec struct{}

func (countValueCodec) Encode(v any) ([]byte, error) {
	const op = "countValueCodec.Encode"
	cv, ok := v.(countValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return strconv.AppendInt([]byte(nil), int64(cv), 10), nil
}

func (countValueCodec) Decode(data []byte) (any, error) {
	const op = "countValueCodec.Decode"
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return countValue(n), nil
}

var _ port.CategoryCountsProcessor = (*CategoryCountsProcessor)(nil)

// A CategoryCountsProcessor counts imports per category. Input
// records are keyed by slug, so each event is looped back under its
// category key before the group table is incremented.
type CategoryCountsProcessor struct {
	opPrefix string
	proc     processor
}

func NewCategoryCountsProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	importedSerde Serde,
) (*CategoryCountsProcessor, error) {
	const op = "NewCategoryCountsProc"

	var p CategoryCountsProcessor
	p.opPrefix = "CategoryCountsProcessor"

	gg := p.groupGraph(inputStream, groupTable, importedSerde)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}
	return &p, nil
}

func (p *CategoryCountsProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *CategoryCountsProcessor) Close() {
	p.proc.close()
}

// groupGraph wires input events through a loop edge so the group
// table is keyed by category, not by the input's slug key.
func (p *CategoryCountsProcessor) groupGraph(
	inputStream, groupTable string, importedSerde Serde,
) *goka.GroupGraph {
	return goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newImportedEventCodec(importedSerde),
			p.rekeyFn,
		),
		goka.Loop(countValueCodec{}, p.countFn),
		goka.Persist(countValueCodec{}),
	)
}

func (p *CategoryCountsProcessor) rekeyFn(ctx goka.Context, msg any) {
	event, _ := msg.(schema.ImportedProductV1)
	ctx.Loopback(event.Category, countValue(1))
}

func (p *CategoryCountsProcessor) countFn(ctx goka.Context, msg any) {
	const op = "countFn"

	inc, _ := msg.(countValue)
	total := inc
	if v := ctx.Value(); v != nil {
		total += v.(countValue)
	}
	ctx.SetValue(total)

	slog.Info("category counted",
		"op", makeOp(p.opPrefix, op),
		"category", ctx.Key(), "count", int64(total))
}
