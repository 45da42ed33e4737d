package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bazaarline/importer/internal/core/domain"
	"github.com/bazaarline/importer/internal/core/port"
	"github.com/bazaarline/importer/internal/parse"
	"github.com/bazaarline/importer/pkg/retry"
)

var _ port.MessageImporter = (*ImportService)(nil)
var _ port.RowImporter = (*ImportService)(nil)
var _ port.BatchImporter = (*ImportService)(nil)

type Opt func(*ImportService)

// WithMessageIdentity replaces the identity heuristic for the message
// path. The default matches on exact name equality.
func WithMessageIdentity(r port.IdentityResolver) Opt {
	return func(s *ImportService) { s.msgIdentity = r }
}

// WithRowIdentity replaces the identity heuristic for the batch path.
// The default matches on name, then on slug.
func WithRowIdentity(r port.IdentityResolver) Opt {
	return func(s *ImportService) { s.rowIdentity = r }
}

type ImportService struct {
	catalog     port.ProductCatalog
	runs        port.ImportRuns
	producer    port.ProductEventProducer
	msgIdentity port.IdentityResolver
	rowIdentity port.IdentityResolver
	progress    *ProgressTracker
}

// New wires the import service. The producer may be nil, in which
// case no events are emitted.
func New(
	catalog port.ProductCatalog,
	runs port.ImportRuns,
	producer port.ProductEventProducer,
	opts ...Opt,
) *ImportService {
	s := &ImportService{
		catalog:     catalog,
		runs:        runs,
		producer:    producer,
		msgIdentity: NameIdentity{catalog},
		rowIdentity: NameOrSlugIdentity{catalog},
		progress:    NewProgressTracker(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ImportMessage parses one transport message and upserts the result.
// Messages no strategy matches yield [domain.ErrNoProductData];
// extractions without a usable name and price yield
// [domain.ErrIncomplete]. Neither touches the catalog.
func (s *ImportService) ImportMessage(
	ctx context.Context, msg domain.RawMessage,
) (domain.ImportOutcome, error) {
	const op = "ImportService.ImportMessage"

	if err := ctx.Err(); err != nil {
		return domain.ImportOutcome{}, fmt.Errorf("%s: %w", op, err)
	}

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	if strings.TrimSpace(text) == "" {
		return domain.ImportOutcome{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyMessage)
	}

	res, ok := parse.Message(text)
	if !ok {
		return domain.ImportOutcome{}, fmt.Errorf("%s: %w", op, domain.ErrNoProductData)
	}

	p := buildProduct(res, text, msg.PhotoURL)
	if !p.Valid() {
		return domain.ImportOutcome{}, fmt.Errorf("%s: %w", op, domain.ErrIncomplete)
	}

	outcome, err := s.resolve(ctx, p, s.msgIdentity, false)
	if err != nil {
		return domain.ImportOutcome{}, fmt.Errorf("%s: %w", op, err)
	}

	s.emitEvent(ctx, outcome)
	return outcome, nil
}

func buildProduct(res parse.Result, text, photoURL string) domain.ExtractedProduct {
	category := res.Category
	if category == "" {
		category = parse.DefaultCategory
	}
	return domain.ExtractedProduct{
		Name:        res.Name,
		Description: res.Description,
		Price:       res.Price,
		Currency:    res.Currency,
		Category:    category,
		Stock:       parse.Stock(parse.Normalize(text)),
		ImageURL:    photoURL,
		Slug:        parse.Slugify(res.Name),
		IsActive:    true,
	}
}

// resolve applies the dedup policy: an identity match is updated in
// place, anything else is inserted under a collision-free slug. When
// refreshSlug is set (batch path) an updated product also takes its
// newly derived slug if that slug is still free; the message path
// always preserves the stored slug so existing links keep working.
func (s *ImportService) resolve(
	ctx context.Context,
	p domain.ExtractedProduct,
	ident port.IdentityResolver,
	refreshSlug bool,
) (domain.ImportOutcome, error) {
	const op = "ImportService.resolve"

	existing, found, err := ident.FindExisting(ctx, p)
	if err != nil {
		return domain.ImportOutcome{}, fmt.Errorf("%s: %w", op, err)
	}

	if found {
		newSlug := p.Slug
		p.Slug = existing.Slug
		if err := s.catalog.UpdateProduct(ctx, existing.ID, p); err != nil {
			return domain.ImportOutcome{}, fmt.Errorf("%s: %w", op, err)
		}
		if refreshSlug && newSlug != existing.Slug {
			taken, err := s.catalog.SlugTaken(ctx, newSlug)
			if err == nil && !taken {
				if err := s.catalog.UpdateProductSlug(ctx, existing.ID, newSlug); err == nil {
					p.Slug = newSlug
				}
			}
		}
		return domain.ImportOutcome{
			Action: domain.ActionUpdated, ProductID: existing.ID, Product: p,
		}, nil
	}

	slug, err := s.uniqueSlug(ctx, p.Slug)
	if err != nil {
		return domain.ImportOutcome{}, fmt.Errorf("%s: %w", op, err)
	}
	p.Slug = slug

	id, err := s.catalog.CreateProduct(ctx, p)
	if err != nil {
		return domain.ImportOutcome{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.ImportOutcome{
		Action: domain.ActionCreated, ProductID: id, Product: p,
	}, nil
}

// uniqueSlug probes the catalog for the candidate slug and appends an
// incrementing suffix until a free one is found.
func (s *ImportService) uniqueSlug(ctx context.Context, base string) (string, error) {
	slug := base
	for i := 1; ; i++ {
		taken, err := s.catalog.SlugTaken(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *ImportService) emitEvent(ctx context.Context, o domain.ImportOutcome) {
	const op = "ImportService.emitEvent"

	if s.producer == nil {
		return
	}

	ev := domain.ProductEvent{
		ProductID: o.ProductID,
		Name:      o.Product.Name,
		Slug:      o.Product.Slug,
		Category:  o.Product.Category,
		Price:     o.Product.Price,
		Currency:  o.Product.Currency,
		Stock:     o.Product.Stock,
		Action:    o.Action,
	}

	cfg := retry.Config{
		MaxAttempts: 3,
		Backoff:     retry.ExponentialBackoff(100 * time.Millisecond),
	}
	err := retry.Do(ctx, cfg, func() error {
		return s.producer.ProduceImported(ctx, ev)
	})
	if err != nil {
		slog.Error("failed to produce import event",
			"op", op, "slug", ev.Slug, "err", err)
	}
}
