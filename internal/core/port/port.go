package port

import (
	"context"
	"sync"

	"github.com/bazaarline/importer/internal/core/domain"
	"github.com/bazaarline/importer/pkg/stats"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// MessageImporter ingests one transport message.
type MessageImporter interface {
	ImportMessage(context.Context, domain.RawMessage) (domain.ImportOutcome, error)
}

// RowImporter ingests one batch-file row.
type RowImporter interface {
	ImportRow(context.Context, domain.ImportRow) (domain.ImportOutcome, error)
}

// BatchImporter starts and observes bulk imports.
type BatchImporter interface {
	StartBatch(ctx context.Context, filename string, fileSize int64, rows []domain.ImportRow) (runID string, err error)
	BatchProgress(runID string) (domain.BatchProgress, bool)
	Run(ctx context.Context, runID string) (domain.ImportRun, error)
	RunHistory(ctx context.Context, limit, offset int) ([]domain.ImportRun, int, error)
}

// ProductCatalog is the external catalog store.
type ProductCatalog interface {
	ProductByName(context.Context, string) (domain.CatalogProduct, error)
	ProductBySlug(context.Context, string) (domain.CatalogProduct, error)
	SlugTaken(context.Context, string) (bool, error)
	CreateProduct(context.Context, domain.ExtractedProduct) (int64, error)
	UpdateProduct(ctx context.Context, id int64, p domain.ExtractedProduct) error
	UpdateProductSlug(ctx context.Context, id int64, slug string) error
}

// ImportRuns is the import-run log store.
type ImportRuns interface {
	CreateRun(context.Context, domain.ImportRun) error
	FinishRun(context.Context, domain.ImportRun) error
	RunByID(context.Context, string) (domain.ImportRun, error)
	Runs(ctx context.Context, limit, offset int) ([]domain.ImportRun, int, error)
}

// IdentityResolver decides whether an extraction refers to an already
// cataloged product. Name equality is the default heuristic; it is an
// explicit dependency so a stronger key can be swapped in.
type IdentityResolver interface {
	FindExisting(context.Context, domain.ExtractedProduct) (domain.CatalogProduct, bool, error)
}

// ProductEventProducer publishes an event per successful upsert.
type ProductEventProducer interface {
	ProduceImported(context.Context, domain.ProductEvent) error
}

// CategoryCountsProcessor maintains per-category import counters.
type CategoryCountsProcessor interface {
	runnerContextWg
	closer
}

// CategoryCounts answers how many imports a category has seen.
type CategoryCounts interface {
	Count(category string) (int64, error)
}

// StatsReader exposes the importer's runtime counters.
type StatsReader interface {
	Snapshot() stats.Snapshot
}
