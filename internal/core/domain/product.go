package domain

import "time"

const (
	CurrencyIRT = "IRT"
	CurrencyUSD = "USD"
)

type (
	// RawMessage is one inbound message as handed over by the
	// transport: free text, a photo caption, or both. Never persisted.
	RawMessage struct {
		Text     string
		Caption  string
		PhotoURL string
	}

	// ExtractedProduct is the parser's output, alive only for the
	// duration of a single import operation. It is valid for
	// persistence iff Name is non-empty and Price is positive.
	ExtractedProduct struct {
		Name        string
		Description string
		Price       int
		Currency    string
		Category    string
		Stock       int
		SKU         string
		ImageURL    string
		Slug        string
		IsActive    bool
	}

	// CatalogProduct is the persisted catalog entity, keyed by its
	// unique slug.
	CatalogProduct struct {
		ID          int64
		Name        string
		Slug        string
		Description string
		Price       int
		Currency    string
		Category    string
		ImageURL    string
		Stock       int
		SKU         string
		IsActive    bool
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}
)

// Valid reports whether the extraction is complete enough to persist.
func (p ExtractedProduct) Valid() bool {
	return p.Name != "" && p.Price > 0
}

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// ImportOutcome describes one successfully persisted import.
type ImportOutcome struct {
	Action    Action
	ProductID int64
	Product   ExtractedProduct
}

// ProductEvent is emitted after each successful upsert.
type ProductEvent struct {
	ProductID int64
	Name      string
	Slug      string
	Category  string
	Price     int
	Currency  string
	Stock     int
	Action    Action
}

// ImportRow is one string-keyed record of a batch-import file.
type ImportRow map[string]string

const (
	RunStatusProcessing = "processing"
	RunStatusCompleted  = "completed"
	RunStatusFailed     = "failed"
)

// ImportRun is one bulk-import attempt and its aggregate counts.
type ImportRun struct {
	ID           string
	Filename     string
	FileSize     int64
	Status       string
	SuccessCount int
	ErrorCount   int
	ErrorMessage string
	CreatedAt    time.Time
	CompletedAt  time.Time
}

// BatchProgress is the live state of a running batch import.
type BatchProgress struct {
	Status       string
	Total        int
	Processed    int
	Progress     int
	SuccessCount int
	ErrorCount   int
	Errors       []string
	CreatedAt    time.Time
}
