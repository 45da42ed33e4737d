package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bazaarline/importer/internal/core/domain"
	"github.com/bazaarline/importer/internal/parse"
)

// headerRowOffset maps a zero-based data index to the row number the
// uploader sees in a spreadsheet with a header row.
const headerRowOffset = 2

const maxStoredErrors = 5

// ImportRow validates and upserts a single batch-file row.
func (s *ImportService) ImportRow(
	ctx context.Context, row domain.ImportRow,
) (domain.ImportOutcome, error) {
	const op = "ImportService.ImportRow"

	if msg := validateRow(row); msg != "" {
		return domain.ImportOutcome{}, fmt.Errorf("%s: %s", op, msg)
	}

	p := extractRow(row)
	outcome, err := s.resolve(ctx, p, s.rowIdentity, true)
	if err != nil {
		return domain.ImportOutcome{}, fmt.Errorf("%s: %w", op, err)
	}

	s.emitEvent(ctx, outcome)
	return outcome, nil
}

// validateRow returns the row's validation problems as one
// user-facing string, empty when the row is clean.
func validateRow(row domain.ImportRow) string {
	var problems []string

	for _, field := range []string{"name", "price"} {
		if strings.TrimSpace(row[field]) == "" {
			problems = append(problems, fmt.Sprintf("فیلد %s الزامی است", field))
		}
	}

	if raw := strings.TrimSpace(row["price"]); raw != "" {
		price, err := parsePrice(raw)
		switch {
		case err != nil:
			problems = append(problems, "فرمت قیمت صحیح نیست")
		case price < 0:
			problems = append(problems, "قیمت نمی‌تواند منفی باشد")
		case price == 0:
			problems = append(problems, "قیمت باید بزرگ‌تر از صفر باشد")
		}
	}

	if raw := strings.TrimSpace(row["stock"]); raw != "" {
		stock, err := strconv.Atoi(parse.Normalize(raw))
		if err != nil {
			problems = append(problems, "فرمت موجودی صحیح نیست")
		} else if stock < 0 {
			problems = append(problems, "موجودی نمی‌تواند منفی باشد")
		}
	}

	if raw := strings.TrimSpace(row["image_url"]); raw != "" {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, "آدرس تصویر معتبر نیست")
		}
	}

	if len(problems) == 0 {
		return ""
	}
	return strings.Join(problems, "; ")
}

func parsePrice(raw string) (int, error) {
	cleaned := strings.NewReplacer(",", "", "،", "").Replace(parse.Normalize(raw))
	f, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// extractRow builds a product from a validated row. Unlike the
// message path, absent stock means zero, not a display default.
func extractRow(row domain.ImportRow) domain.ExtractedProduct {
	name := strings.TrimSpace(row["name"])
	price, _ := parsePrice(row["price"])

	stock := 0
	if raw := strings.TrimSpace(row["stock"]); raw != "" {
		stock, _ = strconv.Atoi(parse.Normalize(raw))
	}

	category := strings.TrimSpace(row["category"])
	if category == "" {
		category = parse.DefaultCategory
	}

	active := true
	if raw := strings.TrimSpace(row["is_active"]); raw != "" {
		active = parseBool(raw)
	}

	slug := strings.TrimSpace(row["slug"])
	if slug == "" {
		slug = parse.Slugify(name)
	}

	return domain.ExtractedProduct{
		Name:        name,
		Description: strings.TrimSpace(row["description"]),
		Price:       price,
		Currency:    parse.CurrencyIRT,
		Category:    category,
		Stock:       stock,
		SKU:         strings.TrimSpace(row["sku"]),
		ImageURL:    strings.TrimSpace(row["image_url"]),
		Slug:        slug,
		IsActive:    active,
	}
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "فعال", "بله":
		return true
	default:
		return false
	}
}

// StartBatch registers an import run and processes the rows on a
// background goroutine. The returned run ID can be polled through
// BatchProgress and Run.
func (s *ImportService) StartBatch(
	ctx context.Context, filename string, fileSize int64, rows []domain.ImportRow,
) (string, error) {
	const op = "ImportService.StartBatch"

	runID := uuid.NewString()
	run := domain.ImportRun{
		ID:        runID,
		Filename:  filename,
		FileSize:  fileSize,
		Status:    domain.RunStatusProcessing,
		CreatedAt: time.Now(),
	}
	if err := s.runs.CreateRun(ctx, run); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.progress.Start(runID, len(rows))

	// Detached from the request context: an aborted upload poll must
	// not cancel a half-finished batch.
	go s.runBatch(context.WithoutCancel(ctx), runID, rows)

	return runID, nil
}

func (s *ImportService) runBatch(ctx context.Context, runID string, rows []domain.ImportRow) {
	const op = "ImportService.runBatch"

	var success, failed int
	var rowErrors []string

	for i, row := range rows {
		rowNum := i + headerRowOffset

		if msg := validateRow(row); msg != "" {
			failed++
			errMsg := fmt.Sprintf("سطر %d: %s", rowNum, msg)
			rowErrors = append(rowErrors, errMsg)
			s.progress.Step(runID, errMsg)
			continue
		}

		p := extractRow(row)
		outcome, err := s.resolve(ctx, p, s.rowIdentity, true)
		if err != nil {
			failed++
			errMsg := fmt.Sprintf("سطر %d: %s", rowNum, err.Error())
			rowErrors = append(rowErrors, errMsg)
			s.progress.Step(runID, errMsg)
			slog.Error("batch row failed", "op", op, "run_id", runID, "row", rowNum, "err", err)
			continue
		}

		success++
		s.progress.Step(runID, "")
		s.emitEvent(ctx, outcome)
	}

	status := domain.RunStatusCompleted
	if success == 0 && failed > 0 {
		status = domain.RunStatusFailed
	}

	if len(rowErrors) > maxStoredErrors {
		rowErrors = rowErrors[:maxStoredErrors]
	}

	run := domain.ImportRun{
		ID:           runID,
		Status:       status,
		SuccessCount: success,
		ErrorCount:   failed,
		ErrorMessage: strings.Join(rowErrors, "\n"),
		CompletedAt:  time.Now(),
	}
	if err := s.runs.FinishRun(ctx, run); err != nil {
		slog.Error("failed to finalize import run", "op", op, "run_id", runID, "err", err)
	}

	s.progress.Finish(runID, status)
	slog.Info("batch import finished",
		"op", op, "run_id", runID, "status", status,
		"success", success, "failed", failed)
}

// BatchProgress reports live progress for a running batch. Entries
// do not survive a restart; callers should fall back to Run.
func (s *ImportService) BatchProgress(runID string) (domain.BatchProgress, bool) {
	return s.progress.Get(runID)
}

// Run loads the stored state of one import run.
func (s *ImportService) Run(ctx context.Context, runID string) (domain.ImportRun, error) {
	const op = "ImportService.Run"

	run, err := s.runs.RunByID(ctx, runID)
	if err != nil {
		return domain.ImportRun{}, fmt.Errorf("%s: %w", op, err)
	}
	return run, nil
}

// RunHistory pages through finished and running imports, newest
// first, and reports the total run count.
func (s *ImportService) RunHistory(
	ctx context.Context, limit, offset int,
) ([]domain.ImportRun, int, error) {
	const op = "ImportService.RunHistory"

	runs, total, err := s.runs.Runs(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return runs, total, nil
}
