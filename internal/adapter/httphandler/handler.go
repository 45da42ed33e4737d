package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bazaarline/importer/internal/adapter/batchfile"
	"github.com/bazaarline/importer/internal/core/domain"
	"github.com/bazaarline/importer/internal/core/port"
)

const (
	defaultMaxUploadBytes = 10 << 20

	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type ImportHandler struct {
	messages  port.MessageImporter
	batches   port.BatchImporter
	maxUpload int64
}

func RegisterImport(
	mux *http.ServeMux,
	messages port.MessageImporter,
	batches port.BatchImporter,
	maxUpload int64,
) {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	h := ImportHandler{messages, batches, maxUpload}
	mux.HandleFunc("POST /v1/import/products/upload", h.PostUpload)
	mux.HandleFunc("GET /v1/import/products/status/{id}", h.GetStatus)
	mux.HandleFunc("GET /v1/import/products/history", h.GetHistory)
	mux.HandleFunc("GET /v1/import/products/template", h.GetTemplate)
	mux.HandleFunc("POST /v1/import/message", h.PostMessage)
}

// PostUpload accepts a multipart product file, starts a background
// batch run and answers 202 with the run ID to poll.
func (h ImportHandler) PostUpload(w http.ResponseWriter, r *http.Request) {
	const op = "ImportHandler.PostUpload"
	log := slog.With("op", op)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		log.Warn("failed to parse multipart form", "err", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	rows, err := batchfile.Parse(header.Filename, file)
	if err != nil {
		if errors.Is(err, batchfile.ErrUnsupportedFormat) {
			writeError(w, http.StatusUnsupportedMediaType,
				"فقط فایل‌های CSV و Excel پشتیبانی می‌شوند")
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read file")
		log.Warn("failed to parse upload", "filename", header.Filename, "err", err)
		return
	}

	importID, err := h.batches.StartBatch(r.Context(), header.Filename, header.Size, rows)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "failed to start import")
		log.Error("failed to start batch", "err", err)
		return
	}

	log.Info("batch import accepted",
		"import_id", importID, "filename", header.Filename, "rows", len(rows))
	writeJSON(w, http.StatusAccepted, UploadResponse{
		ImportID: importID,
		Status:   domain.RunStatusProcessing,
		Total:    len(rows),
	})
}

// GetStatus reports live progress while the run is in memory and
// falls back to the stored run afterwards.
func (h ImportHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	const op = "ImportHandler.GetStatus"

	id := r.PathValue("id")

	if p, ok := h.batches.BatchProgress(id); ok {
		writeJSON(w, http.StatusOK, ImportStatus{
			ImportID:     id,
			Status:       p.Status,
			Total:        p.Total,
			Processed:    p.Processed,
			Progress:     p.Progress,
			SuccessCount: p.SuccessCount,
			ErrorCount:   p.ErrorCount,
			Errors:       p.Errors,
		})
		return
	}

	run, err := h.batches.Run(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "import not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load import")
		slog.Error("failed to load run", "op", op, "import_id", id, "err", err)
		return
	}

	total := run.SuccessCount + run.ErrorCount
	writeJSON(w, http.StatusOK, ImportStatus{
		ImportID:     run.ID,
		Status:       run.Status,
		Total:        total,
		Processed:    total,
		Progress:     100,
		SuccessCount: run.SuccessCount,
		ErrorCount:   run.ErrorCount,
	})
}

func (h ImportHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	const op = "ImportHandler.GetHistory"

	limit := queryInt(r, "limit", defaultHistoryLimit)
	if limit < 1 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	runs, total, err := h.batches.RunHistory(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load history")
		slog.Error("failed to load history", "op", op, "err", err)
		return
	}

	resp := ImportHistory{
		Runs:   make([]ImportRun, 0, len(runs)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for _, run := range runs {
		dto := ImportRun{
			ImportID:     run.ID,
			Filename:     run.Filename,
			FileSize:     run.FileSize,
			Status:       run.Status,
			SuccessCount: run.SuccessCount,
			ErrorCount:   run.ErrorCount,
			ErrorMessage: run.ErrorMessage,
			CreatedAt:    run.CreatedAt,
		}
		if !run.CompletedAt.IsZero() {
			t := run.CompletedAt
			dto.CompletedAt = &t
		}
		resp.Runs = append(resp.Runs, dto)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetTemplate describes the upload format with sample rows.
func (h ImportHandler) GetTemplate(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ImportTemplate{
		Columns: []string{
			"name", "description", "price", "stock_quantity",
			"category", "image_url", "sku", "is_active",
		},
		Rows: []map[string]string{
			{
				"name":           "گوشی موبایل سامسونگ",
				"description":    "گارانتی ۱۸ ماهه",
				"price":          "15000000",
				"stock_quantity": "5",
				"category":       "موبایل",
				"image_url":      "https://example.com/phone.jpg",
				"sku":            "PHONE001",
				"is_active":      "true",
			},
			{
				"name":           "کیف چرم دست‌دوز",
				"price":          "1200000",
				"stock_quantity": "2",
				"category":       "مد و پوشاک",
				"sku":            "BAG002",
			},
		},
	})
}

// PostMessage runs a raw Persian message through the same pipeline
// the chat transport uses.
func (h ImportHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	const op = "ImportHandler.PostMessage"
	log := slog.With("op", op)

	var req ImportMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	outcome, err := h.messages.ImportMessage(r.Context(), domain.RawMessage{
		Text:     req.Text,
		Caption:  req.Caption,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		if reason, ok := rejectionReason(err); ok {
			writeError(w, http.StatusUnprocessableEntity, reason)
			return
		}
		writeError(w, http.StatusServiceUnavailable, "failed to import product")
		log.Error("failed to import message", "err", err)
		return
	}

	log.Info("message imported",
		"action", outcome.Action, "product_id", outcome.ProductID,
		"slug", outcome.Product.Slug)
	writeJSON(w, http.StatusOK, ImportMessageResponse{
		Action: string(outcome.Action),
		Product: ImportedProduct{
			ID:          outcome.ProductID,
			Name:        outcome.Product.Name,
			Slug:        outcome.Product.Slug,
			Description: outcome.Product.Description,
			Price:       outcome.Product.Price,
			Currency:    outcome.Product.Currency,
			Category:    outcome.Product.Category,
			Stock:       outcome.Product.Stock,
			ImageURL:    outcome.Product.ImageURL,
		},
	})
}

// rejectionReason maps extraction failures to user-facing Persian
// messages. Anything else is an internal failure.
func rejectionReason(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		return "پیام خالی است", true
	case errors.Is(err, domain.ErrNoProductData):
		return "اطلاعات محصول در پیام یافت نشد", true
	case errors.Is(err, domain.ErrIncomplete):
		return "نام یا قیمت محصول مشخص نیست", true
	default:
		return "", false
	}
}

type StatsHandler struct {
	stats  port.StatsReader
	counts port.CategoryCounts
}

func RegisterStats(mux *http.ServeMux, stats port.StatsReader, counts port.CategoryCounts) {
	h := StatsHandler{stats, counts}
	mux.HandleFunc("GET /v1/stats/importer", h.GetImporterStats)
	mux.HandleFunc("GET /v1/stats/categories/{category}", h.GetCategoryCount)
}

func (h StatsHandler) GetImporterStats(w http.ResponseWriter, _ *http.Request) {
	snap := h.stats.Snapshot()
	resp := ImporterStats{
		Processed: snap.Processed,
		Forwarded: snap.Forwarded,
		Imported:  snap.Imported,
		Errors:    snap.Errors,
	}
	if !snap.LastActivity.IsZero() {
		t := snap.LastActivity
		resp.LastActivity = &t
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h StatsHandler) GetCategoryCount(w http.ResponseWriter, r *http.Request) {
	const op = "StatsHandler.GetCategoryCount"

	category := r.PathValue("category")
	count, err := h.counts.Count(category)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "counts are unavailable")
		slog.Error("failed to read category count", "op", op, "err", err)
		return
	}
	writeJSON(w, http.StatusOK, CategoryCount{Category: category, Count: count})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
