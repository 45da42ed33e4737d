package httphandler

import "time"

type (
	ImportMessage struct {
		Text     string `json:"text"`
		Caption  string `json:"caption,omitempty"`
		PhotoURL string `json:"photo_url,omitempty"`
	}

	ImportedProduct struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description,omitempty"`
		Price       int    `json:"price"`
		Currency    string `json:"currency"`
		Category    string `json:"category"`
		Stock       int    `json:"stock"`
		ImageURL    string `json:"image_url,omitempty"`
	}

	ImportMessageResponse struct {
		Action  string          `json:"action"`
		Product ImportedProduct `json:"product"`
	}

	UploadResponse struct {
		ImportID string `json:"import_id"`
		Status   string `json:"status"`
		Total    int    `json:"total"`
	}

	ImportStatus struct {
		ImportID     string   `json:"import_id"`
		Status       string   `json:"status"`
		Total        int      `json:"total"`
		Processed    int      `json:"processed"`
		Progress     int      `json:"progress"`
		SuccessCount int      `json:"success_count"`
		ErrorCount   int      `json:"error_count"`
		Errors       []string `json:"errors,omitempty"`
	}

	ImportRun struct {
		ImportID     string     `json:"import_id"`
		Filename     string     `json:"filename"`
		FileSize     int64      `json:"file_size"`
		Status       string     `json:"status"`
		SuccessCount int        `json:"success_count"`
		ErrorCount   int        `json:"error_count"`
		ErrorMessage string     `json:"error_message,omitempty"`
		CreatedAt    time.Time  `json:"created_at"`
		CompletedAt  *time.Time `json:"completed_at,omitempty"`
	}

	ImportHistory struct {
		Runs   []ImportRun `json:"runs"`
		Total  int         `json:"total"`
		Limit  int         `json:"limit"`
		Offset int         `json:"offset"`
	}

	ImportTemplate struct {
		Columns []string            `json:"columns"`
		Rows    []map[string]string `json:"rows"`
	}

	ImporterStats struct {
		Processed    int64      `json:"messages_processed"`
		Forwarded    int64      `json:"messages_forwarded"`
		Imported     int64      `json:"products_imported"`
		Errors       int64      `json:"errors"`
		LastActivity *time.Time `json:"last_activity,omitempty"`
	}

	CategoryCount struct {
		Category string `json:"category"`
		Count    int64  `json:"count"`
	}

	ErrorResponse struct {
		Error string `json:"error"`
	}
)
