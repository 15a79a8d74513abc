package models

// -------------------------------------------------------
// Domain Models
// -------------------------------------------------------

// Resume represents one uploaded document and its derived artifacts.
// A row is written exactly once on successful upload and never updated;
// deletion is not exposed.
type Resume struct {
	ID           int64    `json:"id" db:"id"`
	Filename     string   `json:"filename" db:"filename"`
	Filepath     string   `json:"filepath,omitempty" db:"filepath"`
	Content      string   `json:"content" db:"content"`
	Summary      string   `json:"summary" db:"summary"`
	TopWords     []string `json:"top_words" db:"top_words"`
	UploadedAt   string   `json:"uploaded_at" db:"uploaded_at"` // RFC 3339, UTC, set at processing time
	UsedFallback bool     `json:"used_fallback" db:"used_fallback"`
}
