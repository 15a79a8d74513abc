package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/CrowdContract/Unstop-smartdocai/internal/models"
)

// ResumeRepository handles resume history database operations.
type ResumeRepository struct {
	db *sql.DB
}

// NewResumeRepository creates a new ResumeRepository.
func NewResumeRepository(db *sql.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

// Insert stores a new resume row and returns the assigned id.
// Ids are assigned by the store, strictly increasing, and never reused.
func (r *ResumeRepository) Insert(ctx context.Context, res *models.Resume) (int64, error) {
	topWords, err := json.Marshal(res.TopWords)
	if err != nil {
		return 0, fmt.Errorf("encoding top words: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO resumes (filename, filepath, content, summary, top_words, uploaded_at, used_fallback)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.Filename, res.Filepath, res.Content, res.Summary,
		string(topWords), res.UploadedAt, boolToInt(res.UsedFallback),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting resume: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted resume id: %w", err)
	}
	return id, nil
}

// GetByID retrieves a single resume by id. Returns (nil, nil) when absent.
func (r *ResumeRepository) GetByID(ctx context.Context, id int64) (*models.Resume, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, filename, filepath, content, summary, top_words, uploaded_at, used_fallback
		 FROM resumes WHERE id = ?`, id)

	res, err := scanResume(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying resume by id: %w", err)
	}
	return res, nil
}

// List returns up to limit resumes, newest first (descending id).
func (r *ResumeRepository) List(ctx context.Context, limit int) ([]models.Resume, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, filename, filepath, content, summary, top_words, uploaded_at, used_fallback
		 FROM resumes ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing resumes: %w", err)
	}
	defer rows.Close()

	var resumes []models.Resume
	for rows.Next() {
		res, err := scanResume(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning resume row: %w", err)
		}
		resumes = append(resumes, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resume rows: %w", err)
	}
	return resumes, nil
}

// scanResume reads one row via the given Scan function and decodes the
// serialized top_words column back into a slice.
func scanResume(scan func(...interface{}) error) (*models.Resume, error) {
	var (
		res          models.Resume
		topWords     string
		usedFallback int
	)
	if err := scan(
		&res.ID, &res.Filename, &res.Filepath, &res.Content,
		&res.Summary, &topWords, &res.UploadedAt, &usedFallback,
	); err != nil {
		return nil, err
	}

	if topWords != "" {
		if err := json.Unmarshal([]byte(topWords), &res.TopWords); err != nil {
			return nil, fmt.Errorf("decoding top words: %w", err)
		}
	}
	if res.TopWords == nil {
		res.TopWords = []string{}
	}
	res.UsedFallback = usedFallback != 0
	return &res, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
