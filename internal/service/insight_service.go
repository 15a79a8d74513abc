package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CrowdContract/Unstop-smartdocai/internal/models"
	"github.com/CrowdContract/Unstop-smartdocai/internal/repository"
)

// topWordCount is how many keywords are stored with every upload.
const topWordCount = 5

// fallbackPrefix is the fixed prefix of a keyword-derived summary.
const fallbackPrefix = "Fallback insight — Top 5 frequent words: "

// InsightService runs the resume upload pipeline: store the original file,
// extract text, summarize (remote AI when available, keyword fallback
// otherwise), and persist one history row.
type InsightService struct {
	resumeRepo *repository.ResumeRepository
	extractor  *PDFExtractor
	keywords   *KeywordExtractor
	summarizer *SarvamClient
	uploadDir  string
}

// NewInsightService creates a new InsightService.
func NewInsightService(
	resumeRepo *repository.ResumeRepository,
	extractor *PDFExtractor,
	keywords *KeywordExtractor,
	summarizer *SarvamClient,
	uploadDir string,
) *InsightService {
	return &InsightService{
		resumeRepo: resumeRepo,
		extractor:  extractor,
		keywords:   keywords,
		summarizer: summarizer,
		uploadDir:  uploadDir,
	}
}

// Process runs the full pipeline for one uploaded PDF and returns the stored
// record. Extraction failures propagate as ErrPDFParse/ErrNoTextExtracted and
// leave no row behind; remote summarization failures are absorbed by the
// keyword fallback and never surface.
func (s *InsightService) Process(ctx context.Context, filename string, data []byte) (*models.Resume, error) {
	path, err := s.saveOriginal(filename, data)
	if err != nil {
		return nil, err
	}

	text, err := s.extractor.ExtractText(data)
	if err != nil {
		return nil, err
	}

	// Keywords are computed on both branches so history always carries
	// keyword context, even alongside a remote summary.
	topWords := s.keywords.TopWords(text, topWordCount)

	summary, ok := s.summarizer.Summarize(ctx, text)
	usedFallback := !ok
	if usedFallback {
		summary = fallbackPrefix + strings.Join(topWords, ", ")
	}

	record := &models.Resume{
		Filename:     filename,
		Filepath:     path,
		Content:      text,
		Summary:      summary,
		TopWords:     topWords,
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
		UsedFallback: usedFallback,
	}

	id, err := s.resumeRepo.Insert(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("saving resume history: %w", err)
	}
	record.ID = id
	return record, nil
}

// saveOriginal writes the uploaded bytes under the upload dir with a
// uuid-prefixed name so client filenames cannot collide or escape the dir.
func (s *InsightService) saveOriginal(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}
	name := uuid.New().String() + "_" + filepath.Base(filename)
	path := filepath.Join(s.uploadDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("saving uploaded file: %w", err)
	}
	return path, nil
}
