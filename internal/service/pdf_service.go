package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrPDFParse signals that the uploaded bytes could not be parsed as a PDF.
var ErrPDFParse = errors.New("could not parse PDF file")

// ErrNoTextExtracted signals a parseable PDF that yielded no text at all
// (zero pages, or only whitespace). Callers treat this as a rejected upload.
var ErrNoTextExtracted = errors.New("no text could be extracted from the PDF")

// PDFExtractor extracts plain text from PDF files using ledongthuc/pdf.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText extracts text from raw PDF bytes, page by page in page order.
// Each page's text is followed by a newline; a page that yields no text
// contributes an empty string rather than an error.
func (e *PDFExtractor) ExtractText(data []byte) (text string, err error) {
	// ledongthuc/pdf can panic on malformed input, so parse failure is
	// recovered into ErrPDFParse instead of taking the process down.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrPDFParse, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPDFParse, err)
	}

	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			builder.WriteString("\n")
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			pageText = ""
		}
		builder.WriteString(pageText)
		builder.WriteString("\n")
	}

	text = builder.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrNoTextExtracted
	}
	return text, nil
}

// ExtractTextFromReader extracts text from a PDF stream (e.g. multipart upload).
func (e *PDFExtractor) ExtractTextFromReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading PDF stream: %w", err)
	}
	return e.ExtractText(data)
}
