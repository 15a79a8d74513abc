package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CrowdContract/Unstop-smartdocai/internal/config"
	"github.com/CrowdContract/Unstop-smartdocai/internal/models"
	"github.com/CrowdContract/Unstop-smartdocai/internal/repository"
	"github.com/CrowdContract/Unstop-smartdocai/internal/service"
)

// newTestMux wires the full request path (handler, services, sqlite) against
// temporary storage, with the remote summarizer unconfigured.
func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	db, err := repository.NewSQLiteDB(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	resumeRepo := repository.NewResumeRepository(db)
	insightService := service.NewInsightService(
		resumeRepo,
		service.NewPDFExtractor(),
		service.NewKeywordExtractor(),
		service.NewSarvamClient(config.SarvamConfig{}),
		filepath.Join(t.TempDir(), "uploads"),
	)

	mux := http.NewServeMux()
	NewResumeHandler(insightService, resumeRepo).RegisterRoutes(mux)
	return mux
}

// makePDF assembles a minimal valid single-page PDF containing text, with
// computed object offsets and xref table.
func makePDF(t *testing.T, text string) []byte {
	t.Helper()

	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	bodies := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [4 0 R] /Count 1 >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents 5 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(bodies))
	for i, body := range bodies {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(bodies)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(bodies)+1, xrefPos)
	return buf.Bytes()
}

// uploadRequest builds a multipart POST /upload-resume request.
func uploadRequest(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-resume", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func doJSON(t *testing.T, mux *http.ServeMux, req *http.Request, wantStatus int, out interface{}) {
	t.Helper()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("%s %s: status = %d, want %d (body: %s)",
			req.Method, req.URL.Path, rec.Code, wantStatus, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
		}
	}
}

func TestUploadAndLookupRoundTrip(t *testing.T) {
	mux := newTestMux(t)

	var uploaded models.Resume
	doJSON(t, mux, uploadRequest(t, "resume.pdf", makePDF(t, "golang engineer with golang skills")),
		http.StatusOK, &uploaded)

	if uploaded.ID == 0 {
		t.Fatal("upload response missing assigned id")
	}
	if uploaded.Filename != "resume.pdf" {
		t.Errorf("filename = %q, want resume.pdf", uploaded.Filename)
	}
	if !uploaded.UsedFallback {
		t.Error("expected used_fallback with no remote summarizer configured")
	}
	if len(uploaded.TopWords) == 0 || uploaded.Summary == "" {
		t.Errorf("expected non-empty summary and top words, got %q %v",
			uploaded.Summary, uploaded.TopWords)
	}

	var fetched models.Resume
	doJSON(t, mux, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/insights?id=%d", uploaded.ID), nil),
		http.StatusOK, &fetched)

	if fetched.ID != uploaded.ID ||
		fetched.Filename != uploaded.Filename ||
		fetched.Filepath != uploaded.Filepath ||
		fetched.Content != uploaded.Content ||
		fetched.Summary != uploaded.Summary ||
		fetched.UploadedAt != uploaded.UploadedAt ||
		fetched.UsedFallback != uploaded.UsedFallback ||
		strings.Join(fetched.TopWords, ",") != strings.Join(uploaded.TopWords, ",") {
		t.Errorf("fetched record %+v differs from upload response %+v", fetched, uploaded)
	}
}

func TestUploadRejectsUnparseableFile(t *testing.T) {
	mux := newTestMux(t)

	var errResp map[string]string
	doJSON(t, mux, uploadRequest(t, "junk.pdf", []byte("not a pdf at all")),
		http.StatusBadRequest, &errResp)
	if errResp["error"] == "" {
		t.Error("expected a descriptive error message")
	}

	// The rejected upload must leave no history behind.
	var records []models.Resume
	doJSON(t, mux, httptest.NewRequest(http.MethodGet, "/insights", nil), http.StatusOK, &records)
	if len(records) != 0 {
		t.Errorf("rejected upload left %d records behind", len(records))
	}
}

func TestUploadRequiresFileField(t *testing.T) {
	mux := newTestMux(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("other", "value")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-resume", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var errResp map[string]string
	doJSON(t, mux, req, http.StatusBadRequest, &errResp)
}

func TestInsightsNewestFirst(t *testing.T) {
	mux := newTestMux(t)

	for i := 1; i <= 3; i++ {
		doJSON(t, mux, uploadRequest(t, fmt.Sprintf("resume%d.pdf", i),
			makePDF(t, "resume content with resume words")), http.StatusOK, nil)
	}

	var records []models.Resume
	doJSON(t, mux, httptest.NewRequest(http.MethodGet, "/insights?limit=2", nil),
		http.StatusOK, &records)

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != 3 || records[1].ID != 2 {
		t.Errorf("insights order = [%d, %d], want [3, 2]", records[0].ID, records[1].ID)
	}
}

func TestInsightsEmptyHistory(t *testing.T) {
	mux := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/insights", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("empty history body = %q, want []", got)
	}
}

func TestInsightsNotFound(t *testing.T) {
	mux := newTestMux(t)

	var errResp map[string]string
	doJSON(t, mux, httptest.NewRequest(http.MethodGet, "/insights?id=999", nil),
		http.StatusNotFound, &errResp)
	if errResp["error"] == "" {
		t.Error("expected an error payload")
	}
}

func TestInsightsInvalidID(t *testing.T) {
	mux := newTestMux(t)

	var errResp map[string]string
	doJSON(t, mux, httptest.NewRequest(http.MethodGet, "/insights?id=abc", nil),
		http.StatusBadRequest, &errResp)
}
