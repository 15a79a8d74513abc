package main

import (
	"log"
	"net/http"

	"github.com/CrowdContract/Unstop-smartdocai/internal/config"
	"github.com/CrowdContract/Unstop-smartdocai/internal/handler"
	"github.com/CrowdContract/Unstop-smartdocai/internal/middleware"
	"github.com/CrowdContract/Unstop-smartdocai/internal/repository"
	"github.com/CrowdContract/Unstop-smartdocai/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// --- Database ---
	db, err := repository.NewSQLiteDB(cfg.Database)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	log.Println("opened sqlite database at", cfg.Database.Path)

	// --- Repositories ---
	resumeRepo := repository.NewResumeRepository(db)

	// --- Services ---
	pdfExtractor := service.NewPDFExtractor()
	keywordExtractor := service.NewKeywordExtractor()
	sarvamClient := service.NewSarvamClient(cfg.Sarvam)
	if cfg.Sarvam.URL == "" || cfg.Sarvam.APIKey == "" {
		log.Println("remote summarizer not configured, using keyword fallback for all uploads")
	}
	insightService := service.NewInsightService(
		resumeRepo, pdfExtractor, keywordExtractor, sarvamClient, cfg.Uploads.Dir,
	)

	// --- Handlers ---
	resumeHandler := handler.NewResumeHandler(insightService, resumeRepo)

	// --- Router ---
	mux := http.NewServeMux()

	// Liveness probe
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	resumeHandler.RegisterRoutes(mux)

	// Serve stored originals so the front end can link back to them.
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir))))

	// --- Server ---
	addr := ":" + cfg.Server.Port
	log.Printf("SmartDocAI backend starting on %s", addr)

	wrappedMux := middleware.CORS(mux)
	if err := http.ListenAndServe(addr, wrappedMux); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
