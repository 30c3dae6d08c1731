package main

import (
	"net/http"
	"os"

	"actionmap/internal/civic"
	"actionmap/internal/config"
	"actionmap/internal/handlers"
	"actionmap/internal/logging"
	"actionmap/internal/news"
	"actionmap/internal/reconcile"
	"actionmap/internal/storage"
)

func main() {
	log := logging.Default()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("failed to create data directory")
	}

	store, err := storage.NewPocketBaseStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}

	civicClient := civic.NewClient(cfg.CivicAPIKey, civic.WithBaseURL(cfg.CivicAPIURL))
	newsClient := news.NewClient(cfg.NewsAPIKey, news.WithBaseURL(cfg.NewsAPIURL))
	engine := reconcile.NewEngine(store)

	repHandler := handlers.NewRepresentativeHandler(store, civicClient, engine)
	newsHandler := handlers.NewNewsItemHandler(store, newsClient)
	mapHandler := handlers.NewMapHandler(store)

	mux := http.NewServeMux()

	// Representatives
	mux.HandleFunc("GET /api/representatives/search", repHandler.HandleSearch)
	mux.HandleFunc("GET /api/representatives", repHandler.HandleList)
	mux.HandleFunc("GET /api/representatives/{id}", repHandler.HandleGet)

	// News items per representative
	mux.HandleFunc("GET /api/representatives/{id}/news-items", newsHandler.HandleList)
	mux.HandleFunc("POST /api/representatives/{id}/news-items", newsHandler.HandleCreate)
	mux.HandleFunc("GET /api/representatives/{id}/news-items/first", newsHandler.HandleGetFirst)
	mux.HandleFunc("GET /api/representatives/{id}/news-items/{newsId}", newsHandler.HandleGet)
	mux.HandleFunc("PUT /api/news-items/{id}", newsHandler.HandleUpdate)
	mux.HandleFunc("DELETE /api/news-items/{id}", newsHandler.HandleDelete)

	// Article search and the permitted issue list
	mux.HandleFunc("GET /api/news/search", newsHandler.HandleSearchNews)
	mux.HandleFunc("GET /api/issues", newsHandler.HandleListIssues)

	// Map navigation data
	mux.HandleFunc("GET /api/states", mapHandler.HandleListStates)
	mux.HandleFunc("POST /api/states", mapHandler.HandleSaveState)
	mux.HandleFunc("GET /api/states/{symbol}", mapHandler.HandleGetState)
	mux.HandleFunc("GET /api/states/{symbol}/counties", mapHandler.HandleListCounties)
	mux.HandleFunc("POST /api/states/{symbol}/counties", mapHandler.HandleSaveCounty)
	mux.HandleFunc("GET /api/states/{symbol}/counties/{fips}", mapHandler.HandleGetCounty)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
