package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/educaprep/studyhelper/internal/api"
	"github.com/educaprep/studyhelper/internal/assets"
	"github.com/educaprep/studyhelper/internal/infrastructure/config"
	"github.com/educaprep/studyhelper/internal/mastery"
	"github.com/educaprep/studyhelper/internal/service"
	"github.com/educaprep/studyhelper/internal/settings"
	"github.com/educaprep/studyhelper/internal/store"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	subjects, err := store.NewSubjectStore(cfg.DataDir, logger)
	if err != nil {
		logger.Error("failed to open data directory", "error", err)
		os.Exit(1)
	}

	subjectIDs := make([]string, 0, len(cfg.Subjects))
	for id := range cfg.Subjects {
		subjectIDs = append(subjectIDs, id)
	}
	sort.Strings(subjectIDs)

	for _, id := range subjectIDs {
		if err := subjects.Initialize(id, cfg.Subjects[id]); err != nil {
			logger.Error("failed to initialize subject", "subject", id, "error", err)
			os.Exit(1)
		}
	}
	subjects.Preload(subjectIDs)

	history, err := store.NewHistory(cfg.HistoryDB)
	if err != nil {
		logger.Error("failed to open history database", "error", err)
		os.Exit(1)
	}
	defer history.Close()

	index := mastery.NewIndex(subjects, logger)
	for _, id := range subjectIDs {
		index.Rebuild(id)
	}

	cfgStore := settings.NewManager(cfg.DataDir, logger)
	quiz := service.NewQuizService(subjects, history, index, cfgStore, subjectIDs, logger)
	lib := assets.NewLibrary(cfg.AssetDir, logger)

	handler := api.NewHandler(quiz, lib, cfgStore, logger)
	router := api.NewRouter(handler)

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
