package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"meetingflow/internal/config"
	"meetingflow/internal/distribute"
	"meetingflow/internal/events"
	"meetingflow/internal/export"
	"meetingflow/internal/integrations"
	"meetingflow/internal/jobs"
	"meetingflow/internal/llm"
	"meetingflow/internal/logger"
	"meetingflow/internal/media"
	"meetingflow/internal/messaging"
	"meetingflow/internal/objectstore"
	"meetingflow/internal/pipeline"
	"meetingflow/internal/server"
	"meetingflow/internal/store"
	"meetingflow/internal/summarize"
	"meetingflow/internal/transcribe"
	"meetingflow/internal/watcher"
	"meetingflow/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Missing .env is fine; secrets may come from the real environment.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Processing Pipeline")
	log.Info(ctx, "========================================")

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Error(ctx, "Failed to open job store: %v", err)
		os.Exit(1)
	}
	defer st.Close()

	// LLM provider chains. Each pipeline step carries its own fallback
	// order so a local model can front refinement while summaries go to
	// the hosted providers first.
	registry := llm.NewRegistry(cfg.LLM, log)
	refineChain, err := registry.Chain(cfg.LLM.RefineOrder)
	if err != nil {
		log.Error(ctx, "Invalid llm.refine_order: %v", err)
		os.Exit(1)
	}
	summaryChain, err := registry.Chain(cfg.LLM.SummaryOrder)
	if err != nil {
		log.Error(ctx, "Invalid llm.summary_order: %v", err)
		os.Exit(1)
	}
	eventsChain, err := registry.Chain(cfg.LLM.EventsOrder)
	if err != nil {
		log.Error(ctx, "Invalid llm.events_order: %v", err)
		os.Exit(1)
	}

	exec := executor.New()

	deliverers := []integrations.Deliverer{
		integrations.NewNotion(cfg.Distribution.Timeout(), log),
		integrations.NewGoogleCalendar(cfg.Distribution.Timeout(), log),
	}

	orch := pipeline.New(
		media.NewExtractor(exec, log),
		media.NewCleaner(exec, log),
		transcribe.New(cfg.Whisper, exec, log),
		refineChain,
		summarize.New(summaryChain, cfg.Summarize.MaxChunkSize, log),
		events.NewExtractor(eventsChain, log),
		distribute.New(deliverers, cfg.Distribution.MaxConcurrent, cfg.Distribution.Timeout(), log),
		log,
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Jobs run on the root context so a shutdown stops intake first and
	// lets in-flight pipelines finish.
	runner := jobs.New(ctx, orch, st, export.New(cfg.Paths.Output, log), log)

	// Uploaded and downloaded recordings are staged in the temp dir so the
	// drop-folder watcher never re-submits them.
	srv := server.New(cfg.Server.Port, cfg.Paths.Temp, runner, st, log)

	errChan := make(chan error, 3)

	go func() {
		log.Info(ctx, "HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.Start(); err != nil {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	var consumer *messaging.Consumer
	if cfg.RabbitMQ.URL != "" {
		storage, err := objectstore.New(cfg.Minio, log)
		if err != nil {
			log.Error(ctx, "Failed to connect to object storage: %v", err)
			os.Exit(1)
		}
		consumer, err = messaging.New(cfg.RabbitMQ, cfg.Paths.Temp, runner, storage, log)
		if err != nil {
			log.Error(ctx, "Failed to connect to RabbitMQ: %v", err)
			os.Exit(1)
		}
		go func() {
			log.Info(ctx, "Consuming %s on exchange %s", cfg.RabbitMQ.Queue, cfg.RabbitMQ.Exchange)
			if err := consumer.Start(runCtx); err != nil && err != context.Canceled {
				errChan <- fmt.Errorf("rabbitmq consumer: %w", err)
			}
		}()
	}

	w, err := watcher.New(cfg.Paths.Input, func(ctx context.Context, path string) error {
		_, err := runner.Submit(ctx, jobs.SubmitRequest{InputPath: path})
		return err
	}, log)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	go func() {
		if err := w.Start(runCtx); err != nil && err != context.Canceled {
			errChan <- fmt.Errorf("watcher: %w", err)
		}
	}()

	log.Info(ctx, "Watching drop folder: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Refine providers: %v", refineChain.Providers())
	log.Info(ctx, "Summary providers: %v", summaryChain.Providers())
	log.Info(ctx, "Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Fatal: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "HTTP shutdown: %v", err)
	}
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Error(ctx, "Consumer close: %v", err)
		}
	}

	// Let in-flight jobs finish writing their results.
	runner.Wait()

	log.Info(ctx, "Pipeline stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Temp,
		cfg.Paths.Output,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
