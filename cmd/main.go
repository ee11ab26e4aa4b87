package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"sala-api/infrastructure/httpapi"
	"sala-api/internal"
	"sala-api/moderation"
	"sala-api/observability"
	"sala-api/repositories"
	"sala-api/runtime/workers"
	"sala-api/services"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the HTTP server and background workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx := context.Background()

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	//  Defer will be executed before run() returned anything to main()
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	stats := observability.NewRoomStats()
	if log.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		url := fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint)
		log.Info("Debug store inspector available", "url", url)
		internal.StartDebugServer(db, config.DebugPort, endpoint, roomMapper, stats.Snapshot)
	}

	// 3. Moderation (off unless enabled; the room then censors posted text)
	var filter *moderation.Filter
	if config.ModerationEnabled {
		mask, err := internal.CharacterRune(config.ModerationCharReplacement)
		if err != nil {
			return err
		}
		words, err := moderation.EmbeddedWords()
		if err != nil {
			return fmt.Errorf("loading censored words failed: %w", err)
		}
		words = append(words, moderation.ParseWords(config.CensoredExtraWords)...)
		if filter, err = moderation.NewFilter(words, mask); err != nil {
			return fmt.Errorf("building moderation filter failed: %w", err)
		}
		log.Info("Moderation enabled", "words", len(words))
	}

	// 4. Repositories & Service
	participantRepository := repositories.NewParticipantRepository(db)
	messageRepository := repositories.NewMessageRepository(db)
	roomService := services.NewRoomService(
		participantRepository,
		messageRepository,
		filter,
		stats,
		internal.SystemClock{},
		config.InactivityLimit,
	)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Supervision: inactivity reaper + process reporter
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewReaperWorker(log, roomService, config.ReapInterval),
		workers.NewProcessReporterWorker(log, config.ReportInterval),
	)

	supDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supDone)
	}()

	// 7. HTTP Server Setup
	roomServer := httpapi.NewRoomServer(log, roomService)
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{
		Addr:         address,
		Handler:      roomServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Use an error channel to capture ListenAndServe() issues
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 9. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", "err", err)
	}
	sup.Stop()
	<-supDone
	log.Info("Program stopped cleanly")

	return nil
}

// roomMapper renders store values in the debug inspector using the same
// codec as the repositories.
func roomMapper(key string, val []byte) internal.InspectRow {
	row := internal.DefaultMapper(key, val)
	switch {
	case strings.HasPrefix(key, "msg:"):
		if message, err := repositories.DecodeMessage(val); err == nil {
			row.Kind = strings.ToUpper(string(message.Type))
			row.Time = message.At.Format("15:04:05")
			row.Entity = message.From
			row.Detail = fmt.Sprintf("to %s: %s", message.To, message.Text)
		}
	case strings.HasPrefix(key, "participant:"):
		if participant, err := repositories.DecodeParticipant(val); err == nil {
			row.Time = participant.LastStatus.Format("15:04:05")
			row.Detail = fmt.Sprintf("last status %d", participant.LastStatus.UnixMilli())
		}
	}
	return row
}
