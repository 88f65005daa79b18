package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	walog "go.mau.fi/whatsmeow/util/log"

	"github.com/fardannozami/sweat-tracker/internal/app/usecase"
	"github.com/fardannozami/sweat-tracker/internal/config"
	"github.com/fardannozami/sweat-tracker/internal/infra/httpapi"
	"github.com/fardannozami/sweat-tracker/internal/infra/sqlite"
	"github.com/fardannozami/sweat-tracker/internal/infra/wa"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Logger
	logger := walog.Stdout("Bot", cfg.LogLevel, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Database & Repositories
	db, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	members := sqlite.NewMemberRepository(db)
	observations := sqlite.NewObservationRepository(db)

	// 4. Use Cases
	clock := usecase.SystemClock(cfg.Location)
	reportUC := usecase.NewReportActivityUsecase(members, observations, clock)
	skipUC := usecase.NewSkipActivityUsecase(members, observations, clock)
	streakUC := usecase.NewGetStreakUsecase(members, observations, clock, logger.Sub("Streak"))
	leaderboardUC := usecase.NewGetLeaderboardUsecase(members, observations, clock, logger.Sub("Leaderboard"))
	handleMessageUC := usecase.NewHandleMessageUsecase(reportUC, skipUC, streakUC, leaderboardUC)

	// 5. HTTP read API
	if cfg.HTTPAddr != "" {
		app := httpapi.NewApp(streakUC, leaderboardUC, logger.Sub("HTTP"))
		go func() {
			logger.Infof("HTTP API listening on %s", cfg.HTTPAddr)
			if err := app.Listen(cfg.HTTPAddr); err != nil {
				logger.Errorf("HTTP API stopped: %v", err)
			}
		}()
		defer app.Shutdown()
	}

	// 6. WhatsApp Service
	waService := wa.NewService(cfg.SQLitePath, logger)
	dispatcher := wa.NewDispatcher(wa.DispatcherConfig{
		GroupID:         cfg.GroupID,
		ReplyDelayMinMs: cfg.ReplyDelayMinMs,
		ReplyDelayMaxMs: cfg.ReplyDelayMaxMs,
		ShowTyping:      cfg.ShowTyping,
	}, handleMessageUC, members, logger.Sub("Dispatch"))
	waService.SetMessageHandler(dispatcher.HandleMessage)

	// 7. Initialize Client (DB, Device, etc) - DO NOT CONNECT YET
	if err := waService.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize WhatsApp service: %v", err)
	}

	// 8. Connect / Login Logic
	if !waService.IsLoggedIn() {
		if cfg.BotPhone != "" {
			// Pair Code Mode: must connect first to pair
			if err := waService.Connect(); err != nil {
				log.Fatalf("Failed to connect for pairing: %v", err)
			}

			logger.Infof("Not logged in. Attempting to pair with phone: %s", cfg.BotPhone)
			code, err := waService.Pair(ctx, cfg.BotPhone)
			if err != nil {
				logger.Errorf("Failed to generate pair code: %v", err)
			} else {
				logger.Infof("PAIR CODE: %s", code)
				logger.Infof("Verify this code on your WhatsApp (Linked Devices > Link with phone number)")
			}
		} else {
			logger.Infof("Not logged in. BOT_PHONE not set. Printing QR...")
			// PrintQR opens the QR channel before connecting to avoid missing the first code
			if err := waService.PrintQR(ctx); err != nil {
				log.Fatalf("QR login failed: %v", err)
			}
		}
	} else {
		if err := waService.Connect(); err != nil {
			log.Fatalf("Failed to connect: %v", err)
		}
		logger.Infof("Client is already logged in.")
	}

	logger.Infof("Bot is running... Press Ctrl+C to exit.")

	// 9. Wait for OS Signal
	<-ctx.Done()

	logger.Infof("Shutting down...")
	waService.Disconnect()
}
