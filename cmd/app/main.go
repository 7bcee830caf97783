// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"sms-campaign/internal/config"
	"sms-campaign/internal/domain/model"
	"sms-campaign/internal/domain/ports/adapter"
	smsgw "sms-campaign/internal/infra/adapters/sms"
	httpsrv "sms-campaign/internal/infra/http"
	"sms-campaign/internal/infra/ledger"
	"sms-campaign/internal/infra/logging"
	"sms-campaign/internal/infra/metrics"
	"sms-campaign/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "developer mode (noop provider, no real sends)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled, using noop provider")
	}

	metrics.MustRegister()

	// ---- Ledger ----
	led := ledger.NewFileLedger()
	if err := led.LoadFile(cfg.Ledger.Path, cfg.Ledger.Backup); err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Ledger.Path).Msg("Could not load ledger")
	}
	logger.Info().Int("recipients", led.Len()).Int("unsent", led.UnsentCount()).Msg("Ledger loaded")

	var wg sync.WaitGroup
	if cfg.Ledger.Flush == config.FlushInterval {
		watcher := ledger.NewWatcher(led, cfg.Ledger.FlushInterval, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			watcher.Start(ctx)
		}()
	}

	// ---- Provider ----
	var provider adapter.SMSProviderAdapter
	if cfg.Runtime.Dev {
		provider = smsgw.NewNoopGateway()
	} else {
		provider, err = smsgw.NewTwilioGateway(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.BaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("Could not build twilio gateway")
		}
	}
	logger.Info().Str("provider", provider.Name()).Msg("SMS provider configured")

	// ---- Admin server (optional) ----
	var admin *httpsrv.Server
	if cfg.Admin.Port > 0 {
		admin = httpsrv.NewServer(cfg.Admin.Port, led, logger)
		go func() {
			if err := admin.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("Admin server failed")
			}
		}()
	}

	// ---- Campaign ----
	sender, err := model.NewSenderIdentity(cfg.Sender.MobileNumber, cfg.Sender.AlphanumericID)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid sender identity")
	}
	campaign, err := model.NewCampaign(cfg.Campaign.Name, cfg.Campaign.Body, sender)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid campaign")
	}

	var afterMark func(string)
	if cfg.Ledger.Flush == config.FlushAfterSend {
		afterMark = func(string) {
			if err := led.Flush(); err != nil {
				logger.Error().Err(err).Msg("Failed to flush ledger after send")
			}
		}
	}

	uc := usecase.NewCampaignUseCase(provider, afterMark, logger)
	summary, err := uc.Run(ctx, led, campaign)
	if err != nil {
		logger.Error().Err(err).Msg("Campaign run aborted")
	}
	logger.Info().
		Int("attempted", summary.Attempted).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Msg("Campaign summary")

	// Every flush policy writes the final state out once the run is over.
	stop()
	wg.Wait()
	if led.Dirty() {
		if err := led.Flush(); err != nil {
			logger.Error().Err(err).Msg("Failed to write final ledger state")
		}
	}

	if admin != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = admin.Shutdown(shutdownCtx)
	}
}
