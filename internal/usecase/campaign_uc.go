package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"sms-campaign/internal/domain"
	"sms-campaign/internal/domain/model"
	"sms-campaign/internal/domain/ports/adapter"
	"sms-campaign/internal/domain/ports/repository"
	"sms-campaign/internal/infra/metrics"

	"github.com/rs/zerolog"
)

type CampaignUseCase interface {
	// Run sends the campaign body to every unsent number in the ledger,
	// strictly one at a time, marking each sent on success. A failed send
	// leaves its recipient unsent and the run moves on.
	Run(ctx context.Context, ledger repository.RecipientLedger, campaign model.Campaign) (model.RunSummary, error)
}

type campaignUC struct {
	provider  adapter.SMSProviderAdapter
	afterMark func(phoneNumber string) // persistence hook, may be nil
	log       *zerolog.Logger
}

// NewCampaignUseCase wires the runner. afterMark is invoked after each
// successful mark-sent; the caller uses it to flush the ledger per its
// configured policy. Pass nil when no per-send persistence is wanted.
func NewCampaignUseCase(provider adapter.SMSProviderAdapter, afterMark func(string), logger *zerolog.Logger) CampaignUseCase {
	return &campaignUC{provider: provider, afterMark: afterMark, log: logger}
}

func (uc *campaignUC) Run(ctx context.Context, ledger repository.RecipientLedger, campaign model.Campaign) (model.RunSummary, error) {
	var summary model.RunSummary
	if ledger == nil {
		return summary, fmt.Errorf("%w: nil ledger", domain.ErrInvalidArgument)
	}
	if campaign.Body == "" || campaign.Sender.IsZero() {
		return summary, fmt.Errorf("%w: campaign not fully configured", domain.ErrInvalidArgument)
	}

	log := uc.log.With().Str("campaign", campaign.Name).Str("run_id", campaign.RunID).Logger()

	// Materialized up front so every progress line can say n/N.
	pending := slices.Collect(ledger.Unsent())
	total := len(pending)
	metrics.SetLedgerCounts(ledger.Len(), total)
	log.Info().Int("unsent", total).Str("from", campaign.Sender.From()).Str("provider", uc.provider.Name()).Msg("Starting campaign run")

	for i, number := range pending {
		select {
		case <-ctx.Done():
			log.Warn().Int("attempted", summary.Attempted).Msg("Campaign run cancelled")
			return summary, ctx.Err()
		default:
		}

		summary.Attempted++
		start := time.Now()
		res, err := uc.provider.SendSMS(ctx, adapter.SendParams{
			To:   number,
			From: campaign.Sender.From(),
			Body: campaign.Body,
		})
		metrics.ObserveSend(err == nil, time.Since(start))

		if err != nil {
			summary.Failed++
			var failure *domain.SendFailure
			if errors.As(err, &failure) {
				log.Warn().Str("to", number).Int("code", failure.Code).Str("reason", failure.Reason).Msg("Provider rejected SMS, recipient left unsent")
			} else {
				log.Warn().Err(err).Str("to", number).Msg("Could not reach provider, recipient left unsent")
			}
			continue
		}

		summary.Succeeded++
		log.Info().Str("to", number).Str("sid", res.SID).Int("n", i+1).Int("of", total).Msg("SMS sent")

		if err := ledger.MarkSent(number); err != nil {
			// The number came out of the ledger moments ago; this is a
			// contract violation, not a delivery problem.
			log.Error().Err(err).Str("to", number).Msg("Ledger refused mark-sent for a number it yielded")
			continue
		}
		if uc.afterMark != nil {
			uc.afterMark(number)
		}
	}

	metrics.SetLedgerCounts(ledger.Len(), ledger.UnsentCount())
	log.Info().Int("attempted", summary.Attempted).Int("succeeded", summary.Succeeded).Int("failed", summary.Failed).Msg("Campaign run finished")
	return summary, nil
}
