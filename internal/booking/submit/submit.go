package submit

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/velorent/booking-widget/internal/schema"
	"gitlab.com/velorent/booking-widget/internal/store/interfaces"
	"gitlab.com/velorent/booking-widget/internal/tools/slowlog"
)

// SupportDirective is shown when every tier has failed and nothing was
// persisted anywhere.
const SupportDirective = "We could not save your booking. Please call our support line directly and we will book you in by hand."

type Outcome string

const (
	// OutcomeConfirmed means the remote store acknowledged the row insert.
	OutcomeConfirmed Outcome = "confirmed"
	// OutcomeRelayed means the relay accepted delivery; the endpoint's
	// response is opaque, so this is best effort, not verified success.
	OutcomeRelayed Outcome = "relayed"
	// OutcomeSavedLocally means the payload landed in the local vault.
	OutcomeSavedLocally Outcome = "saved_locally"
	OutcomeFailed       Outcome = "failed"
)

type Result struct {
	Outcome         Outcome `json:"outcome"`
	Tier            string  `json:"tier,omitempty"`
	RemoteReference string  `json:"remoteReference,omitempty"`
	LocalID         string  `json:"localId,omitempty"`
	Message         string  `json:"message,omitempty"`
}

// Succeeded reports whether any tier persisted (or best-effort delivered)
// the booking.
func (r Result) Succeeded() bool {
	return r.Outcome != OutcomeFailed
}

// Orchestrator walks the fixed fallback order with explicitly injected tier
// adapters. Each tier is attempted exactly once per submission; there is no
// retry within a tier and no deduplication across submissions.
type Orchestrator struct {
	Daily  interfaces.WithStoreDailyBooking
	Weekly interfaces.WithStoreWeeklyBooking
	Relay  interfaces.WithRelayBooking
	Vault  interfaces.WithVaultBooking
}

// Submit persists the validated request. Daily bookings fall back
// remote store -> form relay -> local vault; weekly bookings skip the relay.
// The tiers are awaited strictly in order.
func (o *Orchestrator) Submit(ctx context.Context, request schema.BookingRequest, quote schema.PriceQuote, logger *zerolog.Logger) Result {
	slowLog := slowlog.CreateLogger(logger)
	slowLog.Start("submit")
	defer slowLog.Stop("submit")

	if request.BookingType == schema.BookingTypeWeekly {
		return o.submitWeekly(ctx, request, quote, logger, slowLog)
	}

	return o.submitDaily(ctx, request, quote, logger, slowLog)
}

func (o *Orchestrator) submitDaily(ctx context.Context, request schema.BookingRequest, quote schema.PriceQuote, logger *zerolog.Logger, slowLog slowlog.Logger) Result {
	record := buildDailyRecord(request, quote)

	slowLog.Start("submit:resthost")
	response, err := o.Daily.StoreDailyBooking(ctx, record, logger)
	slowLog.Stop("submit:resthost")

	if err == nil && response.Status == schema.StoreResponseStatusStored {
		return Result{
			Outcome:         OutcomeConfirmed,
			Tier:            "resthost",
			RemoteReference: response.RemoteReference,
		}
	}

	logTierFailure(logger, "resthost", err, response.Errors)

	relayPayload := buildRelayPayload(request, quote)

	slowLog.Start("submit:formrelay")
	relayErr := o.Relay.RelayBooking(ctx, relayPayload, logger)
	slowLog.Stop("submit:formrelay")

	if relayErr == nil {
		return Result{
			Outcome: OutcomeRelayed,
			Tier:    "formrelay",
		}
	}

	logTierFailure(logger, "formrelay", relayErr, nil)

	return o.vaultFallback(ctx, relayPayload, logger, slowLog)
}

func (o *Orchestrator) submitWeekly(ctx context.Context, request schema.BookingRequest, quote schema.PriceQuote, logger *zerolog.Logger, slowLog slowlog.Logger) Result {
	record := buildWeeklyRecord(request, quote)

	slowLog.Start("submit:resthost")
	response, err := o.Weekly.StoreWeeklyBooking(ctx, record, logger)
	slowLog.Stop("submit:resthost")

	if err == nil && response.Status == schema.StoreResponseStatusStored {
		return Result{
			Outcome:         OutcomeConfirmed,
			Tier:            "resthost",
			RemoteReference: response.RemoteReference,
		}
	}

	logTierFailure(logger, "resthost", err, response.Errors)

	return o.vaultFallback(ctx, buildRelayPayload(request, quote), logger, slowLog)
}

func (o *Orchestrator) vaultFallback(ctx context.Context, payload schema.RelayPayload, logger *zerolog.Logger, slowLog slowlog.Logger) Result {
	slowLog.Start("submit:localvault")
	entry, err := o.Vault.VaultBooking(ctx, payload, logger)
	slowLog.Stop("submit:localvault")

	if err == nil {
		return Result{
			Outcome: OutcomeSavedLocally,
			Tier:    "localvault",
			LocalID: entry.LocalID,
		}
	}

	logTierFailure(logger, "localvault", err, nil)

	return Result{
		Outcome: OutcomeFailed,
		Message: SupportDirective,
	}
}

func logTierFailure(logger *zerolog.Logger, tier string, err error, tierErrors *schema.TierErrors) {
	event := logger.Error().
		Str("label", "submission").
		Str("tier", tier)

	if err != nil {
		event = event.Err(err)
	}

	if tierErrors != nil && len(*tierErrors) > 0 {
		event = event.Interface("tierErrors", *tierErrors)
	}

	event.Msg("Persistence tier failed, falling back")
}
