package commands

import (
	"context"
	"log/slog"

	"github.com/stewwratt/unbooked-demo/internal/domain/ledger"
	"github.com/stewwratt/unbooked-demo/internal/infra/slotlock"
	"github.com/stewwratt/unbooked-demo/internal/pkg/config"
	"github.com/stewwratt/unbooked-demo/internal/pkg/errs"
)

type PaymentCommands interface {
	CreateIntent(ctx context.Context, amount int64, currency, slotID string) (Intent, error)
	CaptureBooking(ctx context.Context, slotID string, amount int64) (*ledger.Slot, error)
}

type paymentCommandsImpl struct {
	records  SlotRecords
	payments PaymentGateway
	locks    *slotlock.Keyed
	cfg      config.Config
	logger   *slog.Logger
}

func NewPaymentCommands(
	records SlotRecords,
	payments PaymentGateway,
	locks *slotlock.Keyed,
	cfg config.Config,
	logger *slog.Logger,
) PaymentCommands {
	return &paymentCommandsImpl{
		records:  records,
		payments: payments,
		locks:    locks,
		cfg:      cfg,
		logger:   logger,
	}
}

// CreateIntent opens a manual-capture hold for the front-end confirmation
// flow. The slot id travels as metadata only; nothing is written to the
// ledger until the booking or offer lands.
func (p *paymentCommandsImpl) CreateIntent(ctx context.Context, amount int64, currency, slotID string) (Intent, error) {
	if currency == "" {
		currency = p.cfg.Stripe.Currency
	}
	intent, err := p.payments.Authorize(ctx, amount, currency, map[string]string{"slotID": slotID})
	if err != nil {
		return Intent{}, errs.Mark(err, errs.ErrPaymentAuthorizationFailed)
	}
	return intent, nil
}

// CaptureBooking settles the active booking's hold, in full or partially.
// The timing trigger (capture ahead of service delivery) lives in external
// scheduling; this is the explicit "capture now, this amount" operation it
// calls. Retrying after success is safe: the gateway treats an already
// captured hold as captured.
func (p *paymentCommandsImpl) CaptureBooking(ctx context.Context, slotID string, amount int64) (*ledger.Slot, error) {
	unlock := p.locks.Lock(slotID)

	raw, err := p.records.Get(ctx, slotID)
	if err != nil {
		unlock()
		return nil, mapStoreErr(err)
	}

	slot := ledger.Decode(raw)
	holder, ok := slot.ActiveBooking()
	if !ok {
		unlock()
		return nil, errs.ErrNoActiveBooking
	}
	intentID := holder.PaymentID
	if intentID == "" {
		unlock()
		return nil, errs.Mark(errs.New("active booking has no authorization"), errs.ErrPaymentCaptureFailed)
	}
	if amount <= 0 || amount > holder.AmountAuthorisedForPayment {
		amount = holder.AmountAuthorisedForPayment
	}
	unlock()

	if err := p.payments.Capture(ctx, intentID, amount); err != nil {
		return nil, errs.Mark(err, errs.ErrPaymentCaptureFailed)
	}

	unlock = p.locks.Lock(slotID)
	defer unlock()

	raw, err = p.records.Get(ctx, slotID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	slot = ledger.Decode(raw)
	holder, ok = slot.ActiveBooking()
	if !ok || holder.PaymentID != intentID {
		// The cycle changed between capture and commit; the capture itself
		// stands, only the flag write is skipped.
		p.logger.Warn("booking cycle changed during capture", "slot_id", slotID, "intent_id", intentID)
		return &slot, nil
	}

	holder.PaymentFulfilled = true

	encoded, err := ledger.Encode(slot)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidLedger)
	}
	if err := p.records.Put(ctx, slotID, encoded); err != nil {
		return nil, mapStoreErr(err)
	}

	return &slot, nil
}
