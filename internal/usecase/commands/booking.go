package commands

import (
	"context"
	"log/slog"

	"github.com/stewwratt/unbooked-demo/internal/domain/ledger"
	"github.com/stewwratt/unbooked-demo/internal/infra"
	"github.com/stewwratt/unbooked-demo/internal/infra/slotlock"
	"github.com/stewwratt/unbooked-demo/internal/pkg/clock"
	"github.com/stewwratt/unbooked-demo/internal/pkg/config"
	"github.com/stewwratt/unbooked-demo/internal/pkg/errs"
)

type CreateBookingInput struct {
	Price         int64
	Name          string
	Contact       string
	Phone         string
	Location      string
	DesiredOffer  int64
	PayoutAccount string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, slotID string, in CreateBookingInput) (*ledger.Slot, error)
}

type bookingCommandsImpl struct {
	records  SlotRecords
	payments PaymentGateway
	locks    *slotlock.Keyed
	clock    clock.Clock
	currency string
	logger   *slog.Logger
}

func NewBookingCommands(
	records SlotRecords,
	payments PaymentGateway,
	locks *slotlock.Keyed,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		records:  records,
		payments: payments,
		locks:    locks,
		clock:    clk,
		currency: cfg.Stripe.Currency,
		logger:   logger,
	}
}

// CreateBooking authorizes a hold for the booking price and appends a new
// reservation cycle to the slot ledger. The policy is append-only: a slot
// already booked accepts another booking record rather than rejecting, so
// callers get idempotent "ensure booked" semantics.
func (b *bookingCommandsImpl) CreateBooking(ctx context.Context, slotID string, in CreateBookingInput) (*ledger.Slot, error) {
	// The hold is created before the ledger write and outside the slot lock:
	// processor latency must never serialize other slots' mutations.
	intent, err := b.payments.Authorize(ctx, in.Price, b.currency, map[string]string{"slotID": slotID})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrPaymentAuthorizationFailed)
	}

	booking, err := ledger.NewBooking(ledger.BookingInput{
		Price:         in.Price,
		PaymentID:     intent.ID,
		Name:          in.Name,
		Contact:       in.Contact,
		Phone:         in.Phone,
		Location:      in.Location,
		DesiredOffer:  in.DesiredOffer,
		PayoutAccount: in.PayoutAccount,
	}, b.clock.Now())
	if err != nil {
		b.releaseHold(ctx, intent.ID)
		return nil, errs.Mark(err, errs.ErrInvalidLedger)
	}

	unlock := b.locks.Lock(slotID)
	defer unlock()

	raw, err := b.records.Get(ctx, slotID)
	if err != nil {
		b.releaseHold(ctx, intent.ID)
		return nil, mapStoreErr(err)
	}

	slot := ledger.Decode(raw)
	slot.AppendBooking(booking)

	encoded, err := ledger.Encode(slot)
	if err != nil {
		b.releaseHold(ctx, intent.ID)
		return nil, errs.Mark(err, errs.ErrInvalidLedger)
	}

	if err := b.records.Put(ctx, slotID, encoded); err != nil {
		b.releaseHold(ctx, intent.ID)
		return nil, mapStoreErr(err)
	}

	return &slot, nil
}

// releaseHold cancels an authorization whose booking never reached the
// ledger. Best effort: an uncaptured hold lapses on its own eventually.
func (b *bookingCommandsImpl) releaseHold(ctx context.Context, intentID string) {
	if err := b.payments.Cancel(ctx, intentID); err != nil {
		b.logger.Warn("failed to release orphaned hold", "intent_id", intentID, "error", err)
	}
}

func mapStoreErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.ErrSlotNotFound
	}
	return errs.Mark(err, errs.ErrStoreUnavailable)
}
