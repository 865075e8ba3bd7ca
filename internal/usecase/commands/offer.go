package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/stewwratt/unbooked-demo/internal/domain/ledger"
	"github.com/stewwratt/unbooked-demo/internal/infra/notify"
	"github.com/stewwratt/unbooked-demo/internal/infra/slotlock"
	"github.com/stewwratt/unbooked-demo/internal/pkg/clock"
	"github.com/stewwratt/unbooked-demo/internal/pkg/config"
	"github.com/stewwratt/unbooked-demo/internal/pkg/errs"
)

type AddOfferInput struct {
	OfferAmount int64
	OfferBy     string
	Name        string
	Phone       string
	Location    string
}

// AddOfferResult reports a committed offer. When the holder alert could not
// be delivered the accompanying error is marked ErrNotificationFailed and the
// result is still populated: the ledger write already happened and the caller
// must handle the partial success explicitly.
type AddOfferResult struct {
	Slot            *ledger.Slot
	Offer           ledger.Offer
	NotificationSID string
}

type OfferCommands interface {
	AddOffer(ctx context.Context, slotID string, in AddOfferInput) (*AddOfferResult, error)
	SetSuggestedOffer(ctx context.Context, slotID string, amount int64) (*ledger.Slot, error)
	ResolveOfferResponse(ctx context.Context, slotID, fromPhone string, accepted bool) (*ledger.Slot, error)
	ResolveOfferReply(ctx context.Context, fromPhone string, accepted bool) (*ledger.Slot, error)
}

type offerCommandsImpl struct {
	records  SlotRecords
	payments PaymentGateway
	notifier Notifier
	locks    *slotlock.Keyed
	clock    clock.Clock
	cfg      config.Config
	logger   *slog.Logger
}

func NewOfferCommands(
	records SlotRecords,
	payments PaymentGateway,
	notifier Notifier,
	locks *slotlock.Keyed,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) OfferCommands {
	return &offerCommandsImpl{
		records:  records,
		payments: payments,
		notifier: notifier,
		locks:    locks,
		clock:    clk,
		cfg:      cfg,
		logger:   logger,
	}
}

// AddOffer authorizes the full offer amount as a single hold, appends the
// offer to the active booking, and alerts the current holder by SMS. The
// price check runs twice: once before paying the processor round trip, and
// again inside the slot lock against the re-read ledger.
func (o *offerCommandsImpl) AddOffer(ctx context.Context, slotID string, in AddOfferInput) (*AddOfferResult, error) {
	raw, err := o.records.Get(ctx, slotID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	snapshot := ledger.Decode(raw)
	if _, ok := snapshot.ActiveBooking(); !ok {
		return nil, errs.ErrNoActiveBooking
	}
	if _, err := ledger.SplitOffer(in.OfferAmount, snapshot.CurrentPrice()); err != nil {
		return nil, errs.ErrOfferTooLow
	}

	intent, err := o.payments.Authorize(ctx, in.OfferAmount, o.cfg.Stripe.Currency, map[string]string{"slotID": slotID})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrPaymentAuthorizationFailed)
	}

	slot, offer, err := o.appendOffer(ctx, slotID, in, intent.ID)
	if err != nil {
		o.releaseHold(ctx, intent.ID)
		return nil, err
	}

	result := &AddOfferResult{Slot: slot, Offer: offer}

	holder, _ := slot.ActiveBooking()
	sid, sendErr := o.notifier.Send(ctx, holder.Phone, notify.OfferBody(offer.OfferAmount))
	if sendErr != nil {
		// Ledger write is already committed; notification failure must not
		// roll it back, only be reported as a distinct condition.
		return result, errs.Mark(sendErr, errs.ErrNotificationFailed)
	}
	result.NotificationSID = sid

	return result, nil
}

func (o *offerCommandsImpl) appendOffer(ctx context.Context, slotID string, in AddOfferInput, intentID string) (*ledger.Slot, ledger.Offer, error) {
	unlock := o.locks.Lock(slotID)
	defer unlock()

	raw, err := o.records.Get(ctx, slotID)
	if err != nil {
		return nil, ledger.Offer{}, mapStoreErr(err)
	}

	slot := ledger.Decode(raw)
	if _, ok := slot.ActiveBooking(); !ok {
		return nil, ledger.Offer{}, errs.ErrNoActiveBooking
	}

	offer, err := ledger.NewOffer(ledger.OfferInput{
		OfferAmount: in.OfferAmount,
		OfferBy:     in.OfferBy,
		Name:        in.Name,
		Phone:       in.Phone,
		Location:    in.Location,
		PaymentID:   intentID,
	}, slot.CurrentPrice(), o.clock.Now(), o.cfg.Offer.ValidFor)
	if err != nil {
		return nil, ledger.Offer{}, errs.ErrOfferTooLow
	}

	if err := slot.AppendOffer(offer); err != nil {
		return nil, ledger.Offer{}, errs.ErrNoActiveBooking
	}

	encoded, err := ledger.Encode(slot)
	if err != nil {
		return nil, ledger.Offer{}, errs.Mark(err, errs.ErrInvalidLedger)
	}
	if err := o.records.Put(ctx, slotID, encoded); err != nil {
		return nil, ledger.Offer{}, mapStoreErr(err)
	}

	return &slot, offer, nil
}

// SetSuggestedOffer updates the seller-set floor on the slot metadata. It
// never touches the bookings history.
func (o *offerCommandsImpl) SetSuggestedOffer(ctx context.Context, slotID string, amount int64) (*ledger.Slot, error) {
	if amount <= 0 {
		return nil, errs.Mark(ledger.ErrNonPositiveAmount, errs.ErrInvalidLedger)
	}

	unlock := o.locks.Lock(slotID)
	defer unlock()

	raw, err := o.records.Get(ctx, slotID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	slot := ledger.Decode(raw)
	slot.SuggestedOffer = amount

	encoded, err := ledger.Encode(slot)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidLedger)
	}
	if err := o.records.Put(ctx, slotID, encoded); err != nil {
		return nil, mapStoreErr(err)
	}

	return &slot, nil
}

// ResolveOfferResponse settles the holder's yes/no decision on the latest
// pending offer. Expiry is evaluated here, lazily, against the wall clock:
// a response landing after offerValidUntil is a reported no-op.
func (o *offerCommandsImpl) ResolveOfferResponse(ctx context.Context, slotID, fromPhone string, accepted bool) (*ledger.Slot, error) {
	offer, holderPayout, err := o.pendingOfferSnapshot(ctx, slotID, fromPhone)
	if err != nil {
		return nil, err
	}

	// Payment settlement happens between the two locked sections so no
	// in-process lock is held across processor latency.
	var partialTransferID string
	if accepted {
		partialTransferID, err = o.settleSplit(ctx, offer, holderPayout)
		if err != nil {
			return nil, err
		}
	} else {
		o.releaseHold(ctx, offer.FullPaymentID)
	}

	return o.commitResolution(ctx, slotID, offer.OfferID, accepted, partialTransferID)
}

// ResolveOfferReply routes an inbound SMS decision to the slot whose active
// booking is held by the sender. The webhook carries no slot id, so the
// holder's phone number is the join key.
func (o *offerCommandsImpl) ResolveOfferReply(ctx context.Context, fromPhone string, accepted bool) (*ledger.Slot, error) {
	records, err := o.records.List(ctx, o.clock.Now(), o.cfg.Calendar.ServiceQuery, 50)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	for _, rec := range records {
		slot := ledger.Decode(rec.Raw)
		holder, ok := slot.ActiveBooking()
		if !ok || !samePhone(holder.Phone, fromPhone) {
			continue
		}
		if len(holder.Offers) == 0 {
			continue
		}
		return o.ResolveOfferResponse(ctx, rec.ID, fromPhone, accepted)
	}

	return nil, errs.ErrResponderMismatch
}

func (o *offerCommandsImpl) pendingOfferSnapshot(ctx context.Context, slotID, fromPhone string) (ledger.Offer, string, error) {
	unlock := o.locks.Lock(slotID)
	defer unlock()

	raw, err := o.records.Get(ctx, slotID)
	if err != nil {
		return ledger.Offer{}, "", mapStoreErr(err)
	}

	slot := ledger.Decode(raw)
	holder, ok := slot.ActiveBooking()
	if !ok {
		return ledger.Offer{}, "", errs.ErrNoActiveBooking
	}
	if !samePhone(holder.Phone, fromPhone) {
		return ledger.Offer{}, "", errs.ErrResponderMismatch
	}

	pending, ok := holder.PendingOffer(o.clock.Now())
	if !ok {
		if latest, exists := holder.LatestOffer(); exists && latest.Expired(o.clock.Now()) && !latest.OfferAccepted && !latest.OfferDeclined {
			return ledger.Offer{}, "", errs.ErrOfferExpired
		}
		return ledger.Offer{}, "", errs.ErrNoPendingOffer
	}

	return *pending, holder.PayoutAccount, nil
}

// settleSplit captures the single authorization for the full offer amount,
// then transfers the holder's share out of it. The two destination legs sum
// to the captured total by construction of the split.
func (o *offerCommandsImpl) settleSplit(ctx context.Context, offer ledger.Offer, holderPayout string) (string, error) {
	if err := o.payments.Capture(ctx, offer.FullPaymentID, offer.OfferAmount); err != nil {
		return "", errs.Mark(err, errs.ErrPaymentCaptureFailed)
	}

	destination := holderPayout
	if destination == "" {
		// Legacy bookings predate payout accounts; the holder's share stays
		// on the provider balance for manual settlement.
		destination = o.cfg.Stripe.ProviderAccount
		o.logger.Warn("holder has no payout account, partial leg settles to provider",
			"offer_id", offer.OfferID)
	}

	transferID, err := o.payments.Transfer(ctx, offer.PartialPaymentAmount, o.cfg.Stripe.Currency, destination, offer.FullPaymentID)
	if err != nil {
		return "", errs.Mark(err, errs.ErrPaymentCaptureFailed)
	}
	return transferID, nil
}

func (o *offerCommandsImpl) commitResolution(ctx context.Context, slotID, offerID string, accepted bool, partialTransferID string) (*ledger.Slot, error) {
	unlock := o.locks.Lock(slotID)
	defer unlock()

	raw, err := o.records.Get(ctx, slotID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	slot := ledger.Decode(raw)
	holder, ok := slot.ActiveBooking()
	if !ok {
		return nil, errs.ErrNoActiveBooking
	}

	var offer *ledger.Offer
	for i := range holder.Offers {
		if holder.Offers[i].OfferID == offerID {
			offer = &holder.Offers[i]
			break
		}
	}
	if offer == nil {
		return nil, errs.ErrNoPendingOffer
	}

	outgoingHold := holder.PaymentID
	outgoingFulfilled := holder.PaymentFulfilled

	if accepted {
		offer.FullPaymentFulfilled = true
		offer.PartialPaymentID = partialTransferID
		offer.PartialPaymentCaptured = true
		slot.AcceptOffer(offer, o.clock.Now())
	} else {
		offer.OfferDeclined = true
		offer.FullPaymentAuthorized = false
	}

	encoded, err := ledger.Encode(slot)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidLedger)
	}
	if err := o.records.Put(ctx, slotID, encoded); err != nil {
		return nil, mapStoreErr(err)
	}

	// The outgoing holder gave up the slot: their own uncaptured hold is
	// released now that the transfer is committed.
	if accepted && !outgoingFulfilled && outgoingHold != "" {
		o.releaseHold(ctx, outgoingHold)
	}

	return &slot, nil
}

func (o *offerCommandsImpl) releaseHold(ctx context.Context, intentID string) {
	if intentID == "" {
		return
	}
	if err := o.payments.Cancel(ctx, intentID); err != nil {
		o.logger.Warn("failed to release hold", "intent_id", intentID, "error", err)
	}
}

func samePhone(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}
