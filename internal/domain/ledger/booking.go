package ledger

import (
	"fmt"
	"time"
)

type BookingInput struct {
	Price         int64
	PaymentID     string
	Name          string
	Contact       string
	Phone         string
	Location      string
	DesiredOffer  int64
	PayoutAccount string
}

// NewBooking builds a booking record with a time-derived id matching the
// stored ledger format (booking_<unix ms>).
func NewBooking(in BookingInput, now time.Time) (Booking, error) {
	if in.Price <= 0 {
		return Booking{}, ErrNonPositiveAmount
	}
	if in.DesiredOffer < 0 {
		return Booking{}, ErrNonPositiveAmount
	}

	return Booking{
		BookingID:                  fmt.Sprintf("booking_%d", now.UnixMilli()),
		Price:                      in.Price,
		PaymentID:                  in.PaymentID,
		Name:                       in.Name,
		Contact:                    in.Contact,
		Phone:                      in.Phone,
		Location:                   in.Location,
		PayoutAccount:              in.PayoutAccount,
		AmountAuthorisedForPayment: in.Price,
		PaymentAuthorised:          in.PaymentID != "",
		PaymentFulfilled:           false,
		DesiredOffer:               in.DesiredOffer,
		BookedAt:                   now.UTC(),
	}, nil
}

// RecommendedPrice is the threshold an offer must clear before the holder
// profits from giving up the slot: the doubled desired offer on top of the
// price actually paid.
func RecommendedPrice(price, desiredOffer int64) int64 {
	return price + desiredOffer*2
}

// PendingOffer returns the most recent offer that is still actionable:
// not accepted, not declined, not past its validity window.
func (b *Booking) PendingOffer(now time.Time) (*Offer, bool) {
	for i := len(b.Offers) - 1; i >= 0; i-- {
		o := &b.Offers[i]
		if o.OfferAccepted || o.OfferDeclined {
			continue
		}
		if o.Expired(now) {
			continue
		}
		return o, true
	}
	return nil, false
}

// LatestOffer returns the most recent offer regardless of state.
func (b *Booking) LatestOffer() (*Offer, bool) {
	if len(b.Offers) == 0 {
		return nil, false
	}
	return &b.Offers[len(b.Offers)-1], true
}
