package ledger

import (
	"fmt"
	"time"
)

type OfferInput struct {
	OfferAmount int64
	OfferBy     string
	Name        string
	Phone       string
	Location    string
	PaymentID   string
}

// Split divides an offer between the original holder (partial) and the
// service provider (full). The holder receives half the overflow above the
// current price, rounded down; the provider keeps the rest, so the legs
// always sum exactly to the offer amount.
type Split struct {
	Partial int64
	Full    int64
}

func SplitOffer(offerAmount, currentPrice int64) (Split, error) {
	overflow := offerAmount - currentPrice
	if overflow <= 0 {
		return Split{}, ErrOfferTooLow
	}
	partial := overflow / 2
	return Split{
		Partial: partial,
		Full:    offerAmount - partial,
	}, nil
}

// NewOffer builds an offer against the given current price, valid for the
// supplied window from now.
func NewOffer(in OfferInput, currentPrice int64, now time.Time, validFor time.Duration) (Offer, error) {
	split, err := SplitOffer(in.OfferAmount, currentPrice)
	if err != nil {
		return Offer{}, err
	}

	return Offer{
		OfferID:               fmt.Sprintf("offer_%d", now.UnixMilli()),
		OfferAmount:           in.OfferAmount,
		OfferBy:               in.OfferBy,
		Name:                  in.Name,
		Phone:                 in.Phone,
		Location:              in.Location,
		OfferAt:               now.UTC(),
		OfferValidUntil:       now.UTC().Add(validFor),
		PartialPaymentAmount:  split.Partial,
		FullPaymentAmount:     split.Full,
		FullPaymentID:         in.PaymentID,
		FullPaymentAuthorized: in.PaymentID != "",
		PaymentSplit:          true,
	}, nil
}

func (o Offer) Expired(now time.Time) bool {
	return now.After(o.OfferValidUntil)
}

// AppendOffer attaches an offer to the active booking. Earlier offers are
// history and stay untouched.
func (s *Slot) AppendOffer(o Offer) error {
	active, ok := s.ActiveBooking()
	if !ok {
		return ErrNoActiveBooking
	}
	active.Offers = append(active.Offers, o)
	return nil
}

// AcceptOffer marks the offer accepted and starts a new reservation cycle
// held by the offerer at the offer amount. The outgoing cycle stays in the
// history untouched apart from the offer's own payment flags.
func (s *Slot) AcceptOffer(o *Offer, now time.Time) {
	o.OfferAccepted = true

	next := Booking{
		BookingID:                  fmt.Sprintf("booking_%d", now.UnixMilli()),
		Price:                      o.OfferAmount,
		PaymentID:                  o.FullPaymentID,
		Name:                       o.Name,
		Contact:                    o.OfferBy,
		Phone:                      o.Phone,
		Location:                   o.Location,
		AmountAuthorisedForPayment: o.OfferAmount,
		PaymentAuthorised:          o.FullPaymentAuthorized,
		PaymentFulfilled:           o.FullPaymentFulfilled,
		BookedAt:                   now.UTC(),
	}
	s.Bookings = append(s.Bookings, next)
	s.Status = StatusBooked
	s.LatestBookingPrice = o.OfferAmount
	s.RecommendedPrice = RecommendedPrice(o.OfferAmount, 0)
}
