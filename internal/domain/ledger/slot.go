package ledger

import (
	"errors"
	"time"
)

var (
	ErrInvalidStatus     = errors.New("invalid slot status")
	ErrBookedWithoutBook = errors.New("booked slot has no bookings")
	ErrSplitMismatch     = errors.New("offer split does not sum to offer amount")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrOfferTooLow       = errors.New("offer does not exceed current price")
	ErrNoActiveBooking   = errors.New("no active booking")
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBooked:
		return true
	default:
		return false
	}
}

// DefaultOriginalPrice seeds ledgers for slots this system has never touched.
const DefaultOriginalPrice int64 = 10000

// Slot is the ledger document serialized into the record store's free-text
// field. Field names match the stored JSON and must not change without a
// migration of every live slot description.
type Slot struct {
	Status             Status    `json:"status"`
	OriginalPrice      int64     `json:"originalPrice"`
	LatestBookingPrice int64     `json:"latestBookingPrice,omitempty"`
	RecommendedPrice   int64     `json:"recommendedPrice,omitempty"`
	SuggestedOffer     int64     `json:"suggestedOffer,omitempty"`
	Bookings           []Booking `json:"bookings"`
}

// Booking is one reservation cycle. Prior elements of Slot.Bookings are
// historical and must never be mutated; only the last element is active.
type Booking struct {
	BookingID                  string    `json:"bookingId"`
	Price                      int64     `json:"price"`
	PaymentID                  string    `json:"paymentID"`
	Name                       string    `json:"name"`
	Contact                    string    `json:"contact"`
	Phone                      string    `json:"phone"`
	Location                   string    `json:"location"`
	AmountAuthorisedForPayment int64     `json:"amountAuthorisedForPayment"`
	PaymentAuthorised          bool      `json:"paymentAuthorised"`
	PaymentFulfilled           bool      `json:"paymentFulfilled"`
	DesiredOffer               int64     `json:"desiredOffer"`
	PayoutAccount              string    `json:"payoutAccount,omitempty"`
	BookedAt                   time.Time `json:"bookedAt"`
	Offers                     []Offer   `json:"offers,omitempty"`
}

// Offer is a third party's bid against the active booking. The partial leg is
// owed to the original holder, the full leg to the service provider.
type Offer struct {
	OfferID                string    `json:"offerId"`
	OfferAmount            int64     `json:"offerAmount"`
	OfferBy                string    `json:"offerBy"`
	Name                   string    `json:"name,omitempty"`
	Phone                  string    `json:"phone"`
	Location               string    `json:"location"`
	OfferAt                time.Time `json:"offerAt"`
	OfferValidUntil        time.Time `json:"offerValidUntil"`
	OfferAccepted          bool      `json:"offerAccepted"`
	OfferDeclined          bool      `json:"offerDeclined,omitempty"`
	PartialPaymentID       string    `json:"partialPaymentID,omitempty"`
	PartialPaymentAmount   int64     `json:"partialPaymentAmount"`
	PartialPaymentCaptured bool      `json:"partialPaymentCaptured"`
	FullPaymentID          string    `json:"fullPaymentID,omitempty"`
	FullPaymentAmount      int64     `json:"fullPaymentAmount"`
	FullPaymentAuthorized  bool      `json:"fullPaymentAuthorized"`
	FullPaymentFulfilled   bool      `json:"fullPaymentFulfilled"`
	PaymentSplit           bool      `json:"paymentSplit"`
}

// Default returns the empty ledger written for slots never previously touched
// by this system.
func Default() Slot {
	return Slot{
		Status:        StatusAvailable,
		OriginalPrice: DefaultOriginalPrice,
		Bookings:      []Booking{},
	}
}

// ActiveBooking returns the last booking, the only one that may change or
// receive offers.
func (s *Slot) ActiveBooking() (*Booking, bool) {
	if len(s.Bookings) == 0 {
		return nil, false
	}
	return &s.Bookings[len(s.Bookings)-1], true
}

// CurrentPrice is the effective price of the slot: the recommended price once
// booked, the original price while available.
func (s Slot) CurrentPrice() int64 {
	if s.Status == StatusBooked {
		if s.RecommendedPrice > 0 {
			return s.RecommendedPrice
		}
		if s.LatestBookingPrice > 0 {
			return s.LatestBookingPrice
		}
	}
	if s.OriginalPrice > 0 {
		return s.OriginalPrice
	}
	return DefaultOriginalPrice
}

// AppendBooking starts a new reservation cycle. Policy is append-only: the
// current status is never checked, callers rely on "ensure booked" semantics.
func (s *Slot) AppendBooking(b Booking) {
	s.Bookings = append(s.Bookings, b)
	s.Status = StatusBooked
	s.LatestBookingPrice = b.Price
	s.RecommendedPrice = RecommendedPrice(b.Price, b.DesiredOffer)
}

// Validate checks the invariants every persisted ledger must satisfy. Encode
// refuses to serialize a slot that fails here.
func (s Slot) Validate() error {
	if !s.Status.IsValid() {
		return ErrInvalidStatus
	}
	if s.Status == StatusBooked && len(s.Bookings) == 0 {
		return ErrBookedWithoutBook
	}
	for i := range s.Bookings {
		b := &s.Bookings[i]
		if b.Price <= 0 {
			return ErrNonPositiveAmount
		}
		for j := range b.Offers {
			o := &b.Offers[j]
			if o.OfferAmount <= 0 {
				return ErrNonPositiveAmount
			}
			if o.PartialPaymentAmount+o.FullPaymentAmount != o.OfferAmount {
				return ErrSplitMismatch
			}
		}
	}
	return nil
}
