//go:build unit || e2e

package builder

import (
	"time"

	"github.com/stewwratt/unbooked-demo/internal/domain/ledger"
	reqdto "github.com/stewwratt/unbooked-demo/internal/handler/dto/request"
)

type SlotBuilder struct {
	Status             ledger.Status
	OriginalPrice      int64
	LatestBookingPrice int64
	RecommendedPrice   int64
	SuggestedOffer     int64
	Bookings           []ledger.Booking
}

func NewSlotBuilder() *SlotBuilder {
	return &SlotBuilder{
		Status:        ledger.StatusAvailable,
		OriginalPrice: ledger.DefaultOriginalPrice,
		Bookings:      []ledger.Booking{},
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

// Booked appends a reservation cycle and derives the price fields the way a
// live ledger would carry them.
func (b *SlotBuilder) Booked(booking ledger.Booking) *SlotBuilder {
	b.Bookings = append(b.Bookings, booking)
	b.Status = ledger.StatusBooked
	b.LatestBookingPrice = booking.Price
	b.RecommendedPrice = ledger.RecommendedPrice(booking.Price, booking.DesiredOffer)
	return b
}

func (b *SlotBuilder) BuildDomain() ledger.Slot {
	return ledger.Slot{
		Status:             b.Status,
		OriginalPrice:      b.OriginalPrice,
		LatestBookingPrice: b.LatestBookingPrice,
		RecommendedPrice:   b.RecommendedPrice,
		SuggestedOffer:     b.SuggestedOffer,
		Bookings:           b.Bookings,
	}
}

type BookingBuilder struct {
	BookingID     string
	Price         int64
	PaymentID     string
	Name          string
	Contact       string
	Phone         string
	Location      string
	DesiredOffer  int64
	PayoutAccount string
	BookedAt      time.Time
	Offers        []ledger.Offer
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		BookingID:     "booking_1700000000000",
		Price:         12000,
		PaymentID:     "pi_holder",
		Name:          "Jordan Holder",
		Contact:       "holder@example.com",
		Phone:         "+61400000001",
		Location:      "Melbourne",
		DesiredOffer:  3000,
		PayoutAccount: "acct_holder",
		BookedAt:      time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithOffer(o ledger.Offer) *BookingBuilder {
	b.Offers = append(b.Offers, o)
	return b
}

func (b *BookingBuilder) BuildDomain() ledger.Booking {
	return ledger.Booking{
		BookingID:                  b.BookingID,
		Price:                      b.Price,
		PaymentID:                  b.PaymentID,
		Name:                       b.Name,
		Contact:                    b.Contact,
		Phone:                      b.Phone,
		Location:                   b.Location,
		PayoutAccount:              b.PayoutAccount,
		AmountAuthorisedForPayment: b.Price,
		PaymentAuthorised:          b.PaymentID != "",
		DesiredOffer:               b.DesiredOffer,
		BookedAt:                   b.BookedAt,
		Offers:                     b.Offers,
	}
}

func (b *BookingBuilder) BuildDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		Price:         b.Price,
		Name:          b.Name,
		Email:         b.Contact,
		Phone:         b.Phone,
		Location:      b.Location,
		DesiredOffer:  b.DesiredOffer,
		PayoutAccount: b.PayoutAccount,
	}
}

type OfferBuilder struct {
	OfferID         string
	OfferAmount     int64
	OfferBy         string
	Name            string
	Phone           string
	Location        string
	OfferAt         time.Time
	OfferValidUntil time.Time
	PartialAmount   int64
	FullAmount      int64
	FullPaymentID   string
}

func NewOfferBuilder() *OfferBuilder {
	offerAt := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	return &OfferBuilder{
		OfferID:         "offer_1700000360000",
		OfferAmount:     20000,
		OfferBy:         "buyer@example.com",
		Name:            "Sam Buyer",
		Phone:           "+61400000002",
		Location:        "Melbourne",
		OfferAt:         offerAt,
		OfferValidUntil: offerAt.Add(30 * time.Minute),
		PartialAmount:   1000,
		FullAmount:      19000,
		FullPaymentID:   "pi_offer",
	}
}

func (b *OfferBuilder) With(mutate func(*OfferBuilder)) *OfferBuilder {
	mutate(b)
	return b
}

func (b *OfferBuilder) BuildDomain() ledger.Offer {
	return ledger.Offer{
		OfferID:               b.OfferID,
		OfferAmount:           b.OfferAmount,
		OfferBy:               b.OfferBy,
		Name:                  b.Name,
		Phone:                 b.Phone,
		Location:              b.Location,
		OfferAt:               b.OfferAt,
		OfferValidUntil:       b.OfferValidUntil,
		PartialPaymentAmount:  b.PartialAmount,
		FullPaymentAmount:     b.FullAmount,
		FullPaymentID:         b.FullPaymentID,
		FullPaymentAuthorized: b.FullPaymentID != "",
		PaymentSplit:          true,
	}
}

func (b *OfferBuilder) BuildDTO() reqdto.AddOfferRequest {
	return reqdto.AddOfferRequest{
		OfferAmount: b.OfferAmount,
		Email:       b.OfferBy,
		Name:        b.Name,
		Phone:       b.Phone,
		Location:    b.Location,
	}
}
