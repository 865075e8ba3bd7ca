package response

import (
	"time"

	"github.com/jinzhu/copier"

	"github.com/stewwratt/unbooked-demo/internal/domain/ledger"
	"github.com/stewwratt/unbooked-demo/internal/usecase/queries"
)

type SlotResponse struct {
	Status             string            `json:"status"`
	OriginalPrice      int64             `json:"originalPrice"`
	LatestBookingPrice int64             `json:"latestBookingPrice,omitempty"`
	RecommendedPrice   int64             `json:"recommendedPrice,omitempty"`
	SuggestedOffer     int64             `json:"suggestedOffer,omitempty"`
	Bookings           []BookingResponse `json:"bookings"`
}

type BookingResponse struct {
	BookingID        string          `json:"bookingId"`
	Price            int64           `json:"price"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	DesiredOffer     int64           `json:"desiredOffer"`
	PaymentFulfilled bool            `json:"paymentFulfilled"`
	BookedAt         time.Time       `json:"bookedAt"`
	Offers           []OfferResponse `json:"offers,omitempty"`
}

type OfferResponse struct {
	OfferID              string    `json:"offerId"`
	OfferAmount          int64     `json:"offerAmount"`
	OfferBy              string    `json:"offerBy"`
	OfferValidUntil      time.Time `json:"offerValidUntil"`
	OfferAccepted        bool      `json:"offerAccepted"`
	OfferDeclined        bool      `json:"offerDeclined,omitempty"`
	PartialPaymentAmount int64     `json:"partialPaymentAmount"`
	FullPaymentAmount    int64     `json:"fullPaymentAmount"`
}

// FromSlot strips payment handles and holder contact details the public API
// has no business echoing back.
func FromSlot(slot *ledger.Slot) *SlotResponse {
	var resp SlotResponse
	_ = copier.Copy(&resp, slot)
	resp.Status = string(slot.Status)
	return &resp
}

type SlotListItemResponse struct {
	ID      string    `json:"id"`
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Status  string    `json:"status"`
	Price   int64     `json:"price"`
}

func FromSlotView(view queries.SlotView) SlotListItemResponse {
	return SlotListItemResponse{
		ID:      view.ID,
		Summary: view.Summary,
		Start:   view.Start,
		End:     view.End,
		Status:  string(view.Status),
		Price:   view.Price,
	}
}

type PriceResponse struct {
	Price int64 `json:"price"`
}

type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
