package request

type CreateBookingRequest struct {
	Price         int64  `json:"price" binding:"required,gt=0"`
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	Location      string `json:"location"`
	DesiredOffer  int64  `json:"desiredOffer" binding:"gte=0"`
	PayoutAccount string `json:"payoutAccount"`
}

type AddOfferRequest struct {
	OfferAmount int64  `json:"offerAmount" binding:"required,gt=0"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	Location    string `json:"location"`
}

type SetSuggestedOfferRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

type CreateIntentRequest struct {
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	Currency string `json:"currency"`
	SlotID   string `json:"slotID" binding:"required"`
}

type CaptureRequest struct {
	Amount int64 `json:"amount" binding:"gte=0"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
