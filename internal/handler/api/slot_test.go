//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stewwratt/unbooked-demo/internal/domain/ledger"
	"github.com/stewwratt/unbooked-demo/internal/handler/api"
	resdto "github.com/stewwratt/unbooked-demo/internal/handler/dto/response"
	"github.com/stewwratt/unbooked-demo/internal/pkg/errs"
	"github.com/stewwratt/unbooked-demo/internal/usecase/commands"
	"github.com/stewwratt/unbooked-demo/internal/usecase/queries"
	"github.com/stewwratt/unbooked-demo/tests/common/builder"
	"github.com/stewwratt/unbooked-demo/tests/common/httptest"
	"github.com/stewwratt/unbooked-demo/tests/common/testutil"
	commandsmock "github.com/stewwratt/unbooked-demo/tests/mock/commands"
	queriesmock "github.com/stewwratt/unbooked-demo/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SlotHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockCtrl            *gomock.Controller
	mockBookingCommands *commandsmock.MockBookingCommands
	mockOfferCommands   *commandsmock.MockOfferCommands
	mockQueries         *queriesmock.MockSlotQueries
	handler             *api.SlotHandler
}

func (s *SlotHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockBookingCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockOfferCommands = commandsmock.NewMockOfferCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSlotQueries(s.mockCtrl)
	s.handler = api.NewSlotHandler(s.mockBookingCommands, s.mockOfferCommands, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_email", "provider@example.com")
		c.Next()
	}

	// Setup routes
	s.router.GET("/slots", s.handler.ListSlots)
	s.router.GET("/slots/:id/price", s.handler.GetPrice)
	s.router.POST("/slots/:id/bookings", s.handler.CreateBooking)
	s.router.POST("/slots/:id/offers", s.handler.AddOffer)
	s.router.PUT("/slots/:id/suggested-offer", authMiddleware, s.handler.SetSuggestedOffer)
}

func (s *SlotHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSlotHandlerSuite(t *testing.T) {
	suite.Run(t, new(SlotHandlerTestSuite))
}

type testCaseSlot struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestListSlots
// ================================================================================

func (s *SlotHandlerTestSuite) TestListSlots() {
	url := "/slots"
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	s.Run("success: returns 200 with slot views", func() {
		views := []queries.SlotView{
			{ID: "evt1", Summary: "Complete Barber Services", Start: start, End: start.Add(time.Hour), Status: ledger.StatusBooked, Price: 18000},
			{ID: "evt2", Summary: "Complete Barber Services", Start: start.Add(2 * time.Hour), End: start.Add(3 * time.Hour), Status: ledger.StatusAvailable, Price: 9000},
		}
		s.mockQueries.EXPECT().ListUpcoming(gomock.Any()).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body []resdto.SlotListItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
		s.Equal("evt1", body[0].ID)
		s.Equal("booked", body[0].Status)
		s.Equal(int64(18000), body[0].Price)
		s.Equal("available", body[1].Status)
	})

	s.Run("error: 503 when the record store is unreachable", func() {
		s.mockQueries.EXPECT().ListUpcoming(gomock.Any()).
			Return(nil, errs.Mark(errors.New("connect refused"), errs.ErrStoreUnavailable)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "unavailable")
	})
}

// ================================================================================
// TestGetPrice
// ================================================================================

func (s *SlotHandlerTestSuite) TestGetPrice() {
	url := "/slots/evt1/price"

	s.Run("success: returns 200 with effective price", func() {
		s.mockQueries.EXPECT().GetPrice(gomock.Any(), "evt1").Return(int64(18000), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body resdto.PriceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(18000), body.Price)
	})

	s.Run("error: 404 for unknown slot", func() {
		s.mockQueries.EXPECT().GetPrice(gomock.Any(), "evt1").
			Return(int64(0), errs.ErrSlotNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "not found")
	})
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *SlotHandlerTestSuite) TestCreateBooking() {
	url := "/slots/evt1/bookings"

	reqBody := builder.NewBookingBuilder().BuildDTO()
	bookedSlot := builder.NewSlotBuilder().
		Booked(builder.NewBookingBuilder().BuildDomain()).
		BuildDomain()

	s.Run("success: returns 201 with the updated ledger", func() {
		s.mockBookingCommands.EXPECT().
			CreateBooking(gomock.Any(), "evt1", gomock.Any()).
			DoAndReturn(func(_ any, _ string, in commands.CreateBookingInput) (*ledger.Slot, error) {
				s.Equal(reqBody.Price, in.Price)
				s.Equal(reqBody.Email, in.Contact)
				s.Equal(reqBody.Phone, in.Phone)
				return &bookedSlot, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("booked", body.Status)
		s.Len(body.Bookings, 1)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseSlot{
			{name: "missing field: price", mutate: testutil.Field("price", nil), expectCode: http.StatusBadRequest},
			{name: "invalid price (0)", mutate: testutil.Field("price", 0), expectCode: http.StatusBadRequest},
			{name: "missing field: name", mutate: testutil.Field("name", nil), expectCode: http.StatusBadRequest},
			{name: "invalid email", mutate: testutil.Field("email", "not-an-email"), expectCode: http.StatusBadRequest},
			{name: "missing field: phone", mutate: testutil.Field("phone", nil), expectCode: http.StatusBadRequest},
			{name: "negative desiredOffer", mutate: testutil.Field("desiredOffer", -1), expectCode: http.StatusBadRequest},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 404 for unknown slot", func() {
		s.mockBookingCommands.EXPECT().
			CreateBooking(gomock.Any(), "evt1", gomock.Any()).
			Return(nil, errs.ErrSlotNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "not found")
	})

	s.Run("error: 402 when the hold cannot be authorized", func() {
		s.mockBookingCommands.EXPECT().
			CreateBooking(gomock.Any(), "evt1", gomock.Any()).
			Return(nil, errs.Mark(errors.New("card declined"), errs.ErrPaymentAuthorizationFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusPaymentRequired, "authorize")
	})
}

// ================================================================================
// TestAddOffer
// ================================================================================

func (s *SlotHandlerTestSuite) TestAddOffer() {
	url := "/slots/evt1/offers"

	reqBody := builder.NewOfferBuilder().BuildDTO()
	offer := builder.NewOfferBuilder().BuildDomain()
	slotWithOffer := builder.NewSlotBuilder().
		Booked(builder.NewBookingBuilder().WithOffer(offer).BuildDomain()).
		BuildDomain()

	s.Run("success: returns 201 with the updated ledger", func() {
		s.mockOfferCommands.EXPECT().
			AddOffer(gomock.Any(), "evt1", gomock.Any()).
			Return(&commands.AddOfferResult{Slot: &slotWithOffer, Offer: offer, NotificationSID: "SM123"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Len(body.Bookings, 1)
		s.Len(body.Bookings[0].Offers, 1)
		s.Equal(offer.OfferAmount, body.Bookings[0].Offers[0].OfferAmount)
	})

	s.Run("success: 201 with warning when the holder alert fails", func() {
		s.mockOfferCommands.EXPECT().
			AddOffer(gomock.Any(), "evt1", gomock.Any()).
			Return(
				&commands.AddOfferResult{Slot: &slotWithOffer, Offer: offer},
				errs.Mark(errors.New("sms gateway down"), errs.ErrNotificationFailed),
			).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body struct {
			Slot    resdto.SlotResponse `json:"slot"`
			Warning string              `json:"warning"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Len(body.Slot.Bookings, 1)
		s.Contains(body.Warning, "notification failed")
	})

	s.Run("error: 422 when the offer does not beat the current price", func() {
		s.mockOfferCommands.EXPECT().
			AddOffer(gomock.Any(), "evt1", gomock.Any()).
			Return(nil, errs.ErrOfferTooLow).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "higher")
	})

	s.Run("error: 400 when the slot has no active booking", func() {
		s.mockOfferCommands.EXPECT().
			AddOffer(gomock.Any(), "evt1", gomock.Any()).
			Return(nil, errs.ErrNoActiveBooking).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "No active bookings")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseSlot{
			{name: "missing field: offerAmount", mutate: testutil.Field("offerAmount", nil), expectCode: http.StatusBadRequest},
			{name: "invalid offerAmount (0)", mutate: testutil.Field("offerAmount", 0), expectCode: http.StatusBadRequest},
			{name: "missing field: phone", mutate: testutil.Field("phone", nil), expectCode: http.StatusBadRequest},
			{name: "invalid email", mutate: testutil.Field("email", "nope"), expectCode: http.StatusBadRequest},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})
}

// ================================================================================
// TestSetSuggestedOffer
// ================================================================================

func (s *SlotHandlerTestSuite) TestSetSuggestedOffer() {
	url := "/slots/evt1/suggested-offer"
	reqBody := map[string]any{"amount": 4000}

	s.Run("success: returns 200 with the updated ledger", func() {
		updated := builder.NewSlotBuilder().
			Booked(builder.NewBookingBuilder().BuildDomain()).
			With(func(b *builder.SlotBuilder) { b.SuggestedOffer = 4000 }).
			BuildDomain()
		s.mockOfferCommands.EXPECT().
			SetSuggestedOffer(gomock.Any(), "evt1", int64(4000)).
			Return(&updated, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		var body resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(4000), body.SuggestedOffer)
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 400 when amount is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
