//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stewwratt/unbooked-demo/internal/domain/ledger"
	"github.com/stewwratt/unbooked-demo/internal/infra"
	"github.com/stewwratt/unbooked-demo/internal/pkg/clock"
	"github.com/stewwratt/unbooked-demo/internal/pkg/config"
	"github.com/stewwratt/unbooked-demo/internal/pkg/errs"
	"github.com/stewwratt/unbooked-demo/internal/usecase/commands"
	"github.com/stewwratt/unbooked-demo/internal/usecase/queries"
	"github.com/stewwratt/unbooked-demo/tests/common/builder"
	commandsmock "github.com/stewwratt/unbooked-demo/tests/mock/commands"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SlotQueriesTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockRecords *commandsmock.MockSlotRecords
	clock       *clock.MockClock
	sut         queries.SlotQueries
}

func (s *SlotQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRecords = commandsmock.NewMockSlotRecords(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))
	s.sut = queries.NewSlotQueries(s.mockRecords, s.clock, config.NewTestConfig())
}

func (s *SlotQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSlotQueriesSuite(t *testing.T) {
	suite.Run(t, new(SlotQueriesTestSuite))
}

func (s *SlotQueriesTestSuite) TestGetSlot() {
	ctx := context.Background()

	s.Run("decodes the stored ledger", func() {
		raw, err := ledger.Encode(builder.NewSlotBuilder().
			Booked(builder.NewBookingBuilder().BuildDomain()).BuildDomain())
		s.Require().NoError(err)
		s.mockRecords.EXPECT().Get(gomock.Any(), "evt1").Return(raw, nil)

		slot, getErr := s.sut.GetSlot(ctx, "evt1")
		s.Require().NoError(getErr)
		s.Equal(ledger.StatusBooked, slot.Status)
	})

	s.Run("free-text description yields the default ledger", func() {
		s.mockRecords.EXPECT().Get(gomock.Any(), "evt1").Return("Haircut with Steven", nil)

		slot, err := s.sut.GetSlot(ctx, "evt1")
		s.Require().NoError(err)
		s.Equal(ledger.StatusAvailable, slot.Status)
		s.Equal(ledger.DefaultOriginalPrice, slot.OriginalPrice)
	})

	s.Run("missing event maps to not found", func() {
		s.mockRecords.EXPECT().Get(gomock.Any(), "gone").
			Return("", infra.WrapGatewayErr(infra.KindNotFound, "event not found", errors.New("404")))

		_, err := s.sut.GetSlot(ctx, "gone")
		s.ErrorIs(err, errs.ErrSlotNotFound)
	})
}

func (s *SlotQueriesTestSuite) TestGetPrice() {
	ctx := context.Background()

	s.Run("booked slot quotes the recommended price", func() {
		raw, err := ledger.Encode(builder.NewSlotBuilder().
			Booked(builder.NewBookingBuilder().BuildDomain()).BuildDomain())
		s.Require().NoError(err)
		s.mockRecords.EXPECT().Get(gomock.Any(), "evt1").Return(raw, nil)

		price, priceErr := s.sut.GetPrice(ctx, "evt1")
		s.Require().NoError(priceErr)
		s.Equal(int64(18000), price)
	})

	s.Run("available slot quotes the original price", func() {
		raw, err := ledger.Encode(builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) {
			b.OriginalPrice = 9000
		}).BuildDomain())
		s.Require().NoError(err)
		s.mockRecords.EXPECT().Get(gomock.Any(), "evt1").Return(raw, nil)

		price, priceErr := s.sut.GetPrice(ctx, "evt1")
		s.Require().NoError(priceErr)
		s.Equal(int64(9000), price)
	})
}

func (s *SlotQueriesTestSuite) TestListUpcoming() {
	ctx := context.Background()

	s.Run("maps each record to a view with decoded status and price", func() {
		bookedRaw, err := ledger.Encode(builder.NewSlotBuilder().
			Booked(builder.NewBookingBuilder().BuildDomain()).BuildDomain())
		s.Require().NoError(err)

		start := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
		s.mockRecords.EXPECT().List(gomock.Any(), s.clock.Now(), "Complete Barber Services", 10).
			Return([]commands.SlotRecord{
				{ID: "evt1", Summary: "Haircut", Raw: bookedRaw, Start: start, End: start.Add(30 * time.Minute)},
				{ID: "evt2", Summary: "Haircut", Raw: "plain description"},
			}, nil)

		views, listErr := s.sut.ListUpcoming(ctx)
		s.Require().NoError(listErr)
		s.Require().Len(views, 2)

		s.Equal(ledger.StatusBooked, views[0].Status)
		s.Equal(int64(18000), views[0].Price)
		s.Equal(start, views[0].Start)

		s.Equal(ledger.StatusAvailable, views[1].Status)
		s.Equal(ledger.DefaultOriginalPrice, views[1].Price)
	})

	s.Run("store failure maps to unavailable", func() {
		s.mockRecords.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, infra.WrapGatewayErr(infra.KindUnavailable, "store down", errors.New("503")))

		_, err := s.sut.ListUpcoming(ctx)
		s.ErrorIs(err, errs.ErrStoreUnavailable)
	})
}
