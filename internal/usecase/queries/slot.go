package queries

import (
	"context"
	"time"

	"github.com/stewwratt/unbooked-demo/internal/domain/ledger"
	"github.com/stewwratt/unbooked-demo/internal/infra"
	"github.com/stewwratt/unbooked-demo/internal/pkg/clock"
	"github.com/stewwratt/unbooked-demo/internal/pkg/config"
	"github.com/stewwratt/unbooked-demo/internal/pkg/errs"
	"github.com/stewwratt/unbooked-demo/internal/usecase/commands"
)

const maxListedSlots = 10

// SlotView is the read-model row for the upcoming-slots listing.
type SlotView struct {
	ID      string
	Summary string
	Start   time.Time
	End     time.Time
	Status  ledger.Status
	Price   int64
}

type SlotQueries interface {
	GetSlot(ctx context.Context, slotID string) (*ledger.Slot, error)
	GetPrice(ctx context.Context, slotID string) (int64, error)
	ListUpcoming(ctx context.Context) ([]SlotView, error)
}

type slotQueriesImpl struct {
	records commands.SlotRecords
	clock   clock.Clock
	cfg     config.Config
}

func NewSlotQueries(records commands.SlotRecords, clk clock.Clock, cfg config.Config) SlotQueries {
	return &slotQueriesImpl{
		records: records,
		clock:   clk,
		cfg:     cfg,
	}
}

func (q *slotQueriesImpl) GetSlot(ctx context.Context, slotID string) (*ledger.Slot, error) {
	raw, err := q.records.Get(ctx, slotID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	slot := ledger.Decode(raw)
	return &slot, nil
}

// GetPrice derives the current effective price: recommended price once
// booked, original price while available.
func (q *slotQueriesImpl) GetPrice(ctx context.Context, slotID string) (int64, error) {
	slot, err := q.GetSlot(ctx, slotID)
	if err != nil {
		return 0, err
	}
	return slot.CurrentPrice(), nil
}

// ListUpcoming returns future slots for this provider's service, each with
// its decoded status and effective price.
func (q *slotQueriesImpl) ListUpcoming(ctx context.Context) ([]SlotView, error) {
	records, err := q.records.List(ctx, q.clock.Now(), q.cfg.Calendar.ServiceQuery, maxListedSlots)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	views := make([]SlotView, 0, len(records))
	for _, rec := range records {
		slot := ledger.Decode(rec.Raw)
		views = append(views, SlotView{
			ID:      rec.ID,
			Summary: rec.Summary,
			Start:   rec.Start,
			End:     rec.End,
			Status:  slot.Status,
			Price:   slot.CurrentPrice(),
		})
	}
	return views, nil
}

func mapStoreErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.ErrSlotNotFound
	}
	return errs.Mark(err, errs.ErrStoreUnavailable)
}
