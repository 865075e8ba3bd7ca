package commands

import (
	"context"
	"time"
)

// SlotRecord is one calendar entry as the record store returns it: identity,
// schedule, and the opaque description text carrying the serialized ledger.
type SlotRecord struct {
	ID      string
	Summary string
	Raw     string
	Start   time.Time
	End     time.Time
}

// SlotRecords is the record store contract: one opaque text field per slot,
// read and overwritten whole. The store exposes no compare-and-swap, no
// versioning and no locking; see the concurrency notes in DESIGN.md.
type SlotRecords interface {
	Get(ctx context.Context, slotID string) (string, error)
	Put(ctx context.Context, slotID, raw string) error
	List(ctx context.Context, from time.Time, query string, max int) ([]SlotRecord, error)
}

// Intent is an authorization hold created by the payment processor: funds
// earmarked but not yet transferred.
type Intent struct {
	ID           string
	ClientSecret string
}

// PaymentGateway is the two-phase payment contract. Capture must treat an
// already-captured intent as success so retries never double-charge.
type PaymentGateway interface {
	Authorize(ctx context.Context, amount int64, currency string, metadata map[string]string) (Intent, error)
	Capture(ctx context.Context, intentID string, amount int64) error
	Cancel(ctx context.Context, intentID string) error
	Transfer(ctx context.Context, amount int64, currency, destination, sourceIntent string) (string, error)
}

type Notifier interface {
	Send(ctx context.Context, toPhone, body string) (string, error)
}
