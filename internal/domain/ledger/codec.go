package ledger

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// The record store renders descriptions as rich text, so stored JSON comes
// back decorated with markup, non-breaking spaces, entity-encoded quotes and
// literal newlines. Decode normalizes all of that before parsing.
var (
	htmlTagRe     = regexp.MustCompile(`<[^>]*>`)
	zeroWidthRe   = regexp.MustCompile("[​-‍\uFEFF]")
	legacyPriceRe = regexp.MustCompile(`Price:\s*(\d+)`)
)

func sanitize(raw string) string {
	s := htmlTagRe.ReplaceAllString(raw, "")
	s = zeroWidthRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&amp;", "&")
	return strings.TrimSpace(s)
}

// Decode parses a raw description into a ledger. Non-JSON content is a
// normal condition for slots never touched by this system, so it degrades to
// the default empty ledger instead of failing; a legacy "Price: <n>" marker
// still seeds the original price. Decode never returns an error.
func Decode(raw string) Slot {
	cleaned := sanitize(raw)

	var s Slot
	if err := json.Unmarshal([]byte(cleaned), &s); err != nil {
		return legacyFallback(cleaned)
	}

	if !s.Status.IsValid() {
		s.Status = StatusAvailable
	}
	if s.OriginalPrice <= 0 {
		s.OriginalPrice = DefaultOriginalPrice
	}
	if s.Bookings == nil {
		s.Bookings = []Booking{}
	}
	return s
}

func legacyFallback(cleaned string) Slot {
	s := Default()
	if m := legacyPriceRe.FindStringSubmatch(cleaned); m != nil {
		if price, err := strconv.ParseInt(m[1], 10, 64); err == nil && price > 0 {
			s.OriginalPrice = price
		}
	}
	return s
}

// Encode serializes the ledger to the canonical stored form. A slot that
// violates the ledger invariants is never committed.
func Encode(s Slot) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
