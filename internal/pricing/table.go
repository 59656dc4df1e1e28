package pricing

import (
	"fmt"
	"math"

	"seatly/internal/seatmap"
)

// Record holds the money rules for one fare zone. All amounts are whole
// THB; RefundShare is the fraction of the markup paid back to a privacy
// owner when their held seat is sold to someone else.
type Record struct {
	BaseTHB       int64   `json:"base_thb"`
	PrivacyFeeTHB int64   `json:"privacy_fee_thb"`
	MarkupTHB     int64   `json:"markup_thb"`
	RefundShare   float64 `json:"refund_share"`
}

// Table is a static zone -> record lookup. Unknown zones price as zero
// rather than failing: the zone resolver is total, so an unknown zone can
// only come from a miswired caller and must not break a price display.
type Table struct {
	records map[seatmap.Zone]Record
}

// NewTable validates every record and builds the lookup.
func NewTable(records map[seatmap.Zone]Record) (*Table, error) {
	for zone, rec := range records {
		if !zone.IsValid() {
			return nil, fmt.Errorf("pricing table: unknown zone %q", zone)
		}
		if rec.BaseTHB < 0 || rec.PrivacyFeeTHB < 0 || rec.MarkupTHB < 0 {
			return nil, fmt.Errorf("pricing table: negative amount for zone %s", zone)
		}
		if rec.RefundShare < 0 || rec.RefundShare > 1 {
			return nil, fmt.Errorf("pricing table: refund share %v for zone %s outside [0,1]", rec.RefundShare, zone)
		}
	}

	copied := make(map[seatmap.Zone]Record, len(records))
	for zone, rec := range records {
		copied[zone] = rec
	}
	return &Table{records: copied}, nil
}

// DefaultTable returns the production rates: flat per-zone markup, with
// the front premium zone refunding only half of it.
func DefaultTable() *Table {
	t, err := NewTable(map[seatmap.Zone]Record{
		seatmap.ZoneFrontPremium: {BaseTHB: 500, PrivacyFeeTHB: 200, MarkupTHB: 100, RefundShare: 0.5},
		seatmap.ZonePremium:      {BaseTHB: 350, PrivacyFeeTHB: 150, MarkupTHB: 70, RefundShare: 1.0},
		seatmap.ZoneHappy:        {BaseTHB: 150, PrivacyFeeTHB: 100, MarkupTHB: 50, RefundShare: 1.0},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// PriceOf returns the record for a zone, or the zero record for a zone
// the table does not know.
func (t *Table) PriceOf(zone seatmap.Zone) Record {
	return t.records[zone]
}

// BasePrice is the price a passenger pays for their own seat.
func (t *Table) BasePrice(zone seatmap.Zone) int64 {
	return t.records[zone].BaseTHB
}

// PrivacyFee is the per-seat fee the owner pays to hold a privacy seat.
func (t *Table) PrivacyFee(zone seatmap.Zone) int64 {
	return t.records[zone].PrivacyFeeTHB
}

// WithMarkup is the price shown to a passenger considering a seat that is
// privacy-held by someone else.
func (t *Table) WithMarkup(zone seatmap.Zone) int64 {
	rec := t.records[zone]
	return rec.BaseTHB + rec.MarkupTHB
}

// RefundFor is the settlement owed to a privacy owner when one of their
// held seats is sold: the privacy fee back, plus the zone's share of the
// markup rounded to whole THB, ties away from zero.
func (t *Table) RefundFor(zone seatmap.Zone) int64 {
	rec := t.records[zone]
	return rec.PrivacyFeeTHB + roundHalfAway(float64(rec.MarkupTHB)*rec.RefundShare)
}

func roundHalfAway(v float64) int64 {
	return int64(math.Round(v))
}
