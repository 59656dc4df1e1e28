package seatmap

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Layout describes the cabin: row count, the two column blocks either side
// of the aisle, and the ordered zone rules. Privacy eligibility never
// crosses a block or a row, so block membership is part of the layout.
type Layout struct {
	Rows       int        `json:"rows" validate:"required,gt=0"`
	LeftBlock  []string   `json:"left_block" validate:"required,min=1"`
	RightBlock []string   `json:"right_block" validate:"required,min=1"`
	Zones      []ZoneRule `json:"zones" validate:"required,min=1,dive"`
}

// ZoneRule assigns a zone either to an explicit list of seats or to an
// inclusive row range. Rules are evaluated in order; seat overrides always
// win over row ranges.
type ZoneRule struct {
	Zone    Zone     `json:"zone" validate:"required"`
	Seats   []string `json:"seats,omitempty"`
	FromRow int      `json:"from_row,omitempty"`
	ToRow   int      `json:"to_row,omitempty"`
}

// IsOverride reports whether the rule is an explicit seat-list override.
func (r ZoneRule) IsOverride() bool {
	return len(r.Seats) > 0
}

var layoutValidate = validator.New()

// Validate checks the layout before any leg state is built on top of it.
// Errors wrap ErrInvalidZoneConfig and are fatal to leg initialization.
func (l Layout) Validate() error {
	if err := layoutValidate.Struct(l); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidZoneConfig, err)
	}

	seen := make(map[string]struct{}, len(l.LeftBlock)+len(l.RightBlock))
	for _, col := range append(append([]string{}, l.LeftBlock...), l.RightBlock...) {
		if col == "" {
			return fmt.Errorf("%w: empty column label", ErrInvalidZoneConfig)
		}
		if _, dup := seen[col]; dup {
			return fmt.Errorf("%w: column %s appears in both blocks", ErrInvalidZoneConfig, col)
		}
		seen[col] = struct{}{}
	}

	for i, rule := range l.Zones {
		if !rule.Zone.IsValid() {
			return fmt.Errorf("%w: rule %d has unknown zone %q", ErrInvalidZoneConfig, i, rule.Zone)
		}
		if rule.IsOverride() {
			for _, raw := range rule.Seats {
				if _, err := ParseSeatCode(raw); err != nil {
					return fmt.Errorf("%w: rule %d override seat %q: %v", ErrInvalidZoneConfig, i, raw, err)
				}
			}
			continue
		}
		if rule.FromRow <= 0 || rule.ToRow < rule.FromRow {
			return fmt.Errorf("%w: rule %d has invalid row range %d-%d", ErrInvalidZoneConfig, i, rule.FromRow, rule.ToRow)
		}
	}

	return nil
}

// Contains reports whether the seat exists in this layout.
func (l Layout) Contains(code SeatCode) bool {
	if code.Row < 1 || code.Row > l.Rows {
		return false
	}
	return l.columnKnown(code.Column)
}

func (l Layout) columnKnown(col string) bool {
	for _, c := range l.LeftBlock {
		if c == col {
			return true
		}
	}
	for _, c := range l.RightBlock {
		if c == col {
			return true
		}
	}
	return false
}

// BlockOf returns the column group the column belongs to, or nil for an
// unknown column. Eligibility checks treat nil as "no neighbours".
func (l Layout) BlockOf(col string) []string {
	for _, c := range l.LeftBlock {
		if c == col {
			return l.LeftBlock
		}
	}
	for _, c := range l.RightBlock {
		if c == col {
			return l.RightBlock
		}
	}
	return nil
}

// RowNeighbours returns every other seat in the same row and block as the
// given seat, in block column order.
func (l Layout) RowNeighbours(code SeatCode) []SeatCode {
	block := l.BlockOf(code.Column)
	if block == nil {
		return nil
	}
	neighbours := make([]SeatCode, 0, len(block)-1)
	for _, col := range block {
		if col == code.Column {
			continue
		}
		neighbours = append(neighbours, SeatCode{Row: code.Row, Column: col})
	}
	return neighbours
}

// DefaultLayout is the single-aisle cabin the service ships with:
// 33 rows, ABC on the left, HJK on the right, front premium in row 1,
// premium in rows 2-5 and happy everywhere else.
func DefaultLayout() Layout {
	return Layout{
		Rows:       33,
		LeftBlock:  []string{"A", "B", "C"},
		RightBlock: []string{"H", "J", "K"},
		Zones: []ZoneRule{
			{Zone: ZoneFrontPremium, FromRow: 1, ToRow: 1},
			{Zone: ZonePremium, FromRow: 2, ToRow: 5},
			{Zone: ZoneHappy, FromRow: 6, ToRow: 33},
		},
	}
}

// LayoutWithRows is the default cabin resized to the configured row
// count. Rows past the last zone rule resolve to the happy fallback;
// a non-positive count keeps the default size.
func LayoutWithRows(rows int) Layout {
	l := DefaultLayout()
	if rows > 0 {
		l.Rows = rows
	}
	return l
}
