package seatmap

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidZoneConfig is returned when a cabin layout carries a malformed
// zone rule set. It is fatal: a leg must not be opened on top of it.
var ErrInvalidZoneConfig = errors.New("invalid zone configuration")

// Zone is the fare class a seat belongs to. The zone decides the base
// price, the privacy fee, the third-party markup and the refund share.
type Zone string

const (
	ZoneFrontPremium Zone = "frontPremium"
	ZonePremium      Zone = "premium"
	ZoneHappy        Zone = "happy"
)

func (z Zone) IsValid() bool {
	switch z {
	case ZoneFrontPremium, ZonePremium, ZoneHappy:
		return true
	}
	return false
}

func (z Zone) String() string {
	return string(z)
}

// SeatCode identifies a single seat by row number and column letter.
// Its canonical form is "{row}{column}", e.g. "12C".
type SeatCode struct {
	Row    int
	Column string
}

func (c SeatCode) ID() string {
	return strconv.Itoa(c.Row) + c.Column
}

var (
	rowFirstPattern = regexp.MustCompile(`^(\d+)([A-Z]+)$`)
	colFirstPattern = regexp.MustCompile(`^([A-Z]+)(\d+)$`)
)

// ParseSeatCode parses a seat id in either "12C" or "C12" order into its
// canonical form. The row must be a positive integer.
func ParseSeatCode(raw string) (SeatCode, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return SeatCode{}, fmt.Errorf("empty seat code")
	}

	var rowStr, col string
	if m := rowFirstPattern.FindStringSubmatch(s); m != nil {
		rowStr, col = m[1], m[2]
	} else if m := colFirstPattern.FindStringSubmatch(s); m != nil {
		rowStr, col = m[2], m[1]
	} else {
		return SeatCode{}, fmt.Errorf("malformed seat code %q", raw)
	}

	row, err := strconv.Atoi(rowStr)
	if err != nil || row <= 0 {
		return SeatCode{}, fmt.Errorf("invalid row in seat code %q", raw)
	}

	return SeatCode{Row: row, Column: col}, nil
}

// MustSeat is a convenience for fixtures and seed data where the code is
// known to be well formed.
func MustSeat(raw string) SeatCode {
	code, err := ParseSeatCode(raw)
	if err != nil {
		panic(err)
	}
	return code
}

// NormalizeSeatID canonicalizes a raw seat id string ("c12" -> "12C").
// Returns an error for anything ParseSeatCode rejects.
func NormalizeSeatID(raw string) (string, error) {
	code, err := ParseSeatCode(raw)
	if err != nil {
		return "", err
	}
	return code.ID(), nil
}
