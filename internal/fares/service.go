package fares

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"seatly/internal/allocation"
	"seatly/internal/seatmap"
)

type Service interface {
	LegFares(legID string) (LegFares, error)
	BookingFares(confirmationNumber string) (BookingFares, error)
	CartText(confirmationNumber string) (string, error)
}

type service struct {
	engine *allocation.Engine
}

func NewService(engine *allocation.Engine) Service {
	return &service{engine: engine}
}

// LegFares builds one line per roster passenger from the leg's current
// snapshot. Privacy seats bill at the fee of their own zone, and the
// estimated refund is what each hold would pay out if bought out today.
func (s *service) LegFares(legID string) (LegFares, error) {
	snap, err := s.engine.Snapshot(legID)
	if err != nil {
		return LegFares{}, err
	}
	passengers, err := s.engine.Passengers(legID)
	if err != nil {
		return LegFares{}, err
	}

	layout := s.engine.Layout()
	prices := s.engine.Prices()

	privacyByOwner := make(map[string][]string)
	for seatID, owner := range snap.Privacy {
		privacyByOwner[owner] = append(privacyByOwner[owner], seatID)
	}

	leg := LegFares{LegID: legID}
	for _, p := range passengers {
		line := FareLine{PassengerID: p.ID, PassengerName: p.Name}

		if seatID := snap.Assignments[p.ID]; seatID != "" {
			code, err := seatmap.ParseSeatCode(seatID)
			if err != nil {
				return LegFares{}, fmt.Errorf("stored seat %q on leg %s: %w", seatID, legID, err)
			}
			line.SeatID = seatID
			line.Zone = layout.ZoneOf(code)
			line.BaseTHB = prices.BasePrice(line.Zone)
		}

		held := privacyByOwner[p.ID]
		sort.Strings(held)
		for _, seatID := range held {
			code, err := seatmap.ParseSeatCode(seatID)
			if err != nil {
				return LegFares{}, fmt.Errorf("stored privacy seat %q on leg %s: %w", seatID, legID, err)
			}
			zone := layout.ZoneOf(code)
			line.PrivacySeatIDs = append(line.PrivacySeatIDs, seatID)
			line.PrivacyTotalTHB += prices.PrivacyFee(zone)
			line.EstRefundTHB += prices.RefundFor(zone)
		}

		line.TotalTHB = line.BaseTHB + line.PrivacyTotalTHB
		leg.Lines = append(leg.Lines, line)
		leg.TotalTHB += line.TotalTHB
	}

	return leg, nil
}

func (s *service) BookingFares(confirmationNumber string) (BookingFares, error) {
	legIDs := s.legsOf(confirmationNumber)
	if len(legIDs) == 0 {
		return BookingFares{}, fmt.Errorf("%w: no open legs for booking %s", allocation.ErrInvalidReference, confirmationNumber)
	}

	booking := BookingFares{ConfirmationNumber: confirmationNumber}
	for _, legID := range legIDs {
		leg, err := s.LegFares(legID)
		if err != nil {
			return BookingFares{}, err
		}
		booking.Legs = append(booking.Legs, leg)
		booking.GrandTotalTHB += leg.TotalTHB
	}
	return booking, nil
}

// CartText renders the booking as the plain-text summary handed to share
// and email integrations.
func (s *service) CartText(confirmationNumber string) (string, error) {
	booking, err := s.BookingFares(confirmationNumber)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Booking %s\n", booking.ConfirmationNumber)
	for _, leg := range booking.Legs {
		fmt.Fprintf(&b, "Leg %s\n", leg.LegID)
		for _, line := range leg.Lines {
			if line.SeatID == "" {
				fmt.Fprintf(&b, "  %s: no seat selected\n", line.PassengerName)
				continue
			}
			fmt.Fprintf(&b, "  %s: seat %s (%s) %d THB\n", line.PassengerName, line.SeatID, line.Zone, line.BaseTHB)
			for _, seatID := range line.PrivacySeatIDs {
				fmt.Fprintf(&b, "    privacy seat %s\n", seatID)
			}
			if line.PrivacyTotalTHB > 0 {
				fmt.Fprintf(&b, "    privacy total %d THB\n", line.PrivacyTotalTHB)
			}
		}
		fmt.Fprintf(&b, "  Leg total: %d THB\n", leg.TotalTHB)
	}
	fmt.Fprintf(&b, "Grand total: %d THB\n", booking.GrandTotalTHB)
	return b.String(), nil
}

// legsOf returns the engine's open legs for one confirmation number, in
// leg index order. Leg ids are "<confirmation>:<index>".
func (s *service) legsOf(confirmationNumber string) []string {
	prefix := confirmationNumber + ":"
	var legIDs []string
	for _, legID := range s.engine.OpenLegIDs() {
		if strings.HasPrefix(legID, prefix) {
			legIDs = append(legIDs, legID)
		}
	}
	// Sort by the numeric leg index, not the raw string, so leg 10 does
	// not land between legs 1 and 2.
	sort.Slice(legIDs, func(i, j int) bool {
		return legIndexOf(legIDs[i]) < legIndexOf(legIDs[j])
	})
	return legIDs
}

func legIndexOf(legID string) int {
	idx, err := strconv.Atoi(legID[strings.LastIndex(legID, ":")+1:])
	if err != nil {
		return 0
	}
	return idx
}
