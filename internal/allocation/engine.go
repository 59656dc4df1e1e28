package allocation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"seatly/internal/pricing"
	"seatly/internal/seatmap"
	"seatly/pkg/logger"
)

// RefundPublisher forwards refund events to the billing collaborator.
// The engine never applies money movement itself.
type RefundPublisher interface {
	PublishRefund(ctx context.Context, event RefundEvent) error
}

// Engine owns every open leg's seat state and is its only writer. All
// transitions are linearized behind a per-leg lock and are atomic: a
// failed transition leaves state exactly as it was. Reads are served from
// snapshots taken under the lock.
type Engine struct {
	layout    seatmap.Layout
	prices    *pricing.Table
	repo      StateRepository
	publisher RefundPublisher
	log       *logger.Logger

	mu   sync.RWMutex
	legs map[string]*legEntry
}

type legEntry struct {
	mu    sync.Mutex
	state *LegState
}

// NewEngine validates the cabin layout up front; a malformed zone rule
// set prevents any leg from being opened.
func NewEngine(layout seatmap.Layout, prices *pricing.Table, repo StateRepository, publisher RefundPublisher) (*Engine, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if repo == nil {
		repo = NewMemoryStateRepository()
	}
	return &Engine{
		layout:    layout,
		prices:    prices,
		repo:      repo,
		publisher: publisher,
		log:       logger.GetDefault(),
		legs:      make(map[string]*legEntry),
	}, nil
}

// Layout returns the cabin layout the engine was built with.
func (e *Engine) Layout() seatmap.Layout {
	return e.layout
}

// Prices returns the engine's pricing table.
func (e *Engine) Prices() *pricing.Table {
	return e.prices
}

// OpenLeg registers a leg and hydrates its state: from the durable record
// when one exists, otherwise seeded from the passengers' file seats.
// Reopening an already-open leg is a no-op. File seats that do not parse
// or fall outside the cabin are tolerated as unassigned.
func (e *Engine) OpenLeg(ctx context.Context, legID string, passengers []Passenger) error {
	if legID == "" || len(passengers) == 0 {
		return fmt.Errorf("%w: leg %q", ErrInvalidReference, legID)
	}

	e.mu.Lock()
	if _, open := e.legs[legID]; open {
		e.mu.Unlock()
		return nil
	}
	entry := &legEntry{state: NewLegState(legID, normalizeFileSeats(e.layout, passengers))}
	e.legs[legID] = entry
	e.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	snap, err := e.repo.Load(ctx, legID)
	switch {
	case errors.Is(err, ErrStateNotFound):
		entry.state.seedFromFile()
		if err := e.repo.Save(ctx, entry.state.Snapshot()); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		entry.state.restore(snap)
		// A stored record with no seats at all still seeds from file:
		// matches first-open behaviour when the record was created empty.
		if !entry.state.hasAnyAssignment() && entry.state.hasAnyFileSeat() {
			entry.state.seedFromFile()
			if err := e.repo.Save(ctx, entry.state.Snapshot()); err != nil {
				return err
			}
		}
	}

	e.log.Info("leg opened",
		slog.String("leg_id", legID),
		slog.Int("passengers", len(passengers)),
	)
	return nil
}

func normalizeFileSeats(layout seatmap.Layout, passengers []Passenger) []Passenger {
	out := make([]Passenger, len(passengers))
	for i, p := range passengers {
		if p.FileSeat != "" {
			code, err := seatmap.ParseSeatCode(p.FileSeat)
			if err != nil || !layout.Contains(code) {
				p.FileSeat = ""
			} else {
				p.FileSeat = code.ID()
			}
		}
		out[i] = p
	}
	return out
}

// CloseLeg drops the leg's in-memory state and purges its stored
// record. A leg that was never opened is a no-op.
func (e *Engine) CloseLeg(ctx context.Context, legID string) error {
	e.mu.Lock()
	_, ok := e.legs[legID]
	if ok {
		delete(e.legs, legID)
	}
	e.mu.Unlock()
	if !ok {
		return nil
	}
	if err := e.repo.Delete(ctx, legID); err != nil && !errors.Is(err, ErrStateNotFound) {
		return err
	}
	e.log.Info("leg closed", slog.String("leg_id", legID))
	return nil
}

// OpenLegIDs returns the ids of every currently open leg, unordered.
func (e *Engine) OpenLegIDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := make([]string, 0, len(e.legs))
	for id := range e.legs {
		ids = append(ids, id)
	}
	return ids
}

func (e *Engine) entry(legID string) (*legEntry, error) {
	e.mu.RLock()
	entry, ok := e.legs[legID]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: leg %q not open", ErrInvalidReference, legID)
	}
	return entry, nil
}

// resolveSeat canonicalizes a seat id and checks it exists in the cabin.
func (e *Engine) resolveSeat(raw string) (seatmap.SeatCode, error) {
	code, err := seatmap.ParseSeatCode(raw)
	if err != nil {
		return seatmap.SeatCode{}, fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}
	if !e.layout.Contains(code) {
		return seatmap.SeatCode{}, fmt.Errorf("%w: seat %s outside cabin", ErrInvalidReference, code.ID())
	}
	return code, nil
}

//  TRANSITIONS

// Book assigns the passenger to the seat, cascading over both stores:
// a privacy hold by someone else is bought out (their whole set released,
// one refund event for the sold seat), a sitting passenger is evicted
// seat and privacy set both, without refund, and the mover's own privacy
// set is cleared before the move. Booking one's own current seat is a
// no-op.
func (e *Engine) Book(ctx context.Context, legID, paxID, rawSeat string) (LegSnapshot, []RefundEvent, error) {
	entry, err := e.entry(legID)
	if err != nil {
		return LegSnapshot{}, nil, err
	}
	code, err := e.resolveSeat(rawSeat)
	if err != nil {
		return LegSnapshot{}, nil, err
	}
	seatID := code.ID()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	state := entry.state

	if !state.hasPassenger(paxID) {
		return LegSnapshot{}, nil, fmt.Errorf("%w: passenger %q on leg %s", ErrInvalidReference, paxID, legID)
	}
	if state.SeatOf(paxID) == seatID {
		return state.Snapshot(), nil, nil
	}

	before := state.Snapshot()
	var events []RefundEvent

	// (i) seat privacy-held by someone else: owner loses the whole set,
	// refund fires for the sold seat only
	if owner := state.OwnerOf(seatID); owner != "" && owner != paxID {
		zone := e.layout.ZoneOf(code)
		state.clearPrivacyOf(owner)
		events = append(events, newRefundEvent(legID, owner, seatID, zone, e.prices.RefundFor(zone)))
	}

	// (ii) seat occupied by another passenger: eviction is a cancel for
	// the sitter, seat and privacy set both gone, no refund
	if sitter := state.PassengerAt(seatID); sitter != "" && sitter != paxID {
		state.release(sitter)
		state.clearPrivacyOf(sitter)
	}

	// (iii) passenger moving seats keeps no privacy from the old seat
	if prev := state.SeatOf(paxID); prev != "" {
		state.clearPrivacyOf(paxID)
	}

	// (iv) take the seat
	if err := state.assign(paxID, seatID); err != nil {
		state.restore(before)
		return LegSnapshot{}, nil, err
	}

	snap := state.Snapshot()
	if err := e.repo.Save(ctx, snap); err != nil {
		state.restore(before)
		return LegSnapshot{}, nil, err
	}

	e.publishRefunds(ctx, events)
	return snap, events, nil
}

// Cancel frees the passenger's seat and their whole privacy set. No sale
// happened, so no refund. Idempotent.
func (e *Engine) Cancel(ctx context.Context, legID, paxID string) (LegSnapshot, error) {
	return e.mutate(ctx, legID, paxID, func(state *LegState) error {
		state.release(paxID)
		state.clearPrivacyOf(paxID)
		return nil
	})
}

// TogglePrivacy flips the passenger's privacy hold on a seat adjacent to
// their current seat. A hold owned by another passenger is rejected with
// ErrPrivacySeatTaken; an ineligible seat (wrong row or block, occupied,
// or the passenger has no seat) is a caller bug and fails closed.
func (e *Engine) TogglePrivacy(ctx context.Context, legID, paxID, rawSeat string) (LegSnapshot, error) {
	code, err := e.resolveSeat(rawSeat)
	if err != nil {
		return LegSnapshot{}, err
	}
	seatID := code.ID()

	return e.mutate(ctx, legID, paxID, func(state *LegState) error {
		if owner := state.OwnerOf(seatID); owner != "" && owner != paxID {
			return ErrPrivacySeatTaken
		}
		if state.OwnerOf(seatID) != paxID {
			// toggling on: must be eligible right now
			if !contains(state.EligiblePrivacySeats(e.layout, paxID), seatID) {
				return fmt.Errorf("%w: seat %s not eligible for privacy by passenger %s", ErrInvalidReference, seatID, paxID)
			}
		}
		return state.togglePrivacy(paxID, seatID)
	})
}

// ClearPrivacy releases every privacy seat the passenger holds on the
// leg, keeping their assignment.
func (e *Engine) ClearPrivacy(ctx context.Context, legID, paxID string) (LegSnapshot, error) {
	return e.mutate(ctx, legID, paxID, func(state *LegState) error {
		state.clearPrivacyOf(paxID)
		return nil
	})
}

// ResetToFile reseeds every assignment from the original file seats and
// empties the privacy store.
func (e *Engine) ResetToFile(ctx context.Context, legID string) (LegSnapshot, error) {
	return e.mutateLeg(ctx, legID, func(state *LegState) error {
		state.seedFromFile()
		return nil
	})
}

// ClearAll empties every assignment and every privacy entry on the leg.
func (e *Engine) ClearAll(ctx context.Context, legID string) (LegSnapshot, error) {
	return e.mutateLeg(ctx, legID, func(state *LegState) error {
		state.clearAll()
		return nil
	})
}

// ClearPassengerAllLegs cancels the passenger on every open leg where
// they appear. Legs are cleared one by one; each leg stays atomic.
func (e *Engine) ClearPassengerAllLegs(ctx context.Context, paxID string) (int, error) {
	cleared := 0
	for _, legID := range e.OpenLegIDs() {
		entry, err := e.entry(legID)
		if err != nil {
			continue
		}
		entry.mu.Lock()
		if !entry.state.hasPassenger(paxID) {
			entry.mu.Unlock()
			continue
		}
		touched := entry.state.SeatOf(paxID) != "" || len(entry.state.PrivacySeatsOf(paxID)) > 0
		if touched {
			before := entry.state.Snapshot()
			entry.state.release(paxID)
			entry.state.clearPrivacyOf(paxID)
			if err := e.repo.Save(ctx, entry.state.Snapshot()); err != nil {
				entry.state.restore(before)
				entry.mu.Unlock()
				return cleared, err
			}
			cleared++
		}
		entry.mu.Unlock()
	}
	return cleared, nil
}

// mutate runs a passenger-scoped transition under the leg lock with
// save-or-rollback semantics.
func (e *Engine) mutate(ctx context.Context, legID, paxID string, fn func(*LegState) error) (LegSnapshot, error) {
	entry, err := e.entry(legID)
	if err != nil {
		return LegSnapshot{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	state := entry.state

	if !state.hasPassenger(paxID) {
		return LegSnapshot{}, fmt.Errorf("%w: passenger %q on leg %s", ErrInvalidReference, paxID, legID)
	}

	before := state.Snapshot()
	if err := fn(state); err != nil {
		state.restore(before)
		return LegSnapshot{}, err
	}

	snap := state.Snapshot()
	if err := e.repo.Save(ctx, snap); err != nil {
		state.restore(before)
		return LegSnapshot{}, err
	}
	return snap, nil
}

// mutateLeg is mutate without a passenger precondition.
func (e *Engine) mutateLeg(ctx context.Context, legID string, fn func(*LegState) error) (LegSnapshot, error) {
	entry, err := e.entry(legID)
	if err != nil {
		return LegSnapshot{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	state := entry.state

	before := state.Snapshot()
	if err := fn(state); err != nil {
		state.restore(before)
		return LegSnapshot{}, err
	}

	snap := state.Snapshot()
	if err := e.repo.Save(ctx, snap); err != nil {
		state.restore(before)
		return LegSnapshot{}, err
	}
	return snap, nil
}

func (e *Engine) publishRefunds(ctx context.Context, events []RefundEvent) {
	if e.publisher == nil {
		return
	}
	for _, ev := range events {
		if err := e.publisher.PublishRefund(ctx, ev); err != nil {
			// The event is still returned to the caller; billing catches
			// up from the transition result.
			e.log.Error("failed to publish refund event",
				slog.String("event_id", ev.EventID.String()),
				slog.String("leg_id", ev.LegID),
				slog.String("owner_id", ev.OwnerID),
				slog.Any("error", err),
			)
		} else {
			e.log.Info("refund event published",
				slog.String("event_id", ev.EventID.String()),
				slog.String("owner_id", ev.OwnerID),
				slog.String("seat_id", ev.SeatID),
				slog.Int64("refund_thb", ev.RefundTHB),
			)
		}
	}
}

//  READS

// Snapshot returns a consistent copy of the leg's current state.
func (e *Engine) Snapshot(legID string) (LegSnapshot, error) {
	entry, err := e.entry(legID)
	if err != nil {
		return LegSnapshot{}, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.state.Snapshot(), nil
}

// Passengers returns the leg's passengers in booking order.
func (e *Engine) Passengers(legID string) ([]Passenger, error) {
	entry, err := e.entry(legID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.state.Passengers(), nil
}

// EligiblePrivacySeats lists the seats the passenger may currently mark
// as privacy.
func (e *Engine) EligiblePrivacySeats(legID, paxID string) ([]string, error) {
	entry, err := e.entry(legID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if !entry.state.hasPassenger(paxID) {
		return nil, fmt.Errorf("%w: passenger %q on leg %s", ErrInvalidReference, paxID, legID)
	}
	return entry.state.EligiblePrivacySeats(e.layout, paxID), nil
}

// QuoteSeat prices a seat for a prospective buyer: base price, or base
// plus markup while the seat is privacy-held by someone else. The markup
// is display-time only; the Book transition absorbs it into the refund.
func (e *Engine) QuoteSeat(legID, paxID, rawSeat string) (SeatQuote, error) {
	entry, err := e.entry(legID)
	if err != nil {
		return SeatQuote{}, err
	}
	code, err := e.resolveSeat(rawSeat)
	if err != nil {
		return SeatQuote{}, err
	}
	seatID := code.ID()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	state := entry.state

	if !state.hasPassenger(paxID) {
		return SeatQuote{}, fmt.Errorf("%w: passenger %q on leg %s", ErrInvalidReference, paxID, legID)
	}

	zone := e.layout.ZoneOf(code)
	quote := SeatQuote{
		SeatID:   seatID,
		Zone:     zone,
		PriceTHB: e.prices.BasePrice(zone),
		Occupied: state.PassengerAt(seatID) != "",
		OwnSeat:  state.SeatOf(paxID) == seatID,
	}
	if owner := state.OwnerOf(seatID); owner != "" && owner != paxID {
		quote.MarkedUp = true
		quote.PrivacyOwner = owner
		quote.PriceTHB = e.prices.WithMarkup(zone)
	}
	return quote, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
