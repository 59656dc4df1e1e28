package seatmap

// ResolveZone maps a seat to its fare zone. Explicit seat overrides are
// checked first in rule order, then inclusive row ranges in rule order.
// Seats nothing matches fall back to the happy zone, so resolution is
// total and never errors.
func ResolveZone(rules []ZoneRule, code SeatCode) Zone {
	id := code.ID()

	for _, rule := range rules {
		if !rule.IsOverride() {
			continue
		}
		for _, raw := range rule.Seats {
			if normalized, err := NormalizeSeatID(raw); err == nil && normalized == id {
				return rule.Zone
			}
		}
	}

	for _, rule := range rules {
		if rule.IsOverride() {
			continue
		}
		if code.Row >= rule.FromRow && code.Row <= rule.ToRow {
			return rule.Zone
		}
	}

	return ZoneHappy
}

// ZoneOf resolves a zone against the layout's rule set.
func (l Layout) ZoneOf(code SeatCode) Zone {
	return ResolveZone(l.Zones, code)
}
