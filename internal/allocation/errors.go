// Package allocation implements the seat assignment and privacy ownership
// state machine. It is the only writer of per-leg seat state; everything
// else reads snapshots it produces.
package allocation

import "errors"

// ErrSeatConflict is returned when a seat is already legitimately held by
// a different passenger. Recoverable: the caller should offer another
// seat. Handlers translate this into an HTTP 409 response.
var ErrSeatConflict = errors.New("seat already assigned to another passenger")

// ErrPrivacySeatTaken is returned when a privacy toggle targets a seat
// whose privacy is owned by a different passenger. Recoverable: surfaced
// as a warning, never fatal to engine state.
var ErrPrivacySeatTaken = errors.New("seat is privacy-held by another passenger")

// ErrInvalidReference is returned for an unknown leg, passenger or seat
// id. It marks a programmer error: a correctly wired caller can never
// reach it, and the engine fails closed without mutating state.
var ErrInvalidReference = errors.New("unknown leg, passenger or seat reference")

// ErrStateNotFound is returned by state repositories when no durable
// record exists for a leg yet. The engine then seeds from file seats.
var ErrStateNotFound = errors.New("leg state not found")
