// Package repository contains the data access layer, separated from HTTP
// handlers.  This file defines sentinel errors shared across
// repositories so that handlers can translate failure scenarios into the
// right HTTP status.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot proceed because
// of dependent state, such as removing a workplace that still has future
// active bookings.  Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// Not-found sentinels, one per aggregate.
var (
	ErrCoworkingNotFound     = errors.New("coworking not found")
	ErrWorkplaceNotFound     = errors.New("workplace not found")
	ErrWorkplaceTypeNotFound = errors.New("workplace type not found")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrImageNotFound         = errors.New("image not found")
)

// ErrAlreadyPaid is returned when a payment already exists for a booking.
var ErrAlreadyPaid = errors.New("booking already paid")

// isDuplicateErr reports whether err is a MySQL duplicate key violation
// (error 1062).
func isDuplicateErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isFKErr reports whether err is a MySQL foreign key violation
// (errors 1451/1452).
func isFKErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "1451") || strings.Contains(err.Error(), "1452")
}
