package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	stay := Reservation{
		CheckIn:  NewDate(2026, time.October, 10),
		CheckOut: NewDate(2026, time.October, 12),
	}

	assert.True(t, stay.Overlaps(NewDate(2026, time.October, 11), NewDate(2026, time.October, 13)))
	assert.True(t, stay.Overlaps(NewDate(2026, time.October, 9), NewDate(2026, time.October, 11)))
	assert.True(t, stay.Overlaps(NewDate(2026, time.October, 9), NewDate(2026, time.October, 13)))
	assert.True(t, stay.Overlaps(NewDate(2026, time.October, 10), NewDate(2026, time.October, 12)))

	// Half-open intervals: touching stays do not overlap.
	assert.False(t, stay.Overlaps(NewDate(2026, time.October, 12), NewDate(2026, time.October, 14)))
	assert.False(t, stay.Overlaps(NewDate(2026, time.October, 8), NewDate(2026, time.October, 10)))
	assert.False(t, stay.Overlaps(NewDate(2026, time.October, 13), NewDate(2026, time.October, 15)))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusConfirmed))
	assert.True(t, ValidStatus(StatusCancelled))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("confirmed"))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusConfirmed, StatusCancelled))

	assert.False(t, CanTransition(StatusConfirmed, StatusPending))
	assert.False(t, CanTransition(StatusCancelled, StatusPending))
	assert.False(t, CanTransition(StatusCancelled, StatusConfirmed))
	assert.False(t, CanTransition(StatusPending, StatusPending))
}

func TestNights(t *testing.T) {
	r := Reservation{
		CheckIn:  NewDate(2026, time.October, 10),
		CheckOut: NewDate(2026, time.October, 13),
	}
	assert.Equal(t, 3, r.Nights())
}
