// Package availability answers whether a place is free for a range of nights.
//
// Ranges are half-open: a stay covers the nights from Start up to, but not
// including, End. A guest checking out on the 5th and another checking in on
// the 5th do not overlap.
package availability

import (
	"errors"
	"time"

	"github.com/Eursukkul/hbnb-service/internal/models"
)

const DateLayout = "2006-01-02"

var ErrInvalidRange = errors.New("end date must be after start date")

// DateRange is the half-open interval [Start, End) of calendar days in UTC.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: Day(start), End: Day(end)}
	if !r.End.After(r.Start) {
		return DateRange{}, ErrInvalidRange
	}
	return r, nil
}

// ParseDateRange parses two YYYY-MM-DD dates.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(s, e)
}

func Of(b *models.Booking) DateRange {
	return DateRange{Start: Day(b.CheckIn), End: Day(b.CheckOut)}
}

func (r DateRange) Overlaps(o DateRange) bool {
	return r.Start.Before(o.End) && r.End.After(o.Start)
}

func (r DateRange) Nights() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// Overlaps reports whether any booking in bookings with one of the given
// statuses, other than excludeID, shares a night with rng.
func Overlaps(bookings []models.Booking, rng DateRange, excludeID string, statuses ...models.BookingStatus) bool {
	for i := range bookings {
		if blocks(&bookings[i], rng, excludeID, statuses) {
			return true
		}
	}
	return false
}

// Conflicting returns the bookings Overlaps would have matched, in input order.
func Conflicting(bookings []models.Booking, rng DateRange, excludeID string, statuses ...models.BookingStatus) []models.Booking {
	var out []models.Booking
	for i := range bookings {
		if blocks(&bookings[i], rng, excludeID, statuses) {
			out = append(out, bookings[i])
		}
	}
	return out
}

func blocks(b *models.Booking, rng DateRange, excludeID string, statuses []models.BookingStatus) bool {
	if excludeID != "" && b.ID == excludeID {
		return false
	}
	if !hasStatus(b.Status, statuses) {
		return false
	}
	return Of(b).Overlaps(rng)
}

func hasStatus(s models.BookingStatus, statuses []models.BookingStatus) bool {
	for _, st := range statuses {
		if s == st {
			return true
		}
	}
	return false
}

// BookedDates lists every night taken by a confirmed booking that has not
// ended before from, sorted by booking order then date.
func BookedDates(bookings []models.Booking, from time.Time) []string {
	from = Day(from)
	dates := []string{}
	for i := range bookings {
		b := &bookings[i]
		if b.Status != models.StatusConfirmed {
			continue
		}
		r := Of(b)
		if !r.End.After(from) {
			continue
		}
		for d := r.Start; d.Before(r.End); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d.Format(DateLayout))
		}
	}
	return dates
}
