package dialect

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

const msPerDay = 24 * 60 * 60 * 1000

var oaEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// OLE automation dates outside this open range are rejected.
const (
	minOADate = -657435.0
	maxOADate = 2958466.0
)

// ToOADate converts the wall clock of t to an OLE automation date: days since
// 1899-12-30 with the time of day as fraction. For negative dates the
// fraction stays a positive time of day.
func ToOADate(t time.Time) float64 {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	ms := wall.UnixMilli() - oaEpoch.UnixMilli()
	if ms < 0 {
		if frac := ms % msPerDay; frac != 0 {
			ms -= (msPerDay + frac) * 2
		}
	}
	return float64(ms) / msPerDay
}

// FromOADate converts an OLE automation date to a UTC wall clock time.
func FromOADate(d float64) (time.Time, error) {
	if math.IsNaN(d) || d <= minOADate || d >= maxOADate {
		return time.Time{}, errors.Errorf("OLE automation date %v out of range", d)
	}
	half := 0.5
	if d < 0 {
		half = -0.5
	}
	ms := int64(d*msPerDay + half)
	if ms < 0 {
		ms -= (ms % msPerDay) * 2
	}
	return time.UnixMilli(oaEpoch.UnixMilli() + ms).UTC(), nil
}
