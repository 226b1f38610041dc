package models

import (
	"fmt"
	"strconv"
	"time"
)

const DateLayout = "2006-01-02"

// JST is the zone AMD timestamps and calendar dates are expressed in.
var JST = time.FixedZone("JST", 9*60*60)

// TimeDomain is the hourly range [start 01:00, end 24:00].
type TimeDomain [2]string

// String renders the domain as the comma-separated pair the provider expects.
func (d TimeDomain) String() string {
	return d[0] + "," + d[1]
}

// BoundingBox is [latMin, latMax, lonMin, lonMax].
type BoundingBox [4]float64

func (b BoundingBox) String() string {
	return fmt.Sprintf("%s,%s,%s,%s",
		formatCoord(b[0]), formatCoord(b[1]), formatCoord(b[2]), formatCoord(b[3]))
}

// IsPoint reports whether the box collapses to a single coordinate.
func (b BoundingBox) IsPoint() bool {
	return b[0] == b[1] && b[2] == b[3]
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type Query struct {
	Place     string    `json:"place"`
	Variable  Variable  `json:"variable"`
	StartDate time.Time `json:"-"`
	EndDate   time.Time `json:"-"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`

	TimeDomain  TimeDomain  `json:"timedomain"`
	BoundingBox BoundingBox `json:"lalodomain"`
}

// BuildTimeDomain returns ["<start>T01", "<end>T24"]. The ordering of start and end is
// left to the provider to reject.
func BuildTimeDomain(start, end time.Time) TimeDomain {
	return TimeDomain{
		start.Format(DateLayout) + "T01",
		end.Format(DateLayout) + "T24",
	}
}

func BuildBoundingBox(lat, lon float64) BoundingBox {
	return BoundingBox{lat, lat, lon, lon}
}

// NewQuery derives the provider parameters for one fetch.
func NewQuery(loc Location, v Variable, start, end time.Time) Query {
	return Query{
		Place:       loc.Name,
		Variable:    v,
		StartDate:   start,
		EndDate:     end,
		Latitude:    loc.Latitude,
		Longitude:   loc.Longitude,
		TimeDomain:  BuildTimeDomain(start, end),
		BoundingBox: BuildBoundingBox(loc.Latitude, loc.Longitude),
	}
}

// ParseDate parses a YYYY-MM-DD calendar date in JST.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, JST)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// Today returns the current calendar date in JST.
func Today(now time.Time) time.Time {
	n := now.In(JST)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, JST)
}
