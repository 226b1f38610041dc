package models

import "errors"

var ErrLocationNotFound = errors.New("location not found")

type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// locations is kept in display order.
var locations = []Location{
	{Name: "木裏原", Latitude: 35.804167, Longitude: 137.93125},
	{Name: "柳沢", Latitude: 35.795833, Longitude: 137.93125},
	{Name: "藤沢川", Latitude: 35.7875, Longitude: 137.93125},
	{Name: "表木", Latitude: 35.7875, Longitude: 137.94375},
	{Name: "下小出", Latitude: 35.795833, Longitude: 137.94375},
	{Name: "沢渡駅", Latitude: 35.804167, Longitude: 137.94375},
	{Name: "アメダス伊那", Latitude: 35.829167, Longitude: 137.95625},
	{Name: "中川村下平", Latitude: 35.6375, Longitude: 137.94375},
	{Name: "中川村大草城跡公園", Latitude: 35.629167, Longitude: 137.94375},
	{Name: "中川村役場東", Latitude: 35.6375, Longitude: 137.95625},
}

// Locations returns a copy of the fixed location table.
func Locations() []Location {
	out := make([]Location, len(locations))
	copy(out, locations)
	return out
}

func DefaultLocation() Location {
	return locations[0]
}

func LookupLocation(name string) (Location, error) {
	for _, l := range locations {
		if l.Name == name {
			return l, nil
		}
	}
	return Location{}, ErrLocationNotFound
}
