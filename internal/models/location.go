package models

const UnknownLocation = "Unknown"

// Location is the best-effort geolocation of an address.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

func NewUnknownLocation() Location {
	return Location{City: UnknownLocation, Country: UnknownLocation}
}

func (l Location) IsUnknown() bool {
	return l.City == UnknownLocation && l.Country == UnknownLocation
}
