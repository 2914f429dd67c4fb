// Package region resolves Pakistani administrative regions to the fixed
// coordinates used for weather lookups and to the keys of the static tables.
package region

import "strings"

// Canonical region keys.
const (
	Punjab      = "punjab"
	Sindh       = "sindh"
	Khyber      = "khyber"
	Balochistan = "balochistan"
)

// Default is used for anything unrecognised.
const Default = Punjab

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Info describes one supported region.
type Info struct {
	Key         string      `json:"key"`
	Name        string      `json:"name"`
	City        string      `json:"city"`
	Coordinates Coordinates `json:"coordinates"`
}

var catalogue = []Info{
	{Key: Punjab, Name: "Punjab", City: "Lahore", Coordinates: Coordinates{Lat: 31.5204, Lng: 74.3587}},
	{Key: Sindh, Name: "Sindh", City: "Karachi", Coordinates: Coordinates{Lat: 24.8607, Lng: 67.0011}},
	{Key: Khyber, Name: "Khyber Pakhtunkhwa", City: "Peshawar", Coordinates: Coordinates{Lat: 34.0151, Lng: 71.5249}},
	{Key: Balochistan, Name: "Balochistan", City: "Quetta", Coordinates: Coordinates{Lat: 30.1798, Lng: 66.9750}},
}

var aliases = map[string]string{
	"punjab":             Punjab,
	"sindh":              Sindh,
	"khyber":             Khyber,
	"khyber pakhtunkhwa": Khyber,
	"balochistan":        Balochistan,
}

// Canonical normalises a region name to its key; ok is false when the name
// is not a known region.
func Canonical(name string) (key string, ok bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("_", " ", "-", " ").Replace(n)
	n = strings.Join(strings.Fields(n), " ")
	key, ok = aliases[n]
	return key, ok
}

// Key is Canonical with the punjab default applied.
func Key(name string) string {
	if key, ok := Canonical(name); ok {
		return key
	}
	return Default
}

// Resolve returns the coordinates for a region. It never fails: unknown
// names resolve to punjab.
func Resolve(name string) Coordinates {
	return Lookup(Key(name)).Coordinates
}

// Lookup returns the catalogue entry for a canonical key, or punjab.
func Lookup(key string) Info {
	for _, info := range catalogue {
		if info.Key == key {
			return info
		}
	}
	return catalogue[0]
}

// All returns every supported region in catalogue order.
func All() []Info {
	out := make([]Info, len(catalogue))
	copy(out, catalogue)
	return out
}
