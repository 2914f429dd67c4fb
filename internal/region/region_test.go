package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveKnownRegions(t *testing.T) {
	cases := map[string]Coordinates{
		"punjab":             {Lat: 31.5204, Lng: 74.3587},
		"SINDH":              {Lat: 24.8607, Lng: 67.0011},
		"Khyber":             {Lat: 34.0151, Lng: 71.5249},
		"khyber pakhtunkhwa": {Lat: 34.0151, Lng: 71.5249},
		"Khyber_Pakhtunkhwa": {Lat: 34.0151, Lng: 71.5249},
		"  balochistan ":     {Lat: 30.1798, Lng: 66.9750},
	}
	for name, want := range cases {
		assert.Equal(t, want, Resolve(name), name)
	}
}

func TestResolveUnknownFallsBackToPunjab(t *testing.T) {
	punjab := Resolve(Punjab)
	for _, name := range []string{"", "lahore", "gilgit", "kpk", "punjabi", "123", "ہیلو"} {
		assert.Equal(t, punjab, Resolve(name), name)
	}
}

func TestCanonical(t *testing.T) {
	key, ok := Canonical("Khyber Pakhtunkhwa")
	assert.True(t, ok)
	assert.Equal(t, Khyber, key)

	_, ok = Canonical("islamabad")
	assert.False(t, ok)
	assert.Equal(t, Punjab, Key("islamabad"))
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	assert.Len(t, all, 4)
	all[0].Name = "changed"
	assert.Equal(t, "Punjab", Lookup(Punjab).Name)
}
