package models

// Notifications holds the user's notification channels.
type Notifications struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
}

// Coordinates are kept as strings because the dashboard stores them that way.
type Coordinates struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// Settings is the user preference record.
type Settings struct {
	CropType      string        `json:"cropType"`
	Region        string        `json:"region"`
	Language      string        `json:"language"`
	Notifications Notifications `json:"notifications"`
	Units         string        `json:"units"`
	Theme         string        `json:"theme"`
	Coordinates   *Coordinates  `json:"coordinates,omitempty"`
}

// DefaultSettings returns the record served before the user saves anything.
func DefaultSettings() Settings {
	return Settings{
		CropType:      "wheat",
		Region:        "punjab",
		Language:      string(English),
		Notifications: Notifications{Email: true, SMS: false},
		Units:         "metric",
		Theme:         "light",
		Coordinates:   &Coordinates{Lat: "31.5204", Lng: "74.3587"},
	}
}

// MissingRequired names the required fields that are empty.
func (s Settings) MissingRequired() []string {
	var missing []string
	if s.Language == "" {
		missing = append(missing, "language")
	}
	if s.CropType == "" {
		missing = append(missing, "cropType")
	}
	if s.Region == "" {
		missing = append(missing, "region")
	}
	return missing
}
