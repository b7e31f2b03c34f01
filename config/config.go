package config

import (
	"encoding/json"
	"os"
)

// Page identifies one of the dashboard screens. Navigation switches on
// this closed set so a missing case shows up at the switch, not as a
// silently blank screen.
type Page int

const (
	PageMoney Page = iota
	PageActivity
	PagePayment
	PageCard
	PageSearch
	PageProfile
)

// String returns the tab label shown in the bottom navigation.
func (p Page) String() string {
	switch p {
	case PageMoney:
		return "Money"
	case PageActivity:
		return "Activity"
	case PagePayment:
		return "Pay"
	case PageCard:
		return "Card"
	case PageSearch:
		return "Search"
	case PageProfile:
		return "Profile"
	}
	return "Unknown"
}

// Pages lists every dashboard page in navigation order.
func Pages() []Page {
	return []Page{PageMoney, PageActivity, PagePayment, PageCard, PageSearch, PageProfile}
}

// UserSnapshot is the cached identity written at login so the app can
// greet the user before the first profile fetch lands.
type UserSnapshot struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Config represents the application configuration
type Config struct {
	ServerURL    string        `json:"server_url"`
	SessionToken string        `json:"session_token,omitempty"`
	User         *UserSnapshot `json:"user,omitempty"`
	Logger       bool          `json:"logger"`
}

// Load reads the config from the specified path
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0600)
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		ServerURL: "https://payme.example.com",
		Logger:    false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		cfg := DefaultConfig()
		Save(path, cfg)
		return cfg
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}
