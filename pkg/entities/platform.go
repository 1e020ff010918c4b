package entities

import "time"

const StatusActive = "active"

type Platform struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	URL    string `json:"url"`
	APIKey string `json:"apiKey"`
	Status string `json:"status"`
}

// Account is the legacy id-based identity record linked to platforms.
type Account struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Status string `json:"status"`
}

type AccountPlatformLink struct {
	AccountID  string `json:"accountId"`
	PlatformID string `json:"platformId"`
}

// PlatformAccountPair binds a free-text address to a platform by name.
// It lives alongside the Account/Link model and is not derived from it.
type PlatformAccountPair struct {
	ID             string    `json:"id"`
	PlatformName   string    `json:"platformName"`
	AccountAddress string    `json:"accountAddress"`
	PlatformType   string    `json:"platformType"`
	CreatedAt      time.Time `json:"createdAt"`
}

// GroupedPlatformData is derived from pairs, never stored.
type GroupedPlatformData struct {
	PlatformType     string   `json:"platformType"`
	PlatformName     string   `json:"platformName"`
	AccountAddresses []string `json:"accountAddresses"`
}
