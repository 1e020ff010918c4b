package dtos

import "github.com/armii/platform-admin/pkg/entities"

type CreatePlatformDTO struct {
	Name string `json:"name" binding:"required,notblank"`
}

type ResolvePlatformDTO struct {
	Query string `json:"query" binding:"required,notblank"`
}

type ResolvePlatformResponseDTO struct {
	Platform *entities.Platform `json:"platform,omitempty"`
	Created  bool               `json:"created"`
}

// PlatformAccountsDTO is one platform block of the add form.
type PlatformAccountsDTO struct {
	PlatformID string   `json:"platform_id" binding:"required"`
	Addresses  []string `json:"addresses"`
}

type SavePlatformAccountsDTO struct {
	Platforms []PlatformAccountsDTO `json:"platforms" binding:"required,min=1,dive"`
}

type SaveResultDTO struct {
	Saved []entities.PlatformAccountPair `json:"saved"`
}

type PlatformSearchDTO struct {
	Platforms   []entities.Platform `json:"platforms"`
	Suggestions []string            `json:"suggestions"`
}

// PlatformOverviewDTO is one card of the read-only view screen.
type PlatformOverviewDTO struct {
	Platform     entities.Platform  `json:"platform"`
	AccountCount int                `json:"account_count"`
	Accounts     []entities.Account `json:"accounts"`
}

// DraftAddressDTO prefills one address row of the add form.
type DraftAddressDTO struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

type GroupedPlatformDTO struct {
	entities.GroupedPlatformData
	Label string `json:"label"`
}
