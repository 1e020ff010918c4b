package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/armii/platform-admin/pkg/dtos"
	"github.com/armii/platform-admin/pkg/entities"
	"github.com/armii/platform-admin/pkg/errs"
	"github.com/google/uuid"
)

const (
	GroupByName = "name"
	GroupByType = "type"

	legacyAccountType   = "business"
	legacyAccountStatus = "Active"
)

// Service is the add/view flow on top of the Store.
type Service interface {
	Store

	CreatePlatform(ctx context.Context, name string) (entities.Platform, error)
	ResolveSearch(ctx context.Context, query string) (entities.Platform, bool, error)
	SearchPlatforms(query string) dtos.PlatformSearchDTO
	AvailableCatalog() []string
	SaveAccounts(ctx context.Context, req dtos.SavePlatformAccountsDTO) ([]entities.PlatformAccountPair, error)
	Draft() map[string][]dtos.DraftAddressDTO
	Overview() ([]dtos.PlatformOverviewDTO, error)
	Grouped(by string) ([]dtos.GroupedPlatformDTO, error)
}

type service struct {
	Store
}

func NewService(s Store) Service {
	return &service{
		Store: s,
	}
}

// CreatePlatform rejects blank and already registered names (case-insensitive).
func (s *service) CreatePlatform(ctx context.Context, name string) (entities.Platform, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Platform{}, errs.NewValidationError("name", "must not be blank")
	}
	if existing, ok := s.FindPlatformByName(name); ok {
		return entities.Platform{}, fmt.Errorf("platform %q: %w", existing.Name, errs.ErrAlreadyExists)
	}

	id := s.AddPlatform(entities.Platform{
		Name: name,
		Type: TypeSlug(name),
	})
	p, err := s.Platform(id)
	if err != nil {
		return entities.Platform{}, err
	}

	slog.InfoContext(ctx, "platform: created", "id", p.ID, "name", p.Name, "type", p.Type)
	return p, nil
}

// ResolveSearch creates the catalog platform an exact search names. The bool
// reports whether a platform was created; a query that resolves to an already
// registered platform returns it without creating.
func (s *service) ResolveSearch(ctx context.Context, query string) (entities.Platform, bool, error) {
	name := CanonicalName(query)
	if name == "" {
		return entities.Platform{}, false, errs.NotFound("catalog platform", strings.TrimSpace(query))
	}
	if existing, ok := s.FindPlatformByName(name); ok {
		return existing, false, nil
	}
	p, err := s.CreatePlatform(ctx, name)
	if err != nil {
		return entities.Platform{}, false, err
	}
	return p, true, nil
}

// SearchPlatforms matches registered platforms by name or type substring.
// Catalog suggestions are only offered for WhatsApp queries.
func (s *service) SearchPlatforms(query string) dtos.PlatformSearchDTO {
	result := dtos.PlatformSearchDTO{
		Platforms:   []entities.Platform{},
		Suggestions: []string{},
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return result
	}

	platforms := s.Platforms()
	for _, p := range platforms {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Type), q) {
			result.Platforms = append(result.Platforms, p)
		}
	}

	if strings.Contains(q, "whatsapp") {
		for _, name := range PredefinedPlatforms {
			if !strings.Contains(strings.ToLower(name), "whatsapp") {
				continue
			}
			added := slices.ContainsFunc(platforms, func(p entities.Platform) bool { return p.Name == name })
			if !added {
				result.Suggestions = append(result.Suggestions, name)
			}
		}
	}
	return result
}

// AvailableCatalog lists predefined names that are not registered yet.
func (s *service) AvailableCatalog() []string {
	names := make([]string, 0, len(PredefinedPlatforms))
	for _, name := range PredefinedPlatforms {
		if _, ok := s.FindPlatformByName(name); !ok {
			names = append(names, name)
		}
	}
	return names
}

// SaveAccounts stores every non-blank address as a pair plus a legacy account
// linked to the platform. Blank addresses and unknown platforms are reported
// in the returned error; everything else is still saved.
func (s *service) SaveAccounts(ctx context.Context, req dtos.SavePlatformAccountsDTO) ([]entities.PlatformAccountPair, error) {
	saved := make([]entities.PlatformAccountPair, 0)
	var verr errs.ValidationError
	var notFound []error

	for i, entry := range req.Platforms {
		p, err := s.Platform(entry.PlatformID)
		if err != nil {
			notFound = append(notFound, err)
			continue
		}
		for j, address := range entry.Addresses {
			if strings.TrimSpace(address) == "" {
				verr.Add(fmt.Sprintf("platforms[%d].addresses[%d]", i, j), "must not be blank")
				continue
			}

			pair, err := s.AddPlatformAccountPair(p.Name, address, p.Type)
			if err != nil {
				return saved, err
			}

			accountID := s.AddAccount(entities.Account{
				Name:   address,
				Type:   legacyAccountType,
				Status: legacyAccountStatus,
			})
			if err := s.LinkAccountPlatform(accountID, p.ID); err != nil {
				return saved, err
			}

			saved = append(saved, pair)
		}
	}

	slog.InfoContext(ctx, "platform: accounts saved", "saved", len(saved), "rejected", len(verr.Errors), "unknown_platforms", len(notFound))

	return saved, errors.Join(append(notFound, verr.Err())...)
}

// Draft rebuilds the add form from saved pairs: platform id -> distinct addresses.
// Pairs whose platform name is no longer registered are skipped.
func (s *service) Draft() map[string][]dtos.DraftAddressDTO {
	nameToID := make(map[string]string)
	for _, p := range s.Platforms() {
		nameToID[p.Name] = p.ID
	}

	draft := make(map[string][]dtos.DraftAddressDTO)
	for _, pair := range s.GetPlatformAccountPairs() {
		platformID, ok := nameToID[pair.PlatformName]
		if !ok {
			continue
		}
		exists := slices.ContainsFunc(draft[platformID], func(a dtos.DraftAddressDTO) bool {
			return a.Address == pair.AccountAddress
		})
		if !exists {
			draft[platformID] = append(draft[platformID], dtos.DraftAddressDTO{
				ID:      uuid.NewString(),
				Address: pair.AccountAddress,
			})
		}
	}
	return draft
}

func (s *service) Overview() ([]dtos.PlatformOverviewDTO, error) {
	platforms := s.Platforms()
	overview := make([]dtos.PlatformOverviewDTO, 0, len(platforms))
	for _, p := range platforms {
		accounts, err := s.GetPlatformAccounts(p.ID)
		if err != nil {
			return nil, err
		}
		overview = append(overview, dtos.PlatformOverviewDTO{
			Platform:     p,
			AccountCount: len(accounts),
			Accounts:     accounts,
		})
	}
	return overview, nil
}

func (s *service) Grouped(by string) ([]dtos.GroupedPlatformDTO, error) {
	pairs := s.GetPlatformAccountPairs()

	var groups []entities.GroupedPlatformData
	switch by {
	case "", GroupByName:
		groups = GroupByPlatformName(pairs)
	case GroupByType:
		groups = GroupByPlatformType(pairs)
	default:
		return nil, errs.NewValidationError("by", fmt.Sprintf("must be %q or %q", GroupByName, GroupByType))
	}

	result := make([]dtos.GroupedPlatformDTO, 0, len(groups))
	for _, g := range groups {
		label := g.PlatformName
		if by == GroupByType {
			label = Label(g.PlatformType)
		}
		result = append(result, dtos.GroupedPlatformDTO{GroupedPlatformData: g, Label: label})
	}
	return result, nil
}
