package platform

import (
	"slices"
	"strings"
	"sync"

	"github.com/armii/platform-admin/pkg/entities"
	"github.com/armii/platform-admin/pkg/errs"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Store owns the in-memory platforms, accounts, links and platform-account pairs
// of one running service. Every mutation is visible to the next read.
type Store interface {
	Platforms() []entities.Platform
	Platform(id string) (entities.Platform, error)
	FindPlatformByName(name string) (entities.Platform, bool)
	Accounts() []entities.Account
	Links() []entities.AccountPlatformLink

	AddAccount(account entities.Account) string
	AddPlatform(platform entities.Platform) string
	LinkAccountPlatform(accountID, platformID string) error
	GetAccountPlatforms(accountID string) ([]entities.Platform, error)
	GetPlatformAccounts(platformID string) ([]entities.Account, error)
	DeleteAccount(accountID string) error
	DeleteAccountFromPlatform(accountID, platformID string) error

	AddPlatformAccountPair(platformName, accountAddress, platformType string) (entities.PlatformAccountPair, error)
	GetPlatformAccountPairs() []entities.PlatformAccountPair
	DeletePlatformAccountPair(id string) error
	ClearPlatformAccountPairs()
}

type store struct {
	mutex     sync.RWMutex
	clock     clockwork.Clock
	newID     func() string
	platforms []entities.Platform
	accounts  []entities.Account
	links     []entities.AccountPlatformLink
	pairs     []entities.PlatformAccountPair
}

type StoreOption func(*store)

// WithClock sets the clock used for pair timestamps.
func WithClock(c clockwork.Clock) StoreOption {
	return func(s *store) { s.clock = c }
}

// WithIDGenerator replaces the random id source.
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *store) { s.newID = fn }
}

// NewStore returns a store seeded with DefaultPlatforms.
func NewStore(opts ...StoreOption) Store {
	s := &store{
		clock:     clockwork.NewRealClock(),
		newID:     uuid.NewString,
		platforms: DefaultPlatforms(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *store) Platforms() []entities.Platform {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return slices.Clone(s.platforms)
}

func (s *store) Platform(id string) (entities.Platform, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if i := s.platformIndex(id); i >= 0 {
		return s.platforms[i], nil
	}
	return entities.Platform{}, errs.NotFound("platform", id)
}

// FindPlatformByName matches names case-insensitively after trimming.
func (s *store) FindPlatformByName(name string) (entities.Platform, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	name = strings.TrimSpace(name)
	for _, p := range s.platforms {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return entities.Platform{}, false
}

func (s *store) Accounts() []entities.Account {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return slices.Clone(s.accounts)
}

func (s *store) Links() []entities.AccountPlatformLink {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return slices.Clone(s.links)
}

func (s *store) AddAccount(account entities.Account) string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	account.ID = s.newID()
	if account.Status == "" {
		account.Status = entities.StatusActive
	}
	s.accounts = append(s.accounts, account)
	return account.ID
}

func (s *store) AddPlatform(platform entities.Platform) string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	platform.ID = s.newID()
	if platform.Status == "" {
		platform.Status = entities.StatusActive
	}
	s.platforms = append(s.platforms, platform)
	return platform.ID
}

// LinkAccountPlatform is a no-op when the link already exists.
func (s *store) LinkAccountPlatform(accountID, platformID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.accountIndex(accountID) < 0 {
		return errs.NotFound("account", accountID)
	}
	if s.platformIndex(platformID) < 0 {
		return errs.NotFound("platform", platformID)
	}
	if s.linkIndex(accountID, platformID) >= 0 {
		return nil
	}
	s.links = append(s.links, entities.AccountPlatformLink{AccountID: accountID, PlatformID: platformID})
	return nil
}

func (s *store) GetAccountPlatforms(accountID string) ([]entities.Platform, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.accountIndex(accountID) < 0 {
		return nil, errs.NotFound("account", accountID)
	}
	platforms := make([]entities.Platform, 0)
	for _, link := range s.links {
		if link.AccountID != accountID {
			continue
		}
		if i := s.platformIndex(link.PlatformID); i >= 0 {
			platforms = append(platforms, s.platforms[i])
		}
	}
	return platforms, nil
}

func (s *store) GetPlatformAccounts(platformID string) ([]entities.Account, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.platformIndex(platformID) < 0 {
		return nil, errs.NotFound("platform", platformID)
	}
	accounts := make([]entities.Account, 0)
	for _, link := range s.links {
		if link.PlatformID != platformID {
			continue
		}
		if i := s.accountIndex(link.AccountID); i >= 0 {
			accounts = append(accounts, s.accounts[i])
		}
	}
	return accounts, nil
}

// DeleteAccount removes the account and every link that references it.
func (s *store) DeleteAccount(accountID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.accountIndex(accountID)
	if i < 0 {
		return errs.NotFound("account", accountID)
	}
	s.accounts = slices.Delete(s.accounts, i, i+1)
	s.links = slices.DeleteFunc(s.links, func(l entities.AccountPlatformLink) bool {
		return l.AccountID == accountID
	})
	return nil
}

// DeleteAccountFromPlatform removes one link. The account itself is removed
// when no link remains after the deletion.
func (s *store) DeleteAccountFromPlatform(accountID, platformID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	li := s.linkIndex(accountID, platformID)
	if li < 0 {
		return errs.NotFound("account link", accountID+"/"+platformID)
	}
	s.links = slices.Delete(s.links, li, li+1)

	stillLinked := slices.ContainsFunc(s.links, func(l entities.AccountPlatformLink) bool {
		return l.AccountID == accountID
	})
	if !stillLinked {
		if ai := s.accountIndex(accountID); ai >= 0 {
			s.accounts = slices.Delete(s.accounts, ai, ai+1)
		}
	}
	return nil
}

func (s *store) AddPlatformAccountPair(platformName, accountAddress, platformType string) (entities.PlatformAccountPair, error) {
	var verr errs.ValidationError
	if strings.TrimSpace(platformName) == "" {
		verr.Add("platformName", "must not be blank")
	}
	if strings.TrimSpace(accountAddress) == "" {
		verr.Add("accountAddress", "must not be blank")
	}
	if err := verr.Err(); err != nil {
		return entities.PlatformAccountPair{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	pair := entities.PlatformAccountPair{
		ID:             s.newID(),
		PlatformName:   platformName,
		AccountAddress: accountAddress,
		PlatformType:   platformType,
		CreatedAt:      s.clock.Now(),
	}
	s.pairs = append(s.pairs, pair)
	return pair, nil
}

func (s *store) GetPlatformAccountPairs() []entities.PlatformAccountPair {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.pairs == nil {
		return []entities.PlatformAccountPair{}
	}
	return slices.Clone(s.pairs)
}

func (s *store) DeletePlatformAccountPair(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := slices.IndexFunc(s.pairs, func(p entities.PlatformAccountPair) bool { return p.ID == id })
	if i < 0 {
		return errs.NotFound("platform account pair", id)
	}
	s.pairs = slices.Delete(s.pairs, i, i+1)
	return nil
}

func (s *store) ClearPlatformAccountPairs() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.pairs = nil
}

// index helpers expect the caller to hold the mutex

func (s *store) platformIndex(id string) int {
	return slices.IndexFunc(s.platforms, func(p entities.Platform) bool { return p.ID == id })
}

func (s *store) accountIndex(id string) int {
	return slices.IndexFunc(s.accounts, func(a entities.Account) bool { return a.ID == id })
}

func (s *store) linkIndex(accountID, platformID string) int {
	return slices.IndexFunc(s.links, func(l entities.AccountPlatformLink) bool {
		return l.AccountID == accountID && l.PlatformID == platformID
	})
}
