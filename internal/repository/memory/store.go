// Package memory provides in-process repositories with the same semantics as
// the Postgres ones, including unique constraints and conditional status
// transitions. Used by tests and local runs without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/bloodconnect/internal/domain"
	"github.com/spec-kit/bloodconnect/internal/repository"
)

// Store holds every table behind one lock so joins see a consistent snapshot.
type Store struct {
	mu            sync.Mutex
	users         map[string]domain.User
	emails        map[string]string
	profiles      map[string]domain.DonorProfile
	profileByUser map[string]string
	requests      map[string]domain.BloodRequest
	lastTick      time.Time
	now           func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:         make(map[string]domain.User),
		emails:        make(map[string]string),
		profiles:      make(map[string]domain.DonorProfile),
		profileByUser: make(map[string]string),
		requests:      make(map[string]domain.BloodRequest),
		now:           time.Now,
	}
}

// Users exposes the user table.
func (s *Store) Users() repository.UserRepository { return userStore{s} }

// DonorProfiles exposes the donor profile table.
func (s *Store) DonorProfiles() repository.DonorProfileRepository { return donorProfileStore{s} }

// BloodRequests exposes the blood request table.
func (s *Store) BloodRequests() repository.BloodRequestRepository { return bloodRequestStore{s} }

// tick returns a strictly increasing timestamp so ordering by creation time is stable.
func (s *Store) tick() time.Time {
	t := s.now().UTC()
	if !t.After(s.lastTick) {
		t = s.lastTick.Add(time.Microsecond)
	}
	s.lastTick = t
	return t
}

type userStore struct{ s *Store }

func (u userStore) Create(_ context.Context, user *domain.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, taken := u.s.emails[key]; taken {
		return repository.ErrDuplicate
	}
	user.ID = uuid.NewString()
	user.CreatedAt = u.s.tick()
	user.UpdatedAt = user.CreatedAt
	u.s.users[user.ID] = *user
	u.s.emails[key] = user.ID
	return nil
}

func (u userStore) Update(_ context.Context, user *domain.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	existing, ok := u.s.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.PhoneNumber = user.PhoneNumber
	existing.Address = user.Address
	existing.City = user.City
	existing.State = user.State
	existing.Country = user.Country
	existing.PasswordHash = user.PasswordHash
	existing.UpdatedAt = u.s.tick()
	u.s.users[user.ID] = existing
	user.UpdatedAt = existing.UpdatedAt
	return nil
}

func (u userStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (u userStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	id, ok := u.s.emails[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := u.s.users[id]
	return &user, nil
}

type donorProfileStore struct{ s *Store }

func (d donorProfileStore) Create(_ context.Context, profile *domain.DonorProfile) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	if _, exists := d.s.profileByUser[profile.UserID]; exists {
		return repository.ErrDuplicate
	}
	profile.ID = uuid.NewString()
	profile.CreatedAt = d.s.tick()
	profile.UpdatedAt = profile.CreatedAt
	d.s.profiles[profile.ID] = *profile
	d.s.profileByUser[profile.UserID] = profile.ID
	return nil
}

func (d donorProfileStore) Update(_ context.Context, profile *domain.DonorProfile) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	existing, ok := d.s.profiles[profile.ID]
	if !ok {
		return repository.ErrNotFound
	}
	updated := *profile
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = d.s.tick()
	d.s.profiles[profile.ID] = updated
	profile.UpdatedAt = updated.UpdatedAt
	return nil
}

func (d donorProfileStore) GetByID(_ context.Context, id string) (*domain.DonorProfile, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	profile, ok := d.s.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &profile, nil
}

func (d donorProfileStore) GetByUserID(_ context.Context, userID string) (*domain.DonorProfile, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	id, ok := d.s.profileByUser[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	profile := d.s.profiles[id]
	return &profile, nil
}

func (d donorProfileStore) Count(_ context.Context) (int, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	return len(d.s.profiles), nil
}

type bloodRequestStore struct{ s *Store }

func (b bloodRequestStore) Create(_ context.Context, req *domain.BloodRequest) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	if _, ok := b.s.users[req.RequesterID]; !ok {
		return repository.ErrNotFound
	}
	req.ID = uuid.NewString()
	req.CreatedAt = b.s.tick()
	req.UpdatedAt = req.CreatedAt
	stored := *req
	stored.DonorUserID = nil
	b.s.requests[req.ID] = stored
	return nil
}

func (b bloodRequestStore) GetByID(_ context.Context, id string) (*domain.BloodRequest, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	req, ok := b.s.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b.s.withDonorUser(req), nil
}

func (b bloodRequestStore) ListPending(_ context.Context, filter repository.BloodRequestFilter) ([]domain.BloodRequest, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	city := ""
	if filter.City != nil {
		city = strings.ToLower(strings.TrimSpace(*filter.City))
	}

	matched := []domain.BloodRequest{}
	for _, req := range b.s.requests {
		if req.Status != domain.RequestStatusPending {
			continue
		}
		if filter.BloodGroup != nil && req.BloodGroup != *filter.BloodGroup {
			continue
		}
		if filter.Urgency != nil && req.Urgency != *filter.Urgency {
			continue
		}
		if city != "" && !strings.Contains(strings.ToLower(b.s.users[req.RequesterID].City), city) {
			continue
		}
		matched = append(matched, *b.s.withDonorUser(req))
	}
	sortNewestFirst(matched)

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []domain.BloodRequest{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (b bloodRequestStore) ListForUser(_ context.Context, userID string) ([]domain.BloodRequest, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	matched := []domain.BloodRequest{}
	for _, req := range b.s.requests {
		view := b.s.withDonorUser(req)
		if view.RequesterID == userID || (view.DonorUserID != nil && *view.DonorUserID == userID) {
			matched = append(matched, *view)
		}
	}
	sortNewestFirst(matched)
	return matched, nil
}

func (b bloodRequestStore) CountPending(_ context.Context) (int, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	count := 0
	for _, req := range b.s.requests {
		if req.Status == domain.RequestStatusPending {
			count++
		}
	}
	return count, nil
}

func (b bloodRequestStore) Transition(_ context.Context, id string, from, to domain.RequestStatus, donorID *string) (*domain.BloodRequest, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	req, ok := b.s.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.Status != from {
		return nil, repository.ErrStatusConflict
	}
	if donorID != nil {
		if profile, ok := b.s.profiles[*donorID]; !ok || !profile.IsAvailable {
			return nil, repository.ErrDonorUnavailable
		}
		bound := *donorID
		req.DonorID = &bound
	}
	req.Status = to
	req.UpdatedAt = b.s.tick()
	b.s.requests[id] = req
	return b.s.withDonorUser(req), nil
}

// withDonorUser resolves DonorUserID the way the SQL join does. Caller holds mu.
func (s *Store) withDonorUser(req domain.BloodRequest) *domain.BloodRequest {
	req.DonorUserID = nil
	if req.DonorID != nil {
		if profile, ok := s.profiles[*req.DonorID]; ok {
			userID := profile.UserID
			req.DonorUserID = &userID
		}
	}
	return &req
}

func sortNewestFirst(list []domain.BloodRequest) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
