package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/bloodconnect/internal/auth"
	"github.com/spec-kit/bloodconnect/internal/config"
	"github.com/spec-kit/bloodconnect/internal/domain"
	"github.com/spec-kit/bloodconnect/internal/events"
	"github.com/spec-kit/bloodconnect/internal/repository/memory"
)

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	ctx        context.Context
	store      *memory.Store
	dispatcher *recordingDispatcher
	cfg        config.Config
	auth       *AuthService
	profiles   *ProfileService
	donors     *DonorService
	requests   *BloodRequestService
	dashboard  *DashboardService
}

func newFixture() *fixture {
	store := memory.NewStore()
	dispatcher := &recordingDispatcher{}
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 15,
			BcryptCost:            bcrypt.MinCost,
		},
		Listing: config.ListingConfig{DefaultPageSize: 20, MaxPageSize: 100, RecentLimit: 6},
	}
	return &fixture{
		ctx:        context.Background(),
		store:      store,
		dispatcher: dispatcher,
		cfg:        cfg,
		auth: NewAuthService(cfg, AuthDependencies{
			UserRepo:    store.Users(),
			Revocations: auth.NewMemoryRevocationStore(),
		}),
		profiles: NewProfileService(ProfileDependencies{
			UserRepo:         store.Users(),
			DonorProfileRepo: store.DonorProfiles(),
			BloodRequestRepo: store.BloodRequests(),
		}),
		donors: NewDonorService(store.DonorProfiles()),
		requests: NewBloodRequestService(BloodRequestDependencies{
			BloodRequestRepo: store.BloodRequests(),
			DonorProfileRepo: store.DonorProfiles(),
			Dispatcher:       dispatcher,
			Listing:          cfg.Listing,
		}),
		dashboard: NewDashboardService(store.DonorProfiles(), store.BloodRequests(), cfg.Listing),
	}
}

func (f *fixture) user(t require.TestingT, email string, userType domain.UserType, city string) *domain.User {
	u := &domain.User{Email: email, Username: email, UserType: userType, City: city}
	require.NoError(t, f.store.Users().Create(f.ctx, u))
	return u
}

func (f *fixture) donor(t require.TestingT, email string, available bool) *domain.User {
	u := f.user(t, email, domain.UserTypeDonor, "Springfield")
	profile := &domain.DonorProfile{
		UserID:      u.ID,
		BloodGroup:  domain.BloodGroupONeg,
		Gender:      domain.GenderFemale,
		Age:         29,
		IsAvailable: available,
	}
	require.NoError(t, f.store.DonorProfiles().Create(f.ctx, profile))
	return u
}

func validRequestInput() BloodRequestInput {
	return BloodRequestInput{
		BloodGroup:      domain.BloodGroupONeg,
		UnitsNeeded:     2,
		HospitalName:    "City Hospital",
		HospitalAddress: "1 Main St",
		Reason:          "Surgery",
		Urgency:         domain.UrgencyEmergency,
		RequiredDate:    time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) request(t require.TestingT, requester *domain.User) *domain.BloodRequest {
	req, err := f.requests.CreateRequest(f.ctx, requester, validRequestInput())
	require.NoError(t, err)
	return req
}
