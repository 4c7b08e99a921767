package usecase

import (
	"context"
	"sync"

	"rent-hub/internal/domain"
)

// mockVehicleRepo implements domain.VehicleRepository for testing.
type mockVehicleRepo struct {
	page      *domain.VehiclePage
	facets    *domain.FilterFacets
	detail    *domain.VehicleDetail
	quote     *domain.RentalQuote
	err       error
	listCalls int
	getCalls  int
	simCalls  int
	filter    domain.VehicleFilter
	simParams domain.SimulationParams
}

func (m *mockVehicleRepo) List(_ context.Context, filter domain.VehicleFilter) (*domain.VehiclePage, error) {
	m.listCalls++
	m.filter = filter
	return m.page, m.err
}

func (m *mockVehicleRepo) Facets(_ context.Context, filter domain.VehicleFilter) (*domain.FilterFacets, error) {
	m.filter = filter
	return m.facets, m.err
}

func (m *mockVehicleRepo) Get(_ context.Context, _ string) (*domain.VehicleDetail, error) {
	m.getCalls++
	return m.detail, m.err
}

func (m *mockVehicleRepo) Simulate(_ context.Context, _ string, params domain.SimulationParams) (*domain.RentalQuote, error) {
	m.simCalls++
	m.simParams = params
	return m.quote, m.err
}

// mockContentRepo implements domain.ContentRepository for testing.
type mockContentRepo struct {
	home        *domain.HomeContent
	texts       []domain.SiteText
	err         error
	homeCalls   int
	updateCalls int
	updatedKey  string
	updatedVal  string
}

func (m *mockContentRepo) HomeContent(_ context.Context) (*domain.HomeContent, error) {
	m.homeCalls++
	return m.home, m.err
}

func (m *mockContentRepo) UpdateHomeContent(_ context.Context, content domain.HomeContent) error {
	m.updateCalls++
	m.home = &content
	return m.err
}

func (m *mockContentRepo) SiteTexts(_ context.Context) ([]domain.SiteText, error) {
	return m.texts, m.err
}

func (m *mockContentRepo) UpdateSiteText(_ context.Context, key, value string) error {
	m.updateCalls++
	m.updatedKey = key
	m.updatedVal = value
	return m.err
}

// mockTokenIssuer implements domain.TokenIssuer for testing.
type mockTokenIssuer struct {
	token string
	err   error
}

func (m *mockTokenIssuer) IssueAPIToken(_ *domain.UserProfile, _ string) (string, error) {
	return m.token, m.err
}

// stubProvider implements domain.AuthProvider with a fixed session.
type stubProvider struct {
	mu      sync.Mutex
	session *domain.Session
	err     error
}

func (s *stubProvider) GetCurrentSession(_ context.Context, _ string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, s.err
}

func (s *stubProvider) WatchSession(ctx context.Context, _ string, _ func(domain.AuthEvent)) error {
	<-ctx.Done()
	return ctx.Err()
}

// stubProfiles implements domain.ProfileRepository with a fixed profile set.
type stubProfiles struct {
	profiles map[string]*domain.UserProfile
}

func (s *stubProfiles) FetchByUserID(_ context.Context, userID string) (*domain.UserProfile, error) {
	if p, ok := s.profiles[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrProfileNotFound
}
