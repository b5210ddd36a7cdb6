package services

import (
	"context"
	"encoding/json"
	"io"

	"membership-console/models"
	"membership-console/utils/logger"

	"github.com/stretchr/testify/mock"
)

// MockRegistryClient implements dal.RegistryClientInterface for testing
type MockRegistryClient struct {
	mock.Mock
}

func (m *MockRegistryClient) GetStates(ctx context.Context) ([]models.GeoState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GeoState), args.Error(1)
}

func (m *MockRegistryClient) GetDistricts(ctx context.Context) ([]models.GeoDistrict, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GeoDistrict), args.Error(1)
}

func (m *MockRegistryClient) FetchCollection(ctx context.Context, collection string) ([]json.RawMessage, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *MockRegistryClient) Register(ctx context.Context, collection string, payload map[string]interface{}) error {
	args := m.Called(ctx, collection, payload)
	return args.Error(0)
}

func (m *MockRegistryClient) Update(ctx context.Context, collection, id string, payload map[string]interface{}) error {
	args := m.Called(ctx, collection, id, payload)
	return args.Error(0)
}

func (m *MockRegistryClient) Delete(ctx context.Context, collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

func (m *MockRegistryClient) UploadFile(ctx context.Context, filename string, file io.Reader) (string, error) {
	args := m.Called(ctx, filename, file)
	return args.String(0), args.Error(1)
}

func testLogger() logger.Logger {
	return logger.NewLogger("error", "json")
}

// newTestResolver loads the given reference data through a mock client and
// returns a settled resolver.
func newTestResolver(states []models.GeoState, districts []models.GeoDistrict) *Resolver {
	client := new(MockRegistryClient)
	client.On("GetStates", mock.Anything).Return(states, nil)
	client.On("GetDistricts", mock.Anything).Return(districts, nil)

	ref := NewRefDataService(client, testLogger())
	ref.Load(context.Background())
	return NewResolver(ref)
}

func testStates() []models.GeoState {
	return []models.GeoState{
		{ID: 1, Code: "KA", Name: "Karnataka"},
		{ID: 2, Code: "MH", Name: "Maharashtra"},
	}
}

func testDistricts() []models.GeoDistrict {
	return []models.GeoDistrict{
		{ID: 10, StateID: 1, Name: "Mysuru"},
		{ID: 11, StateID: 1, Name: "Udupi"},
		{ID: 20, StateID: 2, Name: "Pune"},
		{ID: 99, StateID: 7, Name: "Orphan"}, // unknown state, never shown
	}
}
