package services

import (
	"context"
	"sync"

	"membership-console/dal"
	"membership-console/models"
	"membership-console/utils/logger"

	"golang.org/x/sync/errgroup"
)

// RefDataService loads the state and district reference lists once per
// process and serves them read-only afterwards. Both fetches run
// concurrently; Loading reports true until both settle. A failed fetch is
// logged and leaves its list empty; callers must tolerate empty reference
// data indefinitely.
type RefDataService struct {
	client dal.RegistryClientInterface
	logger logger.Logger

	mu        sync.RWMutex
	loading   bool
	states    []models.GeoState
	districts []models.GeoDistrict

	loadOnce sync.Once
}

// NewRefDataService creates a new reference data service
func NewRefDataService(client dal.RegistryClientInterface, log logger.Logger) *RefDataService {
	return &RefDataService{
		client:  client,
		logger:  log,
		loading: true,
	}
}

// Load fetches states and districts in parallel. It flips Loading to false
// exactly once, after both requests have settled, regardless of outcome.
// Errors are swallowed here on purpose: reference data failure degrades
// silently to empty lists.
func (s *RefDataService) Load(ctx context.Context) {
	s.loadOnce.Do(func() {
		var states []models.GeoState
		var districts []models.GeoDistrict

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			got, err := s.client.GetStates(gctx)
			if err != nil {
				s.logger.Errorf("Reference data: states load failed: %v", err)
				return nil
			}
			states = got
			return nil
		})
		g.Go(func() error {
			got, err := s.client.GetDistricts(gctx)
			if err != nil {
				s.logger.Errorf("Reference data: districts load failed: %v", err)
				return nil
			}
			districts = got
			return nil
		})
		_ = g.Wait()

		s.mu.Lock()
		s.states = states
		s.districts = districts
		s.loading = false
		s.mu.Unlock()

		s.logger.Infof("Reference data loaded: %d states, %d districts", len(states), len(districts))
	})
}

// Loading reports whether the initial load is still in flight.
func (s *RefDataService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// States returns the loaded state list in received order.
func (s *RefDataService) States() []models.GeoState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states
}

// Districts returns the loaded district list in received order.
func (s *RefDataService) Districts() []models.GeoDistrict {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.districts
}

// Snapshot returns the lists together with the readiness flag.
func (s *RefDataService) Snapshot() models.RefData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.RefData{
		Loading:   s.loading,
		States:    s.states,
		Districts: s.districts,
	}
}
