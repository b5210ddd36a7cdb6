package worker

import (
	"fmt"
	"sync"

	"membership-console/models"
	"membership-console/services"
	"membership-console/utils/logger"

	"github.com/robfig/cron"
)

// Service is the form-session janitor: a cron job that expires sessions
// left untouched past the configured TTL. Sessions are transient by
// contract, so an abandoned modal must not pin its copy forever.
type Service struct {
	config   *models.Config
	logger   logger.Logger
	sessions *services.FormSessionService

	cronJob  *cron.Cron
	mu       sync.Mutex
	running  bool
	stopOnce sync.Once
	stopChan chan struct{}
}

// NewService creates a new janitor service
func NewService(cfg *models.Config, log logger.Logger, sessions *services.FormSessionService) (*Service, error) {
	if cfg.JanitorSchedule == "" {
		return nil, fmt.Errorf("janitor schedule is not configured")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session TTL must be positive")
	}

	return &Service{
		config:   cfg,
		logger:   log,
		sessions: sessions,
		cronJob:  cron.New(),
		stopChan: make(chan struct{}),
	}, nil
}

// Start registers the sweep on the configured schedule and starts the cron
// runner.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("janitor is already running")
	}

	if err := s.cronJob.AddFunc(s.config.JanitorSchedule, s.sweep); err != nil {
		return fmt.Errorf("invalid janitor schedule %q: %w", s.config.JanitorSchedule, err)
	}

	s.cronJob.Start()
	s.running = true
	s.logger.Infof("Session janitor started with schedule %q, TTL %s", s.config.JanitorSchedule, s.config.SessionTTL)
	return nil
}

// StartInBackground starts the janitor without blocking the caller.
func (s *Service) StartInBackground() error {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Errorf("Session janitor failed to start: %v", err)
		}
	}()
	return nil
}

// Stop stops the cron runner. Safe to call more than once.
func (s *Service) Stop() error {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if !s.running {
			return
		}

		s.cronJob.Stop()
		// Cron jobs stopped (robfig/cron does not provide a way to wait for jobs to finish)
		s.running = false
		close(s.stopChan)
		s.logger.Info("Session janitor stopped")
	})
	return nil
}

func (s *Service) sweep() {
	expired := s.sessions.ExpireIdle(s.config.SessionTTL)
	if expired > 0 {
		s.logger.Infof("Session janitor expired %d idle sessions, %d remain", expired, s.sessions.Count())
	}
}
