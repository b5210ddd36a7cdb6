package services

import (
	"context"
	"sync"
	"time"

	"membership-console/models"
	"membership-console/utils"
	"membership-console/utils/logger"
)

// FormSessionService owns the transient create/edit/view sessions. Each
// session is a fresh copy of one entity's editable fields, independent of
// the registry cache until submitted. Sessions close on submit success or
// explicit close; the janitor expires abandoned ones.
type FormSessionService struct {
	registries map[string]*Registry
	resolver   *Resolver
	ids        utils.IDGenerator
	logger     logger.Logger

	mu       sync.Mutex
	sessions map[string]*models.FormSession
}

// NewFormSessionService creates a new form session service
func NewFormSessionService(registries map[string]*Registry, resolver *Resolver, ids utils.IDGenerator, log logger.Logger) *FormSessionService {
	return &FormSessionService{
		registries: registries,
		resolver:   resolver,
		ids:        ids,
		logger:     log,
		sessions:   make(map[string]*models.FormSession),
	}
}

// Open seeds a new session: empty defaults for create, a copy of the
// entity's editable fields for edit and view. Derived names are never part
// of the editable fields.
func (s *FormSessionService) Open(req models.OpenSessionRequest) (*models.FormSession, error) {
	reg, ok := s.registries[req.Kind]
	if !ok {
		return nil, ErrUnknownKind
	}

	fields := map[string]interface{}{}
	if req.Mode != models.ModeCreate {
		entity, found := reg.Find(req.EntityID)
		if !found {
			return nil, ErrNotFound
		}
		fields = editableFields(entity, reg.Kind())
	}

	now := time.Now()
	session := &models.FormSession{
		ID:        s.ids.NewID(),
		Mode:      req.Mode,
		Kind:      req.Kind,
		Fields:    fields,
		CreatedAt: now,
		TouchedAt: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Debugf("Opened %s session %s for %s", req.Mode, session.ID, req.Kind)
	return session, nil
}

func editableFields(e models.RegistrableEntity, kind models.EntityKind) map[string]interface{} {
	fields := map[string]interface{}{
		"entityId":                 e.EntityID,
		"name":                     e.Name,
		"stateId":                  e.StateID,
		"mobileNumber":             e.MobileNumber,
		"email":                    e.Email,
		"societyCertificateNumber": e.SocietyCertificateNumber,
		"aadharNumber":             e.AadharNumber,
		"certificateUrl":           e.CertificateURL,
		"address":                  e.Address,
		"approvalStatus":           string(e.ApprovalStatus),
	}
	if kind.HasDistrict && e.DistrictID != 0 {
		fields["districtId"] = e.DistrictID
	}
	return fields
}

// Get returns a live session.
func (s *FormSessionService) Get(id string) (*models.FormSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Patch applies free-form key/value replacement to the session's fields.
func (s *FormSessionService) Patch(id string, fields map[string]interface{}) (*models.FormSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	for k, v := range fields {
		session.Fields[k] = v
	}
	session.TouchedAt = time.Now()
	return session, nil
}

// ChangeState applies the cascading state rule: the new state and the
// district clear land in the same update.
func (s *FormSessionService) ChangeState(id string, stateID int) (*models.FormSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.resolver.ApplyStateChange(session.Fields, stateID)
	session.TouchedAt = time.Now()
	return session, nil
}

// Submit assembles the server payload and delegates to the registry. On
// success the session closes; on failure it stays open so the user can
// retry without re-entering data. View sessions refuse to submit.
func (s *FormSessionService) Submit(ctx context.Context, id string) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	if session.Mode == models.ModeView {
		return ErrViewOnlySession
	}

	reg := s.registries[session.Kind]
	kind := reg.Kind()

	entityID, _ := session.Fields["entityId"].(string)
	if session.Mode == models.ModeCreate && entityID == "" {
		entityID = s.ids.TimeToken()
	}

	payload := s.buildPayload(session, kind, entityID)

	var err error
	if session.Mode == models.ModeCreate {
		err = reg.Create(ctx, payload)
	} else {
		err = reg.Update(ctx, entityID, payload)
	}
	if err != nil {
		s.logger.Errorf("Submit of session %s failed: %v", id, err)
		return err
	}

	s.Close(id)
	return nil
}

// buildPayload limits the outgoing record to server-recognized fields and
// maps canonical keys onto the kind's wire names. Derived fields
// (stateName/districtName) never leave the console.
func (s *FormSessionService) buildPayload(session *models.FormSession, kind models.EntityKind, entityID string) map[string]interface{} {
	payload := map[string]interface{}{
		kind.IDPayloadKey():   entityID,
		kind.NamePayloadKey(): session.Fields["name"],
	}
	for _, key := range kind.PayloadFields[2:] {
		if !kind.HasDistrict && key == "districtId" {
			continue
		}
		if v, ok := session.Fields[key]; ok {
			payload[key] = v
		}
	}
	return payload
}

// Close discards a session.
func (s *FormSessionService) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// ExpireIdle drops sessions untouched for longer than ttl and returns how
// many were dropped.
func (s *FormSessionService) ExpireIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0
	for id, session := range s.sessions {
		if session.TouchedAt.Before(cutoff) {
			delete(s.sessions, id)
			expired++
		}
	}
	return expired
}

// Count reports how many sessions are open.
func (s *FormSessionService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
