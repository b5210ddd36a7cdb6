package services

import (
	"context"
	"encoding/json"
	"sync"

	"membership-console/dal"
	"membership-console/models"
	"membership-console/utils/logger"

	"github.com/tidwall/gjson"
)

// Registry is the session cache of one entity collection: the base list as
// last fetched, the derived view list, and the view state that produced
// it. The base list is replaced wholesale on every refetch; the only
// in-place mutation is the local patch after a successful approve.
type Registry struct {
	kind     models.EntityKind
	client   dal.RegistryClientInterface
	resolver *Resolver
	logger   logger.Logger

	mu    sync.Mutex
	base  []models.RegistrableEntity
	view  []models.RegistrableEntity
	state models.ViewState

	// seq discards stale fetch responses: a response is applied only if
	// no newer fetch was issued while it was in flight.
	seq uint64
}

// NewRegistry creates a registry for one entity kind
func NewRegistry(kind models.EntityKind, client dal.RegistryClientInterface, resolver *Resolver, log logger.Logger) *Registry {
	return &Registry{
		kind:     kind,
		client:   client,
		resolver: resolver,
		logger:   log,
		state:    models.DefaultViewState(),
	}
}

// Kind returns the kind descriptor this registry serves.
func (r *Registry) Kind() models.EntityKind {
	return r.kind
}

// NormalizeRecord turns one raw server record into the canonical shape.
// Every absent field defaults (strings to "", numbers to 0, status to
// pending); normalization never fails, so one malformed record cannot
// abort the rest of the list. State and district names are joined from the
// resolver's current reference data; a lookup miss yields "".
func NormalizeRecord(raw json.RawMessage, kind models.EntityKind, resolver *Resolver) models.RegistrableEntity {
	e := models.RegistrableEntity{ApprovalStatus: models.ApprovalPending}

	for _, fs := range kind.Fields {
		var v gjson.Result
		for _, src := range fs.Sources {
			if got := gjson.GetBytes(raw, src); got.Exists() {
				v = got
				break
			}
		}
		// A zero gjson.Result yields "" / 0, which are exactly the
		// defaults the canonical shape wants.
		switch fs.Target {
		case "entityId":
			e.EntityID = v.String()
		case "name":
			e.Name = v.String()
		case "stateId":
			e.StateID = int(v.Int())
		case "districtId":
			e.DistrictID = int(v.Int())
		case "mobileNumber":
			e.MobileNumber = v.String()
		case "email":
			e.Email = v.String()
		case "password":
			// write-only: blanked in list views
		case "societyCertificateNumber":
			e.SocietyCertificateNumber = v.String()
		case "aadharNumber":
			e.AadharNumber = v.String()
		case "certificateUrl":
			e.CertificateURL = v.String()
		case "address":
			e.Address = v.String()
		case "approvalStatus":
			if s := models.ApprovalStatus(v.String()); s.Valid() {
				e.ApprovalStatus = s
			}
		}
	}

	if !kind.HasDistrict {
		e.DistrictID = 0
	}
	e.StateName = resolver.StateName(e.StateID)
	if kind.HasDistrict && e.DistrictID != 0 {
		e.DistrictName = resolver.DistrictName(e.DistrictID)
	}
	return e
}

// FetchAll replaces the base list with the collection as the registry
// currently has it. On failure the previous base list is kept. A response
// that lost the race to a newer fetch is discarded, not applied.
func (r *Registry) FetchAll(ctx context.Context) error {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	records, err := r.client.FetchCollection(ctx, r.kind.Collection)
	if err != nil {
		r.logger.Errorf("Fetch of %s failed, keeping previous list: %v", r.kind.Collection, err)
		return err
	}

	entities := make([]models.RegistrableEntity, 0, len(records))
	for _, raw := range records {
		entities = append(entities, NormalizeRecord(raw, r.kind, r.resolver))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.seq {
		r.logger.Warnf("Discarding stale %s fetch (seq %d, latest %d)", r.kind.Collection, seq, r.seq)
		return nil
	}
	r.base = entities
	r.view = Recompute(r.base, r.state)
	r.logger.Infof("Loaded %d %s records", len(entities), r.kind.Kind)
	return nil
}

// Create registers a new entity and refetches the collection on success.
// There is no optimistic insert: the new row appears only after the round
// trip completes. On failure the base list is untouched.
func (r *Registry) Create(ctx context.Context, payload map[string]interface{}) error {
	if err := r.client.Register(ctx, r.kind.Collection, payload); err != nil {
		return err
	}
	return r.FetchAll(ctx)
}

// Update replaces an entity's fields and refetches on success.
func (r *Registry) Update(ctx context.Context, id string, payload map[string]interface{}) error {
	if err := r.client.Update(ctx, r.kind.Collection, id, payload); err != nil {
		return err
	}
	return r.FetchAll(ctx)
}

// Delete removes an entity at any status. It is gated behind an explicit
// confirmation; an unconfirmed call never reaches the registry.
func (r *Registry) Delete(ctx context.Context, id string, confirmed bool) error {
	if needsConfirmation(ActionDelete) && !confirmed {
		return ErrConfirmationRequired
	}
	if _, ok := r.Find(id); !ok {
		return ErrNotFound
	}
	if err := r.client.Delete(ctx, r.kind.Collection, id); err != nil {
		return err
	}
	return r.FetchAll(ctx)
}

// Approve moves a pending entity to approved: one PUT carrying only the
// status change, then an in-place patch of the cached record. Approving an
// approved record is a safe no-op.
func (r *Registry) Approve(ctx context.Context, id string) error {
	current, ok := r.Find(id)
	if !ok {
		return ErrNotFound
	}
	if current.ApprovalStatus == models.ApprovalApproved {
		return nil
	}
	if !actionPermitted(ActionApprove, current.ApprovalStatus) {
		return ErrNotPending
	}

	payload := map[string]interface{}{"approvalStatus": string(models.ApprovalApproved)}
	if err := r.client.Update(ctx, r.kind.Collection, id, payload); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.base {
		if r.base[i].EntityID == id {
			r.base[i].ApprovalStatus = models.ApprovalApproved
		}
	}
	r.view = Recompute(r.base, r.state)
	r.logger.Infof("Approved %s %s", r.kind.Kind, id)
	return nil
}

// Reject deletes a pending entity after explicit confirmation. There is no
// stored rejected state. Failure leaves the record present and pending.
func (r *Registry) Reject(ctx context.Context, id string, confirmed bool) error {
	if needsConfirmation(ActionReject) && !confirmed {
		return ErrConfirmationRequired
	}
	current, ok := r.Find(id)
	if !ok {
		return ErrNotFound
	}
	if !actionPermitted(ActionReject, current.ApprovalStatus) {
		return ErrNotPending
	}
	if err := r.client.Delete(ctx, r.kind.Collection, id); err != nil {
		return err
	}
	return r.FetchAll(ctx)
}

// SetStatusFilter changes the status stage and recomputes the view; the
// persisted sort is reapplied.
func (r *Registry) SetStatusFilter(f models.StatusFilter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Status = f
	r.view = Recompute(r.base, r.state)
}

// Search snapshots the query and recomputes the view together with
// whatever status filter is active. An empty query clears the search.
func (r *Registry) Search(query string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Query = query
	r.view = Recompute(r.base, r.state)
}

// SortClick applies the column-header toggle rule and re-sorts the view.
func (r *Registry) SortClick(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = ToggleSort(r.state, key)
	r.view = Recompute(r.base, r.state)
}

// View returns the current view list together with the state that
// produced it.
func (r *Registry) View() models.ViewPage {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := make([]models.RegistrableEntity, len(r.view))
	copy(entries, r.view)
	return models.ViewPage{
		Kind:    r.kind.Kind,
		State:   r.state,
		Total:   len(r.base),
		Entries: entries,
	}
}

// Base returns a copy of the full unfiltered list (spreadsheet export
// reads this, never the view list).
func (r *Registry) Base() []models.RegistrableEntity {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.RegistrableEntity, len(r.base))
	copy(out, r.base)
	return out
}

// Find looks an entity up in the base list by id.
func (r *Registry) Find(id string) (models.RegistrableEntity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.base {
		if e.EntityID == id {
			return e, true
		}
	}
	return models.RegistrableEntity{}, false
}
