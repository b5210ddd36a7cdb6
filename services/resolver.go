package services

import (
	"membership-console/models"
)

// Resolver is the pure derivation layer over the loaded reference data:
// valid district subsets per state, name lookups for the registry's
// normalize join, and the cascading state-change rule for form sessions.
// It is constructed once and passed by reference to every consumer.
type Resolver struct {
	ref *RefDataService
}

// NewResolver creates a new resolver over the given reference data
func NewResolver(ref *RefDataService) *Resolver {
	return &Resolver{ref: ref}
}

// DistrictsFor returns all districts whose StateID equals stateID, in the
// order they were received from the registry. A state with no districts
// yields an empty list, which is not an error.
func (r *Resolver) DistrictsFor(stateID int) []models.GeoDistrict {
	matched := []models.GeoDistrict{}
	for _, d := range r.ref.Districts() {
		if d.StateID == stateID {
			matched = append(matched, d)
		}
	}
	return matched
}

// StateName resolves a state id to its display name; unknown ids resolve
// to the empty string.
func (r *Resolver) StateName(id int) string {
	for _, s := range r.ref.States() {
		if s.ID == id {
			return s.Name
		}
	}
	return ""
}

// DistrictName resolves a district id to its display name; unknown ids
// resolve to the empty string.
func (r *Resolver) DistrictName(id int) string {
	for _, d := range r.ref.Districts() {
		if d.ID == id {
			return d.Name
		}
	}
	return ""
}

// SelectorsDisabled reports whether the state/district selectors must be
// disabled because the reference load has not settled yet. Disabled, not
// merely empty: no selection may be made against an incomplete list.
func (r *Resolver) SelectorsDisabled() bool {
	return r.ref.Loading()
}

// ApplyStateChange writes a new state selection into a form session's
// fields and clears any district selection in the same update. A state
// change and a stale cross-state district must never coexist.
func (r *Resolver) ApplyStateChange(fields map[string]interface{}, stateID int) {
	fields["stateId"] = stateID
	delete(fields, "districtId")
}
