package models

// GeoState represents a state in the two-level geographic hierarchy.
// Reference data: loaded once per session and never mutated.
type GeoState struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// GeoDistrict represents a district belonging to a state. StateID is a
// non-owning reference; a district pointing at an unknown state is never
// shown under any state but is not an error.
type GeoDistrict struct {
	ID      int    `json:"id"`
	StateID int    `json:"stateId"`
	Name    string `json:"name"`
}

// RefData bundles the session's reference lists together with the loader
// readiness flag, for handing to the console UI in one response.
type RefData struct {
	Loading   bool          `json:"loading"`
	States    []GeoState    `json:"states"`
	Districts []GeoDistrict `json:"districts"`
}
