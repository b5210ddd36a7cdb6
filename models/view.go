package models

// StatusFilter selects which approval statuses pass the first stage of the
// view pipeline.
type StatusFilter string

const (
	FilterAll      StatusFilter = "all"
	FilterApproved StatusFilter = "approved"
	FilterPending  StatusFilter = "pending"
)

// Valid reports whether f is a recognized filter value.
func (f StatusFilter) Valid() bool {
	return f == FilterAll || f == FilterApproved || f == FilterPending
}

// SortOrder is the direction of the active sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ViewState is everything needed to derive the view list from the base
// list. The search query is a snapshot taken when the user invoked search;
// sort state persists across filter and search changes so the pipeline can
// reapply it on every recomputation.
type ViewState struct {
	Status    StatusFilter `json:"status"`
	Query     string       `json:"query"`
	SortBy    string       `json:"sortBy,omitempty"`
	SortOrder SortOrder    `json:"sortOrder,omitempty"`
}

// DefaultViewState passes everything and sorts nothing.
func DefaultViewState() ViewState {
	return ViewState{Status: FilterAll}
}

// ViewPage is the console response for a registry view: the derived list
// plus the state that produced it.
type ViewPage struct {
	Kind    string              `json:"kind"`
	State   ViewState           `json:"state"`
	Total   int                 `json:"total"`   // base list size
	Entries []RegistrableEntity `json:"entries"` // the view list
}
