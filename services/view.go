package services

import (
	"sort"
	"strings"

	"membership-console/models"
)

// searchFields are the columns the free-text search runs over. A record
// matches if ANY of them contains the query, case-insensitively; a record
// whose name component is empty can still match on another field.
func searchFields(e models.RegistrableEntity) []string {
	return []string{e.Name, e.Email, e.MobileNumber, e.StateName, e.DistrictName}
}

// Recompute derives the view list from the base list by applying the
// status filter, then the snapshotted search query, then the persisted
// sort, in that fixed order. The input slice is never mutated.
func Recompute(base []models.RegistrableEntity, vs models.ViewState) []models.RegistrableEntity {
	view := make([]models.RegistrableEntity, 0, len(base))

	for _, e := range base {
		if !passesStatus(e, vs.Status) {
			continue
		}
		if !matchesQuery(e, vs.Query) {
			continue
		}
		view = append(view, e)
	}

	if vs.SortBy != "" {
		applySort(view, vs.SortBy, vs.SortOrder)
	}
	return view
}

func passesStatus(e models.RegistrableEntity, f models.StatusFilter) bool {
	switch f {
	case models.FilterApproved:
		return e.ApprovalStatus == models.ApprovalApproved
	case models.FilterPending:
		return e.ApprovalStatus == models.ApprovalPending
	default:
		return true
	}
}

func matchesQuery(e models.RegistrableEntity, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range searchFields(e) {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// ToggleSort implements the sort-click rule: clicking the active key flips
// the direction, clicking a new key resets to ascending on that key.
func ToggleSort(vs models.ViewState, key string) models.ViewState {
	if vs.SortBy == key && vs.SortOrder == models.SortAsc {
		vs.SortOrder = models.SortDesc
		return vs
	}
	vs.SortBy = key
	vs.SortOrder = models.SortAsc
	return vs
}

// numericSortKeys are compared as numbers; everything else compares as a
// string with native ordering.
var numericSortKeys = map[string]bool{
	"stateId":    true,
	"districtId": true,
}

func sortValue(e models.RegistrableEntity, key string) interface{} {
	switch key {
	case "entityId":
		return e.EntityID
	case "name":
		return e.Name
	case "stateId":
		return e.StateID
	case "districtId":
		return e.DistrictID
	case "mobileNumber":
		return e.MobileNumber
	case "email":
		return e.Email
	case "societyCertificateNumber":
		return e.SocietyCertificateNumber
	case "aadharNumber":
		return e.AadharNumber
	case "address":
		return e.Address
	case "approvalStatus":
		return string(e.ApprovalStatus)
	case "stateName":
		return e.StateName
	case "districtName":
		return e.DistrictName
	default:
		return ""
	}
}

func applySort(view []models.RegistrableEntity, key string, order models.SortOrder) {
	asc := order != models.SortDesc
	if numericSortKeys[key] {
		sort.SliceStable(view, func(i, j int) bool {
			a, b := sortValue(view[i], key).(int), sortValue(view[j], key).(int)
			if asc {
				return a < b
			}
			return a > b
		})
		return
	}
	sort.SliceStable(view, func(i, j int) bool {
		a, b := sortValue(view[i], key).(string), sortValue(view[j], key).(string)
		if asc {
			return a < b
		}
		return a > b
	})
}
