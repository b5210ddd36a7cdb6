package models

// ApprovalStatus represents the two-valued lifecycle flag of a registration
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
)

// Valid reports whether s is one of the two recognized statuses.
func (s ApprovalStatus) Valid() bool {
	return s == ApprovalPending || s == ApprovalApproved
}

// RegistrableEntity is the canonical shape shared by clubs, district
// secretaries and state secretaries. Raw server records are normalized into
// this shape field by field; StateName/DistrictName are joined in from the
// reference data at normalize time and never sent back to the server.
type RegistrableEntity struct {
	EntityID                 string         `json:"entityId"`
	Name                     string         `json:"name"`
	StateID                  int            `json:"stateId"`
	DistrictID               int            `json:"districtId,omitempty"`
	MobileNumber             string         `json:"mobileNumber"`
	Email                    string         `json:"email"`
	Password                 string         `json:"password,omitempty"` // write-only; blanked in list views
	SocietyCertificateNumber string         `json:"societyCertificateNumber"`
	AadharNumber             string         `json:"aadharNumber"`
	CertificateURL           string         `json:"certificateUrl"`
	Address                  string         `json:"address"`
	ApprovalStatus           ApprovalStatus `json:"approvalStatus"`
	StateName                string         `json:"stateName"`
	DistrictName             string         `json:"districtName,omitempty"`
}

// FieldSpec maps one canonical field to the raw server paths that may carry
// it. Sources are tried in order; the first present wins. Server payloads
// are heterogeneous across entity kinds, so each kind carries its own table.
type FieldSpec struct {
	Target  string
	Sources []string
}

// EntityKind describes one entity collection of the remote registry and how
// its raw records map onto RegistrableEntity.
type EntityKind struct {
	Kind        string // console path segment, e.g. "clubs"
	Collection  string // remote collection path
	NameLabel   string // human label for the name column ("Club Name", ...)
	HasDistrict bool   // state secretaries are state-level only
	Fields      []FieldSpec
	// PayloadFields are the keys the remote service recognizes on
	// register/update; everything else (derived names in particular) is
	// stripped before submit.
	PayloadFields []string
}

// commonFields are the raw-path tables shared by every kind; kind tables
// prepend their role-specific name and id aliases.
func commonFields() []FieldSpec {
	return []FieldSpec{
		{Target: "stateId", Sources: []string{"stateId", "state_id", "state"}},
		{Target: "districtId", Sources: []string{"districtId", "district_id", "district"}},
		{Target: "mobileNumber", Sources: []string{"mobileNumber", "mobile", "phone"}},
		{Target: "email", Sources: []string{"email", "emailId"}},
		{Target: "password", Sources: []string{"password"}},
		{Target: "societyCertificateNumber", Sources: []string{"societyCertificateNumber", "societyCertNo"}},
		{Target: "aadharNumber", Sources: []string{"aadharNumber", "aadhar"}},
		{Target: "certificateUrl", Sources: []string{"certificateUrl", "certificate", "image"}},
		{Target: "address", Sources: []string{"address"}},
		{Target: "approvalStatus", Sources: []string{"approvalStatus", "status"}},
	}
}

func commonPayloadFields() []string {
	return []string{
		"stateId", "districtId", "mobileNumber", "email", "password",
		"societyCertificateNumber", "aadharNumber", "certificateUrl",
		"address", "approvalStatus",
	}
}

// EntityKinds returns the three registrable kinds of the membership
// registry, keyed by their console path segment.
func EntityKinds() map[string]EntityKind {
	kinds := map[string]EntityKind{
		"clubs": {
			Kind:        "clubs",
			Collection:  "clubs",
			NameLabel:   "Club Name",
			HasDistrict: true,
			Fields: append([]FieldSpec{
				{Target: "entityId", Sources: []string{"clubId", "_id", "id"}},
				{Target: "name", Sources: []string{"clubName", "name"}},
			}, commonFields()...),
			PayloadFields: append([]string{"clubId", "clubName"}, commonPayloadFields()...),
		},
		"districtsecretaries": {
			Kind:        "districtsecretaries",
			Collection:  "districtsecretaries",
			NameLabel:   "Secretary Name",
			HasDistrict: true,
			Fields: append([]FieldSpec{
				{Target: "entityId", Sources: []string{"secretaryId", "_id", "id"}},
				{Target: "name", Sources: []string{"secretaryName", "name"}},
			}, commonFields()...),
			PayloadFields: append([]string{"secretaryId", "secretaryName"}, commonPayloadFields()...),
		},
		"statesecretaries": {
			Kind:        "statesecretaries",
			Collection:  "statesecretaries",
			NameLabel:   "Secretary Name",
			HasDistrict: false,
			Fields: append([]FieldSpec{
				{Target: "entityId", Sources: []string{"secretaryId", "_id", "id"}},
				{Target: "name", Sources: []string{"secretaryName", "name"}},
			}, commonFields()...),
			PayloadFields: append([]string{"secretaryId", "secretaryName"}, commonPayloadFields()...),
		},
	}
	return kinds
}

// IDPayloadKey returns the key the remote service expects the identifier
// under for this kind (the first kind-specific payload field).
func (k EntityKind) IDPayloadKey() string {
	return k.PayloadFields[0]
}

// NamePayloadKey returns the key the remote service expects the name under.
func (k EntityKind) NamePayloadKey() string {
	return k.PayloadFields[1]
}
