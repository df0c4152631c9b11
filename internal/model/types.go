package model

// Flag values used by the host wire format for Field toggles.
const (
	FlagOff = "0"
	FlagOn  = "1"
)

// RowActionEdit marks a row as changed so the host applies its fields.
const RowActionEdit = "EDIT"

// Error codes accepted by the host when an Option is returned.
const (
	ErrorCodeNone     = 0
	ErrorCodeError    = 1
	ErrorCodeOKCancel = 2
	ErrorCodeInfo     = 3
	ErrorCodeYesNo    = 4
	ErrorCodeOpenURL  = 5
)

// Field is a single named value slot within a row. Flags use the host's
// text encoding ("0"/"1"). The modified marker is tracked privately so it
// never leaks into equality checks or serialised payloads.
type Field struct {
	FieldNumber string `json:"FieldNumber" yaml:"FieldNumber"`
	FieldValue  string `json:"FieldValue" yaml:"FieldValue"`
	Enabled     string `json:"Enabled" yaml:"Enabled"`
	Required    string `json:"Required" yaml:"Required"`
	Lock        string `json:"Lock" yaml:"Lock"`

	modified bool
}

// Row is one record within a form.
type Row struct {
	RowID       string  `json:"RowId" yaml:"RowId"`
	ParentRowID string  `json:"ParentRowId" yaml:"ParentRowId"`
	RowAction   string  `json:"RowAction" yaml:"RowAction"`
	Mode        string  `json:"Mode,omitempty" yaml:"Mode,omitempty"`
	Fields      []Field `json:"Fields" yaml:"Fields"`
}

// Form holds the row currently being edited plus, for multiple iteration
// tables, the remaining rows. A nil CurrentRow means the host sent none.
type Form struct {
	FormID            string `json:"FormId" yaml:"FormId"`
	MultipleIteration bool   `json:"MultipleIteration" yaml:"MultipleIteration"`
	CurrentRow        *Row   `json:"CurrentRow" yaml:"CurrentRow"`
	OtherRows         []Row  `json:"OtherRows" yaml:"OtherRows"`
}

// Header carries the invocation metadata shared by both Option variants.
type Header struct {
	EntityID        string `json:"EntityID" yaml:"EntityID"`
	EpisodeNumber   int    `json:"EpisodeNumber" yaml:"EpisodeNumber"`
	ErrorCode       int    `json:"ErrorCode" yaml:"ErrorCode"`
	ErrorMesg       string `json:"ErrorMesg" yaml:"ErrorMesg"`
	Facility        string `json:"Facility" yaml:"Facility"`
	NamespaceName   string `json:"NamespaceName" yaml:"NamespaceName"`
	OptionID        string `json:"OptionId" yaml:"OptionId"`
	OptionStaffID   string `json:"OptionStaffId" yaml:"OptionStaffId"`
	OptionUserID    string `json:"OptionUserId" yaml:"OptionUserId"`
	ParentNamespace string `json:"ParentNamespace" yaml:"ParentNamespace"`
	ServerName      string `json:"ServerName" yaml:"ServerName"`
	SystemCode      string `json:"SystemCode" yaml:"SystemCode"`
}

// LegacyOption is the first generation root document.
type LegacyOption struct {
	Header `yaml:",inline"`
	Forms  []Form `json:"Forms" yaml:"Forms"`
}

// Option is the revised root document. It adds the session token issued by
// the host for the current invocation.
type Option struct {
	Header       `yaml:",inline"`
	SessionToken string `json:"SessionToken" yaml:"SessionToken"`
	Forms        []Form `json:"Forms" yaml:"Forms"`
}
