package domain

// ConferenceFilter is one raw, user-supplied filter triple. Field and
// Operator are alias names (e.g. "CITY", "GTEQ") resolved by the filter
// compiler; Value is always supplied as a string.
type ConferenceFilter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Filter field names after alias resolution.
const (
	FilterFieldCity         = "city"
	FilterFieldTopics       = "topics"
	FilterFieldMonth        = "month"
	FilterFieldMaxAttendees = "maxAttendees"
)

// Filter operators after alias resolution.
const (
	FilterOpEq   = "="
	FilterOpGt   = ">"
	FilterOpGtEq = ">="
	FilterOpLt   = "<"
	FilterOpLtEq = "<="
	FilterOpNe   = "!="
)

// CompiledFilter is a validated, normalized filter. Value is a string for
// city/topics and an int for month/maxAttendees.
type CompiledFilter struct {
	Field    string
	Operator string
	Value    any
}

// ConferenceQuery is the output of the filter compiler: the normalized
// filters plus the resulting sort order. When an inequality filter is
// present, its field sorts first with name as the tie-break; otherwise the
// query sorts by name alone.
type ConferenceQuery struct {
	Filters []CompiledFilter
	// InequalityField is the single field filtered with a non-equality
	// operator, or "" if all filters are equality.
	InequalityField string
	// OrderBy lists sort fields in priority order.
	OrderBy []string
}
