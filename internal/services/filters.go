package services

import (
	"fmt"
	"strconv"

	"conferencecentral/internal/domain"
)

// Alias tables for user-supplied filter triples. Unknown aliases are
// rejected; clients never reference column names directly.
var filterFields = map[string]string{
	"CITY":          domain.FilterFieldCity,
	"TOPIC":         domain.FilterFieldTopics,
	"MONTH":         domain.FilterFieldMonth,
	"MAX_ATTENDEES": domain.FilterFieldMaxAttendees,
}

var filterOperators = map[string]string{
	"EQ":   domain.FilterOpEq,
	"GT":   domain.FilterOpGt,
	"GTEQ": domain.FilterOpGtEq,
	"LT":   domain.FilterOpLt,
	"LTEQ": domain.FilterOpLtEq,
	"NE":   domain.FilterOpNe,
}

// numericFilterFields lists fields whose values are coerced to integers
// before comparison.
var numericFilterFields = map[string]struct{}{
	domain.FilterFieldMonth:        {},
	domain.FilterFieldMaxAttendees: {},
}

// CompileConferenceFilters resolves aliases, validates and normalizes a raw
// filter set into a ConferenceQuery. At most one distinct field may use a
// non-equality operator; a query with an inequality field sorts by that field
// first with conference name as the tie-break, otherwise by name alone.
// Validation failures are reported as domain.ErrInvalidInput.
//
// The single-inequality rule originates from the datastore the system was
// first built on. It is kept so clients keep getting the same rejections
// even though the SQL backend could evaluate more.
func CompileConferenceFilters(filters []domain.ConferenceFilter) (domain.ConferenceQuery, error) {
	q := domain.ConferenceQuery{}

	for _, f := range filters {
		field, fieldOK := filterFields[f.Field]
		op, opOK := filterOperators[f.Operator]
		if !fieldOK || !opOK {
			return domain.ConferenceQuery{}, fmt.Errorf("%w: filter contains invalid field or operator", domain.ErrInvalidInput)
		}

		var value any = f.Value
		if _, numeric := numericFilterFields[field]; numeric {
			n, err := strconv.Atoi(f.Value)
			if err != nil {
				return domain.ConferenceQuery{}, fmt.Errorf("%w: filter value %q for field %s must be an integer", domain.ErrInvalidInput, f.Value, f.Field)
			}
			value = n
		}

		// Every operator except "=" is an inequality, and the backing query
		// may only carry one inequality field.
		if op != domain.FilterOpEq {
			if q.InequalityField != "" && q.InequalityField != field {
				return domain.ConferenceQuery{}, fmt.Errorf("%w: inequality filter is allowed on only one field", domain.ErrInvalidInput)
			}
			q.InequalityField = field
		}

		q.Filters = append(q.Filters, domain.CompiledFilter{
			Field:    field,
			Operator: op,
			Value:    value,
		})
	}

	if q.InequalityField != "" {
		q.OrderBy = []string{q.InequalityField, "name"}
	} else {
		q.OrderBy = []string{"name"}
	}
	return q, nil
}
