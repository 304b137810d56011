package queries

import (
	"errors"
	"fmt"
	"maps"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrSearchOrdersQueryIsNotConstructed = errors.New(
	"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
)

// SearchOrdersQuery represents a request to list orders whose fields contain
// the given substrings. Filter keys are client-facing camelCase field names;
// entries with an empty value are ignored rather than applied as constraints.
type SearchOrdersQuery struct {
	filters map[string]string
	limit   int
	offset  int

	guard guard.ConstructorGuard
}

// NewSearchOrdersQuery creates a search query. Limit and offset must both be
// non-negative. A nil or empty filter map yields the unconstrained, paginated
// listing. The filter map is copied so later caller mutation cannot change
// the query.
func NewSearchOrdersQuery(filters map[string]string, limit, offset int) (SearchOrdersQuery, error) {
	if limit < 0 {
		return SearchOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("limit",
			fmt.Errorf("%d is negative", limit))
	}
	if offset < 0 {
		return SearchOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("offset",
			fmt.Errorf("%d is negative", offset))
	}

	return SearchOrdersQuery{
		filters: maps.Clone(filters),
		limit:   limit,
		offset:  offset,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Filters returns the filter mapping.
func (q SearchOrdersQuery) Filters() map[string]string {
	return q.filters
}

// Limit returns the maximum number of records to return.
func (q SearchOrdersQuery) Limit() int {
	return q.limit
}

// Offset returns the number of records to skip.
func (q SearchOrdersQuery) Offset() int {
	return q.offset
}

// Validate ensures the query was created via its constructor.
func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}
