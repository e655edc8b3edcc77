package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrSearchOrdersQueryIsNotConstructed = errors.New(
	"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
)

// SearchCriteria are the optional filters of the admin order search. Zero
// values disable a filter; with no filter every order matches.
type SearchCriteria struct {
	CustomerID   int64
	Status       order.Status
	NumberPrefix string
	CreatedFrom  time.Time
	CreatedTo    time.Time
}

// SearchOrdersQuery finds order summaries matching all given criteria,
// newest first, with the total number of matches for paging.
//
// Example:
//
//	query, err := NewSearchOrdersQuery(SearchCriteria{Status: order.Pending}, ports.Page{Limit: 50})
//	result, err := NewSearchOrdersQueryHandler(db).Handle(ctx, query)
//	fmt.Printf("%d of %d pending orders\n", len(result.Items), result.Total)
type SearchOrdersQuery struct {
	criteria SearchCriteria
	page     ports.Page

	guard guard.ConstructorGuard
}

func NewSearchOrdersQuery(criteria SearchCriteria, page ports.Page) (SearchOrdersQuery, error) {
	var customerErr, statusErr, rangeErr error
	if criteria.CustomerID < 0 {
		customerErr = errs.NewValueIsInvalidErrorWithCause(
			"customer_id",
			fmt.Errorf("%d is negative", criteria.CustomerID),
		)
	}
	if criteria.Status != order.Unknown {
		statusErr = criteria.Status.Validate()
	}
	if !criteria.CreatedFrom.IsZero() && !criteria.CreatedTo.IsZero() && criteria.CreatedTo.Before(criteria.CreatedFrom) {
		rangeErr = errs.NewValueIsInvalidErrorWithCause("created_to", errors.New("is before created_from"))
	}
	if err := errors.Join(customerErr, statusErr, rangeErr); err != nil {
		return SearchOrdersQuery{}, errs.NewValidationError("search criteria are invalid", customerErr, statusErr, rangeErr)
	}

	criteria.NumberPrefix = strings.ToUpper(strings.TrimSpace(criteria.NumberPrefix))
	return SearchOrdersQuery{
		criteria: criteria,
		page:     page.Normalize(),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

func (q SearchOrdersQuery) Criteria() SearchCriteria {
	return q.criteria
}

func (q SearchOrdersQuery) Page() ports.Page {
	return q.page
}

// where renders the criteria as a SQL WHERE clause with positional arguments.
func (q SearchOrdersQuery) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	c := q.criteria
	if c.CustomerID > 0 {
		conds = append(conds, "customer_id = ?")
		args = append(args, c.CustomerID)
	}
	if c.Status != order.Unknown {
		conds = append(conds, "status = ?")
		args = append(args, c.Status.String())
	}
	if c.NumberPrefix != "" {
		conds = append(conds, "number LIKE ?")
		args = append(args, escapeLike(c.NumberPrefix)+"%")
	}
	if !c.CreatedFrom.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, c.CreatedFrom)
	}
	if !c.CreatedTo.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, c.CreatedTo)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// SearchOrdersResult is one page of matches and the count of all matches.
type SearchOrdersResult struct {
	Items  []OrderSummary `json:"items"`
	Total  int64          `json:"total"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}
