package content

import "github.com/ncobase/geocontent/query"

// TenantFilters scopes a list to tenantID, on the listed records and on
// every populated branch. An empty tenant yields no clauses.
func TenantFilters(tenantID string) []query.FilterClause {
	return query.Predefined(
		query.FilterClause{Key: TenantField, Op: query.OpEq, Value: tenantID},
		query.FilterClause{Key: "*." + TenantField, Op: query.OpEq, Value: tenantID},
	)
}
