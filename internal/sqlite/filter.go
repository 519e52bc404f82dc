package sqlite

import "strings"

// buildWhere turns a Fetch filter into a WHERE clause over the allowed
// column names, ignoring filter keys that are not listed. Returns the
// clause (empty when no key matched) and the bind arguments in order.
func buildWhere(filter map[string]any, allowed ...string) (string, []any) {
	clauses := []string{}
	args := []any{}
	for _, col := range allowed {
		if v, ok := filter[col]; ok {
			clauses = append(clauses, col+" = ?")
			args = append(args, v)
		}
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
