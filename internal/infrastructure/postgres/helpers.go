package postgres

import (
	"fmt"
	"sort"
)

// buildSetClause converts a field->value map into a SQL SET clause with
// positional placeholders starting at $next. Keys are sorted so generated
// statements are deterministic.
func buildSetClause(updates map[string]interface{}, next int) (string, []interface{}, error) {
	if len(updates) == 0 {
		return "", nil, fmt.Errorf("no fields to update")
	}
	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clause := ""
	args := make([]interface{}, 0, len(updates))
	for i, k := range keys {
		if i > 0 {
			clause += ", "
		}
		clause += fmt.Sprintf("%s = $%d", k, next)
		args = append(args, updates[k])
		next++
	}
	return clause, args, nil
}
