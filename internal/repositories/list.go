package repositories

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"event-rental/pkg/types"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// searchCondition matches filter.Search against cols with ILIKE.
// It returns nil when there is nothing to search for.
func searchCondition(search string, cols ...string) sq.Sqlizer {
	search = strings.TrimSpace(search)
	if search == "" || len(cols) == 0 {
		return nil
	}
	pattern := "%" + escapeLike(search) + "%"
	or := sq.Or{}
	for _, col := range cols {
		or = append(or, sq.ILike{col: pattern})
	}
	return or
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// paginate applies limit and offset, newest rows first.
func paginate(b sq.SelectBuilder, orderBy string, filter types.Filter) sq.SelectBuilder {
	b = b.OrderBy(orderBy + " DESC")
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		b = b.Offset(uint64(filter.Offset))
	}
	return b
}

// count runs SELECT COUNT(*) over table with an optional condition.
func count(ctx context.Context, q Querier, table string, where sq.Sqlizer) (uint64, error) {
	b := psql.Select("COUNT(*)").From(table)
	if where != nil {
		b = b.Where(where)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query for %s: %w", table, err)
	}

	var total uint64
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return total, nil
}
