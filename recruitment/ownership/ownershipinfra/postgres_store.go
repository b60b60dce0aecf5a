package ownershipinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/jobgate-vn/jobgate/recruitment/ownership"
	"github.com/lib/pq"
)

// PostgresStore implements ownership.Store for one entity type using
// dynamically built single-statement queries. Ownership predicates and
// join chains are compiled into the SQL itself, so the database decides
// access atomically.
type PostgresStore[E any] struct {
	db *sqlx.DB
}

// NewPostgresStore creates a PostgreSQL ownership store
func NewPostgresStore[E any](db *sqlx.DB) *PostgresStore[E] {
	return &PostgresStore[E]{db: db}
}

// FindOneWhere returns the single entity matching the query, or nil when
// no row matches
func (s *PostgresStore[E]) FindOneWhere(ctx context.Context, q ownership.Query) (*E, error) {
	query, args := buildQuery(q, ownership.BaseAlias+".*")

	var entity E
	if err := s.db.GetContext(ctx, &entity, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ownership lookup on %s: %w", q.Table, err)
	}

	return &entity, nil
}

// CountWhere returns the number of rows matching the query
func (s *PostgresStore[E]) CountWhere(ctx context.Context, q ownership.Query) (int64, error) {
	query, args := buildQuery(q, "COUNT(*)")

	var count int64
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("ownership count on %s: %w", q.Table, err)
	}

	return count, nil
}

// buildQuery compiles an ownership.Query into one SQL statement.
// Join chains become INNER JOINs, conditions become an AND-combined
// WHERE clause with positional parameters.
func buildQuery(q ownership.Query, selectExpr string) (string, []any) {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s AS %s", selectExpr, q.Table, ownership.BaseAlias)

	prevAlias := ownership.BaseAlias
	for i, hop := range q.Joins {
		alias := ownership.RelationAlias(i)
		fmt.Fprintf(&b, " INNER JOIN %s AS %s ON %s.%s = %s.%s",
			hop.Table, alias, alias, hop.ToColumn, prevAlias, hop.FromColumn)
		prevAlias = alias
	}

	args := make([]any, 0, len(q.Conditions))
	clauses := make([]string, 0, len(q.Conditions))
	for _, cond := range q.Conditions {
		column := qualify(cond.Column)

		switch cond.Op {
		case ownership.OpIsNull:
			clauses = append(clauses, column+" IS NULL")
		case ownership.OpIn:
			args = append(args, pq.Array(cond.Value))
			clauses = append(clauses, fmt.Sprintf("%s = ANY($%d)", column, len(args)))
		default:
			args = append(args, cond.Value)
			clauses = append(clauses, fmt.Sprintf("%s %s $%d", column, cond.Op, len(args)))
		}
	}

	if len(clauses) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(clauses, " AND "))
	}

	return b.String(), args
}

// qualify prefixes unqualified columns with the entity table alias
func qualify(column string) string {
	if strings.Contains(column, ".") {
		return column
	}
	return ownership.BaseAlias + "." + column
}
