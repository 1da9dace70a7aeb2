// Package repository runs the SQL behind every read and write of the service.
//
// Static statements are written with :name placeholders and rewritten to
// Postgres positional parameters once, when the package is initialized. The
// property search statement is assembled per call by package propertysearch.
package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/mikeschinkel/go-sqlparams"
)

// Querier executes a statement and returns its rows. *pgxpool.Pool satisfies it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Args binds statement parameters by name.
type Args map[string]any

// statement is a static statement rewritten for Postgres.
// names[i] is the parameter bound to $(i+1).
type statement struct {
	sql   string
	names []string
}

func postgresPlaceholder(i int) string {
	return "$" + strconv.Itoa(i)
}

// prepare rewrites the :name placeholders of text. It is only called on
// package-level statements, so a malformed one panics at init.
func prepare(text string) statement {
	parsed, err := sqlparams.ParseSQL(sqlparams.SQLQuery(text), postgresPlaceholder)
	if err != nil {
		panic(fmt.Sprintf("repository: invalid statement %q: %v", text, err))
	}

	params := parsed.Parameters()
	names := make([]string, len(params))
	for _, p := range params {
		names[p.Index-1] = string(p.Name)
	}

	return statement{sql: string(parsed.SQL), names: names}
}

// bind orders args by placeholder position.
func (s statement) bind(args Args) ([]any, error) {
	values := make([]any, len(s.names))
	for i, name := range s.names {
		v, ok := args[name]
		if !ok {
			return nil, fmt.Errorf("missing value for parameter :%s", name)
		}
		values[i] = v
	}
	return values, nil
}

func (s statement) query(ctx context.Context, db Querier, args Args) (pgx.Rows, error) {
	values, err := s.bind(args)
	if err != nil {
		return nil, err
	}
	return db.Query(ctx, s.sql, values...)
}
