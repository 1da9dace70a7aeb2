// Package sqlerr translates database driver errors into application errors.
//
// Postgres reports failures with SQLSTATE codes; this package groups the ones
// the API cares about (constraint violations, missing rows) and turns them
// into errs.HTTPError values with messages a client can show.
package sqlerr
