// Package errs defines the error shape every API response uses.
//
// Handlers and services return *HTTPError for anything the client should see;
// the global error handler serializes it as JSON. Field-level errors support
// form validation and Action lets the frontend react (e.g. redirect to login).
package errs
