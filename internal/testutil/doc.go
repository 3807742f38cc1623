// Package testutil contains helper sinks and builders used across tests to
// reduce boilerplate when collecting lifecycle events and constructing
// calendar fixtures. These helpers are intentionally minimal and avoid adding
// third-party dependencies. They are not intended for production usage.
package testutil
