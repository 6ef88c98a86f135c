// Package internalcheck holds source-level policy tests for anoncreds.
//
// The tests load the library packages with golang.org/x/tools/go/packages and
// inspect their syntax and types. They guard properties the compiler cannot:
// encoded attribute values never reach a format string or logger, and builder
// methods all use pointer receivers so the move-only tombstone is shared by
// every copy of the handle.
//
// It has no exported API.
package internalcheck
