// Package store defines the persistence interfaces and sentinel errors used
// by the service layer. Concrete implementations live in
// internal/platform/postgres. Uniqueness invariants (email, pending
// application, enrollment, lesson order, certificate) are enforced by the
// storage backend; stores translate constraint violations into the sentinel
// errors declared here so services never pre-check-then-insert.
package store
