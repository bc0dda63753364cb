// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports).
//
// The core services depend on these interfaces only; concrete
// implementations live under internal/adapters/driven and are injected
// through constructors so each service stays independently testable.
package driven
