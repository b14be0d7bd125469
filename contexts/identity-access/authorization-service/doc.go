// Package authorization implements the admin registry and the user-level
// permission registry.
//
// Layering:
// - domain: permission kinds, invariants, errors
// - application: grant/revoke/check operations using explicit ports
// - ports: stable boundaries for persistence
// - adapters: concrete HTTP, memory, and postgres implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under identity-access context.
// - User-level permission kinds are a distinct type from company-level
//   permission kinds; the two namespaces must never be unified.
package authorization
