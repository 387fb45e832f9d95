// Package core contains the pure domain model of the library backend:
// books with their copy accounting, users with roles, borrow records and the authenticated principal.
//
// Every state transition is a pure function returning a new value, so the rules can be tested
// without a database and composed into Decide functions of the feature slices.
// Business rule violations are reported as Error values carrying one of the error kinds.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
