// Package shell contains the imperative shell shared by all feature slices of the library backend.
//
// It provides retry with exponential backoff for compare-and-swap conflicts, handler results,
// the observability helpers for command and query handlers, and the mapping between the persisted
// records of librarystore and the domain values of core.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
