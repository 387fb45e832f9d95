// Package fixtures arranges books, users and borrow records directly in a LibraryStore for tests.
package fixtures
