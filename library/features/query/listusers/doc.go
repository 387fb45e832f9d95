// Package listusers implements the List Users query use case. Users are listed by name.
package listusers
