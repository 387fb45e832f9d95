// Package listbooks implements the List Books query use case.
//
// It returns the whole catalog ordered by id, discontinued books included. The listing reads with
// eventual consistency, so it may lag behind the primary when a read replica is configured.
package listbooks
