// Package userstats implements the User Stats query use case.
//
// Active borrowers are the distinct users holding at least one active borrow. Every other user
// counts as inactive.
package userstats
