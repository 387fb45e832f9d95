// Package authenticateuser implements the Authenticate User use case.
//
// The login identifier matches either the email or the name of a user. Names are not unique, so every
// matching user is tried, email matches first, and the first one whose password verifies is logged in.
// All failures are reported as the same "Invalid credentials" error.
package authenticateuser
