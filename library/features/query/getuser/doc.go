// Package getuser implements the Get User query use case. It also serves the profile of the
// authenticated user.
package getuser
