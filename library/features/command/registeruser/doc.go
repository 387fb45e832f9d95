// Package registeruser implements the Register User use case.
//
// Anyone can register as a member. Registering as an admin is only allowed when the deployment
// enables admin signup, or through the admin CLI. Email addresses are unique, the password is
// stored as a bcrypt hash.
package registeruser
