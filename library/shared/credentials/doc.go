// Package credentials hashes and verifies passwords with bcrypt and issues and validates
// HS256 bearer tokens that carry the principal of a request.
package credentials
