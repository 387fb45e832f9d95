// Package httpapi exposes the library use cases over HTTP.
//
// Routing uses chi. Request and response bodies are JSON, encoded with json-iterator. Every error
// response has the shape {"detail": "<message>"}, and the status code follows the kind of the business error:
//
//	InvalidArgument    -> 400
//	Unauthenticated    -> 401
//	PermissionDenied   -> 403
//	NotFound           -> 404
//	Conflict           -> 409
//	FailedPrecondition -> 422
//
// Bearer tokens are parsed by the credential service and the user is reloaded on every request,
// so a deleted user cannot use a token that is still valid, and a role change applies at once.
package httpapi
