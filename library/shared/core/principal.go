package core

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the principal has admin rights.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// RequireAdmin fails for principals without admin rights.
func (p Principal) RequireAdmin() error {
	if !p.IsAdmin() {
		return PermissionDenied("Admin access required")
	}

	return nil
}
