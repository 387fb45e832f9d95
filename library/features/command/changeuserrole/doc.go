// Package changeuserrole implements the Change User Role use case.
//
// An admin promotes a member to admin or demotes an admin to member. The role is written with a
// compare-and-swap on the previously read role, so two admins racing on the same user cannot both win.
package changeuserrole
