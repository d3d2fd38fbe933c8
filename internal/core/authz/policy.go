// Package authz implements the access-control contract shared by every
// resource in the portal: who the caller is, what they may touch, and how
// ownership scoping composes with query filters.
package authz

import "github.com/httptim/clientportal/internal/core/domain"

// Identity is the authenticated caller, resolved once per request from the
// session credential and immutable for the request's lifetime. A nil
// *Identity means anonymous.
type Identity struct {
	ID    string
	Role  domain.Role
	Name  string
	Email string
}

// IsAdmin reports whether the identity holds the admin role.
func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == domain.RoleAdmin
}

// Requirement states what an operation demands of the caller. Zero values
// mean "not required": an empty Role skips the role tier, an empty OwnerID
// skips the ownership tier.
type Requirement struct {
	// Role, when set, restricts the operation to callers holding exactly
	// this role (admin-only endpoints set RoleAdmin).
	Role domain.Role
	// OwnerID, when set, is the owning customer of the touched resource.
	// Admins pass regardless; everyone else must be the owner.
	OwnerID string
}

// Authorize evaluates the three access tiers in order:
//
//  1. anonymous          → ErrNotAuthenticated (401)
//  2. wrong role         → ErrForbidden        (403)
//  3. not the owner (and not admin) → ErrForbidden (403)
//
// Every resource-touching operation must run all three tiers through this
// single entry point; nil means the caller may proceed.
func Authorize(id *Identity, req Requirement) error {
	if id == nil {
		return domain.ErrNotAuthenticated
	}
	if req.Role != "" && id.Role != req.Role {
		return domain.ErrForbidden
	}
	if req.OwnerID != "" && id.Role != domain.RoleAdmin && id.ID != req.OwnerID {
		return domain.ErrForbidden
	}
	return nil
}

// RequireAuth is the first tier alone: any authenticated identity passes.
func RequireAuth(id *Identity) error {
	return Authorize(id, Requirement{})
}

// RequireAdmin gates admin-only operations.
func RequireAdmin(id *Identity) error {
	return Authorize(id, Requirement{Role: domain.RoleAdmin})
}

// RequireOwner gates resource-scoped operations on the ownership chain.
func RequireOwner(id *Identity, ownerID string) error {
	return Authorize(id, Requirement{OwnerID: ownerID})
}
