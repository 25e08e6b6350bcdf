// Package authz defines the ownership policy applied by every catalog operation.
//
// The policy is a single reusable predicate consulted on list, retrieve,
// create, update, delete, and image upload. Keeping it in one place prevents
// per-endpoint drift in the ownership rule.
package authz

import "github.com/recipebox/recipebox/internal/model"

// Policy decides whether an identity may act on a row with the given owner.
type Policy interface {
	Allow(identity *model.AuthContext, ownerID string) bool
}

// OwnerPolicy permits access only to the row's owner.
// This is the sole policy in use; staff have no implicit catalog access.
type OwnerPolicy struct{}

// NewOwnerPolicy returns the ownership policy.
func NewOwnerPolicy() OwnerPolicy {
	return OwnerPolicy{}
}

// Allow reports whether identity owns the row.
// A nil identity never passes.
func (OwnerPolicy) Allow(identity *model.AuthContext, ownerID string) bool {
	if identity == nil || identity.UserID == "" {
		return false
	}
	return identity.UserID == ownerID
}
