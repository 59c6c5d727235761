package service

import (
	"errors"

	"github.com/vibast-solutions/ms-go-bootcamps/app/entity"
)

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("not permitted")
)

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID string
	Role   entity.Role
}

// RequireRole fails with ErrForbidden unless the identity's role is in the
// allowed set.
func RequireRole(ident Identity, allowed ...entity.Role) error {
	for _, role := range allowed {
		if ident.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// RequireOwnerOrRole is the single mutation gate for owned resources: the
// owner may always act, anyone else needs a role from the override set.
func RequireOwnerOrRole(ident Identity, ownerID string, allowed ...entity.Role) error {
	if ident.UserID == ownerID {
		return nil
	}
	return RequireRole(ident, allowed...)
}
