package service

import (
	"context"

	"github.com/expense-report/backend/internal/model"
)

// AccessService answers whether an authenticated caller may act on the
// account named in the request path.
type AccessService struct {
	users *UserService
}

func NewAccessService(users *UserService) *AccessService {
	return &AccessService{users: users}
}

// AuthorizeUser runs the ownership checks shared by every protected route
// and returns the stored account on success.
func (s *AccessService) AuthorizeUser(ctx context.Context, pathUserID string, identity *model.AuthUser) (*model.User, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}
	if err := CheckOwnership(pathUserID, identity.ID, identity.Email, nil); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, pathUserID)
	if err != nil {
		return nil, err
	}
	if err := CheckOwnership(pathUserID, identity.ID, identity.Email, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CheckOwnership compares the path user id with the token subject and, when
// stored is given, the token email with the stored email. A token minted
// before an email change fails the second check.
func CheckOwnership(claimedUserID, tokenSubject, tokenEmail string, stored *model.User) error {
	if claimedUserID == "" || claimedUserID != tokenSubject {
		return ErrForbidden
	}
	if stored == nil {
		return nil
	}
	if stored.ID != claimedUserID || stored.Email != tokenEmail {
		return ErrForbidden
	}
	return nil
}
