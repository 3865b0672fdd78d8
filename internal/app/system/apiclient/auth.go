// internal/app/system/apiclient/auth.go
package apiclient

import (
	"context"
	"fmt"

	"github.com/dalemusser/raizes/internal/domain/models"
	"go.uber.org/zap"
)

// Identity resolves and updates the current user.
type Identity interface {
	// Me never fails: any error degrades to models.GuestUser().
	Me(ctx context.Context) models.User
	UpdateMe(ctx context.Context, patch models.Patch) (models.User, error)
}

// Auth serves a fixed user record as the current user. There is no session
// protocol; the record id comes from configuration.
type Auth struct {
	users  Collection[models.User]
	userID models.ID
	log    *zap.Logger
}

// NewAuth builds an Auth over an arbitrary user collection.
func NewAuth(users Collection[models.User], userID models.ID, log *zap.Logger) *Auth {
	if log == nil {
		log = zap.NewNop()
	}
	return &Auth{users: users, userID: userID, log: log}
}

// Me returns the current user, or the guest identity on any failure.
func (a *Auth) Me(ctx context.Context) models.User {
	u, err := a.users.Get(ctx, a.userID)
	if err != nil {
		a.log.Warn("current user unavailable, continuing as guest",
			zap.String("user_id", a.userID.String()),
			zap.Error(err))
		return models.GuestUser()
	}
	return u
}

// UpdateMe patches the current user record.
func (a *Auth) UpdateMe(ctx context.Context, patch models.Patch) (models.User, error) {
	u, err := a.users.Update(ctx, a.userID, patch)
	if err != nil {
		return models.User{}, fmt.Errorf("update current user: %w", err)
	}
	return u, nil
}
