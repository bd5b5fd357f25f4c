package admins

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chilume_backend/internals/docstore"
	"chilume_backend/internals/features/users/admins/model"
	"chilume_backend/internals/features/users/auth/identity"
	"chilume_backend/internals/logger"
)

var ErrMissingPassword = errors.New("seed admin: password is empty")

// SeedDefaultAdmin creates or refreshes the organizer account used by the
// key-only login. The password hash is rewritten on every run.
func SeedDefaultAdmin(ctx context.Context, store docstore.AdminStore, email, name, password string) (*model.AdminModel, error) {
	if strings.TrimSpace(password) == "" {
		return nil, ErrMissingPassword
	}
	hash, err := identity.HashSecret(password)
	if err != nil {
		return nil, fmt.Errorf("hash admin secret: %w", err)
	}
	if strings.TrimSpace(name) == "" {
		name = "Fest Organizer"
	}

	admin := &model.AdminModel{
		AdminName:         strings.TrimSpace(name),
		AdminEmail:        strings.ToLower(strings.TrimSpace(email)),
		AdminRole:         model.RoleSuperAdmin,
		AdminPasswordHash: hash,
		AdminIsActive:     true,
	}
	if err := store.UpsertAdmin(ctx, admin); err != nil {
		return nil, fmt.Errorf("upsert admin: %w", err)
	}
	logger.LogI("default admin ready", "email", admin.AdminEmail)
	return admin, nil
}
