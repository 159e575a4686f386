// file: internal/services/guard.go
package services

import (
	"context"
	"errors"
	"fmt"

	"vidtube/internal/models"
	"vidtube/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// ===============================
// AUTHORIZATION GUARD
// ===============================

// requireOwner rejects mutations by anyone other than the resource owner.
// Existence is checked before ownership, so a missing resource is reported
// as not found rather than forbidden.
func requireOwner(ownerID, actorID int64, resource string) error {
	if actorID == 0 {
		return NewUnauthorizedError("authentication required")
	}
	if ownerID != actorID {
		return NewForbiddenError(fmt.Sprintf("only the owner can modify this %s", resource))
	}
	return nil
}

// ===============================
// RELATION TOGGLE
// ===============================

// toggleRelation flips a binary relation between an actor and a target.
// The relation is looked up first; if present it is removed, otherwise it is
// created. A unique violation on create means a concurrent toggle inserted
// the row between our lookup and insert, so the relation is active either
// way and the violation is absorbed.
func toggleRelation(
	ctx context.Context,
	lookup func(ctx context.Context) (bool, error),
	create func(ctx context.Context) error,
	remove func(ctx context.Context) (bool, error),
) (*models.ToggleResult, error) {
	active, err := lookup(ctx)
	if err != nil {
		return nil, NewInternalError("failed to look up relation", err)
	}

	if active {
		if _, err := remove(ctx); err != nil {
			return nil, NewInternalError("failed to remove relation", err)
		}
		return &models.ToggleResult{Active: false}, nil
	}

	if err := create(ctx); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRelation) {
			return &models.ToggleResult{Active: true}, nil
		}
		return nil, NewInternalError("failed to create relation", err)
	}
	return &models.ToggleResult{Active: true}, nil
}

// validateStruct runs validator tags and wraps failures as validation errors.
func validateStruct(v *validator.Validate, req interface{}) error {
	if err := v.Struct(req); err != nil {
		return NewValidationError("invalid request", err)
	}
	return nil
}
