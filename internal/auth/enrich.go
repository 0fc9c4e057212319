package auth

import (
	"context"
	"log/slog"

	"admindesk/internal/models"
)

// Identity is an externally-verified login identity, produced either by a
// successful credential check or by an OAuth provider assertion resolved to
// an internal user record.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  models.Role
}

// Session is the externally-visible session object, reconstructed from the
// token on each request.
type Session struct {
	UserID string      `json:"id"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
}

// UserResolver looks up a user by email for role backfill.
type UserResolver func(ctx context.Context, email string) (*models.User, error)

// EnrichClaims returns a new claim set from the existing token and an
// optional fresh login identity. A fresh login embeds the internal id and
// role; otherwise the claims pass through unchanged.
func EnrichClaims(existing TokenClaims, login *Identity) TokenClaims {
	if login == nil {
		return existing
	}
	existing.UserID = login.ID
	existing.Email = login.Email
	existing.Name = login.Name
	existing.Role = login.Role
	return existing
}

// BackfillClaims resolves the user by the email embedded in a token that
// lacks a role (the very first OAuth-derived token) and fills in id and
// role. A lookup error leaves the claims as-is; the session may then be
// missing role/id rather than failing closed.
func BackfillClaims(ctx context.Context, claims TokenClaims, resolve UserResolver) TokenClaims {
	if claims.Role != "" || claims.Email == "" {
		return claims
	}

	user, err := resolve(ctx, claims.Email)
	if err != nil {
		slog.ErrorContext(ctx, "user lookup during token enrichment failed",
			slog.String("email", claims.Email),
			slog.String("error", err.Error()),
		)
		return claims
	}
	if user == nil {
		return claims
	}

	claims.UserID = user.ID.Hex()
	claims.Role = user.Role
	return claims
}

// ProjectSession copies id and role from the token into the outward-facing
// session object.
func ProjectSession(claims TokenClaims) Session {
	return Session{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
	}
}
