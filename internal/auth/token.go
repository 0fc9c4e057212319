package auth

import (
	"fmt"
	"time"

	"admindesk/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "admindesk-api"
	tokenAudience = "admindesk-client"
	tokenLifetime = 7 * 24 * time.Hour
)

// TokenClaims is the decoded application view of a session token. Role may
// be empty on the very first request after an OAuth login; the policy
// backfills it by email.
type TokenClaims struct {
	UserID string
	Email  string
	Name   string
	Role   models.Role
}

// IssueToken signs a session token carrying the given claims.
func IssueToken(claims TokenClaims, jwtSecret string) (string, error) {
	if jwtSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	mapClaims := jwt.MapClaims{
		"sub":   claims.UserID,
		"email": claims.Email,
		"name":  claims.Name,
		"role":  string(claims.Role),
		"iss":   tokenIssuer,
		"aud":   tokenAudience,
		"exp":   now.Add(tokenLifetime).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"jti":   generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString([]byte(jwtSecret))
}

// ParseToken validates the signature, issuer and audience of a session token
// and decodes its application claims.
func ParseToken(tokenString, jwtSecret string) (TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return TokenClaims{}, fmt.Errorf("invalid or expired token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, fmt.Errorf("invalid token claims")
	}

	if issuer, ok := mapClaims["iss"].(string); !ok || issuer != tokenIssuer {
		return TokenClaims{}, fmt.Errorf("invalid token issuer")
	}
	if audience, ok := mapClaims["aud"].(string); !ok || audience != tokenAudience {
		return TokenClaims{}, fmt.Errorf("invalid token audience")
	}

	claims := TokenClaims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.UserID = sub
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := mapClaims["name"].(string); ok {
		claims.Name = name
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = models.Role(role)
	}
	return claims, nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
