package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"buffet/internal/core/domain/model/identity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid token")
)

// SessionClaims is the payload of the session tokens issued by the auth
// service for users and buffets.
type SessionClaims struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenVerifier checks HS256 session tokens signed with a shared secret.
type TokenVerifier struct {
	secret []byte
	now    func() time.Time
}

func NewTokenVerifier(secret string) (*TokenVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &TokenVerifier{secret: []byte(secret), now: time.Now}, nil
}

// Verify parses token and returns the principal it names.
func (v *TokenVerifier) Verify(token string) (*identity.Principal, error) {
	var claims SessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, errors.Join(errInvalidToken, err)
	}
	if claims.ID == "" {
		return nil, errInvalidToken
	}

	return &identity.Principal{
		ID:    claims.ID,
		Email: strings.TrimSpace(claims.Email),
		Role:  identity.ParseRole(claims.Role),
	}, nil
}

// Sign issues a token for claims. The service itself only verifies tokens;
// Sign exists for tooling and tests.
func (v *TokenVerifier) Sign(claims SessionClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Authenticate rejects requests without a valid bearer token.
func (v *TokenVerifier) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, err := v.fromRequest(c.Request())
		if err != nil {
			return writeErrorMessage(c, http.StatusUnauthorized, "Unauthorized")
		}

		c.Set(principalKey, principal)
		return next(c)
	}
}

// OptionalAuthenticate attaches the principal when a valid token is present
// and lets anonymous requests through otherwise.
func (v *TokenVerifier) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if principal, err := v.fromRequest(c.Request()); err == nil {
			c.Set(principalKey, principal)
		}
		return next(c)
	}
}

// RequireBuffet admits only principals acting for a buffet. It must run
// after Authenticate.
func RequireBuffet(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !principalFrom(c).IsBuffet() {
			return writeErrorMessage(c, http.StatusForbidden, "Buffet login required")
		}
		return next(c)
	}
}

func (v *TokenVerifier) fromRequest(r *http.Request) (*identity.Principal, error) {
	header := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, errMissingToken
	}

	return v.Verify(strings.TrimSpace(token))
}

// principalFrom returns the authenticated caller or nil.
func principalFrom(c echo.Context) *identity.Principal {
	principal, _ := c.Get(principalKey).(*identity.Principal)
	return principal
}
