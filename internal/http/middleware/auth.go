package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Roles recognised by the staff endpoints.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

const (
	ctxKeyUserID = "userID"
	ctxKeyRole   = "role"
)

// ErrNoSecret is returned by JWTVerifier when no signing secret is set.
var ErrNoSecret = errors.New("auth: signing secret not configured")

// Principal is the authenticated caller.
type Principal struct {
	UserID string
	Role   string
}

// TokenVerifier turns a bearer token into a Principal.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
}

// Claims carried by staff tokens. The subject is the user ID.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTVerifier checks HS256 tokens. With an empty Secret every token is
// rejected, so the staff API stays closed until a secret is configured.
type JWTVerifier struct {
	Secret []byte
	Issuer string
}

func (v JWTVerifier) Verify(token string) (Principal, error) {
	if len(v.Secret) == 0 {
		return Principal{}, ErrNoSecret
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.Issuer))
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.Secret, nil
	}, opts...)
	if err != nil {
		return Principal{}, err
	}
	if claims.Subject == "" {
		return Principal{}, fmt.Errorf("auth: token has no subject")
	}
	return Principal{UserID: claims.Subject, Role: claims.Role}, nil
}

// Issue signs a token for p valid for ttl. The API never issues tokens
// itself; this is used by tooling and tests.
func (v JWTVerifier) Issue(p Principal, ttl time.Duration) (string, error) {
	if len(v.Secret) == 0 {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := Claims{
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			Issuer:    v.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.Secret)
}

// Authenticate requires "Authorization: Bearer <token>" and stores the
// caller's user ID and role in the Gin context.
func Authenticate(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(h, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abort(c, http.StatusUnauthorized, codeUnauthorized, "Authentication required")
			return
		}
		p, err := v.Verify(strings.TrimSpace(token))
		if err != nil {
			LoggerFrom(c).Debug().Err(err).Msg("bearer token rejected")
			abort(c, http.StatusUnauthorized, codeUnauthorized, "Invalid or expired token")
			return
		}
		c.Set(ctxKeyUserID, p.UserID)
		c.Set(ctxKeyRole, p.Role)
		c.Next()
	}
}

// RequireRole lets the request through only when Authenticate stored one of
// roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role, _ := c.Get(ctxKeyRole)
		if _, ok := allowed[asString(role)]; !ok {
			abort(c, http.StatusForbidden, codeForbidden, "You do not have permission to perform this action")
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the caller stored by Authenticate.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	uid, _ := c.Get(ctxKeyUserID)
	role, _ := c.Get(ctxKeyRole)
	p := Principal{UserID: asString(uid), Role: asString(role)}
	return p, p.UserID != ""
}
