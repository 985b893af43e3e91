package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in bearer tokens.
const (
	RoleAdmin  = "ADMIN"
	RoleDriver = "DRIVER"
)

const callerKey = "caller"

// Caller is the authenticated principal of a request.
type Caller struct {
	Subject string
	Role    string
}

// Claims are the JWT claims the service accepts.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth verifies the bearer token with the given HMAC secret and stores the
// caller in the gin context.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "authorization header required")
			return
		}

		caller, err := ParseToken(secret, tokenString)
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not listed. It must run after Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		for _, role := range roles {
			if caller.Role == role {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "FORBIDDEN", "insufficient role")
	}
}

// CallerFrom returns the caller stored by Auth.
func CallerFrom(c *gin.Context) (Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return Caller{}, false
	}
	caller, ok := v.(Caller)
	return caller, ok
}

// IssueToken signs an HS256 token for subject and role.
func IssueToken(secret []byte, subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken validates an HS256 token and returns its caller.
func ParseToken(secret []byte, tokenString string) (Caller, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Caller{}, err
	}
	if !token.Valid {
		return Caller{}, errors.New("token is not valid")
	}
	if claims.Subject == "" || claims.Role == "" {
		return Caller{}, errors.New("token is missing subject or role")
	}
	return Caller{Subject: claims.Subject, Role: claims.Role}, nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": code})
}
