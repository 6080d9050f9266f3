package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ims/backend/internal/infrastructure/auth"
)

// Context keys under which the middleware stores the authenticated identity.
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	JWTRoleKey     = "jwt_role"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// JWTMiddlewareConfig configures the authentication middleware. TokenBlacklist
// and Logger are optional; SkipPaths and SkipPathPrefixes list routes that are
// reachable without a token.
type JWTMiddlewareConfig struct {
	JWTService       *auth.JWTService
	TokenBlacklist   auth.TokenBlacklist
	SkipPaths        []string
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// DefaultJWTConfig skips the health and login endpoints, which must stay
// reachable without a token.
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/api/v1/system/ping",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
	}
}

func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthMiddlewareWithConfig authenticates requests with a Bearer access
// token and stores the validated identity in the gin context. Revoked tokens
// are rejected when a blacklist is configured.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.skipsPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		tokenString, err := bearerToken(c)
		if err != nil {
			abortUnauthorized(c, cfg, err, "Missing or malformed authorization header")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, cfg, err, "Token validation failed")
			return
		}

		if revoked, msg := cfg.checkRevocation(c, claims); revoked {
			abortUnauthorized(c, cfg, auth.ErrTokenBlacklisted, msg)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTUsernameKey, claims.Username)
		c.Set(JWTRoleKey, claims.Role)
		c.Next()
	}
}

func (cfg JWTMiddlewareConfig) skipsPath(path string) bool {
	for _, skip := range cfg.SkipPaths {
		if path == skip {
			return true
		}
	}
	for _, prefix := range cfg.SkipPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", auth.ErrInvalidToken
	}
	token := strings.TrimPrefix(header, BearerPrefix)
	if token == "" {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}

// checkRevocation consults the blacklist for both per-token logout and
// user-wide invalidation. Blacklist backend errors fail open: a Redis outage
// must not lock every user out.
func (cfg JWTMiddlewareConfig) checkRevocation(c *gin.Context, claims *auth.Claims) (bool, string) {
	if cfg.TokenBlacklist == nil {
		return false, ""
	}
	ctx := c.Request.Context()

	if claims.ID != "" {
		blacklisted, err := cfg.TokenBlacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("token blacklist check failed",
					zap.String("jti", claims.ID), zap.Error(err))
			}
		} else if blacklisted {
			return true, "Token has been revoked"
		}
	}

	if claims.UserID != "" {
		invalidated, err := cfg.TokenBlacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("user token invalidation check failed",
					zap.String("user_id", claims.UserID), zap.Error(err))
			}
		} else if invalidated {
			return true, "User session has been invalidated"
		}
	}
	return false, ""
}

func abortUnauthorized(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code, detail := "ERR_UNAUTHORIZED", "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		code, detail = "ERR_TOKEN_EXPIRED", "Token has expired"
	case auth.ErrInvalidToken:
		code, detail = "ERR_TOKEN_INVALID", "Invalid token"
	case auth.ErrInvalidTokenType:
		code, detail = "ERR_TOKEN_INVALID", "Invalid token type"
	case auth.ErrTokenNotYetValid:
		code, detail = "ERR_TOKEN_INVALID", "Token is not yet valid"
	case auth.ErrTokenBlacklisted:
		code, detail = "ERR_TOKEN_INVALID", "Token has been revoked"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": detail,
		},
	})
}

// GetJWTClaims returns the claims stored by the middleware, or nil on an
// unauthenticated context.
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

func GetJWTUserID(c *gin.Context) string {
	return contextString(c, JWTUserIDKey)
}

func GetJWTUsername(c *gin.Context) string {
	return contextString(c, JWTUsernameKey)
}

func GetJWTRole(c *gin.Context) string {
	return contextString(c, JWTRoleKey)
}

func contextString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// RequireRole lets only the listed roles through. It must run after
// JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetJWTRole(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ERR_FORBIDDEN",
				"message": "Insufficient role for this operation",
			},
		})
	}
}
