package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/expense-report/backend/internal/model"
	"github.com/expense-report/backend/internal/service"
	"github.com/gin-gonic/gin"
)

const authUserKey = "auth_user"

// AuthMiddleware attaches the token identity to the request when the bearer
// token is present, not revoked and valid. It never rejects: a missing,
// revoked or malformed token leaves the request anonymous and the handler
// decides whether that is acceptable.
func AuthMiddleware(tokens *service.TokenService, blacklist *service.BlacklistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		revoked, err := blacklist.IsRevoked(c.Request.Context(), token)
		if err != nil {
			log.Printf("[Auth] Blacklist lookup failed: %v", err)
			c.Next()
			return
		}
		if revoked {
			c.Next()
			return
		}

		user, err := tokens.ExtractIdentity(token)
		if err != nil {
			log.Printf("[Auth] JWT token parsing error: %v", err)
			c.Next()
			return
		}
		if !tokens.Validate(token, user.Email) {
			c.Next()
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

func GetAuthUser(c *gin.Context) *model.AuthUser {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.AuthUser); ok {
			return user
		}
	}
	return nil
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

// authorizeUser resolves the account named by the :userid path parameter
// for the current caller, writing the error response when access is denied.
func authorizeUser(c *gin.Context, access *service.AccessService) (*model.User, bool) {
	identity := GetAuthUser(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
		return nil, false
	}

	user, err := access.AuthorizeUser(c.Request.Context(), c.Param("userid"), identity)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return nil, false
		}
		writeError(c, err)
		return nil, false
	}
	return user, true
}

func CORSMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
