package middleware

import (
	"errors"
	"strings"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/pkg/apperrors"
	"jobportal_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errNoToken = errors.New("no bearer token")

// Authenticator resolves the caller of a request from its bearer token.
type Authenticator struct {
	tokens *auth.TokenService
	users  repositories.UserRepository
}

func NewAuthenticator(tokens *auth.TokenService, users repositories.UserRepository) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Required rejects requests without a valid token (401) or from a blocked account (403).
func (a *Authenticator) Required() gin.HandlerFunc {
	return a.handler(false)
}

// RequiredWithQuery also accepts the token as ?token=, for direct download links and websockets.
func (a *Authenticator) RequiredWithQuery() gin.HandlerFunc {
	return a.handler(true)
}

// Optional resolves the caller when it can and otherwise continues anonymously.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := a.resolve(c, false); err == nil && !user.IsBlocked {
			setCaller(c, user)
		}
		c.Next()
	}
}

func (a *Authenticator) handler(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.resolve(c, allowQuery)
		if err != nil {
			if errors.Is(err, errNoToken) {
				apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
				return
			}
			apperrors.HandleError(c, err)
			return
		}
		if user.IsBlocked {
			logger.CtxWarn(c.Request.Context(), "blocked user rejected", "user_id", user.ID, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrAccountBlocked)
			return
		}

		setCaller(c, user)
		c.Next()
	}
}

func (a *Authenticator) resolve(c *gin.Context, allowQuery bool) (*models.User, error) {
	raw := bearerToken(c)
	if raw == "" && allowQuery {
		raw = c.Query("token")
	}
	if raw == "" {
		return nil, errNoToken
	}

	claims, err := a.tokens.ParseAccessToken(raw)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := a.users.FindByID(requestDB(c), claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func setCaller(c *gin.Context, user *models.User) {
	c.Set(contextkeys.UserKey, user)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))
}

// RequireCapability is the authorization stage; it runs after Required.
func RequireCapability(capability auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		if !auth.Can(user.Role, capability) {
			logger.CtxWarn(c.Request.Context(), "capability denied",
				"role", user.Role, "capability", capability, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions.WithDetails(gin.H{"allowedRoles": auth.RolesWith(capability)}))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated caller, or nil.
func CurrentUser(c *gin.Context) *models.User {
	val, ok := c.Get(contextkeys.UserKey)
	if !ok {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}

func requestDB(c *gin.Context) *gorm.DB {
	if db, ok := c.Get(string(contextkeys.DBContextKey)); ok {
		if gdb, ok := db.(*gorm.DB); ok {
			return gdb
		}
	}
	panic("middleware: DBMiddleware must run before authentication")
}
