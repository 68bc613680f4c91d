package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kaganyildiz/academix/internal/app/models"
	"github.com/kaganyildiz/academix/internal/app/models/dto"
	"github.com/kaganyildiz/academix/internal/app/repositories"
	"github.com/kaganyildiz/academix/internal/pkg/apperrors"
	"github.com/kaganyildiz/academix/internal/pkg/auth"
	"github.com/kaganyildiz/academix/internal/pkg/cache"
)

const identityKey = "identity"

// Identity is the authenticated account context attached to each request
type Identity struct {
	UserID       int64
	Username     string
	Role         models.Role
	AssociatedID *int64
}

// IdentityFromContext returns the identity set by JWTAuth, if any
func IdentityFromContext(c *gin.Context) (*Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*Identity)
	return identity, ok
}

// AuthMiddleware holds the authentication and authorization gates
type AuthMiddleware struct {
	jwtService  *auth.JWTService
	userRepo    repositories.IUserRepository
	studentRepo repositories.IStudentRepository
	userCache   *cache.UserCache
	logger      zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware. userCache may be nil.
func NewAuthMiddleware(
	jwtService *auth.JWTService,
	userRepo repositories.IUserRepository,
	studentRepo repositories.IStudentRepository,
	userCache *cache.UserCache,
	logger zerolog.Logger,
) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		userRepo:    userRepo,
		studentRepo: studentRepo,
		userCache:   userCache,
		logger:      logger,
	}
}

// JWTAuth validates the bearer token and loads the account behind it.
// Single-attempt gate: exactly one verification and one account lookup per
// request, no retries.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Access token required"))
			return
		}

		// The header must be exactly "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid authorization header format"))
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Token expired"))
			case errors.Is(err, auth.ErrInvalidToken):
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid token"))
			default:
				m.logger.Error().Err(err).Msg("Unexpected token verification failure")
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Authentication error"))
			}
			return
		}

		user, err := m.lookupUser(c, claims.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid token - user not found"))
				return
			}
			m.logger.Error().Err(err).Int64("userID", claims.UserID).Msg("Account lookup failed during authentication")
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Authentication error"))
			return
		}

		c.Set(identityKey, &Identity{
			UserID:       user.ID,
			Username:     user.Username,
			Role:         user.Role,
			AssociatedID: user.AssociatedID(),
		})

		c.Next()
	}
}

// lookupUser reads through the cache to the account table
func (m *AuthMiddleware) lookupUser(c *gin.Context, userID int64) (*models.User, error) {
	ctx := c.Request.Context()

	if user, ok := m.userCache.Get(ctx, userID); ok {
		return user, nil
	}

	user, err := m.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	m.userCache.Set(ctx, user)
	return user, nil
}

// RequireRole allows only the listed roles through
func (m *AuthMiddleware) RequireRole(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
			return
		}

		for _, role := range allowedRoles {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse("Insufficient permissions"))
	}
}

// RequireOwnershipOrAdmin allows admins and the account owning the target
// profile. The resource id is read from the named path parameter and compared
// as a string against the identity's associated profile id.
func (m *AuthMiddleware) RequireOwnershipOrAdmin(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
			return
		}

		if identity.Role == models.RoleAdmin || m.ownsResource(identity, c.Param(paramName)) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse("Access denied"))
	}
}

// RequireStudentAccess guards routes addressing a student record. Admins pass,
// the student passes for their own record, and a teacher passes only when the
// student sits in one of the teacher's classes.
func (m *AuthMiddleware) RequireStudentAccess(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
			return
		}

		resourceID := c.Param(paramName)

		switch identity.Role {
		case models.RoleAdmin:
			c.Next()
			return
		case models.RoleStudent:
			if m.ownsResource(identity, resourceID) {
				c.Next()
				return
			}
		case models.RoleTeacher:
			if m.teacherOwnsStudent(c, identity, resourceID) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse("Access denied"))
	}
}

func (m *AuthMiddleware) ownsResource(identity *Identity, resourceID string) bool {
	return resourceID != "" && identity.AssociatedID != nil &&
		resourceID == strconv.FormatInt(*identity.AssociatedID, 10)
}

// teacherOwnsStudent resolves whether the target student is in one of the
// teacher's classes. Lookup failures deny access rather than granting it.
func (m *AuthMiddleware) teacherOwnsStudent(c *gin.Context, identity *Identity, resourceID string) bool {
	if identity.AssociatedID == nil || resourceID == "" {
		return false
	}

	studentID, err := strconv.ParseInt(resourceID, 10, 64)
	if err != nil {
		return false
	}

	taught, err := m.studentRepo.TaughtBy(c.Request.Context(), studentID, *identity.AssociatedID)
	if err != nil {
		m.logger.Error().Err(err).Int64("studentID", studentID).Int64("teacherID", *identity.AssociatedID).
			Msg("Class assignment check failed")
		return false
	}
	return taught
}
