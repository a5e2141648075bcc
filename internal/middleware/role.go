package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/studybuddy/backend/internal/dto"
	"github.com/studybuddy/backend/internal/repository"
)

// RequireRole loads the caller's profile and rejects the request unless the
// stored role matches. A missing profile is treated as an access failure, not
// a 404, so the gate never leaks whether a subject exists.
func RequireRole(users repository.UserRepository, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := UserID(c)
		user, err := users.FindByID(uid)
		if err != nil {
			log.Warn().Err(err).Str("uid", uid).Str("required_role", role).Msg("Role check failed to load profile")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Access denied"})
			return
		}
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Message: fmt.Sprintf("Only %ss can access this resource", role),
			})
			return
		}
		c.Next()
	}
}
