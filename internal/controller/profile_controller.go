package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/studybuddy/backend/internal/dto"
	"github.com/studybuddy/backend/internal/middleware"
	"github.com/studybuddy/backend/internal/model"
	"github.com/studybuddy/backend/internal/service"
)

type ProfileController struct {
	profileSvc   service.ProfileService
	directorySvc service.DirectoryService
	userResolver UserResolver
}

// UserResolver loads the caller's stored profile for handlers that need the
// class-reference list. It is the profile service's repository in disguise so
// controllers stay off the repository layer directly.
type UserResolver interface {
	FindByID(id string) (*model.User, error)
}

func NewProfileController(profileSvc service.ProfileService, directorySvc service.DirectoryService, users UserResolver) *ProfileController {
	return &ProfileController{profileSvc: profileSvc, directorySvc: directorySvc, userResolver: users}
}

// GetProfile godoc
// @Summary Fetch or create the caller's profile
// @Description Returns the stored profile for the token subject, creating one with the default role on first contact
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body dto.GetProfileRequest false "Optional display name and email used only on first contact"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /getprofile [post]
func (ctrl *ProfileController) GetProfile(c *gin.Context) {
	var req dto.GetProfileRequest
	// Body is optional; a bare POST still resolves the profile.
	_ = c.ShouldBindJSON(&req)

	name := req.Name
	if name == "" {
		name = c.GetString(middleware.CtxName)
	}
	email := req.Email
	if email == "" {
		email = c.GetString(middleware.CtxEmail)
	}

	user, err := ctrl.profileSvc.GetOrCreate(middleware.UserID(c), name, email)
	if err != nil {
		log.Error().Err(err).Str("uid", middleware.UserID(c)).Msg("Failed to resolve profile")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Server error"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetClasses godoc
// @Summary Hydrated class list for the caller
// @Description Resolves the caller's class references into class metadata with lesson ids and the next-lesson object
// @Tags classes
// @Produce json
// @Success 200 {array} dto.ClassResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /getClasses [get]
func (ctrl *ProfileController) GetClasses(c *gin.Context) {
	ctrl.respondWithClasses(c, false)
}

// GetClassAndLessons godoc
// @Summary Classes with nested lesson detail
// @Description Resolves the caller's class references into classes carrying fully hydrated lesson objects
// @Tags classes
// @Produce json
// @Success 200 {array} dto.ClassResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /getClassAndLessons [get]
func (ctrl *ProfileController) GetClassAndLessons(c *gin.Context) {
	ctrl.respondWithClasses(c, true)
}

func (ctrl *ProfileController) respondWithClasses(c *gin.Context, withLessons bool) {
	user, err := ctrl.userResolver.FindByID(middleware.UserID(c))
	if err != nil {
		log.Error().Err(err).Str("uid", middleware.UserID(c)).Msg("Failed to load caller for class hydration")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Server error"})
		return
	}

	if withLessons {
		c.JSON(http.StatusOK, ctrl.directorySvc.HydrateClassesWithLessons(user.Classes))
		return
	}
	c.JSON(http.StatusOK, ctrl.directorySvc.HydrateClasses(user.Classes))
}
