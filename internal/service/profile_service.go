package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/studybuddy/backend/internal/dto"
	"github.com/studybuddy/backend/internal/model"
	"github.com/studybuddy/backend/internal/repository"
)

// ProfileService resolves an authenticated subject to a stored profile,
// creating one with the default role on first contact.
type ProfileService interface {
	GetOrCreate(subjectID, name, email string) (*dto.UserResponse, error)
	GetAllStudents() ([]dto.UserResponse, error)
}

type profileService struct {
	userRepo    repository.UserRepository
	defaultRole string
}

func NewProfileService(userRepo repository.UserRepository, defaultRole string) ProfileService {
	if defaultRole == "" {
		defaultRole = model.RoleStudent
	}
	return &profileService{userRepo: userRepo, defaultRole: defaultRole}
}

// GetOrCreate returns the stored profile verbatim on a hit. On a miss it
// persists a fresh profile with the default role and an empty class list;
// that is the only write this path ever performs.
func (s *profileService) GetOrCreate(subjectID, name, email string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(subjectID)
	switch {
	case err == nil:
		return userToResponse(user), nil
	case errors.Is(err, repository.ErrNotFound):
		user = &model.User{
			ID:      subjectID,
			Name:    name,
			Email:   email,
			Role:    s.defaultRole,
			Classes: []model.ClassRef{},
		}
		if createErr := s.userRepo.Create(user); createErr != nil {
			return nil, fmt.Errorf("failed to create profile for %s: %w", subjectID, createErr)
		}
		log.Info().Str("uid", subjectID).Str("role", user.Role).Msg("Created profile on first contact")
		return userToResponse(user), nil
	default:
		return nil, fmt.Errorf("failed to load profile for %s: %w", subjectID, err)
	}
}

func (s *profileService) GetAllStudents() ([]dto.UserResponse, error) {
	students, err := s.userRepo.FindAllByRole(model.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	out := make([]dto.UserResponse, 0, len(students))
	for i := range students {
		out = append(out, *userToResponse(&students[i]))
	}
	return out, nil
}

func userToResponse(user *model.User) *dto.UserResponse {
	var resp dto.UserResponse
	copier.Copy(&resp, user)
	if resp.Classes == nil {
		resp.Classes = []dto.ClassRefResponse{}
	}
	return &resp
}
