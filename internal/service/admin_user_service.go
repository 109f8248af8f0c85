package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/softskills/internal/dto"
	"github.com/lshigami/softskills/internal/model"
	"github.com/lshigami/softskills/internal/repository"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type AdminUserService interface {
	CreateUser(ctx context.Context, req dto.UserCreateDTO) (*dto.UserResponseDTO, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponseDTO, error)
}

type adminUserService struct {
	userRepo repository.UserRepository
}

func NewAdminUserService(userRepo repository.UserRepository) AdminUserService {
	return &adminUserService{userRepo: userRepo}
}

func (s *adminUserService) CreateUser(ctx context.Context, req dto.UserCreateDTO) (*dto.UserResponseDTO, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" {
		return nil, NewValidationError("name", "is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, NewValidationError("email", "must be a valid email address")
	}
	role := model.Role(req.Role)
	switch role {
	case "":
		role = model.RoleStudent
	case model.RoleStudent, model.RoleSupervisor, model.RoleAdmin:
	default:
		return nil, NewValidationError("role", "must be student, supervisor or admin")
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, NewValidationError("email", "is already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrap(err, "check email")
	}

	user := model.User{ID: uuid.NewString(), Name: name, Email: email, Role: role}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewValidationError("email", "is already registered")
		}
		log.Error().Err(err).Str("email", email).Msg("Failed to create user in database")
		return nil, errors.Wrap(err, "create user")
	}

	log.Info().Str("userID", user.ID).Str("role", string(user.Role)).Msg("User created")
	return toUserResponse(&user)
}

func (s *adminUserService) GetUser(ctx context.Context, id string) (*dto.UserResponseDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Resource: "user", ID: id}
	}
	if err != nil {
		log.Error().Err(err).Str("userID", id).Msg("Failed to get user from repository")
		return nil, errors.Wrap(err, "get user")
	}
	return toUserResponse(user)
}

func toUserResponse(u *model.User) (*dto.UserResponseDTO, error) {
	var resp dto.UserResponseDTO
	if err := copier.Copy(&resp, u); err != nil {
		return nil, errors.Wrap(err, "map user")
	}
	return &resp, nil
}
