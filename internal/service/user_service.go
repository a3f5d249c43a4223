package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/uros002/QuizHubApp/internal/dto"
	"github.com/uros002/QuizHubApp/internal/model"
	"github.com/uros002/QuizHubApp/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	GetAllUsers(ctx context.Context) ([]dto.UserResponse, error)
}

type userService struct {
	userRepo   repository.UserRepository
	tokens     TokenService
	bcryptCost int
}

func NewUserService(userRepo repository.UserRepository, tokens TokenService) UserService {
	return &userService{userRepo: userRepo, tokens: tokens, bcryptCost: bcrypt.DefaultCost}
}

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error) {
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, newError(KindConflict, MsgUsernameTaken, nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal("Failed to register user", err)
	}
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, newError(KindConflict, MsgEmailTaken, nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal("Failed to register user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, internal("Failed to register user", fmt.Errorf("hash password: %w", err))
	}

	user := model.User{
		Username:     req.Username,
		Password:     string(hash),
		Email:        req.Email,
		ProfileImage: req.ImageBytes,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race with a concurrent registration
			return nil, newError(KindConflict, s.takenMessage(ctx, req), err)
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to create user")
		return nil, internal("Failed to register user", err)
	}
	log.Info().Uint("userID", user.ID).Str("username", user.Username).Msg("User registered")

	return s.issue(&user)
}

// takenMessage names the unique field a concurrent registration claimed first.
func (s *userService) takenMessage(ctx context.Context, req dto.RegisterRequest) string {
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return MsgUsernameTaken
	}
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return MsgEmailTaken
	}
	return MsgUsernameTaken
}

func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(MsgUserNotFound)
	}
	if err != nil {
		return nil, internal("Failed to log in", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Info().Str("username", req.Username).Msg("Login rejected: wrong password")
		return nil, newError(KindUnauthorized, MsgPasswordIncorrect, nil)
	}
	return s.issue(user)
}

func (s *userService) GetAllUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, internal("Failed to load users", err)
	}
	resp := make([]dto.UserResponse, 0, len(users))
	if err := copier.Copy(&resp, &users); err != nil {
		return nil, internal("Failed to map users", err)
	}
	return resp, nil
}

func (s *userService) issue(user *model.User) (*dto.TokenResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Failed to issue token")
		return nil, internal("Failed to issue token", err)
	}
	return &dto.TokenResponse{Token: token}, nil
}
