package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/expense-report/backend/internal/db"
	"github.com/expense-report/backend/internal/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	UserExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, user *model.User) (*model.User, error)
}

type UserService struct {
	repo     UserRepo
	tokens   *TokenService
	hashCost int
	now      func() time.Time
}

func NewUserService(repo UserRepo, tokens *TokenService) *UserService {
	return &UserService{
		repo:     repo,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// Signup registers a new account and returns a session token for it. The
// email pre-check only saves a bcrypt round; the unique index decides.
func (s *UserService) Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)

	exists, err := s.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	user, err := s.Create(ctx, req.Username, email, req.Password, req.ProfileImage)
	if err != nil {
		return nil, err
	}
	return s.authResponse(user)
}

func (s *UserService) Signin(ctx context.Context, req model.SigninRequest) (*model.AuthResponse, error) {
	user, err := s.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrUnauthorized
	}
	return s.authResponse(user)
}

func (s *UserService) Create(ctx context.Context, username, email, rawPassword, profileImage string) (*model.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || rawPassword == "" {
		return nil, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &model.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if profileImage != "" {
		user.ProfileImage = &profileImage
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (s *UserService) FindByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

func (s *UserService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := s.repo.UserExistsByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("check user email: %w", err)
	}
	return exists, nil
}

// Update overwrites only the non-empty fields of req. A profile image that
// is present but empty clears the stored image.
func (s *UserService) Update(ctx context.Context, user *model.User, req model.UpdateProfileRequest) (*model.User, error) {
	updated := *user

	if v := strings.TrimSpace(req.Username); v != "" {
		updated.Username = v
	}
	if v := strings.TrimSpace(req.Email); v != "" {
		updated.Email = v
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updated.PasswordHash = string(hash)
	}
	if req.ProfileImage != nil {
		if *req.ProfileImage == "" {
			updated.ProfileImage = nil
		} else {
			img := *req.ProfileImage
			updated.ProfileImage = &img
		}
	}
	updated.UpdatedAt = s.now()

	saved, err := s.repo.UpdateUser(ctx, &updated)
	if err != nil {
		switch {
		case db.IsUniqueViolation(err):
			return nil, ErrConflict
		case db.IsNoRows(err):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return saved, nil
}

func (s *UserService) authResponse(user *model.User) (*model.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &model.AuthResponse{
		Token:        token,
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		ProfileImage: user.ProfileImage,
	}, nil
}
