package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playtone/prizeplay-backend/internal/config"
	"github.com/playtone/prizeplay-backend/internal/models"
	"github.com/playtone/prizeplay-backend/internal/repositories"
	"github.com/playtone/prizeplay-backend/internal/utils"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl handles registration and login for players and admins
type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Register handles player registration. New accounts start as players with
// empty balances; admin accounts are provisioned out of band.
func (s *AuthServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Error("Failed to check for existing user", "error", err, "email", req.Email)
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, errors.New("a user with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hashed),
		Role:     models.RolePlayer,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		slog.Error("Failed to create user", "error", err, "email", req.Email)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User registered", "userId", user.ID.Hex(), "email", user.Email)
	user.Password = ""
	return user, nil
}

// Login verifies credentials and issues a JWT carrying the user's role.
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Not found and other failures both collapse to one message so the
		// response does not reveal which accounts exist.
		return nil, errors.New("invalid credentials")
	}
	if !user.IsActive {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role, s.cfg)
	if err != nil {
		slog.Error("Failed to generate JWT", "error", err, "userId", user.ID.Hex())
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// Persist before blanking the password; Update writes the whole
	// document, hash included.
	user.LastActivity = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		slog.Warn("Failed to record last activity", "error", err, "userId", user.ID.Hex())
	}

	user.Password = ""
	return &models.LoginResponse{Token: token, User: user}, nil
}
