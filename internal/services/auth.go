package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lvxn0va/legal-ease-ai/internal/repository"
	"github.com/lvxn0va/legal-ease-ai/internal/types"
)

type AuthService struct {
	repo           repository.UserRepository
	hashingService *HashingService
	jwtService     *JWTService
}

func NewAuthService(repo repository.UserRepository, hashingService *HashingService, jwtService *JWTService) *AuthService {
	return &AuthService{
		repo:           repo,
		hashingService: hashingService,
		jwtService:     jwtService,
	}
}

type AuthResponse struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	AccessToken string `json:"access_token"`
}

func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) (*AuthResponse, error) {
	isExists, err := s.repo.CheckUserExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if isExists {
		return nil, fmt.Errorf("user already exists")
	}

	hashedPassword, err := s.hashingService.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &types.User{
		ID:           uuid.New().String(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hashedPassword,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		UserID:      user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		AccessToken: accessToken,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		// Don't reveal if user exists or not for security
		return nil, fmt.Errorf("invalid email or password")
	}

	if !user.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}

	isValid := s.hashingService.ComparePassword(user.PasswordHash, password)
	if !isValid {
		return nil, fmt.Errorf("invalid email or password")
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	// The timestamp is informational; a failed write does not block login.
	_ = s.repo.RecordLogin(ctx, user.ID, time.Now().UTC())

	return &AuthResponse{
		UserID:      user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		AccessToken: accessToken,
	}, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (*types.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	return s.jwtService.ValidateToken(tokenString)
}
