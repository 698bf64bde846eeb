package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"shop/internal/models"
	"shop/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// TokenConfig carries the process-wide token signing settings. It is
// injected at construction rather than read from ambient state.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// AuthService handles registration, login and token issuance/verification.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, cfg TokenConfig) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.Secret),
		tokenTTL:  cfg.TTL,
	}
}

// Register creates a new user with the USER role, hashes their password
// and returns a freshly signed token along with the new identity.
// Field-level validation (email-shaped username, password length) happens
// at the handler; this only guards the uniqueness invariant.
func (s *AuthService) Register(username, password string) (string, *models.User, error) {
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return "", nil, fmt.Errorf("%w: %s", ErrUsernameTaken, username)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return "", nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashedPassword),
		Roles:    models.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return "", nil, fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login authenticates a user and returns a freshly signed token.
func (s *AuthService) Login(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.issueToken(user)
}

// GetUserByUsername resolves a username (typically taken from a verified
// token's subject) to the stored user.
func (s *AuthService) GetUserByUsername(username string) (*models.User, error) {
	return s.userRepo.GetByUsername(username)
}

// issueToken signs an HS256 token carrying the username as subject and the
// user's roles as a claim.
func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.Username,
		"roles": user.RoleList(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and verifies a token, returning its claims.
// Verification fails closed: signature mismatch, malformed input and
// expiry all come back as ErrInvalidToken.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
