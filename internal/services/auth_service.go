package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"katalog/internal/models"
	"katalog/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken is returned by ValidateToken for any unusable token.
var ErrInvalidToken = errors.New("invalid token")

// AuthService registers catalog editors and issues the tokens that guard
// mutating routes.
type AuthService struct {
	userRepo      repositories.UserRepository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewAuthService creates a new AuthService. Tokens are valid for 24 hours.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour,
	}
}

// RegisterUser stores user with a bcrypt hash in place of its password.
func (s *AuthService) RegisterUser(user *models.User) error {
	if err := s.ensureFree(s.userRepo.GetByUsername(user.Username)); err != nil {
		if KindOf(err) == KindConflict {
			return &Error{Kind: KindConflict, Message: fmt.Sprintf("Username '%s' is already taken.", user.Username)}
		}
		return err
	}
	if err := s.ensureFree(s.userRepo.GetByEmail(user.Email)); err != nil {
		if KindOf(err) == KindConflict {
			return &Error{Kind: KindConflict, Message: fmt.Sprintf("Email '%s' is already registered.", user.Email)}
		}
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// ensureFree maps a lookup result to a conflict when a user was found.
func (s *AuthService) ensureFree(existing *models.User, err error) error {
	switch {
	case err == nil && existing != nil:
		return &Error{Kind: KindConflict}
	case err == nil, errors.Is(err, repositories.ErrUserNotFound):
		return nil
	default:
		return err
	}
}

// LoginUser checks the credentials and returns a signed HS256 token.
func (s *AuthService) LoginUser(username, password string) (string, error) {
	invalid := &Error{Kind: KindUnauthorized, Message: "Invalid credentials."}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", invalid
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", invalid
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(s.tokenDuration).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a token, returning its claims.
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
