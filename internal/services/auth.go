package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/localnerve/configdb/internal/config"
	"github.com/localnerve/configdb/internal/models"
	"github.com/localnerve/configdb/internal/store"
	"github.com/localnerve/configdb/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// Claims are the JWT claims carried by a session token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService is the credential service: it registers users, verifies
// passwords, and issues/validates signed session tokens.
type AuthService struct {
	store    *store.Store
	secret   []byte
	issuer   string
	tokenTTL time.Duration
}

// NewAuthService creates an AuthService from configuration.
func NewAuthService(st *store.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		store:    st,
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		tokenTTL: time.Duration(cfg.TokenTTLMinutes) * time.Minute,
	}
}

// Register creates a new user with a bcrypt password hash. Role defaults to
// standard when not supplied.
func (s *AuthService) Register(email, password, role string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, types.BadRequest("email and password are required")
	}
	if len(password) < 8 {
		return nil, types.BadRequest("password must be at least 8 characters")
	}
	switch role {
	case "":
		role = models.RoleStandard
	case models.RoleAdmin, models.RoleStandard:
	default:
		return nil, types.BadRequest("role must be 'admin' or 'standard'")
	}

	existing, err := s.store.GetUserByEmail(email)
	if err != nil {
		return nil, types.Internal("Failed to read user", err)
	}
	if existing != nil {
		return nil, types.Conflict(fmt.Sprintf("Email '%s' is already registered", email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, types.Internal("Failed to hash password", err)
	}

	user := &models.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.store.CreateUser(user); err != nil {
		if store.IsDuplicate(err) {
			return nil, types.Conflict(fmt.Sprintf("Email '%s' is already registered", email))
		}
		return nil, types.Internal("Failed to create user", err)
	}
	return user, nil
}

// Login verifies the credentials and returns a signed token plus the user.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, types.BadRequest("email and password are required")
	}

	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		return "", nil, types.Internal("Failed to read user", err)
	}
	if user == nil {
		return "", nil, types.Unauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, types.Unauthorized("Invalid email or password")
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, types.Internal("Failed to sign token", err)
	}
	return token, user, nil
}

// GenerateToken signs an HS256 session token for user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			Issuer:    s.issuer,
			Subject:   user.UserID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses and verifies a session token.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
