package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vapor/internal/dto"
	"vapor/internal/events"
	"vapor/internal/models"
	"vapor/internal/repositories"
)

// TokenMethod selects how CreateToken signs a token.
type TokenMethod int

const (
	// TokenMethodHS256 issues long-lived HS256 tokens (CreateTokenMethod1).
	TokenMethodHS256 TokenMethod = iota + 1
	// TokenMethodHS512 issues short-lived HS512 tokens (CreateTokenMethod2).
	TokenMethodHS512
)

func (m TokenMethod) signing() (jwt.SigningMethod, time.Duration, error) {
	switch m {
	case TokenMethodHS256:
		return jwt.SigningMethodHS256, 3 * time.Hour, nil
	case TokenMethodHS512:
		return jwt.SigningMethodHS512, 5 * time.Minute, nil
	default:
		return nil, 0, fmt.Errorf("unknown token method %d", m)
	}
}

// Claims are the JWT claims issued by AuthService. StandardClaims.Id is the unique token id (jti).
type Claims struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	jwt.StandardClaims
}

// TokenConfig holds the signing key and the iss/aud values of issued tokens.
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo  repositories.UserRepository
	publisher events.Publisher
	jwtSecret []byte
	issuer    string
	audience  string
}

// NewAuthService creates a new AuthService. publisher may be nil.
func NewAuthService(userRepo repositories.UserRepository, cfg TokenConfig, publisher events.Publisher) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		publisher: publisher,
		jwtSecret: []byte(cfg.Secret),
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
	}
}

// RegisterUser creates an account with a hashed password, an empty cart and
// library, and the default role.
func (s *AuthService) RegisterUser(req dto.RegisterDTO) (*models.User, error) {
	if err := s.ensureFree(req.Username, req.Email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role, err := s.userRepo.GetRoleByName(models.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to load default role: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Cart:     &models.Cart{},
		Library:  &models.Library{},
		Roles:    []models.Role{*role},
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	publish(s.publisher, events.UserRegistered, events.UserRegisteredEvent{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})

	return user, nil
}

func (s *AuthService) ensureFree(username, email string) error {
	_, err := s.userRepo.GetByUsername(username)
	switch {
	case err == nil:
		return fmt.Errorf("%w: username '%s' already taken", ErrConflict, username)
	case !errors.Is(err, repositories.ErrNotFound):
		return err
	}

	_, err = s.userRepo.GetByEmail(email)
	switch {
	case err == nil:
		return fmt.Errorf("%w: email '%s' already registered", ErrConflict, email)
	case !errors.Is(err, repositories.ErrNotFound):
		return err
	}
	return nil
}

// CreateToken checks the credential pair and returns a signed token.
// Any mismatch yields ErrInvalidCredentials without saying which part failed.
func (s *AuthService) CreateToken(email, password string, method TokenMethod) (string, error) {
	signingMethod, ttl, err := method.signing()
	if err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    roleNames(user.Roles),
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Issuer:    s.issuer,
			Audience:  s.audience,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	if method == TokenMethodHS512 {
		claims.Subject = user.Username
	}

	tokenString, err := jwt.NewWithClaims(signingMethod, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// GrantRole gives the user registered under email the named role. Tokens
// issued afterwards carry it.
func (s *AuthService) GrantRole(email, roleName string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	role, err := s.userRepo.GetRoleByName(roleName)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: unknown role %s", ErrValidation, roleName)
		}
		return err
	}
	return s.userRepo.AddRole(user.ID, role)
}

func roleNames(roles []models.Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return names
}

// HasRole reports whether the claims carry any of roles.
func (c *Claims) HasRole(roles ...string) bool {
	for _, have := range c.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// ValidateToken parses and validates a token issued by CreateToken.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if !claims.VerifyIssuer(s.issuer, true) || !claims.VerifyAudience(s.audience, true) {
		return nil, fmt.Errorf("invalid token: issuer or audience mismatch")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("invalid token: missing user_id")
	}
	return claims, nil
}
