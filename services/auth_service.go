// services/auth_service.go - Registration, login and access tokens
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"liga/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Nome  string      `json:"nome" validate:"required"`
	Email string      `json:"email" validate:"required,email"`
	Senha string      `json:"senha" validate:"required,min=6"`
	Plano models.Plan `json:"plano" validate:"omitempty,oneof=BASICO PADRAO PREMIUM"`
}

type LoginInput struct {
	Email string `json:"email" validate:"required"`
	Senha string `json:"senha" validate:"required"`
}

// Claims is the payload of an access token.
type Claims struct {
	UserID uint        `json:"id"`
	Plano  models.Plan `json:"plano"`
	Admin  bool        `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

type AuthService struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	clock  clockwork.Clock
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration, clock clockwork.Clock) *AuthService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AuthService{db: db, secret: []byte(secret), ttl: ttl, clock: clock}
}

// Register creates a user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.createUser(ctx, in, false)
}

// CreateAdmin creates a PREMIUM user allowed to call the write routes.
func (s *AuthService) CreateAdmin(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Plano = models.PlanPremium
	return s.createUser(ctx, in, true)
}

func (s *AuthService) createUser(ctx context.Context, in RegisterInput, admin bool) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.Plano == "" {
		in.Plano = models.PlanBasico
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, storeError("verificar email", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Nome:    in.Nome,
		Email:   in.Email,
		Senha:   string(hashed),
		Plano:   in.Plano,
		IsAdmin: admin,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, storeError("criar usuário", err)
	}

	log.Ctx(ctx).Info().Uint("user_id", user.ID).Str("plano", string(user.Plano)).Bool("admin", admin).Msg("user registered")
	return user, nil
}

// Login checks the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, *models.User, error) {
	if err := validateStruct(in); err != nil {
		return "", nil, err
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(in.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrUserNotFound
	}
	if err != nil {
		return "", nil, storeError("buscar usuário", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Senha), []byte(in.Senha)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := s.db.WithContext(ctx).Model(&user).Update("last_login", s.clock.Now()).Error; err != nil {
		log.Ctx(ctx).Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record last login")
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// IssueToken signs an HS256 token carrying the user's id, plan and admin flag.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		UserID: user.ID,
		Plano:  user.Plano,
		Admin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry and returns the claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
