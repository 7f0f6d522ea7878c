package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/planloop/planloop/internal/domain/common/errorz"
	"github.com/planloop/planloop/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type authSessionStorage interface {
	Get(ctx context.Context, tokenID string) (uint, error)
	Set(ctx context.Context, tokenID string, userID uint, expiration time.Duration) error
	Clear(ctx context.Context, tokenID string) error
}

type authUserStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// AuthService issues and validates signed bearer tokens. Tokens are revocable:
// each carries a session id that must still exist in redis.
type AuthService struct {
	userStorage    authUserStorage
	sessionStorage authSessionStorage
	secret         []byte
	sessionTTL     time.Duration
}

func NewAuthService(userStorage authUserStorage, sessionStorage authSessionStorage, secret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		userStorage:    userStorage,
		sessionStorage: sessionStorage,
		secret:         []byte(secret),
		sessionTTL:     sessionTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, email, name, password string) (*entity.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user, err := s.userStorage.Create(ctx, &entity.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := s.userStorage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", errorz.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errorz.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Validate parses the token, verifies its signature and checks the session is
// still live in redis. Returns the authenticated user id.
func (s *AuthService) Validate(ctx context.Context, tokenString string) (uint, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return 0, err
	}
	return s.sessionStorage.Get(ctx, claims.ID)
}

// Logout revokes the token's session.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return err
	}
	return s.sessionStorage.Clear(ctx, claims.ID)
}

func (s *AuthService) issueToken(ctx context.Context, userID uint) (string, error) {
	sessionID := uuid.NewString()
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.sessionTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	if err = s.sessionStorage.Set(ctx, sessionID, userID, s.sessionTTL); err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) parse(tokenString string) (*jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errorz.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errorz.ErrInvalidToken
	}
	return &claims, nil
}
