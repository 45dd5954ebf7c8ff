package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/recipespace/backend/internal/models"
	"github.com/recipespace/backend/internal/types"
)

const (
	// DefaultTokenTTL applies to generic token issuance.
	DefaultTokenTTL = 15 * time.Minute
	// LoginTokenTTL is the login endpoint's explicit policy.
	LoginTokenTTL = 30 * time.Minute
)

// revokedKeyPrefix namespaces denylisted tokens in redis.
const revokedKeyPrefix = "revoked_token:"

// AuthService hashes and verifies passwords and issues, validates and
// revokes bearer tokens.
type AuthService struct {
	db        *gorm.DB
	redis     *redis.Client
	jwtSecret []byte
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService. redisClient may be nil, in which
// case logout revocation is disabled and tokens stay valid until expiry.
func NewAuthService(db *gorm.DB, jwtSecret string, redisClient *redis.Client, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		db:        db,
		redis:     redisClient,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

// HashPassword returns a one-way salted hash of the password.
func (s *AuthService) HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password must not be empty", ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash. bcrypt's
// compare is resistant to timing side channels.
func (s *AuthService) CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken issues a signed token for the user. The ttl is applied
// verbatim; callers wanting the standard lifetime pass DefaultTokenTTL.
func (s *AuthService) GenerateToken(user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: user.ID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken checks signature, structure, expiry and revocation and
// returns the embedded claims. All failure modes surface as ErrInvalidToken.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: token not valid", ErrInvalidToken)
	}

	if s.redis != nil {
		revoked, err := s.redis.Exists(ctx, revokedKeyPrefix+tokenString).Result()
		if err != nil {
			return nil, err
		}
		if revoked > 0 {
			return nil, fmt.Errorf("%w: token revoked", ErrInvalidToken)
		}
	}

	return claims, nil
}

// RevokeToken denylists a still-valid token until its natural expiry.
// Without a redis client this is a no-op.
func (s *AuthService) RevokeToken(ctx context.Context, tokenString string) error {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		return err
	}
	if s.redis == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.redis.Set(ctx, revokedKeyPrefix+tokenString, 1, ttl).Err()
}

// Register creates a new user. Username and email must be globally unique.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	var existing models.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&existing).Error
	if err == nil {
		s.logger.Warn("registration conflict", zap.String("username", username))
		return nil, fmt.Errorf("%w: %s", ErrConflict, username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// The pre-check races with concurrent signups; the unique index is
		// the source of truth.
		if isDuplicateEntryError(err) {
			return nil, fmt.Errorf("%w: %s", ErrConflict, username)
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", username))
	return &user, nil
}

// Login verifies credentials and issues a token with LoginTokenTTL. Unknown
// users and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		s.logger.Warn("login failed: user not found", zap.String("username", username))
		return nil, "", fmt.Errorf("%w: invalid credentials", ErrInvalidToken)
	}

	if !s.CheckPassword(password, user.PasswordHash) {
		s.logger.Warn("login failed: bad password", zap.String("username", username))
		return nil, "", fmt.Errorf("%w: invalid credentials", ErrInvalidToken)
	}

	token, err := s.GenerateToken(&user, LoginTokenTTL)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// GetUserByID maps a validated token subject back to its user record.
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}
