package service

import (
	"errors"
	"time"
	"unicode"

	"spc-api/internal/model"
	"spc-api/pkg/config"
	"spc-api/pkg/jwtutil"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthResponse is the shape returned by every successful auth operation
type AuthResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	Email        string   `json:"email"`
	UserID       uint     `json:"userId"`
	Roles        []string `json:"roles"`
}

// AuthService orchestrates login, registration, refresh and revocation over
// the credential store and the token issuer
type AuthService struct {
	db  *gorm.DB
	cfg *config.JWTConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(db *gorm.DB, cfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Login authenticates a user by email and password and issues a fresh
// access/refresh token pair. Unknown emails and wrong passwords produce the
// same error.
func (s *AuthService) Login(email, password string) (*AuthResponse, error) {
	var user model.User
	err := s.db.Preload("Roles").
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(&user)
}

// Register creates a new user with the default "User" role and issues the
// same token pair Login does
func (s *AuthService) Register(email, password, firstName, lastName string) (*AuthResponse, error) {
	var count int64
	if err := s.db.Model(&model.User{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailAlreadyRegistered
	}

	if !passwordMeetsPolicy(password) {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var defaultRole model.Role
	if err := s.db.Where(model.Role{Name: model.RoleUser}).
		FirstOrCreate(&defaultRole).Error; err != nil {
		return nil, err
	}

	user := model.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Roles:        []model.Role{defaultRole},
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return s.issueTokens(&user)
}

// RefreshToken exchanges a stored, unexpired refresh token for a brand-new
// access/refresh pair. The old refresh token is invalidated by overwrite.
// Unknown and expired tokens are indistinguishable to the caller.
func (s *AuthService) RefreshToken(refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	var user model.User
	err := s.db.Preload("Roles").
		Where("refresh_token = ? AND refresh_token_expires_at > ?", refreshToken, time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	return s.issueTokens(&user)
}

// RevokeRefreshToken clears the user's stored refresh token, immediately
// invalidating it. Returns false, not an error, for an unknown email.
func (s *AuthService) RevokeRefreshToken(email string) (bool, error) {
	var user model.User
	err := s.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	now := time.Now()
	err = s.db.Model(&user).Updates(map[string]interface{}{
		"refresh_token":            nil,
		"refresh_token_expires_at": now,
	}).Error
	if err != nil {
		return false, err
	}

	return true, nil
}

// issueTokens generates an access/refresh pair and persists the refresh
// token on the user record, overwriting any prior token
func (s *AuthService) issueTokens(user *model.User) (*AuthResponse, error) {
	roles := user.RoleNames()

	accessToken, err := jwtutil.GenerateAccessToken(user.ID, user.Email, roles)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwtutil.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.cfg.RefreshTokenLifetime)
	err = s.db.Model(user).Updates(map[string]interface{}{
		"refresh_token":            refreshToken,
		"refresh_token_expires_at": expiresAt,
	}).Error
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Email:        user.Email,
		UserID:       user.ID,
		Roles:        roles,
	}, nil
}

// passwordMeetsPolicy enforces the registration password policy: at least 8
// characters with an upper-case letter, a lower-case letter, a digit and a
// non-alphanumeric character.
func passwordMeetsPolicy(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}
