package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"dailydare-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtExpDays        = 365
	minPasswordLength = 5

	defaultUserName       = "Anonymous User"
	defaultProfilePicture = "https://i.ibb.co/Lh2BnV7T/default-user.png"
)

var (
	emailPattern    = regexp.MustCompile(`^[\w.]+@([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}$`)
	digitPattern    = regexp.MustCompile(`\d`)
	lowerPattern    = regexp.MustCompile(`[a-z]`)
	upperPattern    = regexp.MustCompile(`[A-Z]`)
	nonDigitPattern = regexp.MustCompile(`\D`)
)

// AuthService handles identity: sign-up, sign-in and JWT sessions
type AuthService struct {
	users     UsersStore
	jwtSecret string
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(users UsersStore, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		now:       time.Now,
	}
}

// ValidateEmail reports whether the email has an acceptable shape
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("email is invalid")
	}
	return nil
}

// ValidatePassword enforces the minimum length and character classes
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if !digitPattern.MatchString(password) ||
		!lowerPattern.MatchString(password) ||
		!upperPattern.MatchString(password) {
		return fmt.Errorf("password must contain a digit, a lowercase and an uppercase letter")
	}
	return nil
}

// defaultHandle derives the first-sign-in handle from the digits of the uid
func defaultHandle(uid string) string {
	return "Anonymous_User_" + nonDigitPattern.ReplaceAllString(uid, "")
}

// SignUp registers a new account and seeds its profile with first-sign-in
// defaults. Returns the profile and a session token.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*models.UserProfile, string, error) {
	email = strings.TrimSpace(email)
	if err := ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, "", err
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, "", models.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	uid := uuid.New().String()
	user := &models.UserProfile{
		UID:                    uid,
		Email:                  email,
		PasswordHash:           string(hash),
		UserName:               defaultUserName,
		UserHandle:             defaultHandle(uid),
		ProfilePicture:         defaultProfilePicture,
		CompletedChallengeRefs: []string{},
		CreatedAt:              s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.GenerateJWT(uid)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// SignIn verifies credentials and returns the profile and a session token
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.UserProfile, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(user.UID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// GenerateJWT generates a JWT token for a user
func (s *AuthService) GenerateJWT(uid string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": uid,
		"exp":     s.now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":     s.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns the user ID
func (s *AuthService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", fmt.Errorf("user_id not found in token")
	}

	return userID, nil
}

// UpdateProfile overwrites the display fields of a profile
func (s *AuthService) UpdateProfile(ctx context.Context, uid, userName, userHandle, profilePicture string) error {
	if strings.TrimSpace(userName) == "" {
		return fmt.Errorf("user_name is required")
	}
	if strings.TrimSpace(userHandle) == "" {
		return fmt.Errorf("user_handle is required")
	}
	return s.users.UpdateDisplay(ctx, uid, userName, userHandle, profilePicture)
}

// RegisterDeviceToken stores the APNs device token for push delivery
func (s *AuthService) RegisterDeviceToken(ctx context.Context, uid, token string) error {
	if token == "" {
		return s.users.UpdatePushToken(ctx, uid, nil)
	}
	return s.users.UpdatePushToken(ctx, uid, &token)
}
