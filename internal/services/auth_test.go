package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"dailydare-backend/internal/models"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last@sub.example.co", "a_b@mail.io"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Fatalf("ValidateEmail(%q) = %v, want nil", email, err)
		}
	}
	invalid := []string{"", "plain", "user@", "@example.com", "user@example", "user @example.com"}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Fatalf("ValidateEmail(%q) = nil, want error", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("Abc12"); err != nil {
		t.Fatalf("ValidatePassword(Abc12) = %v, want nil", err)
	}
	invalid := []string{"", "Ab1", "abc12", "ABC12", "Abcde"}
	for _, password := range invalid {
		if err := ValidatePassword(password); err == nil {
			t.Fatalf("ValidatePassword(%q) = nil, want error", password)
		}
	}
}

func TestDefaultHandle(t *testing.T) {
	if got := defaultHandle("a1b2-c3"); got != "Anonymous_User_123" {
		t.Fatalf("defaultHandle = %q, want Anonymous_User_123", got)
	}
}

func TestSignUpSeedsDefaults(t *testing.T) {
	users := newFakeUsers()
	svc := NewAuthService(users, "test-secret")
	svc.now = fixedNow

	user, token, err := svc.SignUp(context.Background(), "  user@example.com ", "Abc12")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if user.UID == "" {
		t.Fatalf("SignUp returned empty uid")
	}
	if user.Email != "user@example.com" {
		t.Fatalf("email not trimmed: %q", user.Email)
	}
	if user.UserName != defaultUserName || user.ProfilePicture != defaultProfilePicture {
		t.Fatalf("defaults not seeded: %+v", user)
	}
	if !strings.HasPrefix(user.UserHandle, "Anonymous_User_") {
		t.Fatalf("handle = %q, want Anonymous_User_ prefix", user.UserHandle)
	}
	if user.PasswordHash == "Abc12" || user.PasswordHash == "" {
		t.Fatalf("password stored unhashed")
	}
	if user.CompletedChallengeRefs == nil || len(user.CompletedChallengeRefs) != 0 {
		t.Fatalf("CompletedChallengeRefs = %v, want empty non-nil", user.CompletedChallengeRefs)
	}

	uid, err := svc.ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if uid != user.UID {
		t.Fatalf("token resolves to %q, want %q", uid, user.UID)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	users := newFakeUsers()
	svc := NewAuthService(users, "test-secret")

	if _, _, err := svc.SignUp(context.Background(), "user@example.com", "Abc12"); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}
	_, _, err := svc.SignUp(context.Background(), "user@example.com", "Abc12")
	if !errors.Is(err, models.ErrEmailTaken) {
		t.Fatalf("duplicate SignUp = %v, want ErrEmailTaken", err)
	}
}

func TestSignIn(t *testing.T) {
	users := newFakeUsers()
	svc := NewAuthService(users, "test-secret")

	created, _, err := svc.SignUp(context.Background(), "user@example.com", "Abc12")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	user, token, err := svc.SignIn(context.Background(), "user@example.com", "Abc12")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if user.UID != created.UID {
		t.Fatalf("SignIn returned uid %q, want %q", user.UID, created.UID)
	}
	if _, err := svc.ValidateJWT(token); err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}

	if _, _, err := svc.SignIn(context.Background(), "user@example.com", "Wrong1"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("wrong password = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.SignIn(context.Background(), "ghost@example.com", "Abc12"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("unknown email = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateJWTRejectsForeignSecret(t *testing.T) {
	users := newFakeUsers()
	issuer := NewAuthService(users, "secret-a")
	verifier := NewAuthService(users, "secret-b")

	token, err := issuer.GenerateJWT("alice")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := verifier.ValidateJWT(token); err == nil {
		t.Fatalf("token signed with another secret validated")
	}
}

func TestRegisterDeviceToken(t *testing.T) {
	users := newFakeUsers(&models.UserProfile{UID: "alice"})
	svc := NewAuthService(users, "test-secret")

	if err := svc.RegisterDeviceToken(context.Background(), "alice", "device-token-1"); err != nil {
		t.Fatalf("RegisterDeviceToken: %v", err)
	}
	p := users.profiles["alice"]
	if p.PushToken == nil || *p.PushToken != "device-token-1" {
		t.Fatalf("push token = %v, want device-token-1", p.PushToken)
	}

	if err := svc.RegisterDeviceToken(context.Background(), "alice", ""); err != nil {
		t.Fatalf("clearing token: %v", err)
	}
	if p.PushToken != nil {
		t.Fatalf("push token not cleared: %v", *p.PushToken)
	}
}
