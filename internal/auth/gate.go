package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// Secrets carries the process-wide signing material and token lifetimes.
// It is injected at construction, never read from globals.
type Secrets struct {
	JWTSecret []byte
	TokenTTL  time.Duration
	ResetTTL  time.Duration
}

// Claims is the JWT payload issued by Login.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Gate verifies credentials and issues/validates bearer tokens.
type Gate struct {
	users        repository.UserRepository
	mailer       Mailer
	secrets      Secrets
	resetBaseURL string
}

// NewGate creates a Gate. resetBaseURL is the public URL prefix embedded in
// password-reset emails.
func NewGate(users repository.UserRepository, mailer Mailer, secrets Secrets, resetBaseURL string) *Gate {
	return &Gate{
		users:        users,
		mailer:       mailer,
		secrets:      secrets,
		resetBaseURL: resetBaseURL,
	}
}

// Register creates a new account. Only a bcrypt hash of the password is
// stored.
func (g *Gate) Register(username, password, email string) (model.User, error) {
	if username == "" || password == "" || email == "" {
		return model.User{}, fmt.Errorf("auth: %w - username, password and email are required", auctionerrors.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("auth: failed to hash password: %w", err)
	}

	user := model.User{
		UserID:       utils.GenerateID(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := g.users.Create(&user); err != nil {
		return model.User{}, fmt.Errorf("auth: failed to register %s: %w", username, err)
	}
	return user, nil
}

// Login verifies the credentials and returns a signed bearer token.
func (g *Gate) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("auth: %w - username and password are required", auctionerrors.ErrInvalidInput)
	}

	user, err := g.users.GetByUsername(username)
	if err != nil {
		return "", fmt.Errorf("auth: %w", auctionerrors.ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("auth: %w", auctionerrors.ErrInvalidCredentials)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.secrets.TokenTTL)),
			ID:        utils.GenerateID(),
		},
	})
	signed, err := token.SignedString(g.secrets.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign token: %w", err)
	}
	return signed, nil
}

// Authenticate validates a bearer token and resolves the user it references.
// Any malformed, expired or tampered token fails with ErrUnauthorized.
func (g *Gate) Authenticate(tokenString string) (model.User, error) {
	if tokenString == "" {
		return model.User{}, fmt.Errorf("auth: %w - missing token", auctionerrors.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return g.secrets.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return model.User{}, fmt.Errorf("auth: %w - invalid token", auctionerrors.ErrUnauthorized)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return model.User{}, fmt.Errorf("auth: %w - invalid claims", auctionerrors.ErrUnauthorized)
	}

	user, err := g.users.GetByID(claims.Subject)
	if err != nil {
		return model.User{}, fmt.Errorf("auth: %w - unknown subject", auctionerrors.ErrUnauthorized)
	}
	return user, nil
}

// RequestReset stores a single-use reset token on the user row and emails
// the reset link. The token is stored before the email is sent, so a
// delivery failure can be retried without invalidating anything.
func (g *Gate) RequestReset(email string) error {
	if email == "" {
		return fmt.Errorf("auth: %w - email is required", auctionerrors.ErrInvalidInput)
	}

	user, err := g.users.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("auth: failed to find account for reset: %w", err)
	}

	token := utils.GenerateID()
	user.ResetToken = lo.ToPtr(token)
	user.ResetExpires = lo.ToPtr(time.Now().UTC().Add(g.secrets.ResetTTL))
	if err := g.users.Update(user); err != nil {
		return fmt.Errorf("auth: failed to store reset token: %w", err)
	}

	body := fmt.Sprintf(
		"You are receiving this email because a password reset was requested for your account.\n\n"+
			"Follow this link to complete the process:\n\n%s/%s\n\n"+
			"If you did not request this, ignore this email and your password will remain unchanged.\n",
		g.resetBaseURL, token)
	if err := g.mailer.Send(user.Email, "Password Reset Request", body); err != nil {
		return fmt.Errorf("auth: failed to send reset email: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token: replaces the password hash and
// clears the token fields in one update.
func (g *Gate) ResetPassword(token, newPassword string) error {
	if token == "" || newPassword == "" {
		return fmt.Errorf("auth: %w - token and password are required", auctionerrors.ErrInvalidInput)
	}

	user, err := g.users.GetByResetToken(token)
	if err != nil {
		return fmt.Errorf("auth: %w", auctionerrors.ErrResetTokenInvalid)
	}
	if user.ResetExpires == nil || time.Now().After(*user.ResetExpires) {
		return fmt.Errorf("auth: %w", auctionerrors.ErrResetTokenInvalid)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth: failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.ResetToken = nil
	user.ResetExpires = nil
	if err := g.users.Update(user); err != nil {
		return fmt.Errorf("auth: failed to reset password: %w", err)
	}
	return nil
}
