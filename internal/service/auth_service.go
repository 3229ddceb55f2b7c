package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"apebrain-backend/internal/dto"
	"apebrain-backend/internal/model"
	"apebrain-backend/internal/notify"
	"apebrain-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserRepo interface {
	Insert(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	RecordLogin(ctx context.Context, id string, at time.Time) error
	UpdatePassword(ctx context.Context, id, hashed string) error
}

type ResetTokenRepo interface {
	Insert(ctx context.Context, t *model.PasswordResetToken) error
	FindUnused(ctx context.Context, token string) (*model.PasswordResetToken, error)
	MarkUsed(ctx context.Context, token string) error
}

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrBadResetToken      = errors.New("invalid or expired reset token")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const (
	accessTokenTTL = 7 * 24 * time.Hour
	resetTokenTTL  = time.Hour
	adminTokenTTL  = 24 * time.Hour

	purposeReset = "password_reset"
	roleAdmin    = "admin"
)

type AuthService struct {
	users       UserRepo
	tokens      ResetTokenRepo
	dispatcher  notify.Dispatcher
	secret      []byte
	frontendURL string
	log         *slog.Logger
}

func NewAuthService(users UserRepo, tokens ResetTokenRepo, dispatcher notify.Dispatcher,
	secret, frontendURL string, log *slog.Logger) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		dispatcher:  dispatcher,
		secret:      []byte(secret),
		frontendURL: frontendURL,
		log:         log,
	}
}

func (a *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := a.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if err != repository.ErrNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: string(hashed),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		AuthProvider:   "email",
		IsMember:       true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := a.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	return a.authResponse(user)
}

func (a *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and wrong password.
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if err := a.users.RecordLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		a.log.Warn("failed to record login", "user_id", user.ID, "error", err)
	}

	return a.authResponse(user)
}

func (a *AuthService) authResponse(user *model.User) (*dto.AuthResponse, error) {
	token, err := a.signToken(jwt.MapClaims{
		"sub": user.ID,
		"exp": time.Now().Add(accessTokenTTL).Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Success:     true,
		AccessToken: token,
		TokenType:   "bearer",
		User: dto.UserPayload{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			IsMember:  user.IsMember,
		},
	}, nil
}

func (a *AuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	return a.users.FindByID(ctx, userID)
}

// ValidateToken parses a customer access token and returns the user id.
func (a *AuthService) ValidateToken(tokenString string) (string, error) {
	claims, err := a.parseClaims(tokenString)
	if err != nil {
		return "", ErrInvalidToken
	}
	if purpose, _ := claims["purpose"].(string); purpose != "" {
		// Reset tokens must not double as session tokens.
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// RequestPasswordReset never reveals whether the email exists: the returned
// message is identical either way, and mail delivery stays best-effort.
func (a *AuthService) RequestPasswordReset(ctx context.Context, email string) {
	user, err := a.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return
	}

	token, err := a.signToken(jwt.MapClaims{
		"sub":     user.ID,
		"purpose": purposeReset,
		"exp":     time.Now().Add(resetTokenTTL).Unix(),
	})
	if err != nil {
		a.log.Error("failed to sign reset token", "error", err)
		return
	}

	record := &model.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.tokens.Insert(ctx, record); err != nil {
		a.log.Error("failed to store reset token", "error", err)
		return
	}

	a.dispatcher.Enqueue(notify.Job{
		Kind: notify.KindPasswordReset,
		To:   user.Email,
		Link: a.frontendURL + "/reset-password?token=" + token,
	})
}

func (a *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := a.parseClaims(token)
	if err != nil {
		return ErrBadResetToken
	}
	if purpose, _ := claims["purpose"].(string); purpose != purposeReset {
		return ErrBadResetToken
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return ErrBadResetToken
	}

	// The used flag makes the token single-use even within its TTL.
	if _, err := a.tokens.FindUnused(ctx, token); err != nil {
		return ErrBadResetToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := a.users.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return err
	}
	return a.tokens.MarkUsed(ctx, token)
}

// IssueAdminToken creates an operator session token after a successful
// credential check against the admin store.
func (a *AuthService) IssueAdminToken(username string) (string, error) {
	return a.signToken(jwt.MapClaims{
		"sub":  username,
		"role": roleAdmin,
		"exp":  time.Now().Add(adminTokenTTL).Unix(),
	})
}

func (a *AuthService) ValidateAdminToken(tokenString string) error {
	claims, err := a.parseClaims(tokenString)
	if err != nil {
		return ErrInvalidToken
	}
	if role, _ := claims["role"].(string); role != roleAdmin {
		return ErrInvalidToken
	}
	return nil
}

func (a *AuthService) signToken(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *AuthService) parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
