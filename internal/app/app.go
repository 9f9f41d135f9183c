package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"youthwell/pkg/ai"
	"youthwell/pkg/auth"
	"youthwell/pkg/domain"
	"youthwell/pkg/storage"
	"youthwell/pkg/store"
)

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL      string
	JWTSecret        string
	TokenTTL         time.Duration
	UploadDir        string
	MaxUploadBytes   int64
	AllowedMimeTypes []string

	// Optional overrides, used by tests and alternate backends.
	Store     store.Store
	Blobs     storage.BlobStore
	Responder ai.ResponseGenerator
}

// App wires storage, auth and the AI bridge behind the HTTP layer.
type App struct {
	store       store.Store
	blobs       storage.BlobStore
	tokens      *auth.Tokens
	responder   ai.ResponseGenerator
	maxUpload   int64
	allowedMime map[string]bool
}

// New constructs the application.
func New(cfg Config) (*App, error) {
	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}

	blobs := cfg.Blobs
	if blobs == nil {
		dir := cfg.UploadDir
		if dir == "" {
			dir = "uploads"
		}
		var err error
		blobs, err = storage.NewFileStore(dir)
		if err != nil {
			return nil, fmt.Errorf("init file storage: %w", err)
		}
	}

	responder := cfg.Responder
	if responder == nil {
		responder = ai.NewLocalResponder()
	}

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 50 << 20
	}
	allowed := make(map[string]bool, len(cfg.AllowedMimeTypes))
	for _, m := range cfg.AllowedMimeTypes {
		allowed[strings.ToLower(strings.TrimSpace(m))] = true
	}

	return &App{
		store:       dataStore,
		blobs:       blobs,
		tokens:      auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		responder:   responder,
		maxUpload:   maxUpload,
		allowedMime: allowed,
	}, nil
}

// MaxUploadBytes exposes the configured upload cap to the HTTP layer.
func (a *App) MaxUploadBytes() int64 { return a.maxUpload }

// Register creates a password-backed account and issues a token.
func (a *App) Register(email, password, displayName string) (domain.User, string, error) {
	if _, err := a.store.GetUserByEmail(email); err == nil {
		return domain.User{}, "", ErrEmailExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, "", fmt.Errorf("lookup email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		IsAnonymous:  false,
		IsActive:     true,
	}
	if err := a.store.CreateUser(&user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return domain.User{}, "", ErrEmailExists
		}
		return domain.User{}, "", fmt.Errorf("create user: %w", err)
	}
	token, err := a.tokens.Sign(user.ID, user.UUID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// Login authenticates a registered user and stamps lastLoginAt.
func (a *App) Login(email, password string) (domain.User, string, error) {
	user, err := a.store.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", fmt.Errorf("lookup email: %w", err)
	}
	if user.IsAnonymous || !auth.CheckPassword(password, user.PasswordHash) {
		return domain.User{}, "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user, err = a.store.UpdateUser(user.ID, store.UserUpdate{LastLoginAt: &now})
	if err != nil {
		return domain.User{}, "", fmt.Errorf("stamp last login: %w", err)
	}
	token, err := a.tokens.Sign(user.ID, user.UUID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// Anonymous creates a throwaway account so teens can try the app without
// handing over an email address.
func (a *App) Anonymous(displayName string) (domain.User, string, error) {
	if strings.TrimSpace(displayName) == "" {
		displayName = "Anonymous User"
	}
	user := domain.User{
		DisplayName: displayName,
		IsAnonymous: true,
		IsActive:    true,
	}
	if err := a.store.CreateUser(&user); err != nil {
		return domain.User{}, "", fmt.Errorf("create anonymous user: %w", err)
	}
	token, err := a.tokens.Sign(user.ID, user.UUID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to an active user. It returns
// auth.ErrInvalidToken for signature/expiry failures and ErrUserDisabled when
// the account is missing or deactivated.
func (a *App) Authenticate(token string) (domain.User, error) {
	userID, err := a.tokens.Verify(token)
	if err != nil {
		return domain.User{}, auth.ErrInvalidToken
	}
	user, err := a.store.GetUser(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserDisabled
		}
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	if !user.IsActive {
		return domain.User{}, ErrUserDisabled
	}
	return user, nil
}

// Profile returns the caller's account.
func (a *App) Profile(userID int64) (domain.User, error) {
	return a.store.GetUser(userID)
}

// UpdateProfile changes the display name.
func (a *App) UpdateProfile(userID int64, displayName string) (domain.User, error) {
	return a.store.UpdateUser(userID, store.UserUpdate{DisplayName: &displayName})
}

// Convert upgrades an anonymous account to a registered one, keeping all of
// its journals, goals and chats.
func (a *App) Convert(userID int64, email, password string) (domain.User, string, error) {
	user, err := a.store.GetUser(userID)
	if err != nil {
		return domain.User{}, "", err
	}
	if !user.IsAnonymous {
		return domain.User{}, "", ErrAlreadyRegistered
	}
	if _, err := a.store.GetUserByEmail(email); err == nil {
		return domain.User{}, "", ErrEmailInUse
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, "", fmt.Errorf("lookup email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}
	anonymous := false
	user, err = a.store.UpdateUser(userID, store.UserUpdate{
		Email:        &email,
		PasswordHash: &hash,
		IsAnonymous:  &anonymous,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return domain.User{}, "", ErrEmailInUse
		}
		return domain.User{}, "", fmt.Errorf("convert user: %w", err)
	}
	token, err := a.tokens.Sign(user.ID, user.UUID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}
