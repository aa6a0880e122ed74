package application

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/config"
	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

// AuthConfig carries every secret and lifetime the session manager needs.
type AuthConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	BcryptCost    int

	HandleMaxSequential int
	HandleMaxRandom     int

	ResetTokenTTL    time.Duration
	ResetPasswordURL string
}

// AuthConfigFrom maps the process configuration onto AuthConfig.
func AuthConfigFrom(cfg *config.Config) AuthConfig {
	return AuthConfig{
		AccessSecret:        cfg.JWTAccessSecret,
		RefreshSecret:       cfg.JWTRefreshSecret,
		AccessTTL:           cfg.AccessTTL,
		RefreshTTL:          cfg.RefreshTTL,
		BcryptCost:          cfg.BcryptCost,
		HandleMaxSequential: cfg.HandleMaxSequential,
		HandleMaxRandom:     cfg.HandleMaxRandom,
		ResetTokenTTL:       cfg.ResetTokenTTL,
		ResetPasswordURL:    cfg.ResetPasswordURL,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// AuthResult is returned by every operation that opens or rotates a session.
// Tokens travel to the client only through cookies.
type AuthResult struct {
	User   entity.UserView
	Tokens TokenPair
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
}

// RequestMeta describes the caller for audit and notification purposes.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// AuthService orchestrates signup, login, refresh, logout and password reset.
// Exactly one refresh token is active per user; its SHA-256 digest lives on the user row.
type AuthService struct {
	Users   repo.UserRepository
	Handles *HandleAllocator
	Logger  *logrus.Logger

	// Optional collaborators; nil disables the related side effect.
	Resets   ResetTokenStore
	Notifier ResetNotifier
	Indexer  ProfileIndexer

	cfg    AuthConfig
	jwt    *helpers.JWTManager
	hasher *helpers.PasswordHasher
	now    func() time.Time

	// background reset dispatches, waited on by Drain
	pending sync.WaitGroup
}

// resetDispatchTimeout bounds one background reset dispatch.
const resetDispatchTimeout = 15 * time.Second

func NewAuthService(cfg AuthConfig, users repo.UserRepository, logger *logrus.Logger) *AuthService {
	if cfg.ResetTokenTTL <= 0 {
		cfg.ResetTokenTTL = 30 * time.Minute
	}
	return &AuthService{
		Users:   users,
		Handles: NewHandleAllocator(users, cfg.HandleMaxSequential, cfg.HandleMaxRandom),
		Logger:  logger,
		cfg:     cfg,
		jwt:     helpers.NewJWTManager(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL),
		hasher:  helpers.NewPasswordHasher(cfg.BcryptCost),
		now:     time.Now,
	}
}

// Tokens exposes the token issuer so middleware can verify access tokens with the same secrets.
func (s *AuthService) Tokens() *helpers.JWTManager { return s.jwt }

// Hasher exposes the password hasher for tools that create users directly.
func (s *AuthService) Hasher() *helpers.PasswordHasher { return s.hasher }

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	handle, err := s.Handles.Allocate(ctx, in.Email)
	if err != nil {
		s.log().WithError(err).WithField("email", in.Email).Error("public handle allocation failed")
		return nil, err
	}

	u := &entity.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: &hash,
		PublicHandle: handle,
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = &name
	}

	pair, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	refreshHash := helpers.HashToken(pair.RefreshToken)
	u.RefreshTokenHash = &refreshHash
	u.RefreshExpiresAt = &pair.RefreshTokenExpiry

	if err := s.Users.CreateWithProfile(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// lost a race on email or handle against a concurrent signup
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	countAuth(evSignup)
	s.log().WithFields(logrus.Fields{"user_id": u.ID, "handle": u.PublicHandle}).Info("user signed up")
	s.index(ctx, u)
	return &AuthResult{User: u.View(), Tokens: pair}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			countAuth(evLoginFailure)
		}
		return nil, err
	}

	pair, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	refreshHash := helpers.HashToken(pair.RefreshToken)
	if err := s.Users.SetRefreshToken(ctx, u.ID, &refreshHash, &pair.RefreshTokenExpiry); err != nil {
		return nil, err
	}

	countAuth(evLogin)
	return &AuthResult{User: u.View(), Tokens: pair}, nil
}

// authenticate spends one bcrypt comparison on every path so that unknown
// emails, password-less accounts and wrong passwords are indistinguishable.
func (s *AuthService) authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		s.hasher.VerifyMissing(password)
		return nil, ErrInvalidCredentials
	}
	if !u.HasPassword() {
		s.hasher.VerifyMissing(password)
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(*u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Refresh rotates the session: the presented token must be the one currently
// stored, and is replaced with a compare-and-set so it can be redeemed once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if refreshToken == "" {
		return nil, ErrRefreshMissing
	}

	claims, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		reason := "invalid"
		if errors.Is(err, helpers.ErrTokenExpired) {
			reason = "expired"
		}
		return nil, s.rejectRefresh(reason, "", err)
	}

	u, err := s.Users.GetByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, s.rejectRefresh("unknown_user", claims.UserID(), nil)
		}
		return nil, err
	}

	presented := helpers.HashToken(refreshToken)
	session := u.Session()
	if !session.Active(s.now()) || !helpers.TokenHashEqual(session.TokenHash, presented) {
		return nil, s.rejectRefresh("mismatch", u.ID, nil)
	}

	pair, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	rotated, err := s.Users.RotateRefreshToken(ctx, u.ID, presented, helpers.HashToken(pair.RefreshToken), pair.RefreshTokenExpiry)
	if err != nil {
		return nil, err
	}
	if !rotated {
		return nil, s.rejectRefresh("race", u.ID, nil)
	}

	countAuth(evRefresh)
	return &AuthResult{User: u.View(), Tokens: pair}, nil
}

func (s *AuthService) rejectRefresh(reason, userID string, cause error) error {
	countAuth(evRefreshFailure)
	entry := s.log().WithField("reason", reason)
	if userID != "" {
		entry = entry.WithField("user_id", userID)
	}
	if cause != nil {
		entry = entry.WithError(cause)
	}
	entry.Warn("refresh rejected")
	return ErrInvalidRefresh
}

// Logout clears the stored refresh token; calling it twice is harmless.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.Users.SetRefreshToken(ctx, userID, nil, nil); err != nil {
		return err
	}
	countAuth(evLogout)
	return nil
}

// ForgotPassword never reveals whether the email is registered: the caller
// gets nil for both cases. For a known account the token is stored and the
// email enqueued in the background, so the response takes the same path and
// time either way. Dispatch failures are only logged.
func (s *AuthService) ForgotPassword(ctx context.Context, email string, meta RequestMeta) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.log().WithField("ip", meta.IP).Debug("password reset requested for unknown email")
			return nil
		}
		return err
	}
	if s.Resets == nil {
		return nil
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resetDispatchTimeout)
		defer cancel()
		s.dispatchReset(dctx, u, meta)
	}()
	return nil
}

// Drain blocks until background reset dispatches have finished.
func (s *AuthService) Drain() { s.pending.Wait() }

func (s *AuthService) dispatchReset(ctx context.Context, u *entity.User, meta RequestMeta) {
	token, err := helpers.RandomToken(32)
	if err != nil {
		s.log().WithError(err).Error("reset token generation failed")
		return
	}
	if err := s.Resets.Save(ctx, helpers.HashToken(token), u.ID, s.cfg.ResetTokenTTL); err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Error("store reset token failed")
		return
	}
	if s.Notifier == nil {
		return
	}

	notice := ResetNotice{
		UserID:    u.ID,
		Email:     u.Email,
		Link:      resetLink(s.cfg.ResetPasswordURL, token),
		ExpiresAt: s.now().Add(s.cfg.ResetTokenTTL),
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	}
	if u.Name != nil {
		notice.Name = *u.Name
	}
	if err := s.Notifier.SendPasswordReset(ctx, notice); err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Warn("enqueue reset email failed")
	}
}

// ResetPassword redeems a reset token, stores the new hash and ends the active session.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if s.Resets == nil {
		return ErrResetUnavailable
	}
	userID, ok, err := s.Resets.Take(ctx, helpers.HashToken(token))
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidResetToken
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	countAuth(evPasswordReset)
	s.log().WithField("user_id", userID).Info("password reset")
	return nil
}

func (s *AuthService) issue(u *entity.User) (TokenPair, error) {
	access, aexp, err := s.jwt.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return TokenPair{}, err
	}
	refresh, rexp, err := s.jwt.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *AuthService) index(ctx context.Context, u *entity.User) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.Index(ctx, profileDoc(u)); err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Warn("profile index failed")
	}
}

func (s *AuthService) log() *logrus.Logger {
	if s.Logger == nil {
		return helpers.NewDiscardLogger()
	}
	return s.Logger
}

func resetLink(base, token string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "token=" + url.QueryEscape(token)
}
