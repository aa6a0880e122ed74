package application

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

func testAuthConfig() AuthConfig {
	return AuthConfig{
		AccessSecret:        "access-secret",
		RefreshSecret:       "refresh-secret",
		AccessTTL:           15 * time.Minute,
		RefreshTTL:          7 * 24 * time.Hour,
		BcryptCost:          4,
		HandleMaxSequential: 100,
		HandleMaxRandom:     5,
		ResetTokenTTL:       30 * time.Minute,
		ResetPasswordURL:    "http://localhost:3000/reset-password",
	}
}

func newTestAuth(t *testing.T) (*AuthService, *memUsers) {
	t.Helper()
	users := newMemUsers()
	return NewAuthService(testAuthConfig(), users, helpers.NewDiscardLogger()), users
}

func mustSignup(t *testing.T, s *AuthService, email, password string) *AuthResult {
	t.Helper()
	res, err := s.Signup(context.Background(), SignupInput{Email: email, Password: password})
	require.NoError(t, err)
	return res
}

func TestSignup_ConcreteScenario(t *testing.T) {
	s, users := newTestAuth(t)
	ctx := context.Background()

	res, err := s.Signup(ctx, SignupInput{Email: "a@b.com", Password: "password1", Name: "A"})
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", res.User.Email)
	assert.Equal(t, "a", res.User.PublicHandle)
	require.NotNil(t, res.User.Name)
	assert.Equal(t, "A", *res.User.Name)
	assert.NotEmpty(t, res.Tokens.AccessToken)
	assert.NotEmpty(t, res.Tokens.RefreshToken)

	stored := users.stored(res.User.ID)
	require.NotNil(t, stored.RefreshTokenHash)
	assert.Equal(t, helpers.HashToken(res.Tokens.RefreshToken), *stored.RefreshTokenHash)
	require.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "password1", *stored.PasswordHash)

	claims, err := s.Tokens().ParseAccessToken(res.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID())
	assert.Equal(t, "a@b.com", claims.Email)

	login, err := s.Login(ctx, "a@b.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	refreshed, err := s.Refresh(ctx, login.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.Tokens.RefreshToken, refreshed.Tokens.RefreshToken)

	require.NoError(t, s.Logout(ctx, res.User.ID))
	_, err = s.Refresh(ctx, refreshed.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	s, _ := newTestAuth(t)
	mustSignup(t, s, "dup@example.com", "password1")

	_, err := s.Signup(context.Background(), SignupInput{Email: "dup@example.com", Password: "other-pass"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSignup_EmailIsCaseSensitive(t *testing.T) {
	s, _ := newTestAuth(t)
	first := mustSignup(t, s, "Bob@example.com", "password1")
	second := mustSignup(t, s, "bob@example.com", "password1")

	assert.Equal(t, "bob", first.User.PublicHandle)
	assert.Equal(t, "bob1", second.User.PublicHandle)
}

func TestSignup_StoreFailure(t *testing.T) {
	s, users := newTestAuth(t)
	users.err = errors.New("connection refused")

	_, err := s.Signup(context.Background(), SignupInput{Email: "x@example.com", Password: "password1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConflict)
}

func TestLogin_FailuresLookAlike(t *testing.T) {
	s, users := newTestAuth(t)
	ctx := context.Background()
	res := mustSignup(t, s, "carol@example.com", "password1")

	_, errWrong := s.Login(ctx, "carol@example.com", "wrong-password")
	_, errMissing := s.Login(ctx, "nobody@example.com", "password1")

	// an account without a local password
	noPass := users.stored(res.User.ID)
	noPass.ID, noPass.Email, noPass.PublicHandle, noPass.PasswordHash = "u-oauth", "oauth@example.com", "oauth", nil
	require.NoError(t, users.CreateWithProfile(ctx, noPass))
	_, errNoHash := s.Login(ctx, "oauth@example.com", "password1")

	for _, err := range []error{errWrong, errMissing, errNoHash} {
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, ErrInvalidCredentials.Error(), err.Error())
	}
}

func TestLogin_OverwritesPreviousRefreshToken(t *testing.T) {
	s, _ := newTestAuth(t)
	ctx := context.Background()
	signup := mustSignup(t, s, "dave@example.com", "password1")

	login, err := s.Login(ctx, "dave@example.com", "password1")
	require.NoError(t, err)

	_, err = s.Refresh(ctx, signup.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	_, err = s.Refresh(ctx, login.Tokens.RefreshToken)
	assert.NoError(t, err)
}

func TestLogin_StoreErrorIsNotMasked(t *testing.T) {
	s, users := newTestAuth(t)
	users.err = errors.New("db down")

	_, err := s.Login(context.Background(), "eve@example.com", "password1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_SingleUse(t *testing.T) {
	s, users := newTestAuth(t)
	ctx := context.Background()
	res := mustSignup(t, s, "frank@example.com", "password1")

	next, err := s.Refresh(ctx, res.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, res.User, next.User)
	assert.Equal(t, helpers.HashToken(next.Tokens.RefreshToken), *users.stored(res.User.ID).RefreshTokenHash)

	_, err = s.Refresh(ctx, res.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRefresh_Rejections(t *testing.T) {
	s, _ := newTestAuth(t)
	ctx := context.Background()
	res := mustSignup(t, s, "grace@example.com", "password1")

	_, err := s.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrRefreshMissing)

	_, err = s.Refresh(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	// access tokens are signed with a different secret
	_, err = s.Refresh(ctx, res.Tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	// valid signature but the subject does not exist
	ghost, _, err := s.Tokens().GenerateRefreshToken("missing-user", "ghost@example.com")
	require.NoError(t, err)
	_, err = s.Refresh(ctx, ghost)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	cfg := testAuthConfig()
	users := newMemUsers()
	s := NewAuthService(cfg, users, nil)
	res := mustSignup(t, s, "heidi@example.com", "password1")

	cfg.RefreshTTL = -time.Minute
	stale := NewAuthService(cfg, users, nil)
	expired, _, err := stale.Tokens().GenerateRefreshToken(res.User.ID, res.User.Email)
	require.NoError(t, err)

	_, err = s.Refresh(context.Background(), expired)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRefresh_StoredSessionExpired(t *testing.T) {
	s, _ := newTestAuth(t)
	res := mustSignup(t, s, "ivan@example.com", "password1")
	s.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }

	_, err := s.Refresh(context.Background(), res.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRefresh_ConcurrentOneWinner(t *testing.T) {
	s, _ := newTestAuth(t)
	res := mustSignup(t, s, "judy@example.com", "password1")

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		wins    int
		rejects int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Refresh(context.Background(), res.Tokens.RefreshToken)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else if errors.Is(err, ErrInvalidRefresh) {
				rejects++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, rejects)
}

func TestLogout_Idempotent(t *testing.T) {
	s, users := newTestAuth(t)
	ctx := context.Background()
	res := mustSignup(t, s, "ken@example.com", "password1")

	require.NoError(t, s.Logout(ctx, res.User.ID))
	require.NoError(t, s.Logout(ctx, res.User.ID))
	assert.Nil(t, users.stored(res.User.ID).RefreshTokenHash)
	assert.Equal(t, "anonymous", users.stored(res.User.ID).Session().Kind.String())
}

func TestForgotPassword_SameOutcomeForUnknownEmail(t *testing.T) {
	s, _ := newTestAuth(t)
	resets, notifier := newMemResets(), &memNotifier{}
	s.Resets, s.Notifier = resets, notifier
	mustSignup(t, s, "leo@example.com", "password1")

	errKnown := s.ForgotPassword(context.Background(), "leo@example.com", RequestMeta{IP: "10.0.0.1"})
	errUnknown := s.ForgotPassword(context.Background(), "nobody@example.com", RequestMeta{IP: "10.0.0.1"})
	s.Drain()

	assert.NoError(t, errKnown)
	assert.NoError(t, errUnknown)
	assert.Len(t, notifier.notices, 1)
	assert.Len(t, resets.tickets, 1)
	assert.Equal(t, 30*time.Minute, resets.lastTTL)
}

func TestForgotPassword_NotifierFailureIsSwallowed(t *testing.T) {
	s, _ := newTestAuth(t)
	s.Resets, s.Notifier = newMemResets(), &memNotifier{err: errors.New("broker down")}
	mustSignup(t, s, "mia@example.com", "password1")

	assert.NoError(t, s.ForgotPassword(context.Background(), "mia@example.com", RequestMeta{}))
	s.Drain()
}

// blockingResets holds Save until release is closed.
type blockingResets struct {
	*memResets
	release chan struct{}
}

func (b blockingResets) Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	select {
	case <-b.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	return b.memResets.Save(ctx, tokenHash, userID, ttl)
}

func TestForgotPassword_DispatchDoesNotBlockCaller(t *testing.T) {
	s, _ := newTestAuth(t)
	resets := blockingResets{memResets: newMemResets(), release: make(chan struct{})}
	notifier := &memNotifier{}
	s.Resets, s.Notifier = resets, notifier
	mustSignup(t, s, "olga@example.com", "password1")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ForgotPassword(ctx, "olga@example.com", RequestMeta{}) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("ForgotPassword waited for the reset store")
	}

	// request cancellation does not abort the dispatch
	cancel()
	close(resets.release)
	s.Drain()
	assert.Len(t, resets.tickets, 1)
	assert.Len(t, notifier.notices, 1)
}

func TestResetPassword_Flow(t *testing.T) {
	s, users := newTestAuth(t)
	ctx := context.Background()
	resets, notifier := newMemResets(), &memNotifier{}
	s.Resets, s.Notifier = resets, notifier
	res := mustSignup(t, s, "nina@example.com", "password1")

	require.NoError(t, s.ForgotPassword(ctx, "nina@example.com", RequestMeta{}))
	s.Drain()
	require.Len(t, notifier.notices, 1)
	link, err := url.Parse(notifier.notices[0].Link)
	require.NoError(t, err)
	token := link.Query().Get("token")
	require.NotEmpty(t, token)

	// only the digest is stored
	_, rawStored := resets.tickets[token]
	assert.False(t, rawStored)

	require.NoError(t, s.ResetPassword(ctx, token, "new-password"))
	assert.Nil(t, users.stored(res.User.ID).RefreshTokenHash)

	_, err = s.Login(ctx, "nina@example.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, "nina@example.com", "new-password")
	assert.NoError(t, err)

	_, err = s.Refresh(ctx, res.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	assert.ErrorIs(t, s.ResetPassword(ctx, token, "again-password"), ErrInvalidResetToken)
}

func TestResetPassword_Unconfigured(t *testing.T) {
	s, _ := newTestAuth(t)
	assert.ErrorIs(t, s.ResetPassword(context.Background(), "tok", "new-password"), ErrResetUnavailable)
}

func TestResetLink(t *testing.T) {
	assert.Equal(t, "http://x/reset?token=a%2Bb", resetLink("http://x/reset", "a+b"))
	assert.Equal(t, "http://x/reset?lang=en&token=t", resetLink("http://x/reset?lang=en", "t"))
}

func TestSignup_IndexesProfile(t *testing.T) {
	s, _ := newTestAuth(t)
	idx := &memIndex{}
	s.Indexer = idx
	res := mustSignup(t, s, "olga@example.com", "password1")

	require.Contains(t, idx.docs, res.User.ID)
	assert.Equal(t, "olga", idx.docs[res.User.ID].PublicHandle)
}
