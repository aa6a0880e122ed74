package application

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

const (
	handleAlphabet     = "abcdefghijklmnopqrstuvwxyz0123456789"
	handleRandomLength = 6
	fallbackHandleBase = "user"
)

// HandleChecker answers whether a public handle is already held by some user.
type HandleChecker interface {
	HandleExists(ctx context.Context, handle string) (bool, error)
}

// HandleAllocator derives a unique public handle from an email address.
// It tries base, base1, base2, ... for MaxSequential attempts, then base plus a
// random suffix for MaxRandom attempts, and fails with ErrHandleExhausted.
type HandleAllocator struct {
	store         HandleChecker
	MaxSequential int
	MaxRandom     int

	randomSuffix func() (string, error)
}

func NewHandleAllocator(store HandleChecker, maxSequential, maxRandom int) *HandleAllocator {
	if maxSequential <= 0 {
		maxSequential = 100
	}
	if maxRandom < 0 {
		maxRandom = 0
	}
	return &HandleAllocator{store: store, MaxSequential: maxSequential, MaxRandom: maxRandom, randomSuffix: randomHandleSuffix}
}

// BaseHandle lower-cases the email local part and keeps only [a-z0-9].
func BaseHandle(email string) string {
	local := email
	if i := strings.LastIndex(email, "@"); i >= 0 {
		local = email[:i]
	}
	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (a *HandleAllocator) Allocate(ctx context.Context, email string) (string, error) {
	base := BaseHandle(email)
	if base == "" {
		base = fallbackHandleBase
	}

	for i := 0; i < a.MaxSequential; i++ {
		candidate := base
		if i > 0 {
			candidate = base + strconv.Itoa(i)
		}
		free, err := a.free(ctx, candidate)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}

	for i := 0; i < a.MaxRandom; i++ {
		suffix, err := a.randomSuffix()
		if err != nil {
			return "", err
		}
		candidate := base + suffix
		free, err := a.free(ctx, candidate)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: base %q", ErrHandleExhausted, base)
}

func (a *HandleAllocator) free(ctx context.Context, handle string) (bool, error) {
	exists, err := a.store.HandleExists(ctx, handle)
	if err != nil {
		return false, fmt.Errorf("check handle %q: %w", handle, err)
	}
	return !exists, nil
}

func randomHandleSuffix() (string, error) {
	buf := make([]byte, handleRandomLength)
	max := big.NewInt(int64(len(handleAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = handleAlphabet[n.Int64()]
	}
	return string(buf), nil
}
