package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAchievements_OwnerOnly(t *testing.T) {
	svc := NewAchievementService(newMemAchievements())
	ctx := context.Background()

	a, err := svc.Create(ctx, "owner", AchievementInput{Title: "  Talk at GopherCon "})
	require.NoError(t, err)
	assert.Equal(t, "Talk at GopherCon", a.Title)

	got, err := svc.Get(ctx, "owner", a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = svc.Get(ctx, "intruder", a.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Update(ctx, "intruder", a.ID, AchievementInput{Title: "mine"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, "intruder", a.ID), ErrForbidden)

	_, err = svc.Get(ctx, "owner", "missing")
	assert.ErrorIs(t, err, ErrAchievementNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAchievements_UpdateAndDelete(t *testing.T) {
	svc := NewAchievementService(newMemAchievements())
	ctx := context.Background()
	a, err := svc.Create(ctx, "owner", AchievementInput{Title: "Draft", Link: strp("https://x.test")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "owner", a.ID, AchievementInput{Title: "Final", Link: strp("")})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Nil(t, updated.Link)

	list, err := svc.List(ctx, "owner")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, "owner", a.ID))
	list, err = svc.List(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}
