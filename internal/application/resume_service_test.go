package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
)

func newResumeFixture(t *testing.T) (*ResumeService, *memUsers) {
	t.Helper()
	users := newMemUsers()
	users.byID["owner"] = &entity.User{ID: "owner", Email: "o@example.com", PublicHandle: "owner", Name: strp("Olga")}
	return NewResumeService(newMemResumes(), users), users
}

func TestResumes_CreateAndSlugConflict(t *testing.T) {
	svc, _ := newResumeFixture(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, "owner", ResumeInput{Title: "Frontend Developer Resume"})
	require.NoError(t, err)
	assert.Equal(t, "frontend-developer-resume", r.Slug)
	assert.False(t, r.IsPublished)
	assert.NotNil(t, r.Versions)

	_, err = svc.Create(ctx, "owner", ResumeInput{Title: "Other", Slug: strp("frontend-developer-resume")})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestResumes_PublishNeedsVersion(t *testing.T) {
	svc, _ := newResumeFixture(t)
	ctx := context.Background()
	r, err := svc.Create(ctx, "owner", ResumeInput{Title: "Backend"})
	require.NoError(t, err)

	_, err = svc.Publish(ctx, "owner", r.ID)
	assert.ErrorIs(t, err, ErrResumeNoVersions)
	assert.ErrorIs(t, err, ErrConflict)
	published := true
	_, err = svc.Update(ctx, "owner", r.ID, ResumeInput{IsPublished: &published})
	assert.ErrorIs(t, err, ErrResumeNoVersions)

	v, err := svc.AddVersion(ctx, "owner", r.ID, VersionInput{Content: "# Experience", VersionTag: strp("v1.0")})
	require.NoError(t, err)
	assert.Equal(t, r.ID, v.ResumeID)

	out, err := svc.Publish(ctx, "owner", r.ID)
	require.NoError(t, err)
	assert.True(t, out.IsPublished)

	unpublished := false
	out, err = svc.Update(ctx, "owner", r.ID, ResumeInput{IsPublished: &unpublished, Description: strp("  ")})
	require.NoError(t, err)
	assert.False(t, out.IsPublished)
	assert.Nil(t, out.Description)
}

func TestResumes_OwnerOnly(t *testing.T) {
	svc, _ := newResumeFixture(t)
	ctx := context.Background()
	r, err := svc.Create(ctx, "owner", ResumeInput{Title: "Backend"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "intruder", r.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.AddVersion(ctx, "intruder", r.ID, VersionInput{Content: "x"})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Publish(ctx, "intruder", r.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, "intruder", r.ID), ErrForbidden)

	_, err = svc.Get(ctx, "owner", "missing")
	assert.ErrorIs(t, err, ErrResumeNotFound)
}

func TestResumes_GetReturnsVersionsNewestFirst(t *testing.T) {
	svc, _ := newResumeFixture(t)
	ctx := context.Background()
	r, err := svc.Create(ctx, "owner", ResumeInput{Title: "Backend"})
	require.NoError(t, err)
	_, err = svc.AddVersion(ctx, "owner", r.ID, VersionInput{Content: "first"})
	require.NoError(t, err)
	_, err = svc.AddVersion(ctx, "owner", r.ID, VersionInput{Content: "second"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "owner", r.ID)
	require.NoError(t, err)
	require.Len(t, got.Versions, 2)
	assert.Equal(t, "second", got.Versions[0].Content)

	list, err := svc.List(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Versions, 1)
	assert.Equal(t, "second", list[0].Versions[0].Content)
	assert.Equal(t, 2, list[0].VersionCount)
}

func TestResumes_PublicResume(t *testing.T) {
	svc, _ := newResumeFixture(t)
	ctx := context.Background()
	r, err := svc.Create(ctx, "owner", ResumeInput{Title: "Backend"})
	require.NoError(t, err)
	_, err = svc.AddVersion(ctx, "owner", r.ID, VersionInput{Content: "old"})
	require.NoError(t, err)
	_, err = svc.AddVersion(ctx, "owner", r.ID, VersionInput{Content: "new"})
	require.NoError(t, err)

	_, err = svc.PublicResume(ctx, r.Slug)
	assert.ErrorIs(t, err, ErrResumeNotFound, "drafts are not public")

	_, err = svc.Publish(ctx, "owner", r.ID)
	require.NoError(t, err)

	pub, err := svc.PublicResume(ctx, r.Slug)
	require.NoError(t, err)
	assert.Equal(t, "owner", pub.User.PublicHandle)
	assert.Equal(t, "Olga", *pub.User.Name)
	require.Len(t, pub.Versions, 1)
	assert.Equal(t, "new", pub.Versions[0].Content)

	_, err = svc.PublicResume(ctx, "nope")
	assert.ErrorIs(t, err, ErrResumeNotFound)

	require.NoError(t, svc.Delete(ctx, "owner", r.ID))
	_, err = svc.PublicResume(ctx, r.Slug)
	assert.ErrorIs(t, err, ErrResumeNotFound)
}
