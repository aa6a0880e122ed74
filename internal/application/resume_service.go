package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-api/internal/domain/repository"
)

type ResumeService struct {
	Repo  repo.ResumeRepository
	Users repo.UserRepository
}

func NewResumeService(r repo.ResumeRepository, users repo.UserRepository) *ResumeService {
	return &ResumeService{Repo: r, Users: users}
}

// ResumeInput uses nil for "leave unchanged" on update. Slug is only read on create.
type ResumeInput struct {
	Title       string
	Slug        *string
	Description *string
	IsPublished *bool
}

type VersionInput struct {
	Content    string
	VersionTag *string
}

// ResumeOwner is the public slice of the author shown next to a published resume.
type ResumeOwner struct {
	ID           string  `json:"id"`
	Name         *string `json:"name"`
	Headline     *string `json:"headline"`
	AvatarURL    *string `json:"avatar_url"`
	PublicHandle string  `json:"public_handle"`
}

type PublicResume struct {
	entity.Resume
	User ResumeOwner `json:"user"`
}

func (s *ResumeService) List(ctx context.Context, userID string) ([]entity.Resume, error) {
	list, err := s.Repo.ListByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []entity.Resume{}
	}
	return list, nil
}

func (s *ResumeService) Get(ctx context.Context, userID, id string) (*entity.Resume, error) {
	return s.owned(ctx, userID, id)
}

func (s *ResumeService) Create(ctx context.Context, userID string, in ResumeInput) (*entity.Resume, error) {
	title := strings.TrimSpace(in.Title)
	slug, err := slugFor(in.Slug, title)
	if err != nil {
		return nil, err
	}
	taken, err := s.Repo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	r := &entity.Resume{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Slug:        slug,
		Description: in.Description,
		Versions:    []entity.ResumeVersion{},
	}
	if err := s.Repo.Create(ctx, r); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return r, nil
}

// Update refuses to publish a resume that has no versions.
func (s *ResumeService) Update(ctx context.Context, userID, id string, in ResumeInput) (*entity.Resume, error) {
	r, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if t := strings.TrimSpace(in.Title); t != "" {
		r.Title = t
	}
	if in.Description != nil {
		r.Description = blankToNil(*in.Description)
	}
	if in.IsPublished != nil {
		if *in.IsPublished && r.VersionCount == 0 {
			return nil, ErrResumeNoVersions
		}
		r.IsPublished = *in.IsPublished
	}
	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ResumeService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

func (s *ResumeService) AddVersion(ctx context.Context, userID, id string, in VersionInput) (*entity.ResumeVersion, error) {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	v := &entity.ResumeVersion{
		ID:         uuid.NewString(),
		ResumeID:   id,
		Content:    in.Content,
		VersionTag: in.VersionTag,
	}
	if err := s.Repo.AddVersion(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *ResumeService) Publish(ctx context.Context, userID, id string) (*entity.Resume, error) {
	published := true
	return s.Update(ctx, userID, id, ResumeInput{IsPublished: &published})
}

// PublicResume returns a published resume with its latest version. Unknown
// and unpublished slugs are both ErrResumeNotFound.
func (s *ResumeService) PublicResume(ctx context.Context, slug string) (*PublicResume, error) {
	r, err := s.Repo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, r.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	return &PublicResume{
		Resume: *r,
		User: ResumeOwner{
			ID:           u.ID,
			Name:         u.Name,
			Headline:     u.Headline,
			AvatarURL:    u.AvatarURL,
			PublicHandle: u.PublicHandle,
		},
	}, nil
}

func (s *ResumeService) owned(ctx context.Context, userID, id string) (*entity.Resume, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	if r.UserID != userID {
		return nil, ErrForbidden
	}
	return r, nil
}
