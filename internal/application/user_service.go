package application

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-api/internal/domain/repository"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

type UserService struct {
	Users        repo.UserRepository
	Profiles     repo.ProfileRepository
	Achievements repo.AchievementRepository
	Logger       *logrus.Logger

	// Optional; a nil repository leaves its section of the public profile empty.
	Projects repo.ProjectRepository
	Resumes  repo.ResumeRepository

	Indexer ProfileIndexer
	Objects ObjectStore
}

func NewUserService(users repo.UserRepository, profiles repo.ProfileRepository, achievements repo.AchievementRepository, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Profiles: profiles, Achievements: achievements, Logger: logger}
}

// Me is the authenticated user's own view, including optional fields.
type Me struct {
	entity.UserView
	Headline  *string `json:"headline"`
	AvatarURL *string `json:"avatar_url"`
	Locale    *string `json:"locale"`
}

func meOf(u *entity.User) *Me {
	return &Me{UserView: u.View(), Headline: u.Headline, AvatarURL: u.AvatarURL, Locale: u.Locale}
}

func (s *UserService) GetMe(ctx context.Context, userID string) (*Me, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	return meOf(u), nil
}

// UpdateMeInput uses nil for "leave unchanged".
type UpdateMeInput struct {
	Name         *string
	Headline     *string
	AvatarURL    *string
	Locale       *string
	PublicHandle *string
}

func (s *UserService) UpdateMe(ctx context.Context, userID string, in UpdateMeInput) (*Me, error) {
	u, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		u.Name = blankToNil(*in.Name)
	}
	if in.Headline != nil {
		u.Headline = blankToNil(*in.Headline)
	}
	if in.AvatarURL != nil {
		u.AvatarURL = blankToNil(*in.AvatarURL)
	}
	if in.Locale != nil {
		u.Locale = blankToNil(*in.Locale)
	}
	if in.PublicHandle != nil && *in.PublicHandle != u.PublicHandle {
		taken, err := s.Users.HandleExists(ctx, *in.PublicHandle)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrHandleTaken
		}
		u.PublicHandle = *in.PublicHandle
	}

	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrHandleTaken
		}
		return nil, err
	}
	s.index(ctx, u)
	return meOf(u), nil
}

type UpdateProfileInput struct {
	Bio     *string
	Visible *bool
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		p = &entity.Profile{UserID: userID, Visible: true}
	}
	if in.Bio != nil {
		p.Bio = blankToNil(*in.Bio)
	}
	if in.Visible != nil {
		p.Visible = *in.Visible
	}
	if err := s.Profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// PublicProfile is what anyone may see under /users/:handle. It never carries email.
type PublicProfile struct {
	PublicHandle string               `json:"public_handle"`
	Name         *string              `json:"name"`
	Headline     *string              `json:"headline"`
	AvatarURL    *string              `json:"avatar_url"`
	Bio          *string              `json:"bio"`
	Achievements []entity.Achievement `json:"achievements"`
	Projects     []entity.Project     `json:"projects"`
	Resumes      []entity.Resume      `json:"resumes"`
}

// GetPublicProfile returns ErrUserNotFound both for unknown handles and hidden profiles.
func (s *UserService) GetPublicProfile(ctx context.Context, handle string) (*PublicProfile, error) {
	u, err := s.Users.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	p, err := s.Profiles.GetByUserID(ctx, u.ID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if p != nil && !p.Visible {
		return nil, ErrUserNotFound
	}

	list, err := s.Achievements.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []entity.Achievement{}
	}
	out := &PublicProfile{
		PublicHandle: u.PublicHandle,
		Name:         u.Name,
		Headline:     u.Headline,
		AvatarURL:    u.AvatarURL,
		Achievements: list,
		Projects:     []entity.Project{},
		Resumes:      []entity.Resume{},
	}
	if p != nil {
		out.Bio = p.Bio
	}
	if s.Projects != nil {
		projects, err := s.Projects.ListByUser(ctx, u.ID, true)
		if err != nil {
			return nil, err
		}
		if projects != nil {
			out.Projects = projects
		}
	}
	if s.Resumes != nil {
		resumes, err := s.Resumes.ListByUser(ctx, u.ID, true)
		if err != nil {
			return nil, err
		}
		if resumes != nil {
			out.Resumes = resumes
		}
	}
	return out, nil
}

// SearchUsers returns at most size public profiles; an unset index yields an empty list.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]ProfileDoc, error) {
	if s.Indexer == nil || strings.TrimSpace(q) == "" {
		return []ProfileDoc{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	return s.Indexer.Search(ctx, q, size)
}

// UploadAvatar stores the image under avatars/<user>/<uuid><ext> and points the user at it.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.Objects == nil {
		return "", ErrStorageDisabled
	}
	u, err := s.user(ctx, userID)
	if err != nil {
		return "", err
	}
	objectPath := path.Join("avatars", userID, uuid.NewString()+strings.ToLower(path.Ext(filename)))
	url, err := s.Objects.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	u.AvatarURL = &url
	if err := s.Users.Update(ctx, u); err != nil {
		return "", err
	}
	s.index(ctx, u)
	return url, nil
}

func (s *UserService) user(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) index(ctx context.Context, u *entity.User) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.Index(ctx, profileDoc(u)); err != nil {
		helpers.LogError(s.Logger, "profile index failed", err, logrus.Fields{"user_id": u.ID})
	}
}

func profileDoc(u *entity.User) ProfileDoc {
	return ProfileDoc{
		ID:           u.ID,
		Name:         deref(u.Name),
		Headline:     deref(u.Headline),
		PublicHandle: u.PublicHandle,
		AvatarURL:    deref(u.AvatarURL),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func blankToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
