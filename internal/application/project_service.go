package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-api/internal/domain/repository"
)

type ProjectService struct {
	Repo repo.ProjectRepository
}

func NewProjectService(r repo.ProjectRepository) *ProjectService {
	return &ProjectService{Repo: r}
}

// ProjectInput uses nil for "leave unchanged" on update. Slug is only read on create.
type ProjectInput struct {
	Title       string
	Slug        *string
	ShortDesc   *string
	Description *string
	TechStack   []string
	Visibility  *string
}

type MediaInput struct {
	URL     string
	Type    string
	AltText *string
}

func (s *ProjectService) List(ctx context.Context, userID string) ([]entity.Project, error) {
	list, err := s.Repo.ListByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []entity.Project{}
	}
	return list, nil
}

func (s *ProjectService) Get(ctx context.Context, userID, id string) (*entity.Project, error) {
	return s.owned(ctx, userID, id)
}

func (s *ProjectService) Create(ctx context.Context, userID string, in ProjectInput) (*entity.Project, error) {
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

	p := &entity.Project{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Slug:        slug,
		ShortDesc:   in.ShortDesc,
		Description: in.Description,
		TechStack:   techStack(in.TechStack),
		Visibility:  entity.VisibilityPrivate,
		Media:       []entity.ProjectMedia{},
	}
	if in.Visibility != nil {
		p.Visibility = *in.Visibility
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, userID, id string, in ProjectInput) (*entity.Project, error) {
	p, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if t := strings.TrimSpace(in.Title); t != "" {
		p.Title = t
	}
	if in.ShortDesc != nil {
		p.ShortDesc = blankToNil(*in.ShortDesc)
	}
	if in.Description != nil {
		p.Description = blankToNil(*in.Description)
	}
	if in.TechStack != nil {
		p.TechStack = techStack(in.TechStack)
	}
	if in.Visibility != nil {
		p.Visibility = *in.Visibility
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

func (s *ProjectService) AddMedia(ctx context.Context, userID, projectID string, in MediaInput) (*entity.ProjectMedia, error) {
	if _, err := s.owned(ctx, userID, projectID); err != nil {
		return nil, err
	}
	m := &entity.ProjectMedia{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		URL:       strings.TrimSpace(in.URL),
		Type:      in.Type,
		AltText:   in.AltText,
	}
	if err := s.Repo.AddMedia(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// RemoveMedia answers ErrMediaNotFound when the attachment belongs to another project.
func (s *ProjectService) RemoveMedia(ctx context.Context, userID, projectID, mediaID string) error {
	if _, err := s.owned(ctx, userID, projectID); err != nil {
		return err
	}
	m, err := s.Repo.GetMedia(ctx, mediaID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrMediaNotFound
		}
		return err
	}
	if m.ProjectID != projectID {
		return ErrMediaNotFound
	}
	if err := s.Repo.DeleteMedia(ctx, mediaID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrMediaNotFound
		}
		return err
	}
	return nil
}

func (s *ProjectService) owned(ctx context.Context, userID, id string) (*entity.Project, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrForbidden
	}
	return p, nil
}

// techStack trims entries, drops blanks and never returns nil.
func techStack(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
