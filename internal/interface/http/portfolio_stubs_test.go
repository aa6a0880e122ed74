package handlers

import (
	"context"
	"sort"
	"sync"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-api/internal/domain/repository"
)

type stubProjects struct {
	mu    sync.Mutex
	rows  map[string]entity.Project
	media map[string]entity.ProjectMedia
}

func newStubProjects() *stubProjects {
	return &stubProjects{rows: map[string]entity.Project{}, media: map[string]entity.ProjectMedia{}}
}

func (s *stubProjects) attach(p entity.Project) entity.Project {
	p.Media = []entity.ProjectMedia{}
	for _, m := range s.media {
		if m.ProjectID == p.ID {
			p.Media = append(p.Media, m)
		}
	}
	return p
}

func (s *stubProjects) ListByUser(_ context.Context, userID string, publicOnly bool) ([]entity.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []entity.Project{}
	for _, p := range s.rows {
		if p.UserID == userID && (!publicOnly || p.Visibility == entity.VisibilityPublic) {
			out = append(out, s.attach(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *stubProjects) GetByID(_ context.Context, id string) (*entity.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	p = s.attach(p)
	return &p, nil
}

func (s *stubProjects) SlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.rows {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubProjects) Create(_ context.Context, p *entity.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[p.ID] = *p
	return nil
}

func (s *stubProjects) Update(ctx context.Context, p *entity.Project) error { return s.Create(ctx, p) }

func (s *stubProjects) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

func (s *stubProjects) AddMedia(_ context.Context, m *entity.ProjectMedia) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media[m.ID] = *m
	return nil
}

func (s *stubProjects) GetMedia(_ context.Context, id string) (*entity.ProjectMedia, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.media[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &m, nil
}

func (s *stubProjects) DeleteMedia(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.media, id)
	return nil
}

type stubResumes struct {
	mu       sync.Mutex
	rows     map[string]entity.Resume
	versions map[string][]entity.ResumeVersion // newest first
}

func newStubResumes() *stubResumes {
	return &stubResumes{rows: map[string]entity.Resume{}, versions: map[string][]entity.ResumeVersion{}}
}

func (s *stubResumes) view(r entity.Resume, latestOnly bool) entity.Resume {
	vs := s.versions[r.ID]
	r.VersionCount = len(vs)
	r.Versions = append([]entity.ResumeVersion{}, vs...)
	if latestOnly && len(r.Versions) > 1 {
		r.Versions = r.Versions[:1]
	}
	return r
}

func (s *stubResumes) ListByUser(_ context.Context, userID string, publishedOnly bool) ([]entity.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []entity.Resume{}
	for _, r := range s.rows {
		if r.UserID == userID && (!publishedOnly || r.IsPublished) {
			out = append(out, s.view(r, true))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *stubResumes) GetByID(_ context.Context, id string) (*entity.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	r = s.view(r, false)
	return &r, nil
}

func (s *stubResumes) GetPublishedBySlug(_ context.Context, slug string) (*entity.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.Slug == slug && r.IsPublished {
			r = s.view(r, true)
			return &r, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *stubResumes) SlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubResumes) Create(_ context.Context, r *entity.Resume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[r.ID] = *r
	return nil
}

func (s *stubResumes) Update(ctx context.Context, r *entity.Resume) error { return s.Create(ctx, r) }

func (s *stubResumes) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	delete(s.versions, id)
	return nil
}

func (s *stubResumes) AddVersion(_ context.Context, v *entity.ResumeVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions[v.ResumeID] = append([]entity.ResumeVersion{*v}, s.versions[v.ResumeID]...)
	return nil
}
