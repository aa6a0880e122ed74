package application

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-api/internal/domain/repository"
)

type memUsers struct {
	mu    sync.Mutex
	byID  map[string]*entity.User
	err   error
	calls int
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func (m *memUsers) CreateWithProfile(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, x := range m.byID {
		if x.Email == u.Email || x.PublicHandle == u.PublicHandle {
			return repo.ErrDuplicate
		}
	}
	m.byID[u.ID] = cloneUser(u)
	return nil
}

func (m *memUsers) find(pred func(*entity.User) bool) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if pred(u) {
			return cloneUser(u), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.ID == id })
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Email == email })
}

func (m *memUsers) GetByHandle(_ context.Context, handle string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.PublicHandle == handle })
}

func (m *memUsers) HandleExists(ctx context.Context, handle string) (bool, error) {
	_, err := m.GetByHandle(ctx, handle)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[u.ID]; !ok {
		return repo.ErrNotFound
	}
	for _, x := range m.byID {
		if x.ID != u.ID && x.PublicHandle == u.PublicHandle {
			return repo.ErrDuplicate
		}
	}
	m.byID[u.ID] = cloneUser(u)
	return nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordHash = &hash
	u.RefreshTokenHash = nil
	u.RefreshExpiresAt = nil
	return nil
}

func (m *memUsers) SetRefreshToken(_ context.Context, id string, hash *string, exp *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return nil
	}
	u.RefreshTokenHash = hash
	u.RefreshExpiresAt = exp
	return nil
}

func (m *memUsers) RotateRefreshToken(_ context.Context, id, oldHash, newHash string, exp time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok || u.RefreshTokenHash == nil || *u.RefreshTokenHash != oldHash {
		return false, nil
	}
	u.RefreshTokenHash = &newHash
	u.RefreshExpiresAt = &exp
	return true, nil
}

func (m *memUsers) stored(id string) *entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneUser(m.byID[id])
}

type memProfiles struct {
	mu       sync.Mutex
	byUserID map[string]*entity.Profile
}

func newMemProfiles() *memProfiles { return &memProfiles{byUserID: map[string]*entity.Profile{}} }

func (m *memProfiles) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byUserID[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (m *memProfiles) Upsert(_ context.Context, p *entity.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *p
	m.byUserID[p.UserID] = &c
	return nil
}

type memAchievements struct {
	mu   sync.Mutex
	byID map[string]*entity.Achievement
}

func newMemAchievements() *memAchievements {
	return &memAchievements{byID: map[string]*entity.Achievement{}}
}

func (m *memAchievements) ListByUser(_ context.Context, userID string) ([]entity.Achievement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Achievement
	for _, a := range m.byID {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *memAchievements) GetByID(_ context.Context, id string) (*entity.Achievement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (m *memAchievements) Create(_ context.Context, a *entity.Achievement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *a
	m.byID[a.ID] = &c
	return nil
}

func (m *memAchievements) Update(ctx context.Context, a *entity.Achievement) error {
	return m.Create(ctx, a)
}

func (m *memAchievements) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memResets struct {
	mu      sync.Mutex
	tickets map[string]string
	lastTTL time.Duration
}

func newMemResets() *memResets { return &memResets{tickets: map[string]string{}} }

func (m *memResets) Save(_ context.Context, tokenHash, userID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[tokenHash] = userID
	m.lastTTL = ttl
	return nil
}

func (m *memResets) Take(_ context.Context, tokenHash string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.tickets[tokenHash]
	delete(m.tickets, tokenHash)
	return id, ok, nil
}

type memNotifier struct {
	mu      sync.Mutex
	notices []ResetNotice
	err     error
}

func (m *memNotifier) SendPasswordReset(_ context.Context, n ResetNotice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, n)
	return m.err
}

type memIndex struct {
	mu   sync.Mutex
	docs map[string]ProfileDoc
}

func (m *memIndex) Index(_ context.Context, d ProfileDoc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs == nil {
		m.docs = map[string]ProfileDoc{}
	}
	m.docs[d.ID] = d
	return nil
}

func (m *memIndex) Search(_ context.Context, q string, size int) ([]ProfileDoc, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []ProfileDoc{}
	for _, d := range m.docs {
		if d.PublicHandle == q || d.Name == q {
			out = append(out, d)
		}
	}
	if len(out) > size {
		out = out[:size]
	}
	return out, nil
}

type memProjects struct {
	mu    sync.Mutex
	byID  map[string]*entity.Project
	media map[string]*entity.ProjectMedia
}

func newMemProjects() *memProjects {
	return &memProjects{byID: map[string]*entity.Project{}, media: map[string]*entity.ProjectMedia{}}
}

func (m *memProjects) withMedia(p entity.Project) entity.Project {
	p.Media = []entity.ProjectMedia{}
	for _, md := range m.media {
		if md.ProjectID == p.ID {
			p.Media = append(p.Media, *md)
		}
	}
	sort.Slice(p.Media, func(i, j int) bool { return p.Media[i].URL < p.Media[j].URL })
	return p
}

func (m *memProjects) ListByUser(_ context.Context, userID string, publicOnly bool) ([]entity.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Project
	for _, p := range m.byID {
		if p.UserID != userID || (publicOnly && p.Visibility != entity.VisibilityPublic) {
			continue
		}
		out = append(out, m.withMedia(*p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *memProjects) GetByID(_ context.Context, id string) (*entity.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c := m.withMedia(*p)
	return &c, nil
}

func (m *memProjects) SlugExists(_ context.Context, slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *memProjects) Create(_ context.Context, p *entity.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Slug == p.Slug {
			return repo.ErrDuplicate
		}
	}
	c := *p
	m.byID[p.ID] = &c
	return nil
}

func (m *memProjects) Update(_ context.Context, p *entity.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *p
	m.byID[p.ID] = &c
	return nil
}

func (m *memProjects) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.byID, id)
	for mid, md := range m.media {
		if md.ProjectID == id {
			delete(m.media, mid)
		}
	}
	return nil
}

func (m *memProjects) AddMedia(_ context.Context, md *entity.ProjectMedia) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *md
	m.media[md.ID] = &c
	return nil
}

func (m *memProjects) GetMedia(_ context.Context, id string) (*entity.ProjectMedia, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	md, ok := m.media[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c := *md
	return &c, nil
}

func (m *memProjects) DeleteMedia(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.media[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.media, id)
	return nil
}

type memResumes struct {
	mu       sync.Mutex
	byID     map[string]*entity.Resume
	versions map[string][]entity.ResumeVersion // oldest first
}

func newMemResumes() *memResumes {
	return &memResumes{byID: map[string]*entity.Resume{}, versions: map[string][]entity.ResumeVersion{}}
}

// view copies r with up to limit versions, newest first; limit <= 0 means all.
func (m *memResumes) view(r entity.Resume, limit int) entity.Resume {
	vs := m.versions[r.ID]
	r.VersionCount = len(vs)
	r.Versions = []entity.ResumeVersion{}
	for i := len(vs) - 1; i >= 0; i-- {
		if limit > 0 && len(r.Versions) == limit {
			break
		}
		r.Versions = append(r.Versions, vs[i])
	}
	return r
}

func (m *memResumes) ListByUser(_ context.Context, userID string, publishedOnly bool) ([]entity.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Resume
	for _, r := range m.byID {
		if r.UserID != userID || (publishedOnly && !r.IsPublished) {
			continue
		}
		out = append(out, m.view(*r, 1))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *memResumes) GetByID(_ context.Context, id string) (*entity.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c := m.view(*r, 0)
	return &c, nil
}

func (m *memResumes) GetPublishedBySlug(_ context.Context, slug string) (*entity.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.byID {
		if r.Slug == slug && r.IsPublished {
			c := m.view(*r, 1)
			return &c, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memResumes) SlugExists(_ context.Context, slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.byID {
		if r.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *memResumes) Create(_ context.Context, r *entity.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Slug == r.Slug {
			return repo.ErrDuplicate
		}
	}
	c := *r
	m.byID[r.ID] = &c
	return nil
}

func (m *memResumes) Update(_ context.Context, r *entity.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *r
	m.byID[r.ID] = &c
	return nil
}

func (m *memResumes) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.byID, id)
	delete(m.versions, id)
	return nil
}

func (m *memResumes) AddVersion(_ context.Context, v *entity.ResumeVersion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[v.ResumeID]; !ok {
		return repo.ErrNotFound
	}
	m.versions[v.ResumeID] = append(m.versions[v.ResumeID], *v)
	return nil
}
