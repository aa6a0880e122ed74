package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/internal/domain/repository"
)

const projectColumns = `id, user_id, title, slug, short_desc, description, tech_stack, visibility, created_at, updated_at`

type ProjectRepository struct {
	db DB
}

func NewProjectRepository(db DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	p := &entity.Project{}
	if err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Slug, &p.ShortDesc, &p.Description,
		&p.TechStack, &p.Visibility, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	p.Media = []entity.ProjectMedia{}
	return p, nil
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID string, publicOnly bool) ([]entity.Project, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE user_id = $1 AND ($2 = FALSE OR visibility = 'public')
		ORDER BY created_at DESC
	`, userID, publicOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, len(out))
	for i := range out {
		ids[i] = out[i].ID
	}
	media, err := r.mediaFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if m, ok := media[out[i].ID]; ok {
			out[i].Media = m
		}
	}
	return out, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	media, err := r.mediaFor(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	if m, ok := media[p.ID]; ok {
		p.Media = m
	}
	return p, nil
}

// mediaFor loads attachments for the given projects, keyed by project id.
func (r *ProjectRepository) mediaFor(ctx context.Context, projectIDs []string) (map[string][]entity.ProjectMedia, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, project_id, url, type, alt_text, created_at
		FROM project_media
		WHERE project_id = ANY($1::uuid[])
		ORDER BY created_at
	`, projectIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]entity.ProjectMedia)
	for rows.Next() {
		var m entity.ProjectMedia
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.URL, &m.Type, &m.AltText, &m.CreatedAt); err != nil {
			return nil, err
		}
		out[m.ProjectID] = append(out[m.ProjectID], m)
	}
	return out, rows.Err()
}

func (r *ProjectRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM projects WHERE slug = $1)`, slug).Scan(&exists)
	return exists, mapErr(err)
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO projects (id, user_id, title, slug, short_desc, description, tech_stack, visibility)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, p.ID, p.UserID, p.Title, p.Slug, p.ShortDesc, p.Description, p.TechStack, p.Visibility)
	return mapErr(row.Scan(&p.CreatedAt, &p.UpdatedAt))
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	row := r.db.QueryRow(ctx, `
		UPDATE projects
		SET title = $2, short_desc = $3, description = $4, tech_stack = $5, visibility = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, p.ID, p.Title, p.ShortDesc, p.Description, p.TechStack, p.Visibility)
	return mapErr(row.Scan(&p.UpdatedAt))
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) AddMedia(ctx context.Context, m *entity.ProjectMedia) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO project_media (id, project_id, url, type, alt_text)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, m.ID, m.ProjectID, m.URL, m.Type, m.AltText)
	return mapErr(row.Scan(&m.CreatedAt))
}

func (r *ProjectRepository) GetMedia(ctx context.Context, id string) (*entity.ProjectMedia, error) {
	m := &entity.ProjectMedia{}
	err := r.db.QueryRow(ctx, `
		SELECT id, project_id, url, type, alt_text, created_at
		FROM project_media
		WHERE id = $1
	`, id).Scan(&m.ID, &m.ProjectID, &m.URL, &m.Type, &m.AltText, &m.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return m, nil
}

func (r *ProjectRepository) DeleteMedia(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM project_media WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
