package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/internal/domain/repository"
)

const resumeColumns = `r.id, r.user_id, r.title, r.slug, r.description, r.is_published,
		(SELECT count(*) FROM resume_versions v WHERE v.resume_id = r.id), r.created_at, r.updated_at`

const versionColumns = `id, resume_id, content, version_tag, created_at`

type ResumeRepository struct {
	db DB
}

func NewResumeRepository(db DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

func scanResume(row pgx.Row) (*entity.Resume, error) {
	r := &entity.Resume{}
	if err := row.Scan(&r.ID, &r.UserID, &r.Title, &r.Slug, &r.Description, &r.IsPublished,
		&r.VersionCount, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.Versions = []entity.ResumeVersion{}
	return r, nil
}

func scanVersions(rows pgx.Rows) ([]entity.ResumeVersion, error) {
	defer rows.Close()
	out := make([]entity.ResumeVersion, 0)
	for rows.Next() {
		var v entity.ResumeVersion
		if err := rows.Scan(&v.ID, &v.ResumeID, &v.Content, &v.VersionTag, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *ResumeRepository) ListByUser(ctx context.Context, userID string, publishedOnly bool) ([]entity.Resume, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+resumeColumns+`
		FROM resumes r
		WHERE r.user_id = $1 AND ($2 = FALSE OR r.is_published)
		ORDER BY r.updated_at DESC
	`, userID, publishedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Resume, 0)
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
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
	vrows, err := r.db.Query(ctx, `
		SELECT DISTINCT ON (resume_id) `+versionColumns+`
		FROM resume_versions
		WHERE resume_id = ANY($1::uuid[])
		ORDER BY resume_id, created_at DESC
	`, ids)
	if err != nil {
		return nil, err
	}
	latest, err := scanVersions(vrows)
	if err != nil {
		return nil, err
	}
	byResume := make(map[string]entity.ResumeVersion, len(latest))
	for _, v := range latest {
		byResume[v.ResumeID] = v
	}
	for i := range out {
		if v, ok := byResume[out[i].ID]; ok {
			out[i].Versions = []entity.ResumeVersion{v}
		}
	}
	return out, nil
}

func (r *ResumeRepository) GetByID(ctx context.Context, id string) (*entity.Resume, error) {
	res, err := scanResume(r.db.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes r WHERE r.id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+versionColumns+`
		FROM resume_versions
		WHERE resume_id = $1
		ORDER BY created_at DESC
	`, id)
	if err != nil {
		return nil, err
	}
	if res.Versions, err = scanVersions(rows); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *ResumeRepository) GetPublishedBySlug(ctx context.Context, slug string) (*entity.Resume, error) {
	res, err := scanResume(r.db.QueryRow(ctx, `
		SELECT `+resumeColumns+`
		FROM resumes r
		WHERE r.slug = $1 AND r.is_published
	`, slug))
	if err != nil {
		return nil, mapErr(err)
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+versionColumns+`
		FROM resume_versions
		WHERE resume_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, res.ID)
	if err != nil {
		return nil, err
	}
	if res.Versions, err = scanVersions(rows); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *ResumeRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM resumes WHERE slug = $1)`, slug).Scan(&exists)
	return exists, mapErr(err)
}

func (r *ResumeRepository) Create(ctx context.Context, res *entity.Resume) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO resumes (id, user_id, title, slug, description, is_published)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, res.ID, res.UserID, res.Title, res.Slug, res.Description, res.IsPublished)
	return mapErr(row.Scan(&res.CreatedAt, &res.UpdatedAt))
}

func (r *ResumeRepository) Update(ctx context.Context, res *entity.Resume) error {
	row := r.db.QueryRow(ctx, `
		UPDATE resumes
		SET title = $2, description = $3, is_published = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, res.ID, res.Title, res.Description, res.IsPublished)
	return mapErr(row.Scan(&res.UpdatedAt))
}

func (r *ResumeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddVersion inserts the version and bumps the parent's updated_at in one transaction.
func (r *ResumeRepository) AddVersion(ctx context.Context, v *entity.ResumeVersion) error {
	return mapErr(withTx(ctx, r.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO resume_versions (id, resume_id, content, version_tag)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at
		`, v.ID, v.ResumeID, v.Content, v.VersionTag)
		if err := row.Scan(&v.CreatedAt); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `UPDATE resumes SET updated_at = now() WHERE id = $1`, v.ResumeID)
		return err
	}))
}

var _ repository.ResumeRepository = (*ResumeRepository)(nil)
