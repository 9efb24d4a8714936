package repository

import (
	"context"
	"errors"

	"cv-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const cvColumns = `id, owner_id, name, profession, phone, address, email,
	summary, experience, education, skills, languages, certifications, projects,
	website, linkedin, github, twitter, photo_path, created_at, updated_at`

// CVRepo persists CV records in PostgreSQL.
type CVRepo struct {
	pool *pgxpool.Pool
}

func NewCVRepo(pool *pgxpool.Pool) *CVRepo {
	return &CVRepo{pool: pool}
}

func (r *CVRepo) Save(ctx context.Context, cv *domain.CV) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO cvs (`+cvColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, profession = EXCLUDED.profession,
			phone = EXCLUDED.phone, address = EXCLUDED.address, email = EXCLUDED.email,
			summary = EXCLUDED.summary, experience = EXCLUDED.experience,
			education = EXCLUDED.education, skills = EXCLUDED.skills,
			languages = EXCLUDED.languages, certifications = EXCLUDED.certifications,
			projects = EXCLUDED.projects, website = EXCLUDED.website,
			linkedin = EXCLUDED.linkedin, github = EXCLUDED.github,
			twitter = EXCLUDED.twitter, photo_path = EXCLUDED.photo_path,
			updated_at = EXCLUDED.updated_at`,
		cv.ID, cv.OwnerID, cv.Name, cv.Profession, cv.Phone, cv.Address, cv.Email,
		cv.Summary, cv.Experience, cv.Education, cv.Skills, cv.Languages,
		cv.Certifications, cv.Projects, cv.Website, cv.LinkedIn, cv.GitHub,
		cv.Twitter, cv.PhotoPath, cv.CreatedAt, cv.UpdatedAt)
	return err
}

func (r *CVRepo) Get(ctx context.Context, id uuid.UUID) (*domain.CV, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+cvColumns+` FROM cvs WHERE id = $1`, id)
	cv, err := scanCV(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return cv, nil
}

func (r *CVRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.CV, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+cvColumns+` FROM cvs
		WHERE owner_id = $1 ORDER BY created_at ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.CV
	for rows.Next() {
		cv, err := scanCV(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cv)
	}
	return out, rows.Err()
}

func (r *CVRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cvs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCV(row pgx.Row) (*domain.CV, error) {
	var cv domain.CV
	err := row.Scan(&cv.ID, &cv.OwnerID, &cv.Name, &cv.Profession, &cv.Phone,
		&cv.Address, &cv.Email, &cv.Summary, &cv.Experience, &cv.Education,
		&cv.Skills, &cv.Languages, &cv.Certifications, &cv.Projects,
		&cv.Website, &cv.LinkedIn, &cv.GitHub, &cv.Twitter, &cv.PhotoPath,
		&cv.CreatedAt, &cv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cv, nil
}
