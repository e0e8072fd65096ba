package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventplanner/internal/domain"
)

type speakerRepository struct {
	DB *sql.DB
}

func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{DB: db}
}

const speakerColumns = `id, first_name, last_name, email, bio, organization, title, photo_url, created_at, updated_at`

func scanSpeaker(scan func(dest ...any) error) (*domain.Speaker, error) {
	s := &domain.Speaker{}
	err := scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Bio, &s.Organization,
		&s.Title, &s.PhotoURL, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *speakerRepository) Create(ctx context.Context, s *domain.Speaker) error {
	query := `
		INSERT INTO speakers (first_name, last_name, email, bio, organization, title, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, s.FirstName, s.LastName, s.Email, s.Bio,
		s.Organization, s.Title, s.PhotoURL).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return err
	}
	return nil
}

func (r *speakerRepository) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers WHERE id = $1`
	s, err := scanSpeaker(r.DB.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *speakerRepository) List(ctx context.Context) ([]*domain.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers ORDER BY last_name, first_name`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var speakers []*domain.Speaker
	for rows.Next() {
		s, err := scanSpeaker(rows.Scan)
		if err != nil {
			return nil, err
		}
		speakers = append(speakers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}
	return speakers, nil
}

func (r *speakerRepository) Update(ctx context.Context, s *domain.Speaker) error {
	query := `
		UPDATE speakers
		SET first_name = $2, last_name = $3, email = $4, bio = $5, organization = $6,
		    title = $7, photo_url = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, s.ID, s.FirstName, s.LastName, s.Email, s.Bio,
		s.Organization, s.Title, s.PhotoURL).Scan(&s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *speakerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM speakers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
