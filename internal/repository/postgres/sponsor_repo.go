package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventplanner/internal/domain"
)

type sponsorRepository struct {
	DB *sql.DB
}

func NewSponsorRepository(db *sql.DB) domain.SponsorRepository {
	return &sponsorRepository{DB: db}
}

const sponsorColumns = `id, name, contact_person, contact_email, phone_number, logo_url, website_url, created_at, updated_at`

func scanSponsor(scan func(dest ...any) error) (*domain.Sponsor, error) {
	s := &domain.Sponsor{}
	err := scan(&s.ID, &s.Name, &s.ContactPerson, &s.ContactEmail, &s.PhoneNumber,
		&s.LogoURL, &s.WebsiteURL, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *sponsorRepository) Create(ctx context.Context, s *domain.Sponsor) error {
	query := `
		INSERT INTO sponsors (name, contact_person, contact_email, phone_number, logo_url, website_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRowContext(ctx, query, s.Name, s.ContactPerson, s.ContactEmail,
		s.PhoneNumber, s.LogoURL, s.WebsiteURL).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *sponsorRepository) GetByID(ctx context.Context, id string) (*domain.Sponsor, error) {
	query := `SELECT ` + sponsorColumns + ` FROM sponsors WHERE id = $1`
	s, err := scanSponsor(r.DB.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sponsorRepository) List(ctx context.Context) ([]*domain.Sponsor, error) {
	query := `SELECT ` + sponsorColumns + ` FROM sponsors ORDER BY name`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sponsors []*domain.Sponsor
	for rows.Next() {
		s, err := scanSponsor(rows.Scan)
		if err != nil {
			return nil, err
		}
		sponsors = append(sponsors, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if sponsors == nil {
		sponsors = []*domain.Sponsor{}
	}
	return sponsors, nil
}

func (r *sponsorRepository) Update(ctx context.Context, s *domain.Sponsor) error {
	query := `
		UPDATE sponsors
		SET name = $2, contact_person = $3, contact_email = $4, phone_number = $5,
		    logo_url = $6, website_url = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, s.ID, s.Name, s.ContactPerson, s.ContactEmail,
		s.PhoneNumber, s.LogoURL, s.WebsiteURL).Scan(&s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *sponsorRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sponsors WHERE id = $1`, id)
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
