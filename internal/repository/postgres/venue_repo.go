package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventplanner/internal/domain"
)

type venueRepository struct {
	DB *sql.DB
}

func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{DB: db}
}

const venueColumns = `id, name, address, city, state, zip_code, capacity, contact_person, contact_email, phone_number, created_at, updated_at`

func scanVenue(scan func(dest ...any) error) (*domain.Venue, error) {
	v := &domain.Venue{}
	err := scan(&v.ID, &v.Name, &v.Address, &v.City, &v.State, &v.ZipCode, &v.Capacity,
		&v.ContactPerson, &v.ContactEmail, &v.PhoneNumber, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	query := `
		INSERT INTO venues (name, address, city, state, zip_code, capacity, contact_person, contact_email, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRowContext(ctx, query, v.Name, v.Address, v.City, v.State, v.ZipCode,
		v.Capacity, v.ContactPerson, v.ContactEmail, v.PhoneNumber).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`
	v, err := scanVenue(r.DB.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *venueRepository) List(ctx context.Context) ([]*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues ORDER BY name`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []*domain.Venue
	for rows.Next() {
		v, err := scanVenue(rows.Scan)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if venues == nil {
		venues = []*domain.Venue{}
	}
	return venues, nil
}

func (r *venueRepository) Update(ctx context.Context, v *domain.Venue) error {
	query := `
		UPDATE venues
		SET name = $2, address = $3, city = $4, state = $5, zip_code = $6, capacity = $7,
		    contact_person = $8, contact_email = $9, phone_number = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, v.ID, v.Name, v.Address, v.City, v.State, v.ZipCode,
		v.Capacity, v.ContactPerson, v.ContactEmail, v.PhoneNumber).Scan(&v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *venueRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
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
