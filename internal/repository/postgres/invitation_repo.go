package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventplanner/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

// NewInvitationRepository returns a domain.InvitationRepository implemented
// with Postgres. Unique indexes back both the (event_id, email) pair and
// the token.
func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{DB: db}
}

const invitationColumns = `id, event_id, email, token, accepted, invited_by_id, created_at, accepted_at`

func scanInvitation(scan func(dest ...any) error) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var acceptedAt sql.NullTime
	err := scan(&inv.ID, &inv.EventID, &inv.Email, &inv.Token, &inv.Accepted,
		&inv.InvitedByID, &inv.CreatedAt, &acceptedAt)
	if err != nil {
		return nil, err
	}
	if acceptedAt.Valid {
		inv.AcceptedAt = &acceptedAt.Time
	}
	return inv, nil
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (event_id, email, token, accepted, invited_by_id, created_at)
		VALUES ($1, $2, $3, FALSE, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, inv.EventID, inv.Email, inv.Token, inv.InvitedByID, inv.CreatedAt).
		Scan(&inv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyInvited
		}
		return err
	}
	return nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1`
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE event_id = $1 AND email = $2`
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, eventID, email).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) HasAccepted(ctx context.Context, eventID, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM invitations WHERE event_id = $1 AND email = $2 AND accepted = TRUE)`,
		eventID, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Accept flips exactly one pending invitation to accepted in a single
// statement, so two concurrent accepts of the same token cannot both
// succeed. A token that is unknown or already accepted yields ErrNotFound.
func (r *invitationRepository) Accept(ctx context.Context, token string, at time.Time) (*domain.Invitation, error) {
	query := `
		UPDATE invitations
		SET accepted = TRUE, accepted_at = $2
		WHERE token = $1 AND accepted = FALSE
		RETURNING ` + invitationColumns
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, token, at).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE event_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invs []*domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows.Scan)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return invs, nil
}
