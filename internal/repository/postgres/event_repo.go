package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with
// Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

const eventColumns = `e.id, e.slug, e.organizer_id, e.venue_id, e.name, e.description,
	e.starts_at, e.ends_at, e.status, e.max_attendees, e.ticket_price, e.is_private,
	e.created_at, e.updated_at`

func scanEvent(scan func(dest ...any) error) (*domain.Event, error) {
	e := &domain.Event{}
	var venueID sql.NullString
	var maxAttendees sql.NullInt64
	var ticketPrice sql.NullFloat64
	err := scan(
		&e.ID, &e.Slug, &e.OrganizerID, &venueID, &e.Name, &e.Description,
		&e.StartsAt, &e.EndsAt, &e.Status, &maxAttendees, &ticketPrice, &e.IsPrivate,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if venueID.Valid {
		e.VenueID = &venueID.String
	}
	if maxAttendees.Valid {
		v := int(maxAttendees.Int64)
		e.MaxAttendees = &v
	}
	if ticketPrice.Valid {
		e.TicketPrice = &ticketPrice.Float64
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (slug, organizer_id, venue_id, name, description, starts_at, ends_at,
			status, max_attendees, ticket_price, is_private, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Slug, e.OrganizerID, e.VenueID, e.Name, e.Description, e.StartsAt, e.EndsAt,
		e.Status, e.MaxAttendees, e.TicketPrice, e.IsPrivate, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.slug = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, slug).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List applies the visibility predicate set-wise: public events, plus the
// viewer's own events, plus private events holding an accepted invitation
// for the viewer's email. Anonymous viewers pass empty viewer fields and
// only match the public arm. DISTINCT eliminates duplicates introduced by
// the category/tag joins.
func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter, viewerID, viewerEmail string) ([]*domain.Event, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT DISTINCT ` + eventColumns + ` FROM events e`)
	sb.WriteString(` LEFT JOIN venues v ON v.id = e.venue_id`)
	if filter.Category != "" {
		sb.WriteString(` JOIN event_categories ec ON ec.event_id = e.id JOIN categories c ON c.id = ec.category_id`)
	}
	if filter.Tag != "" {
		sb.WriteString(` JOIN event_tags et ON et.event_id = e.id JOIN tags t ON t.id = et.tag_id`)
	}

	args := []any{viewerID, viewerEmail}
	conds := []string{`(e.is_private = FALSE
		OR ($1 <> '' AND e.organizer_id = $1)
		OR ($2 <> '' AND EXISTS (
			SELECT 1 FROM invitations i
			WHERE i.event_id = e.id AND i.email = $2 AND i.accepted = TRUE)))`}

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Search != "" {
		args = append(args, filter.Search)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(e.name ILIKE '%%' || $%d || '%%' OR e.description ILIKE '%%' || $%d || '%%')`, n, n))
	}
	if filter.StartDate != nil {
		add(`e.starts_at >= $%d`, *filter.StartDate)
	}
	if filter.EndDate != nil {
		add(`e.starts_at <= $%d`, *filter.EndDate)
	}
	if filter.City != "" {
		add(`v.city ILIKE $%d`, filter.City)
	}
	if filter.State != "" {
		add(`v.state ILIKE $%d`, filter.State)
	}
	if filter.OrganizerID != "" {
		add(`e.organizer_id = $%d`, filter.OrganizerID)
	}
	if filter.Category != "" {
		add(`c.slug = $%d`, filter.Category)
	}
	if filter.Tag != "" {
		add(`t.slug = $%d`, filter.Tag)
	}

	sb.WriteString(` WHERE ` + strings.Join(conds, " AND "))
	sb.WriteString(` ORDER BY e.starts_at ASC, e.id ASC`)

	rows, err := r.DB.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	sets := []string{"updated_at = $1"}
	args := []any{time.Now()}

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		set("name", *upd.Name)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.StartsAt != nil {
		set("starts_at", *upd.StartsAt)
	}
	if upd.EndsAt != nil {
		set("ends_at", *upd.EndsAt)
	}
	if upd.VenueID != nil {
		set("venue_id", *upd.VenueID)
	}
	if upd.Status != nil {
		set("status", *upd.Status)
	}
	if upd.MaxAttendees != nil {
		set("max_attendees", *upd.MaxAttendees)
	}
	if upd.TicketPrice != nil {
		set("ticket_price", *upd.TicketPrice)
	}
	if upd.IsPrivate != nil {
		set("is_private", *upd.IsPrivate)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE events e SET %s WHERE e.id = $%d RETURNING `+eventColumns,
		strings.Join(sets, ", "), len(args))

	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) SetCategories(ctx context.Context, eventID string, categoryIDs []string) error {
	return r.setLinks(ctx, "event_categories", "category_id", eventID, categoryIDs)
}

func (r *eventRepository) SetTags(ctx context.Context, eventID string, tagIDs []string) error {
	return r.setLinks(ctx, "event_tags", "tag_id", eventID, tagIDs)
}

func (r *eventRepository) setLinks(ctx context.Context, table, column, eventID string, ids []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE event_id = $1`, table), eventID); err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (event_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`, table, column),
			eventID, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *eventRepository) ListDueForReminder(ctx context.Context, now time.Time) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e
		WHERE e.status = $1 AND e.starts_at > $2
		ORDER BY e.starts_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, domain.EventStatusUpcoming, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
