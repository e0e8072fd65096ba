package postgres

import (
	"context"
	"database/sql"

	"eventplanner/internal/domain"
)

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) domain.NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, event_id, message, read, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, n.UserID, n.EventID, n.Message, n.CreatedAt).Scan(&n.ID)
}

func (r *notificationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, event_id, message, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifs []*domain.Notification
	for rows.Next() {
		n := &domain.Notification{}
		var eventID sql.NullString
		if err := rows.Scan(&n.ID, &n.UserID, &eventID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		if eventID.Valid {
			n.EventID = &eventID.String
		}
		notifs = append(notifs, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if notifs == nil {
		notifs = []*domain.Notification{}
	}
	return notifs, nil
}

// MarkRead updates only rows owned by userID. A miss on either id or owner
// reports ErrNotFound so callers cannot probe other users' notifications.
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
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
