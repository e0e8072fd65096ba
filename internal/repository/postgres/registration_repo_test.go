package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eventplanner/internal/domain"
)

func TestRegistrationRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		reg     *domain.Registration
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success returns generated id",
			reg:  &domain.Registration{EventID: "ev-1", UserID: "user-1", Status: domain.RSVPGoing, CreatedAt: now},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO registrations`).
					WithArgs("ev-1", "user-1", domain.RSVPGoing, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("reg-uuid-1"))
			},
			wantErr: false,
		},
		{
			name: "unique violation maps to ErrAlreadyRegistered",
			reg:  &domain.Registration{EventID: "ev-1", UserID: "user-1", Status: domain.RSVPGoing, CreatedAt: now},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO registrations`).
					WithArgs("ev-1", "user-1", domain.RSVPGoing, now).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "registrations_event_user_key"})
			},
			wantErr: true,
			errIs:   domain.ErrAlreadyRegistered,
		},
		{
			name: "db error passes through",
			reg:  &domain.Registration{EventID: "ev-1", UserID: "user-1", Status: domain.RSVPGoing, CreatedAt: now},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO registrations`).
					WithArgs("ev-1", "user-1", domain.RSVPGoing, now).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			repo := NewRegistrationRepository(db)
			err = repo.Create(ctx, tt.reg)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, "reg-uuid-1", tt.reg.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_GetByEventAndUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cols := []string{"id", "event_id", "user_id", "status", "created_at"}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Registration
		wantErr bool
		errIs   error
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, user_id, status, created_at FROM registrations`).
					WithArgs("ev-1", "user-1").
					WillReturnRows(sqlmock.NewRows(cols).AddRow("reg-1", "ev-1", "user-1", "going", now))
			},
			want: &domain.Registration{ID: "reg-1", EventID: "ev-1", UserID: "user-1", Status: domain.RSVPGoing, CreatedAt: now},
		},
		{
			name: "missing maps to ErrNotFound",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, user_id, status, created_at FROM registrations`).
					WithArgs("ev-1", "user-1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)
			repo := NewRegistrationRepository(db)
			got, err := repo.GetByEventAndUser(ctx, "ev-1", "user-1")
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_ListByEventAndStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cols := []string{"id", "event_id", "user_id", "status", "created_at"}

	t.Run("returns only matching status", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(`SELECT id, event_id, user_id, status, created_at\s+FROM registrations\s+WHERE event_id = \$1 AND status = \$2`).
			WithArgs("ev-1", domain.RSVPGoing).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("reg-1", "ev-1", "user-1", "going", now).
				AddRow("reg-2", "ev-1", "user-2", "going", now))
		repo := NewRegistrationRepository(db)
		regs, err := repo.ListByEventAndStatus(ctx, "ev-1", domain.RSVPGoing)
		require.NoError(t, err)
		require.Len(t, regs, 2)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing matched returns empty slice not nil", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(`FROM registrations`).
			WithArgs("ev-1", domain.RSVPGoing).
			WillReturnRows(sqlmock.NewRows(cols))
		repo := NewRegistrationRepository(db)
		regs, err := repo.ListByEventAndStatus(ctx, "ev-1", domain.RSVPGoing)
		require.NoError(t, err)
		require.NotNil(t, regs)
		require.Empty(t, regs)
	})
}
