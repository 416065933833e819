package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User              UserRepository
	PermissionRequest PermissionRequestRepository
	Notification      NotificationRepository
	Club              ClubRepository
	Event             EventRepository
	LostItem          LostItemRepository
	Feedback          FeedbackRepository
	AuditLog          AuditLogRepository
	Session           SessionRepository
}

// NewRepositories binds every repository to db, which may be either the
// *sqlx.DB itself or a *sqlx.Tx.
func NewRepositories(db sqlx.ExtContext) *Repositories {
	return &Repositories{
		User:              NewUserRepository(db),
		PermissionRequest: NewPermissionRequestRepository(db),
		Notification:      NewNotificationRepository(db),
		Club:              NewClubRepository(db),
		Event:             NewEventRepository(db),
		LostItem:          NewLostItemRepository(db),
		Feedback:          NewFeedbackRepository(db),
		AuditLog:          NewAuditLogRepository(db),
		Session:           NewSessionRepository(db),
	}
}

// Manager owns the database handle and hands out transaction-scoped
// repository views, so multi-table writes (the approval transition plus the
// capability grant) commit or roll back as one unit.
type Manager struct {
	db *sqlx.DB
	*Repositories
}

func NewManager(db *sqlx.DB) *Manager {
	return &Manager{
		db:           db,
		Repositories: NewRepositories(db),
	}
}

func (m *Manager) InTx(ctx context.Context, fn func(*Repositories) error) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(NewRepositories(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
