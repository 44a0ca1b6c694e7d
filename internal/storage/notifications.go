package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/routewise/dispatch/internal/model"
)

// CreateNotification persists a notification for a recipient.
func (s *SQLiteStorage) CreateNotification(ctx context.Context, notification *model.Notification) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if notification == nil {
		return fmt.Errorf("%w: notification", ErrNilParameter)
	}
	if err := validateString(notification.Recipient, "recipient"); err != nil {
		return err
	}
	if err := validateString(notification.Message, "message"); err != nil {
		return err
	}

	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, recipient, kind, message, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		notification.ID, notification.Recipient, notification.Kind,
		notification.Message, notification.Read, notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// GetNotifications returns a recipient's notifications, newest first.
func (s *SQLiteStorage) GetNotifications(ctx context.Context, recipient string) ([]model.Notification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(recipient, "recipient"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recipient, kind, message, read, created_at
		FROM notifications WHERE recipient = ? ORDER BY created_at DESC`, recipient)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var notification model.Notification
		if err := rows.Scan(
			&notification.ID, &notification.Recipient, &notification.Kind,
			&notification.Message, &notification.Read, &notification.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, notification)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return notifications, nil
}
