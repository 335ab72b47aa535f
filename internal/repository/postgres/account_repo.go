package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/olatube/backend/internal/domain"
	"github.com/olatube/backend/internal/repository"
)

// Constraint names from the migrations; 23505 errors are mapped back to
// repository sentinels by name.
const (
	emailConstraint        = "accounts_email_key"
	handleConstraint       = "accounts_handle_key"
	subscriptionConstraint = "subscriptions_account_channel_key"
)

type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

func (r *AccountRepo) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, first_name, last_name, display_name, handle, email, password_hash, unread_notifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		account.ID, account.FirstName, account.LastName, account.DisplayName,
		account.Handle, account.Email, account.PasswordHash,
		account.UnreadNotifications, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		return translate("creating account", err)
	}
	return nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	account, err := r.scanAccount(ctx, "SELECT id, first_name, last_name, display_name, handle, email, password_hash, unread_notifications, created_at, updated_at FROM accounts WHERE id = $1", id)
	if err != nil || account == nil {
		return account, err
	}
	if err := r.loadSubscriptions(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, err := r.scanAccount(ctx, "SELECT id, first_name, last_name, display_name, handle, email, password_hash, unread_notifications, created_at, updated_at FROM accounts WHERE email = $1", email)
	if err != nil || account == nil {
		return account, err
	}
	if err := r.loadSubscriptions(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *AccountRepo) GetByHandle(ctx context.Context, handle string) (*domain.Account, error) {
	account, err := r.scanAccount(ctx, "SELECT id, first_name, last_name, display_name, handle, email, password_hash, unread_notifications, created_at, updated_at FROM accounts WHERE handle = $1", handle)
	if err != nil || account == nil {
		return account, err
	}
	if err := r.loadSubscriptions(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *AccountRepo) UpdateProfile(ctx context.Context, id uuid.UUID, update repository.ProfileUpdate) error {
	// COALESCE keeps untouched fields; the handle unique index does the
	// collision check inside the same statement.
	query := `
		UPDATE accounts
		SET display_name = COALESCE($2, display_name),
		    handle = COALESCE($3, handle),
		    updated_at = $4
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, update.DisplayName, update.Handle, time.Now().UTC())
	if err != nil {
		return translate("updating profile", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AccountRepo) AddSubscription(ctx context.Context, id uuid.UUID, sub domain.Subscription) (int, error) {
	// One statement: the insert only lands if the (account, channel) pair is
	// new, and the counter increment only fires if the insert landed. An
	// unknown account trips the FK on the insert.
	query := `
		WITH ins AS (
			INSERT INTO subscriptions (account_id, channel_id, channel_title, channel_thumbnail, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (account_id, channel_id) DO NOTHING
			RETURNING account_id
		)
		UPDATE accounts
		SET unread_notifications = unread_notifications + 1, updated_at = $5
		WHERE id = $1 AND EXISTS (SELECT 1 FROM ins)
		RETURNING unread_notifications`

	var unread int
	err := r.pool.QueryRow(ctx, query, id, sub.ChannelID, sub.ChannelTitle, sub.ChannelThumbnail, sub.CreatedAt).Scan(&unread)
	if errors.Is(err, pgx.ErrNoRows) {
		// Insert conflicted, so the update matched nothing.
		return 0, repository.ErrDuplicateSubscription
	}
	if err != nil {
		return 0, translate("adding subscription", err)
	}
	return unread, nil
}

func (r *AccountRepo) RemoveSubscription(ctx context.Context, id uuid.UUID, channelID string) error {
	// Deleting an absent channel is fine; only an unknown account is an
	// error, checked in the same statement.
	query := `
		WITH del AS (
			DELETE FROM subscriptions WHERE account_id = $1 AND channel_id = $2
		)
		SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id, channelID).Scan(&exists); err != nil {
		return translate("removing subscription", err)
	}
	if !exists {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AccountRepo) ResetNotifications(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "UPDATE accounts SET unread_notifications = 0, updated_at = $2 WHERE id = $1", id, time.Now().UTC())
	if err != nil {
		return translate("resetting notifications", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AccountRepo) scanAccount(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var a domain.Account
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.DisplayName, &a.Handle,
		&a.Email, &a.PasswordHash, &a.UnreadNotifications,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("loading account", err)
	}
	return &a, nil
}

func (r *AccountRepo) loadSubscriptions(ctx context.Context, account *domain.Account) error {
	rows, err := r.pool.Query(ctx,
		"SELECT channel_id, channel_title, channel_thumbnail, created_at FROM subscriptions WHERE account_id = $1 ORDER BY id",
		account.ID,
	)
	if err != nil {
		return translate("loading subscriptions", err)
	}
	defer rows.Close()

	account.Subscriptions = []domain.Subscription{}
	for rows.Next() {
		var s domain.Subscription
		if err := rows.Scan(&s.ChannelID, &s.ChannelTitle, &s.ChannelThumbnail, &s.CreatedAt); err != nil {
			return translate("loading subscriptions", err)
		}
		account.Subscriptions = append(account.Subscriptions, s)
	}
	return rows.Err()
}

// translate maps driver errors onto repository sentinels: unique violations
// by constraint name, FK violations to not-found, connection-class failures
// to ErrUnavailable.
func translate(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == emailConstraint:
			return repository.ErrDuplicateEmail
		case pgErr.Code == "23505" && pgErr.ConstraintName == handleConstraint:
			return repository.ErrDuplicateHandle
		case pgErr.Code == "23505" && pgErr.ConstraintName == subscriptionConstraint:
			return repository.ErrDuplicateSubscription
		case pgErr.Code == "23503":
			return repository.ErrNotFound
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w", op, repository.ErrUnavailable)
	}

	return fmt.Errorf("%s: %w", op, err)
}
