package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/lawrenceChege/order-management/internal/models"
)

type EUserRepository interface {
	Create(ctx context.Context, u *models.EUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.EUser, error)
	GetByUsername(ctx context.Context, username string) (*models.EUser, error)
	List(ctx context.Context) ([]*models.EUser, error)
	Update(ctx context.Context, u *models.EUser) error
	TouchLastActivity(ctx context.Context, id uuid.UUID) error

	// SetPassword appends a new Active password row and disables the
	// previous ones, in one transaction. The newest Active row wins.
	SetPassword(ctx context.Context, userID uuid.UUID, passwordHash string, activeStateID, disabledStateID uuid.UUID) error

	// GetActivePassword returns the newest Active password-history row.
	GetActivePassword(ctx context.Context, userID uuid.UUID, activeStateID uuid.UUID) (*models.EUserPassword, error)
}

type euserRepo struct {
	db DB
}

func NewEUserRepository(db DB) EUserRepository {
	return &euserRepo{db: db}
}

const baseSelectEUser = `
	SELECT id, username, COALESCE(first_name,''), COALESCE(last_name,''),
	       COALESCE(other_name,''), phone_number, email, role_id, is_superuser,
	       state_id, last_activity, created_at, updated_at
	FROM eusers`

func (r *euserRepo) Create(ctx context.Context, u *models.EUser) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO eusers (
			id, username, first_name, last_name, other_name, phone_number,
			email, role_id, is_superuser, state_id, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW(),NOW())
	`, u.ID, u.Username, u.FirstName, u.LastName, u.OtherName, u.PhoneNumber,
		u.Email, u.RoleID, u.IsSuperuser, u.StateID)
	return err
}

func (r *euserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.EUser, error) {
	row := r.db.QueryRow(ctx, baseSelectEUser+" WHERE id=$1", id)
	return scanEUser(row)
}

func (r *euserRepo) GetByUsername(ctx context.Context, username string) (*models.EUser, error) {
	row := r.db.QueryRow(ctx, baseSelectEUser+" WHERE username=$1", username)
	return scanEUser(row)
}

func (r *euserRepo) List(ctx context.Context) ([]*models.EUser, error) {
	rows, err := r.db.Query(ctx, baseSelectEUser+" ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.EUser
	for rows.Next() {
		u, err := scanEUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *euserRepo) Update(ctx context.Context, u *models.EUser) error {
	_, err := r.db.Exec(ctx, `
		UPDATE eusers
		SET first_name=$2, last_name=$3, other_name=$4, phone_number=$5,
		    email=$6, role_id=$7, is_superuser=$8, state_id=$9, updated_at=NOW()
		WHERE id=$1
	`, u.ID, u.FirstName, u.LastName, u.OtherName, u.PhoneNumber, u.Email,
		u.RoleID, u.IsSuperuser, u.StateID)
	return err
}

func (r *euserRepo) TouchLastActivity(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE eusers SET last_activity=NOW() WHERE id=$1`, id)
	return err
}

func (r *euserRepo) SetPassword(ctx context.Context, userID uuid.UUID, passwordHash string, activeStateID, disabledStateID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	newID := uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO euser_passwords (id, euser_id, password_hash, state_id, created_at)
		VALUES ($1,$2,$3,$4,NOW())
	`, newID, userID, passwordHash, activeStateID)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		UPDATE euser_passwords SET state_id=$3
		WHERE euser_id=$1 AND id<>$2 AND state_id=$4
	`, userID, newID, disabledStateID, activeStateID)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *euserRepo) GetActivePassword(ctx context.Context, userID uuid.UUID, activeStateID uuid.UUID) (*models.EUserPassword, error) {
	var pw models.EUserPassword
	err := r.db.QueryRow(ctx, `
		SELECT id, euser_id, password_hash, state_id, created_at
		FROM euser_passwords
		WHERE euser_id=$1 AND state_id=$2
		ORDER BY created_at DESC LIMIT 1
	`, userID, activeStateID).Scan(&pw.ID, &pw.EUserID, &pw.PasswordHash, &pw.StateID, &pw.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &pw, nil
}

func scanEUser(row pgx.Row) (*models.EUser, error) {
	var u models.EUser
	if err := row.Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.OtherName,
		&u.PhoneNumber, &u.Email, &u.RoleID, &u.IsSuperuser, &u.StateID,
		&u.LastActivity, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
