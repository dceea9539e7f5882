package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"leisure-booking/internal/domain/user"
	"leisure-booking/internal/infra"
	"leisure-booking/internal/infra/db"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

const userColumns = `id, email, password_hash, role, membership, membership_expires_at, created_at`

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, membership, membership_expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`,
		u.ID(), u.Email(), u.PasswordHash(), u.Role().String(), u.Membership().String(), u.MembershipExpiresAt())
	if err != nil {
		return wrapWriteErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) UpdateMembership(ctx context.Context, u *user.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET membership = $2, membership_expires_at = $3 WHERE id = $1`,
		u.ID(), u.Membership().String(), u.MembershipExpiresAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update membership", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id           uuid.UUID
		email        string
		passwordHash string
		roleStr      string
		memberStr    string
		expiresAt    *time.Time
		createdAt    time.Time
	)
	err := row.Scan(&id, &email, &passwordHash, &roleStr, &memberStr, &expiresAt, &createdAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan user", err)
	}

	role, err := user.NewRole(roleStr)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user has unknown role", err)
	}
	membership, err := user.NewMembership(memberStr)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user has unknown membership", err)
	}

	return user.Reconstruct(id, email, passwordHash, role, membership, expiresAt, createdAt), nil
}
