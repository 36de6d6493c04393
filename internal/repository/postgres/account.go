package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"facultyauth/internal/models"
	"facultyauth/internal/repository"

	"github.com/lib/pq"
)

type accountRepository struct {
	repository.BaseRepository
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

const accountColumns = `
	id, username, password_digest, email, full_name, phone_number,
	date_of_birth, faculty_id_number, department, designation,
	years_experience, registration_status, is_active,
	approved_by, approved_at, created_at, last_login`

func scanAccount(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.PasswordDigest,
		&account.Email,
		&account.FullName,
		&account.PhoneNumber,
		&account.DateOfBirth,
		&account.FacultyIDNumber,
		&account.Department,
		&account.Designation,
		&account.YearsExperience,
		&account.Status,
		&account.IsActive,
		&account.ApprovedBy,
		&account.ApprovedAt,
		&account.CreatedAt,
		&account.LastLogin,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// translateUnique maps a unique_violation to the sentinel for the colliding
// constraint, so concurrent inserts lose with a specific duplicate error
// instead of a generic conflict.
func translateUnique(err error) error {
	pqErr, ok := err.(*pq.Error)
	if !ok || pqErr.Code.Name() != "unique_violation" {
		return err
	}
	switch {
	case strings.Contains(pqErr.Constraint, "username"):
		return repository.ErrDuplicateUsername
	case strings.Contains(pqErr.Constraint, "email"):
		return repository.ErrDuplicateEmail
	case strings.Contains(pqErr.Constraint, "faculty_id_number"):
		return repository.ErrDuplicateFacultyID
	}
	return err
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO faculty_accounts (
			username, password_digest, email, full_name, phone_number,
			date_of_birth, faculty_id_number, department, designation,
			years_experience, registration_status, is_active, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	now := time.Now()
	err := r.DB().QueryRowContext(ctx, query,
		account.Username,
		account.PasswordDigest,
		strings.ToLower(account.Email),
		account.FullName,
		account.PhoneNumber,
		account.DateOfBirth,
		account.FacultyIDNumber,
		account.Department,
		account.Designation,
		account.YearsExperience,
		account.Status,
		account.IsActive,
		now,
	).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		return translateUnique(err)
	}
	account.Email = strings.ToLower(account.Email)
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT` + accountColumns + `
		FROM faculty_accounts
		WHERE id = $1`

	return scanAccount(r.DB().QueryRowContext(ctx, query, id))
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `SELECT` + accountColumns + `
		FROM faculty_accounts
		WHERE username = $1`

	return scanAccount(r.DB().QueryRowContext(ctx, query, username))
}

func (r *accountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.DB().QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM faculty_accounts WHERE username = $1)",
		username,
	).Scan(&exists)
	return exists, err
}

func (r *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB().QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM faculty_accounts WHERE email = $1)",
		strings.ToLower(email),
	).Scan(&exists)
	return exists, err
}

func (r *accountRepository) ExistsByFacultyID(ctx context.Context, facultyID string) (bool, error) {
	var exists bool
	err := r.DB().QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM faculty_accounts WHERE faculty_id_number = $1)",
		facultyID,
	).Scan(&exists)
	return exists, err
}

func (r *accountRepository) UpdateLastLogin(ctx context.Context, id int64, lastLogin time.Time) error {
	query := `
		UPDATE faculty_accounts
		SET last_login = $1
		WHERE id = $2
		RETURNING last_login`

	var updated time.Time
	if err := r.DB().QueryRowContext(ctx, query, lastLogin, id).Scan(&updated); err != nil {
		if err == sql.ErrNoRows {
			return repository.ErrAccountNotFound
		}
		return err
	}
	return nil
}

func (r *accountRepository) UpdateActivation(ctx context.Context, id int64, active bool) error {
	query := `
		UPDATE faculty_accounts
		SET is_active = $1
		WHERE id = $2`

	result, err := r.DB().ExecContext(ctx, query, active, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) UpdateRegistrationStatus(ctx context.Context, id int64, status models.RegistrationStatus, approvedBy *string) error {
	// The status guard lives in the WHERE clause, not in service code, so two
	// racing approvals resolve to one winner.
	query := `
		UPDATE faculty_accounts
		SET registration_status = $1, approved_by = $2, approved_at = $3
		WHERE id = $4 AND registration_status = 'pending'`

	result, err := r.DB().ExecContext(ctx, query, status, approvedBy, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Distinguish a missing account from one already decided.
		var exists bool
		if err := r.DB().QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM faculty_accounts WHERE id = $1)", id,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return repository.ErrAccountNotFound
		}
		return repository.ErrInvalidStateTransition
	}
	return nil
}

func (r *accountRepository) List(ctx context.Context, filter repository.AccountFilter) ([]models.Account, error) {
	conditions := make([]string, 0)
	args := make([]interface{}, 0)
	argCount := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("registration_status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}
	if filter.Department != nil {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argCount))
		args = append(args, *filter.Department)
		argCount++
	}

	query := `SELECT` + accountColumns + `
		FROM faculty_accounts`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY username ASC"

	if filter.Limit != nil {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, *filter.Limit)
		argCount++
	}
	if filter.Offset != nil {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, *filter.Offset)
	}

	rows, err := r.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		err := rows.Scan(
			&account.ID,
			&account.Username,
			&account.PasswordDigest,
			&account.Email,
			&account.FullName,
			&account.PhoneNumber,
			&account.DateOfBirth,
			&account.FacultyIDNumber,
			&account.Department,
			&account.Designation,
			&account.YearsExperience,
			&account.Status,
			&account.IsActive,
			&account.ApprovedBy,
			&account.ApprovedAt,
			&account.CreatedAt,
			&account.LastLogin,
		)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}
