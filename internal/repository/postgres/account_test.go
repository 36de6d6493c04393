package postgres

import (
	"testing"

	"facultyauth/internal/repository"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateUnique(t *testing.T) {
	uniqueViolation := func(constraint string) *pq.Error {
		return &pq.Error{Code: "23505", Constraint: constraint}
	}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"username constraint", uniqueViolation("faculty_accounts_username_key"), repository.ErrDuplicateUsername},
		{"email constraint", uniqueViolation("faculty_accounts_email_key"), repository.ErrDuplicateEmail},
		{"faculty id constraint", uniqueViolation("faculty_accounts_faculty_id_number_key"), repository.ErrDuplicateFacultyID},
		{"unrelated pq error", &pq.Error{Code: "23503"}, &pq.Error{Code: "23503"}},
		{"plain error", assert.AnError, assert.AnError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateUnique(tt.err))
		})
	}
}
