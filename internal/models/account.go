package models

import (
	"time"
)

// RegistrationStatus represents the administrative review state of an account
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

// Valid reports whether the status is one of the known values
func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationPending, RegistrationApproved, RegistrationRejected:
		return true
	}
	return false
}

// Terminal reports whether the status can no longer change
func (s RegistrationStatus) Terminal() bool {
	return s == RegistrationApproved || s == RegistrationRejected
}

// Department represents a college department offering seminar-hall bookings
type Department string

const (
	DepartmentBCA  Department = "BCA"
	DepartmentBBA  Department = "BBA"
	DepartmentBCOM Department = "BCOM"
)

// Departments lists all valid departments
func Departments() []Department {
	return []Department{DepartmentBCA, DepartmentBBA, DepartmentBCOM}
}

// Valid reports whether the department is one of the enumerated set
func (d Department) Valid() bool {
	for _, known := range Departments() {
		if d == known {
			return true
		}
	}
	return false
}

// Designation represents a faculty member's post
type Designation string

const (
	DesignationProfessor          Designation = "professor"
	DesignationAssociateProfessor Designation = "associate_professor"
	DesignationAssistantProfessor Designation = "assistant_professor"
	DesignationLecturer           Designation = "lecturer"
	DesignationVisitingFaculty    Designation = "visiting_faculty"
	DesignationGuestLecturer      Designation = "guest_lecturer"
)

// Designations lists all valid designations
func Designations() []Designation {
	return []Designation{
		DesignationProfessor,
		DesignationAssociateProfessor,
		DesignationAssistantProfessor,
		DesignationLecturer,
		DesignationVisitingFaculty,
		DesignationGuestLecturer,
	}
}

// Valid reports whether the designation is one of the enumerated set
func (d Designation) Valid() bool {
	for _, known := range Designations() {
		if d == known {
			return true
		}
	}
	return false
}

// Account represents a faculty account in the credential store
type Account struct {
	ID              int64              `json:"id"`
	Username        string             `json:"username"`
	PasswordDigest  string             `json:"-"`
	Email           string             `json:"email"`
	FullName        string             `json:"full_name"`
	PhoneNumber     string             `json:"phone_number"`
	DateOfBirth     *time.Time         `json:"date_of_birth,omitempty"`
	FacultyIDNumber *string            `json:"faculty_id_number,omitempty"`
	Department      Department         `json:"department"`
	Designation     Designation        `json:"designation"`
	YearsExperience int                `json:"years_experience"`
	Status          RegistrationStatus `json:"registration_status"`
	IsActive        bool               `json:"is_active"`
	ApprovedBy      *string            `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time         `json:"approved_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	LastLogin       *time.Time         `json:"last_login,omitempty"`
}

// CanAuthenticate reports whether stored credentials may ever succeed.
// An account must be both approved and activated.
func (a *Account) CanAuthenticate() bool {
	return a.Status == RegistrationApproved && a.IsActive
}

// Summary is the caller-safe projection returned on successful login
type Summary struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	FullName   string     `json:"full_name"`
	Department Department `json:"department"`
}

// Summary returns the public projection of the account
func (a *Account) Summary() Summary {
	return Summary{
		ID:         a.ID,
		Username:   a.Username,
		FullName:   a.FullName,
		Department: a.Department,
	}
}
