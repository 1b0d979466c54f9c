// Package model holds the wire-level data shapes exchanged with the Promtec
// backend. The gateway keeps no authoritative copy of any of these records:
// every view fetches what it needs and nothing is cached across calls.
package model

// UserProfile is the identity attached to an authenticated session. It is
// replaced wholesale on login and never patched.
type UserProfile struct {
	ID        int    `json:"id,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsAdmin   bool   `json:"is_admin"`
}

// User is the full account record handled by the user-management endpoints.
type User struct {
	ID         int    `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	IsAdmin    bool   `json:"is_admin"`
	IsActive   bool   `json:"is_active"`
	IsApproved bool   `json:"is_approved"`
	SchoolName string `json:"school_name"`
	CreatedAt  string `json:"created_at"`
}

type PaginatedUsers struct {
	Users       []User `json:"users"`
	Total       int    `json:"total"`
	Pages       int    `json:"pages"`
	CurrentPage int    `json:"current_page"`
	HasNext     bool   `json:"has_next"`
	HasPrev     bool   `json:"has_prev"`
}

type CreateUserRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	SchoolName string `json:"school_name" validate:"required"`
	IsAdmin    bool   `json:"is_admin,omitempty"`
}

// UpdateUserRequest carries only the fields to change; nil means untouched.
type UpdateUserRequest struct {
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=8"`
	SchoolName *string `json:"school_name,omitempty"`
	IsAdmin    *bool   `json:"is_admin,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
	IsApproved *bool   `json:"is_approved,omitempty"`
}

type ApprovalResponse struct {
	Message  string `json:"message"`
	Approval struct {
		ID         int    `json:"id"`
		CreatedAt  string `json:"created_at"`
		IsApproved bool   `json:"is_approved"`
		AdminID    int    `json:"admin_id"`
	} `json:"approval"`
}

// Slot is a scheduled guided-visit time block.
type Slot struct {
	ID                   int     `json:"id"`
	Date                 string  `json:"date"`
	TimePeriod           string  `json:"time_period"`
	Department           string  `json:"department"`
	GenderCategory       string  `json:"gender_category"`
	Notes                *string `json:"notes"`
	TotalSpots           int     `json:"total_spots"`
	MaxStudentsPerSchool int     `json:"max_students_per_school"`
	IsLocked             bool    `json:"is_locked"`
	IsConfirmed          bool    `json:"is_confirmed"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
	OccupiedSpots        int     `json:"occupied_spots"`
}

type SchoolCount struct {
	Name          string `json:"name"`
	StudentsCount int    `json:"studentsCount"`
}

// SlotDetails is the single-slot view. RegisteredCount and AvailableSpots are
// not sent by the backend; the API client derives them from the registration
// list after decoding.
type SlotDetails struct {
	Slot
	Registrations   []Student     `json:"registrations"`
	WaitingList     []Student     `json:"waitingList"`
	SchoolsInfo     []SchoolCount `json:"schoolsInfo"`
	RegisteredCount int           `json:"registeredCount"`
	AvailableSpots  int           `json:"availableSpots"`
}

type CreateSlotRequest struct {
	Date                 string `json:"date" validate:"required"`
	TimePeriod           string `json:"time_period" validate:"required"`
	Department           string `json:"department" validate:"required"`
	GenderCategory       string `json:"gender_category" validate:"required"`
	Notes                string `json:"notes,omitempty"`
	TotalSpots           int    `json:"total_spots" validate:"required,min=1"`
	MaxStudentsPerSchool int    `json:"max_students_per_school" validate:"required,min=1"`
	IsLocked             bool   `json:"is_locked,omitempty"`
	IsConfirmed          bool   `json:"is_confirmed,omitempty"`
}

type UpdateSlotRequest struct {
	Date                 *string `json:"date,omitempty"`
	TimePeriod           *string `json:"time_period,omitempty"`
	Department           *string `json:"department,omitempty"`
	GenderCategory       *string `json:"gender_category,omitempty"`
	Notes                *string `json:"notes,omitempty"`
	TotalSpots           *int    `json:"total_spots,omitempty"`
	MaxStudentsPerSchool *int    `json:"max_students_per_school,omitempty"`
	IsLocked             *bool   `json:"is_locked,omitempty"`
	IsConfirmed          *bool   `json:"is_confirmed,omitempty"`
}

type SlotEnums struct {
	TimePeriods      []string `json:"time_periods"`
	Departments      []string `json:"departments"`
	GenderCategories []string `json:"gender_categories"`
}

type PaginatedSlots struct {
	Slots       []Slot `json:"slots"`
	Total       int    `json:"total"`
	Pages       int    `json:"pages"`
	CurrentPage int    `json:"current_page"`
	HasNext     bool   `json:"has_next"`
	HasPrev     bool   `json:"has_prev"`
}

// SlotFilters narrows a slot listing. Nil / empty fields are omitted from the
// query string.
type SlotFilters struct {
	Date           string
	TimePeriod     string
	Department     string
	GenderCategory string
	IsLocked       *bool
}

// UserFilters narrows a user listing.
type UserFilters struct {
	SchoolName string
	IsAdmin    *bool
	IsActive   *bool
}

type Student struct {
	ID          int    `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	SchoolClass string `json:"school_class"`
	SchoolName  string `json:"school_name"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	Landline    string `json:"landline,omitempty"`
	Mobile      string `json:"mobile"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type UpdateStudentRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	SchoolClass *string `json:"school_class,omitempty"`
	SchoolName  *string `json:"school_name,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	Address     *string `json:"address,omitempty"`
	PostalCode  *string `json:"postal_code,omitempty"`
	City        *string `json:"city,omitempty"`
	Landline    *string `json:"landline,omitempty"`
	Mobile      *string `json:"mobile,omitempty"`
}

// Enrollment is a student's registration against a slot, optionally parked on
// the waiting list.
type Enrollment struct {
	ID              int     `json:"id"`
	Student         Student `json:"student"`
	SlotID          int     `json:"slot_id"`
	IsInWaitingList bool    `json:"is_in_waiting_list"`
	CreatedAt       string  `json:"created_at,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

// CreateEnrollmentRequest either references an existing student by id or
// carries the full student record inline.
type CreateEnrollmentRequest struct {
	StudentID   *int   `json:"student_id,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	SchoolClass string `json:"school_class" validate:"required"`
	SchoolName  string `json:"school_name" validate:"required"`
	Gender      string `json:"gender" validate:"required,oneof=Maschio Femmina"`
	Address     string `json:"address" validate:"required"`
	PostalCode  string `json:"postal_code" validate:"required"`
	City        string `json:"city" validate:"required"`
	Landline    string `json:"landline,omitempty"`
	Mobile      string `json:"mobile" validate:"required"`
}

// OrganizationInfo is the contact block shown on the contact page. FullName is
// derived by the client when the backend omits it.
type OrganizationInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name,omitempty"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
}

// ResetTokenCheck is the outcome of verifying a password-reset token. An
// invalid token is an expected outcome for the caller, not an error.
type ResetTokenCheck struct {
	Valid bool   `json:"valid"`
	Email string `json:"email,omitempty"`
	Error string `json:"error,omitempty"`
}
