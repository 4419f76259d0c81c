// Package student exposes the read-only student directory the store depends on.
package student

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/shared"
)

// ErrStudentNotFound is returned when a student id does not resolve
var ErrStudentNotFound = shared.NewDomainError("STUDENT_NOT_FOUND", "Student not found")

// Status is the enrolment state of a student
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusGraduated Status = "GRADUATED"
	StatusWithdrawn Status = "WITHDRAWN"
)

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusGraduated, StatusWithdrawn:
		return true
	}
	return false
}

// Student is a directory entry
type Student struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	Name            string
	AdmissionNumber string
	Grade           string
	ClassroomID     *uuid.UUID
	Status          Status
}

// IsActive reports whether the student is currently enrolled
func (s *Student) IsActive() bool {
	return s.Status == StatusActive
}

// Directory resolves students for bulk operations
type Directory interface {
	// FindActiveStudents returns ACTIVE students in a grade, optionally narrowed
	// to the given classrooms
	FindActiveStudents(ctx context.Context, tenantID uuid.UUID, grade string, classroomIDs []uuid.UUID) ([]Student, error)

	// FindByID returns a student or shared.ErrNotFound
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Student, error)
}
