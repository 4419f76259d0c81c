package models

import (
	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/student"
)

// StudentModel maps the students table. The store only reads it.
type StudentModel struct {
	BaseModel
	TenantID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name            string         `gorm:"type:varchar(200);not null"`
	AdmissionNumber string         `gorm:"type:varchar(50)"`
	Grade           string         `gorm:"type:varchar(50);not null;index"`
	ClassroomID     *uuid.UUID     `gorm:"type:uuid;index"`
	Status          student.Status `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for GORM
func (StudentModel) TableName() string {
	return "students"
}

// ToDomain converts the model to a domain Student
func (m *StudentModel) ToDomain() student.Student {
	return student.Student{
		ID:              m.ID,
		TenantID:        m.TenantID,
		Name:            m.Name,
		AdmissionNumber: m.AdmissionNumber,
		Grade:           m.Grade,
		ClassroomID:     m.ClassroomID,
		Status:          m.Status,
	}
}

// FromDomain populates the model from a domain Student
func (m *StudentModel) FromDomain(s student.Student) {
	m.ID = s.ID
	m.TenantID = s.TenantID
	m.Name = s.Name
	m.AdmissionNumber = s.AdmissionNumber
	m.Grade = s.Grade
	m.ClassroomID = s.ClassroomID
	m.Status = s.Status
}
