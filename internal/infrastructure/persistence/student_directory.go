package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/schoolstore/backend/internal/domain/student"
	"github.com/schoolstore/backend/internal/infrastructure/persistence/models"
	"github.com/schoolstore/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormStudentDirectory implements student.Directory over the students table
type GormStudentDirectory struct {
	db *gorm.DB
}

// NewGormStudentDirectory creates a new GormStudentDirectory
func NewGormStudentDirectory(db *gorm.DB) *GormStudentDirectory {
	return &GormStudentDirectory{db: db}
}

// FindActiveStudents returns ACTIVE students of a grade, ordered by name
func (d *GormStudentDirectory) FindActiveStudents(ctx context.Context, tenantID uuid.UUID, grade string, classroomIDs []uuid.UUID) ([]student.Student, error) {
	query := d.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx, tenantID)).
		Where("grade = ? AND status = ?", grade, student.StatusActive)
	if len(classroomIDs) > 0 {
		query = query.Where("classroom_id IN ?", classroomIDs)
	}

	var rows []models.StudentModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	students := make([]student.Student, len(rows))
	for i := range rows {
		students[i] = rows[i].ToDomain()
	}
	return students, nil
}

// FindByID returns one student of the tenant
func (d *GormStudentDirectory) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*student.Student, error) {
	var model models.StudentModel
	if err := d.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx, tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	s := model.ToDomain()
	return &s, nil
}

var _ student.Directory = (*GormStudentDirectory)(nil)
