package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/catalog"
	"github.com/schoolstore/backend/internal/domain/finance"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/schoolstore/backend/internal/domain/store"
	"github.com/schoolstore/backend/internal/domain/student"
	"github.com/schoolstore/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// BulkAssignmentService rolls a package out to every active student of a grade
type BulkAssignmentService struct {
	packageRepo    catalog.PackageRepository
	directory      student.Directory
	txScope        TransactionScope
	settings       Settings
	metrics        Metrics
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewBulkAssignmentService creates a new BulkAssignmentService
func NewBulkAssignmentService(
	packageRepo catalog.PackageRepository,
	directory student.Directory,
	txScope TransactionScope,
	settings Settings,
	metrics Metrics,
	logger *zap.Logger,
) *BulkAssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &BulkAssignmentService{
		packageRepo: packageRepo,
		directory:   directory,
		txScope:     txScope,
		settings:    settings.withDefaults(),
		metrics:     metrics,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context communication
func (s *BulkAssignmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// AssignPackageToGrade creates one fee-linked order per eligible student.
// Each student is its own transaction: a failure is counted and the loop goes
// on, and students who already hold an UNPAID or PAID order for the package
// and academic year are skipped, so a re-run only fills the gaps.
func (s *BulkAssignmentService) AssignPackageToGrade(ctx context.Context, tenantID, packageID uuid.UUID, req AssignPackageRequest) (*AssignmentResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "package", "assign_to_grade",
		attribute.String("tenant_id", tenantID.String()),
		attribute.String("package_id", packageID.String()),
	)
	defer span.End()

	pkg, err := s.packageRepo.FindByIDForTenant(ctx, tenantID, packageID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, catalog.ErrPackageNotFound
		}
		return nil, err
	}
	if !pkg.IsActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Package is inactive")
	}

	grade := strings.TrimSpace(req.Grade)
	if grade == "" && pkg.Grade != nil {
		grade = *pkg.Grade
	}
	if grade == "" {
		return nil, shared.InvalidInput("Grade is required")
	}
	classrooms := req.ClassroomIDs
	if len(classrooms) == 0 && pkg.ClassroomID != nil {
		classrooms = []uuid.UUID{*pkg.ClassroomID}
	}

	students, err := s.directory.FindActiveStudents(ctx, tenantID, grade, classrooms)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve students: %w", err)
	}
	if len(students) == 0 {
		return nil, shared.ErrNoEligibleStudents
	}

	result := &AssignmentResult{PackageID: pkg.ID, Total: len(students)}
	var events []shared.DomainEvent

	for i := range students {
		st := &students[i]
		created, err := s.assignOne(ctx, pkg, st, req.CreatedBy)
		switch {
		case err != nil:
			result.Failed++
			result.Failures = append(result.Failures, AssignmentFailure{StudentID: st.ID, Reason: err.Error()})
			s.logger.Error("package assignment failed for student",
				zap.String("tenant_id", tenantID.String()),
				zap.String("package_id", pkg.ID.String()),
				zap.String("student_id", st.ID.String()),
				zap.Error(err),
			)
		case created == nil:
			result.Skipped++
		default:
			result.Created++
			events = append(events, created.PullDomainEvents()...)
			s.metrics.OrderCreated(ctx, created.Source)
		}
	}

	publish(ctx, s.eventPublisher, s.logger, events)
	span.SetAttributes(
		attribute.Int("created", result.Created),
		attribute.Int("skipped", result.Skipped),
		attribute.Int("failed", result.Failed),
	)
	s.metrics.BulkAssigned(ctx, result.Created, result.Skipped, result.Failed)

	s.logger.Info("package assigned to grade",
		zap.String("tenant_id", tenantID.String()),
		zap.String("package_id", pkg.ID.String()),
		zap.String("grade", grade),
		zap.Int("total", result.Total),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// assignOne returns the created order, or nil when the student already holds
// an active assignment. A concurrent run that inserts first is detected by the
// unique index and also yields nil; the fee created here rolls back.
func (s *BulkAssignmentService) assignOne(ctx context.Context, pkg *catalog.Package, st *student.Student, createdBy *uuid.UUID) (*store.StoreOrder, error) {
	var created *store.StoreOrder
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.OrderRepo().ExistsActiveAssignment(ctx, pkg.TenantID, st.ID, pkg.ID, pkg.AcademicYearID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		order, err := store.NewPackageOrder(pkg.TenantID, st.ID, pkg)
		if err != nil {
			return err
		}
		if createdBy != nil {
			order.SetCreatedBy(*createdBy)
		}

		fee, err := finance.NewStoreFee(pkg.TenantID, st.ID, pkg.AcademicYearID, order.TotalAmount,
			dueDate(s.settings.BulkFeeDueDays), fmt.Sprintf("Store package: %s", pkg.Name))
		if err != nil {
			return err
		}
		fee.LinkSource(finance.FeeSourceStoreOrder, order.ID)
		if err := repos.FeeBridge().CreateFee(ctx, fee); err != nil {
			return fmt.Errorf("failed to create fee: %w", err)
		}
		if err := order.LinkFee(fee.ID); err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}
		created = order
		return nil
	})
	if errors.Is(err, store.ErrPackageAlreadyAssigned) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}
