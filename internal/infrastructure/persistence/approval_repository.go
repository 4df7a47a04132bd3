package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/erp/procurement/internal/domain/procurement"
	"github.com/erp/procurement/internal/domain/shared"
)

// GormApprovalRepository implements ApprovalRepository using GORM
type GormApprovalRepository struct {
	db *gorm.DB
}

// NewGormApprovalRepository creates a new GormApprovalRepository
func NewGormApprovalRepository(db *gorm.DB) *GormApprovalRepository {
	return &GormApprovalRepository{db: db}
}

// CountByDocument returns how many distinct users approved the document
func (r *GormApprovalRepository) CountByDocument(ctx context.Context, docType procurement.DocumentType, documentID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&procurement.Approval{}).
		Where("document_type = ? AND document_id = ?", docType, documentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists reports whether the user already approved the document
func (r *GormApprovalRepository) Exists(ctx context.Context, docType procurement.DocumentType, documentID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&procurement.Approval{}).
		Where("document_type = ? AND document_id = ? AND user_id = ?", docType, documentID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByDocument returns the approvals on a document in insertion order
func (r *GormApprovalRepository) FindByDocument(ctx context.Context, docType procurement.DocumentType, documentID uuid.UUID) ([]procurement.Approval, error) {
	var approvals []procurement.Approval
	if err := r.db.WithContext(ctx).
		Where("document_type = ? AND document_id = ?", docType, documentID).
		Order("created_at ASC").
		Find(&approvals).Error; err != nil {
		return nil, err
	}
	return approvals, nil
}

// Save inserts one approval. The unique index over document and user
// turns a concurrent duplicate into a conflict.
func (r *GormApprovalRepository) Save(ctx context.Context, approval *procurement.Approval) error {
	err := r.db.WithContext(ctx).Create(approval).Error
	if err != nil && isUniqueViolation(err) {
		return shared.NewAlreadyApprovedError("User has already approved this document")
	}
	return err
}

// DeleteByDocument removes all approvals on a document
func (r *GormApprovalRepository) DeleteByDocument(ctx context.Context, docType procurement.DocumentType, documentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&procurement.Approval{}, "document_type = ? AND document_id = ?", docType, documentID).Error
}

// isUniqueViolation detects unique constraint errors across the postgres
// and sqlite drivers
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

var _ procurement.ApprovalRepository = (*GormApprovalRepository)(nil)
