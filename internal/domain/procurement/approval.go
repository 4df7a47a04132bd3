package procurement

import (
	"time"

	"github.com/google/uuid"

	"github.com/erp/procurement/internal/domain/shared"
)

// ApprovalQuorum is the number of distinct admin approvals that
// transitions a purchase order or delivery order to approved.
const ApprovalQuorum = 4

// DocumentType identifies which kind of document an approval belongs to
type DocumentType string

const (
	DocumentTypePurchaseOrder DocumentType = "purchase_order"
	DocumentTypeDeliveryOrder DocumentType = "delivery_order"
)

// IsValid checks if the document type is known
func (t DocumentType) IsValid() bool {
	return t == DocumentTypePurchaseOrder || t == DocumentTypeDeliveryOrder
}

// String returns the string representation of DocumentType
func (t DocumentType) String() string {
	return string(t)
}

// Approval is one admin's approval of a document. The unique index over
// (document_type, document_id, user_id) makes re-approval by the same
// user a storage-level conflict, so idempotence does not depend on
// application logic alone.
type Approval struct {
	ID           uuid.UUID    `gorm:"type:uuid;primary_key"`
	DocumentType DocumentType `gorm:"type:varchar(30);not null;uniqueIndex:idx_approvals_doc_user"`
	DocumentID   uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_approvals_doc_user"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_approvals_doc_user"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (Approval) TableName() string {
	return "approvals"
}

// NewApproval records one user's approval of a document
func NewApproval(docType DocumentType, documentID, userID uuid.UUID) (*Approval, error) {
	if !docType.IsValid() {
		return nil, shared.NewValidationError("Invalid approval document type: " + docType.String())
	}
	if documentID == uuid.Nil {
		return nil, shared.NewValidationError("Document ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("User ID cannot be empty")
	}
	return &Approval{
		ID:           uuid.New(),
		DocumentType: docType,
		DocumentID:   documentID,
		UserID:       userID,
		CreatedAt:    time.Now(),
	}, nil
}
