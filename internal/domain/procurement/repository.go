package procurement

import (
	"context"

	"github.com/google/uuid"
)

// MaterialRequestRepository provides access to material request storage
type MaterialRequestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MaterialRequest, error)
	FindByNumber(ctx context.Context, number string) (*MaterialRequest, error)
	FindAll(ctx context.Context) ([]MaterialRequest, error)
	FindByPurchaseOrder(ctx context.Context, poID uuid.UUID) ([]MaterialRequest, error)
	// LastNumber returns the number of the most recently created request,
	// or empty when none exists
	LastNumber(ctx context.Context) (string, error)
	Save(ctx context.Context, mr *MaterialRequest) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindItemByID(ctx context.Context, id uuid.UUID) (*MaterialRequestItem, error)
	FindItemsByRequest(ctx context.Context, requestID uuid.UUID) ([]MaterialRequestItem, error)
	SaveItem(ctx context.Context, item *MaterialRequestItem) error
	DeleteItemsByRequest(ctx context.Context, requestID uuid.UUID) error
}

// PurchaseOrderRepository provides access to purchase order storage
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindByNumber(ctx context.Context, number string) (*PurchaseOrder, error)
	FindAll(ctx context.Context) ([]PurchaseOrder, error)
	FindByCreator(ctx context.Context, userID uuid.UUID) ([]PurchaseOrder, error)
	LastNumber(ctx context.Context) (string, error)
	Save(ctx context.Context, po *PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindItemByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderItem, error)
	// FindItemByRequestItem returns the line referencing the given
	// material request item, or nil when none exists
	FindItemByRequestItem(ctx context.Context, mrItemID uuid.UUID) (*PurchaseOrderItem, error)
	SaveItem(ctx context.Context, item *PurchaseOrderItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	DeleteItemsByOrder(ctx context.Context, poID uuid.UUID) error
}

// ReceiptRepository provides access to incoming good receipt storage
type ReceiptRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*IncomingGoodReceipt, error)
	FindByPurchaseOrder(ctx context.Context, poID uuid.UUID) (*IncomingGoodReceipt, error)
	FindAll(ctx context.Context) ([]IncomingGoodReceipt, error)
	LastNumber(ctx context.Context) (string, error)
	Save(ctx context.Context, igr *IncomingGoodReceipt) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindItemByID(ctx context.Context, id uuid.UUID) (*IncomingGoodReceiptItem, error)
	SaveItem(ctx context.Context, item *IncomingGoodReceiptItem) error
	DeleteItemsByReceipt(ctx context.Context, receiptID uuid.UUID) error
}

// ApprovalRepository provides access to approval storage
type ApprovalRepository interface {
	// CountByDocument returns how many distinct users approved the document
	CountByDocument(ctx context.Context, docType DocumentType, documentID uuid.UUID) (int64, error)
	// Exists reports whether the user already approved the document
	Exists(ctx context.Context, docType DocumentType, documentID, userID uuid.UUID) (bool, error)
	FindByDocument(ctx context.Context, docType DocumentType, documentID uuid.UUID) ([]Approval, error)
	Save(ctx context.Context, approval *Approval) error
	DeleteByDocument(ctx context.Context, docType DocumentType, documentID uuid.UUID) error
}
