package procurement

import (
	"context"

	"github.com/google/uuid"

	"github.com/erp/procurement/internal/domain/procurement"
)

// ReceiptService handles incoming good receipt operations. Receipts are
// created only by purchase order approval; this service reads them and
// applies line status transitions.
type ReceiptService struct {
	scope TransactionScope
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(scope TransactionScope) *ReceiptService {
	return &ReceiptService{scope: scope}
}

// UpdateItemStatus transitions one receipt line. Setting the current
// status again succeeds without touching anything. The transition to
// received increments the stock on the line's shelf exactly once.
func (s *ReceiptService) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status procurement.ReceiptItemStatus) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.ReceiptRepo().FindItemByID(ctx, itemID)
		if err != nil {
			return err
		}
		changed, err := item.ChangeStatus(status)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		if err := repos.ReceiptRepo().SaveItem(ctx, item); err != nil {
			return err
		}
		if item.Status == procurement.ReceiptItemStatusReceived {
			shelf, err := repos.ShelfRepo().FindByID(ctx, item.ShelfID)
			if err != nil {
				return err
			}
			if err := shelf.AddStock(item.Quantity); err != nil {
				return err
			}
			if err := repos.ShelfRepo().Save(ctx, shelf); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get returns one receipt by ID
func (s *ReceiptService) Get(ctx context.Context, id uuid.UUID) (*ReceiptResponse, error) {
	var resp *ReceiptResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		igr, err := repos.ReceiptRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp = toReceiptResponse(igr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List returns all receipts
func (s *ReceiptService) List(ctx context.Context) ([]ReceiptResponse, error) {
	var resp []ReceiptResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		igrs, err := repos.ReceiptRepo().FindAll(ctx)
		if err != nil {
			return err
		}
		resp = make([]ReceiptResponse, 0, len(igrs))
		for i := range igrs {
			resp = append(resp, *toReceiptResponse(&igrs[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Delete removes a receipt and its lines
func (s *ReceiptService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		igr, err := repos.ReceiptRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.ReceiptRepo().DeleteItemsByReceipt(ctx, igr.ID); err != nil {
			return err
		}
		return repos.ReceiptRepo().Delete(ctx, igr.ID)
	})
}
