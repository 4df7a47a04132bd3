package printing

import (
	"context"

	"github.com/google/uuid"

	appprocurement "github.com/erp/procurement/internal/application/procurement"
	"github.com/erp/procurement/internal/domain/shared"
)

// PrintService builds flattened document projections for rendering.
// Lookups run inside the workflow transaction scope so the projection is
// a consistent snapshot.
type PrintService struct {
	scope appprocurement.TransactionScope
}

// NewPrintService creates a new PrintService
func NewPrintService(scope appprocurement.TransactionScope) *PrintService {
	return &PrintService{scope: scope}
}

// MaterialRequestDocument projects a material request for printing
func (s *PrintService) MaterialRequestDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	var doc *Document
	err := s.scope.Execute(ctx, func(repos appprocurement.TransactionalRepositories) error {
		mr, err := repos.MaterialRequestRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		location, err := repos.LocationRepo().FindByID(ctx, mr.LocationID)
		if err != nil {
			return err
		}
		creator, err := repos.UserRepo().FindByID(ctx, mr.CreatedByID)
		if err != nil {
			return err
		}

		doc = &Document{
			Kind:      "material_request",
			Number:    mr.Number,
			Status:    mr.Status.String(),
			Remarks:   mr.Remarks,
			Location:  location.Name,
			CreatedBy: creator.Email,
			CreatedAt: mr.CreatedAt,
		}
		for _, line := range mr.Items {
			item, err := repos.ItemRepo().FindByID(ctx, line.ItemID)
			if err != nil {
				return err
			}
			doc.Lines = append(doc.Lines, DocumentLine{
				ItemName:   item.Name,
				ItemCode:   item.Code,
				Quantity:   line.Quantity,
				Duration:   line.Duration,
				LineStatus: line.Status.String(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// PurchaseOrderDocument projects a purchase order for printing
func (s *PrintService) PurchaseOrderDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	var doc *Document
	err := s.scope.Execute(ctx, func(repos appprocurement.TransactionalRepositories) error {
		po, err := repos.PurchaseOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		creator, err := repos.UserRepo().FindByID(ctx, po.CreatedByID)
		if err != nil {
			return err
		}

		doc = &Document{
			Kind:      "purchase_order",
			Number:    po.Number,
			Status:    po.Status.String(),
			CreatedBy: creator.Email,
			CreatedAt: po.CreatedAt,
		}
		for _, line := range po.Items {
			mrItem, err := repos.MaterialRequestRepo().FindItemByID(ctx, line.MaterialRequestItemID)
			if err != nil {
				return err
			}
			item, err := repos.ItemRepo().FindByID(ctx, mrItem.ItemID)
			if err != nil {
				return err
			}
			doc.Lines = append(doc.Lines, DocumentLine{
				ItemName:   item.Name,
				ItemCode:   item.Code,
				Quantity:   line.Quantity,
				Supplier:   line.Supplier,
				LineStatus: line.Status.String(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// DeliveryOrderDocument projects a delivery order for printing
func (s *PrintService) DeliveryOrderDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	var doc *Document
	err := s.scope.Execute(ctx, func(repos appprocurement.TransactionalRepositories) error {
		do, err := repos.DeliveryOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		mr, err := repos.MaterialRequestRepo().FindByID(ctx, do.MaterialRequestID)
		if err != nil {
			return err
		}
		location, err := repos.LocationRepo().FindByID(ctx, mr.LocationID)
		if err != nil {
			return err
		}

		doc = &Document{
			Kind:      "delivery_order",
			Number:    do.Number,
			Status:    do.Status.String(),
			Remarks:   do.Remarks,
			Location:  location.Name,
			CreatedAt: do.CreatedAt,
		}
		for _, line := range do.Items {
			mrItem := mr.ItemByID(line.MaterialRequestItemID)
			if mrItem == nil {
				return shared.NewNotFoundError("Material request item", line.MaterialRequestItemID)
			}
			item, err := repos.ItemRepo().FindByID(ctx, mrItem.ItemID)
			if err != nil {
				return err
			}
			doc.Lines = append(doc.Lines, DocumentLine{
				ItemName:   item.Name,
				ItemCode:   item.Code,
				Quantity:   line.Quantity,
				LineStatus: mrItem.Status.String(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ReceiptDocument projects an incoming good receipt for printing
func (s *PrintService) ReceiptDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	var doc *Document
	err := s.scope.Execute(ctx, func(repos appprocurement.TransactionalRepositories) error {
		igr, err := repos.ReceiptRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		po, err := repos.PurchaseOrderRepo().FindByID(ctx, igr.PurchaseOrderID)
		if err != nil {
			return err
		}

		doc = &Document{
			Kind:      "incoming_good_receipt",
			Number:    igr.Number,
			Status:    po.Status.String(),
			CreatedAt: igr.CreatedAt,
		}
		for _, line := range igr.Items {
			item, err := repos.ItemRepo().FindByID(ctx, line.ItemID)
			if err != nil {
				return err
			}
			shelf, err := repos.ShelfRepo().FindByID(ctx, line.ShelfID)
			if err != nil {
				return err
			}
			doc.Lines = append(doc.Lines, DocumentLine{
				ItemName:   item.Name,
				ItemCode:   item.Code,
				Quantity:   line.Quantity,
				ShelfSlot:  shelf.Location + "/" + shelf.Position,
				LineStatus: line.Status.String(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}
