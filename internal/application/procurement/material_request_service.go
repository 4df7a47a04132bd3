package procurement

import (
	"context"

	"github.com/google/uuid"

	"github.com/erp/procurement/internal/domain/procurement"
	"github.com/erp/procurement/internal/domain/shared"
)

// MaterialRequestService handles material request business operations
type MaterialRequestService struct {
	scope TransactionScope
}

// NewMaterialRequestService creates a new MaterialRequestService
func NewMaterialRequestService(scope TransactionScope) *MaterialRequestService {
	return &MaterialRequestService{scope: scope}
}

// Create validates the referenced location and items, assigns the next
// request number and persists the request with all lines pending.
func (s *MaterialRequestService) Create(ctx context.Context, createdByID uuid.UUID, req CreateMaterialRequestRequest) (*MaterialRequestResponse, error) {
	var resp *MaterialRequestResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.LocationRepo().FindByID(ctx, req.LocationID); err != nil {
			return err
		}
		itemIDs := make([]uuid.UUID, 0, len(req.Items))
		for _, line := range req.Items {
			itemIDs = append(itemIDs, line.ItemID)
		}
		if err := s.ensureItemsExist(ctx, repos, itemIDs); err != nil {
			return err
		}

		last, err := repos.MaterialRequestRepo().LastNumber(ctx)
		if err != nil {
			return err
		}
		number := procurement.NextDocumentNumber(procurement.PrefixMaterialRequest, last)

		mr, err := procurement.NewMaterialRequest(number, req.LocationID, createdByID, req.Remarks, toLines(req.Items))
		if err != nil {
			return err
		}
		if err := repos.MaterialRequestRepo().Save(ctx, mr); err != nil {
			return err
		}
		resp = toMaterialRequestResponse(mr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Update replaces the whole item set of the request. Lines are not
// merged: existing rows are deleted and the submitted set is inserted,
// then the status is recomputed.
func (s *MaterialRequestService) Update(ctx context.Context, id uuid.UUID, req UpdateMaterialRequestRequest) (*MaterialRequestResponse, error) {
	var resp *MaterialRequestResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		mr, err := repos.MaterialRequestRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		itemIDs := make([]uuid.UUID, 0, len(req.Items))
		for _, line := range req.Items {
			itemIDs = append(itemIDs, line.ItemID)
		}
		if err := s.ensureItemsExist(ctx, repos, itemIDs); err != nil {
			return err
		}

		if err := repos.MaterialRequestRepo().DeleteItemsByRequest(ctx, mr.ID); err != nil {
			return err
		}
		mr.Remarks = req.Remarks
		if err := mr.ReplaceItems(toLines(req.Items)); err != nil {
			return err
		}
		if err := repos.MaterialRequestRepo().Save(ctx, mr); err != nil {
			return err
		}
		resp = toMaterialRequestResponse(mr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Delete removes the request and its lines. A request referenced by a
// purchase order cannot be deleted.
func (s *MaterialRequestService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		mr, err := repos.MaterialRequestRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if mr.PurchaseOrderID != nil {
			return shared.NewStateError("Material request " + mr.Number + " is referenced by a purchase order")
		}
		for _, item := range mr.Items {
			poItem, err := repos.PurchaseOrderRepo().FindItemByRequestItem(ctx, item.ID)
			if err != nil {
				return err
			}
			if poItem != nil {
				return shared.NewStateError("Material request item " + item.ID.String() + " is referenced by a purchase order")
			}
		}
		if err := repos.MaterialRequestRepo().DeleteItemsByRequest(ctx, mr.ID); err != nil {
			return err
		}
		return repos.MaterialRequestRepo().Delete(ctx, mr.ID)
	})
}

// Get returns one material request by ID
func (s *MaterialRequestService) Get(ctx context.Context, id uuid.UUID) (*MaterialRequestResponse, error) {
	var resp *MaterialRequestResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		mr, err := repos.MaterialRequestRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp = toMaterialRequestResponse(mr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List returns all material requests
func (s *MaterialRequestService) List(ctx context.Context) ([]MaterialRequestResponse, error) {
	var resp []MaterialRequestResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		mrs, err := repos.MaterialRequestRepo().FindAll(ctx)
		if err != nil {
			return err
		}
		resp = make([]MaterialRequestResponse, 0, len(mrs))
		for i := range mrs {
			resp = append(resp, *toMaterialRequestResponse(&mrs[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *MaterialRequestService) ensureItemsExist(ctx context.Context, repos TransactionalRepositories, ids []uuid.UUID) error {
	found, err := repos.ItemRepo().FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	known := make(map[uuid.UUID]bool, len(found))
	for _, item := range found {
		known[item.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return shared.NewNotFoundError("Item", id)
		}
	}
	return nil
}

func toLines(lines []MaterialRequestLineRequest) []procurement.MaterialRequestLine {
	out := make([]procurement.MaterialRequestLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, procurement.MaterialRequestLine{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
			Duration: line.Duration,
		})
	}
	return out
}
