package procurement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domaininventory "github.com/erp/procurement/internal/domain/inventory"
	"github.com/erp/procurement/internal/domain/procurement"
	"github.com/erp/procurement/internal/domain/shared"
)

// ShelfAllocator resolves the shelf each received line is stored on
// during receipt creation.
type ShelfAllocator interface {
	Allocate(ctx context.Context, shelves domaininventory.ShelfRepository, itemID uuid.UUID) (*domaininventory.Shelf, error)
}

// PurchaseOrderService handles purchase order business operations,
// including the approval quorum and the receipt it triggers.
type PurchaseOrderService struct {
	scope     TransactionScope
	allocator ShelfAllocator
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(scope TransactionScope, allocator ShelfAllocator) *PurchaseOrderService {
	return &PurchaseOrderService{scope: scope, allocator: allocator}
}

// Create creates a purchase order from pending material request lines.
// Each selected line must currently be pending; selected lines flip to
// proses and every touched request is relinked and recomputed.
func (s *PurchaseOrderService) Create(ctx context.Context, createdByID uuid.UUID, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	var resp *PurchaseOrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		last, err := repos.PurchaseOrderRepo().LastNumber(ctx)
		if err != nil {
			return err
		}
		number := procurement.NextDocumentNumber(procurement.PrefixPurchaseOrder, last)

		po, err := procurement.NewPurchaseOrder(number, createdByID)
		if err != nil {
			return err
		}
		if err := repos.PurchaseOrderRepo().Save(ctx, po); err != nil {
			return err
		}

		touched := make(map[uuid.UUID]bool)
		for _, line := range req.Items {
			mrItem, err := s.addLine(ctx, repos, po, line)
			if err != nil {
				return err
			}
			touched[mrItem.MaterialRequestID] = true
		}

		if err := s.relinkRequests(ctx, repos, po.ID, touched, req.MaterialRequestIDs); err != nil {
			return err
		}

		resp = toPurchaseOrderResponse(po, 0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// addLine validates eligibility, persists the order line and flips the
// request item to proses when the line resolves to proses.
func (s *PurchaseOrderService) addLine(ctx context.Context, repos TransactionalRepositories, po *procurement.PurchaseOrder, line PurchaseOrderLineRequest) (*procurement.MaterialRequestItem, error) {
	mrItem, err := repos.MaterialRequestRepo().FindItemByID(ctx, line.MaterialRequestItemID)
	if err != nil {
		return nil, err
	}
	if mrItem.Status != procurement.ItemStatusPending {
		return nil, shared.NewStateError(fmt.Sprintf(
			"Material request item %s is %s, expected pending", mrItem.ID, mrItem.Status))
	}

	poItem, err := procurement.NewPurchaseOrderItem(po.ID, procurement.PurchaseOrderLine{
		MaterialRequestItemID: line.MaterialRequestItemID,
		Supplier:              line.Supplier,
		Quantity:              line.Quantity,
		Price:                 line.Price,
		Status:                procurement.ItemStatus(line.Status),
	})
	if err != nil {
		return nil, err
	}
	if err := repos.PurchaseOrderRepo().SaveItem(ctx, poItem); err != nil {
		return nil, err
	}
	po.Items = append(po.Items, *poItem)

	if poItem.Status == procurement.ItemStatusProses {
		mrItem.Status = procurement.ItemStatusProses
		if err := repos.MaterialRequestRepo().SaveItem(ctx, mrItem); err != nil {
			return nil, err
		}
	}
	return mrItem, nil
}

// relinkRequests links every touched request (status recomputed over its
// full item set) and attaches explicitly listed but untouched requests
// without a status change.
func (s *PurchaseOrderService) relinkRequests(ctx context.Context, repos TransactionalRepositories, poID uuid.UUID, touched map[uuid.UUID]bool, listed []uuid.UUID) error {
	for mrID := range touched {
		mr, err := repos.MaterialRequestRepo().FindByID(ctx, mrID)
		if err != nil {
			return err
		}
		mr.LinkToPurchaseOrder(poID)
		if err := repos.MaterialRequestRepo().Save(ctx, mr); err != nil {
			return err
		}
	}
	for _, mrID := range listed {
		if touched[mrID] {
			continue
		}
		mr, err := repos.MaterialRequestRepo().FindByID(ctx, mrID)
		if err != nil {
			return err
		}
		mr.AttachPurchaseOrder(poID)
		if err := repos.MaterialRequestRepo().Save(ctx, mr); err != nil {
			return err
		}
	}
	return nil
}

// Update diffs the submitted line set against the stored one. Removed
// lines revert their request item to pending; retargeted lines revert
// the old target and validate the new one; new lines follow the creation
// rule. The whole edit is rejected before any write once receiving has
// started.
func (s *PurchaseOrderService) Update(ctx context.Context, id uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	var resp *PurchaseOrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.PurchaseOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		igr, err := repos.ReceiptRepo().FindByPurchaseOrder(ctx, po.ID)
		if err != nil {
			return err
		}
		if igr != nil {
			return shared.NewStateError("Purchase order " + po.Number + " already has an incoming good receipt")
		}

		previouslyLinked, err := repos.MaterialRequestRepo().FindByPurchaseOrder(ctx, po.ID)
		if err != nil {
			return err
		}

		touched := make(map[uuid.UUID]bool)
		submitted := make(map[uuid.UUID]PurchaseOrderLineRequest)
		for _, line := range req.Items {
			if line.ID != nil {
				submitted[*line.ID] = line
			}
		}

		// Existing lines: delete removed ones, retarget changed ones.
		for i := range po.Items {
			existing := &po.Items[i]
			line, kept := submitted[existing.ID]
			if !kept {
				if err := s.revertRequestItem(ctx, repos, existing.MaterialRequestItemID, touched); err != nil {
					return err
				}
				if err := repos.PurchaseOrderRepo().DeleteItem(ctx, existing.ID); err != nil {
					return err
				}
				continue
			}
			if line.MaterialRequestItemID != existing.MaterialRequestItemID {
				if err := s.revertRequestItem(ctx, repos, existing.MaterialRequestItemID, touched); err != nil {
					return err
				}
				newTarget, err := repos.MaterialRequestRepo().FindItemByID(ctx, line.MaterialRequestItemID)
				if err != nil {
					return err
				}
				if newTarget.Status != procurement.ItemStatusPending {
					return shared.NewStateError(fmt.Sprintf(
						"Material request item %s is %s, expected pending", newTarget.ID, newTarget.Status))
				}
				newTarget.Status = procurement.ItemStatusProses
				if err := repos.MaterialRequestRepo().SaveItem(ctx, newTarget); err != nil {
					return err
				}
				touched[newTarget.MaterialRequestID] = true
				existing.MaterialRequestItemID = line.MaterialRequestItemID
			} else {
				// Unchanged targets keep their request linked and
				// recomputed like every other submitted line.
				mrItem, err := repos.MaterialRequestRepo().FindItemByID(ctx, existing.MaterialRequestItemID)
				if err != nil {
					return err
				}
				touched[mrItem.MaterialRequestID] = true
			}
			existing.Supplier = line.Supplier
			existing.Quantity = line.Quantity
			existing.Price = line.Price
			if line.Status != "" {
				existing.Status = procurement.ItemStatus(line.Status)
			}
			if err := repos.PurchaseOrderRepo().SaveItem(ctx, existing); err != nil {
				return err
			}
		}

		// New lines follow the creation eligibility rule.
		for _, line := range req.Items {
			if line.ID != nil {
				continue
			}
			mrItem, err := s.addLine(ctx, repos, po, line)
			if err != nil {
				return err
			}
			touched[mrItem.MaterialRequestID] = true
		}

		if err := s.relinkRequests(ctx, repos, po.ID, touched, req.MaterialRequestIDs); err != nil {
			return err
		}

		// Requests no longer referenced are detached and recomputed from
		// their own items.
		stillListed := make(map[uuid.UUID]bool)
		for mrID := range touched {
			stillListed[mrID] = true
		}
		for _, mrID := range req.MaterialRequestIDs {
			stillListed[mrID] = true
		}
		for i := range previouslyLinked {
			mr := &previouslyLinked[i]
			if stillListed[mr.ID] {
				continue
			}
			fresh, err := repos.MaterialRequestRepo().FindByID(ctx, mr.ID)
			if err != nil {
				return err
			}
			fresh.Detach()
			if err := repos.MaterialRequestRepo().Save(ctx, fresh); err != nil {
				return err
			}
		}

		updated, err := repos.PurchaseOrderRepo().FindByID(ctx, po.ID)
		if err != nil {
			return err
		}
		count, err := repos.ApprovalRepo().CountByDocument(ctx, procurement.DocumentTypePurchaseOrder, po.ID)
		if err != nil {
			return err
		}
		resp = toPurchaseOrderResponse(updated, count)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *PurchaseOrderService) revertRequestItem(ctx context.Context, repos TransactionalRepositories, mrItemID uuid.UUID, touched map[uuid.UUID]bool) error {
	mrItem, err := repos.MaterialRequestRepo().FindItemByID(ctx, mrItemID)
	if err != nil {
		return err
	}
	mrItem.Status = procurement.ItemStatusPending
	if err := repos.MaterialRequestRepo().SaveItem(ctx, mrItem); err != nil {
		return err
	}
	touched[mrItem.MaterialRequestID] = true
	return nil
}

// Delete reverses everything the order caused: the receipt and its
// lines, the order lines, the request links and item statuses, the
// approvals, then the order itself. Child rows go before parents.
func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.PurchaseOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		igr, err := repos.ReceiptRepo().FindByPurchaseOrder(ctx, po.ID)
		if err != nil {
			return err
		}
		if igr != nil {
			if err := repos.ReceiptRepo().DeleteItemsByReceipt(ctx, igr.ID); err != nil {
				return err
			}
			if err := repos.ReceiptRepo().Delete(ctx, igr.ID); err != nil {
				return err
			}
		}

		for _, item := range po.Items {
			mrItem, err := repos.MaterialRequestRepo().FindItemByID(ctx, item.MaterialRequestItemID)
			if err != nil {
				return err
			}
			mrItem.Status = procurement.ItemStatusPending
			if err := repos.MaterialRequestRepo().SaveItem(ctx, mrItem); err != nil {
				return err
			}
		}
		if err := repos.PurchaseOrderRepo().DeleteItemsByOrder(ctx, po.ID); err != nil {
			return err
		}

		linked, err := repos.MaterialRequestRepo().FindByPurchaseOrder(ctx, po.ID)
		if err != nil {
			return err
		}
		for i := range linked {
			mr := &linked[i]
			mr.Unlink()
			if err := repos.MaterialRequestRepo().Save(ctx, mr); err != nil {
				return err
			}
		}

		if err := repos.ApprovalRepo().DeleteByDocument(ctx, procurement.DocumentTypePurchaseOrder, po.ID); err != nil {
			return err
		}
		return repos.PurchaseOrderRepo().Delete(ctx, po.ID)
	})
}

// Approve records one admin's approval. The first approval that brings
// the count to quorum transitions the order to approved and creates the
// incoming good receipt, once.
func (s *PurchaseOrderService) Approve(ctx context.Context, id, approverID uuid.UUID) (*ApprovalResult, error) {
	var result *ApprovalResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		approver, err := repos.UserRepo().FindByID(ctx, approverID)
		if err != nil {
			return err
		}
		if !approver.IsAdmin() {
			return shared.NewForbiddenError("Only admins may approve purchase orders")
		}

		po, err := repos.PurchaseOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		already, err := repos.ApprovalRepo().Exists(ctx, procurement.DocumentTypePurchaseOrder, po.ID, approverID)
		if err != nil {
			return err
		}
		if already {
			return shared.NewAlreadyApprovedError("User has already approved purchase order " + po.Number)
		}

		approval, err := procurement.NewApproval(procurement.DocumentTypePurchaseOrder, po.ID, approverID)
		if err != nil {
			return err
		}
		if err := repos.ApprovalRepo().Save(ctx, approval); err != nil {
			return err
		}

		count, err := repos.ApprovalRepo().CountByDocument(ctx, procurement.DocumentTypePurchaseOrder, po.ID)
		if err != nil {
			return err
		}

		if count >= procurement.ApprovalQuorum && !po.IsApproved() {
			if err := s.reachQuorum(ctx, repos, po); err != nil {
				return err
			}
		}
		result = &ApprovalResult{
			DocumentID:    po.ID,
			Approvals:     count,
			QuorumReached: po.IsApproved(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// reachQuorum applies the quorum side effects: the order becomes
// approved and the receipt is created with one pending line per order
// line, each resolved to a shelf.
func (s *PurchaseOrderService) reachQuorum(ctx context.Context, repos TransactionalRepositories, po *procurement.PurchaseOrder) error {
	if err := po.Approve(); err != nil {
		return err
	}
	if err := repos.PurchaseOrderRepo().Save(ctx, po); err != nil {
		return err
	}

	last, err := repos.ReceiptRepo().LastNumber(ctx)
	if err != nil {
		return err
	}
	number := procurement.NextDocumentNumber(procurement.PrefixReceipt, last)
	igr, err := procurement.NewIncomingGoodReceipt(number, po.ID)
	if err != nil {
		return err
	}

	for _, poItem := range po.Items {
		mrItem, err := repos.MaterialRequestRepo().FindItemByID(ctx, poItem.MaterialRequestItemID)
		if err != nil {
			return err
		}
		shelf, err := s.allocator.Allocate(ctx, repos.ShelfRepo(), mrItem.ItemID)
		if err != nil {
			return err
		}
		if err := igr.AddItem(mrItem.ItemID, poItem.ID, shelf.ID, poItem.Quantity); err != nil {
			return err
		}
	}
	return repos.ReceiptRepo().Save(ctx, igr)
}

// Get returns one purchase order by ID with its approval count
func (s *PurchaseOrderService) Get(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	var resp *PurchaseOrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.PurchaseOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		count, err := repos.ApprovalRepo().CountByDocument(ctx, procurement.DocumentTypePurchaseOrder, po.ID)
		if err != nil {
			return err
		}
		resp = toPurchaseOrderResponse(po, count)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List returns all purchase orders
func (s *PurchaseOrderService) List(ctx context.Context) ([]PurchaseOrderResponse, error) {
	var resp []PurchaseOrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		pos, err := repos.PurchaseOrderRepo().FindAll(ctx)
		if err != nil {
			return err
		}
		resp = make([]PurchaseOrderResponse, 0, len(pos))
		for i := range pos {
			count, err := repos.ApprovalRepo().CountByDocument(ctx, procurement.DocumentTypePurchaseOrder, pos[i].ID)
			if err != nil {
				return err
			}
			resp = append(resp, *toPurchaseOrderResponse(&pos[i], count))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListByUser returns the purchase orders raised by one user
func (s *PurchaseOrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]PurchaseOrderResponse, error) {
	var resp []PurchaseOrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		pos, err := repos.PurchaseOrderRepo().FindByCreator(ctx, userID)
		if err != nil {
			return err
		}
		resp = make([]PurchaseOrderResponse, 0, len(pos))
		for i := range pos {
			count, err := repos.ApprovalRepo().CountByDocument(ctx, procurement.DocumentTypePurchaseOrder, pos[i].ID)
			if err != nil {
				return err
			}
			resp = append(resp, *toPurchaseOrderResponse(&pos[i], count))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Approvals lists the recorded approvals on a purchase order in approval
// order, with the remaining count towards the quorum
func (s *PurchaseOrderService) Approvals(ctx context.Context, id uuid.UUID) (*ApprovalListResponse, error) {
	var resp *ApprovalListResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.PurchaseOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		approvals, err := repos.ApprovalRepo().FindByDocument(ctx, procurement.DocumentTypePurchaseOrder, id)
		if err != nil {
			return err
		}
		resp = toApprovalListResponse(approvals, po.IsApproved())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// toApprovalListResponse flattens the approvals with their sequence and
// derives the summary status from the count and the document flag.
func toApprovalListResponse(approvals []procurement.Approval, approved bool) *ApprovalListResponse {
	resp := &ApprovalListResponse{
		Approvals: make([]ApprovalResponse, 0, len(approvals)),
	}
	for i, a := range approvals {
		resp.Approvals = append(resp.Approvals, ApprovalResponse{
			ID:        a.ID,
			UserID:    a.UserID,
			Sequence:  i + 1,
			CreatedAt: a.CreatedAt,
		})
	}
	remaining := procurement.ApprovalQuorum - int64(len(approvals))
	if remaining < 0 {
		remaining = 0
	}
	resp.Remaining = remaining
	switch {
	case approved:
		resp.Status = "approved"
	case len(approvals) > 0:
		resp.Status = "partially_approved"
	default:
		resp.Status = "pending"
	}
	return resp
}
