package delivery

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	appprocurement "github.com/erp/procurement/internal/application/procurement"
	"github.com/erp/procurement/internal/domain/delivery"
	"github.com/erp/procurement/internal/domain/procurement"
	"github.com/erp/procurement/internal/domain/shared"
)

// DeliveryOrderService handles delivery order business operations. It
// shares the workflow transaction scope so approval side effects and the
// material request recomputation commit atomically.
type DeliveryOrderService struct {
	scope appprocurement.TransactionScope
}

// NewDeliveryOrderService creates a new DeliveryOrderService
func NewDeliveryOrderService(scope appprocurement.TransactionScope) *DeliveryOrderService {
	return &DeliveryOrderService{scope: scope}
}

// Create creates a pending delivery order against one material request.
// Every referenced request line must already be on a purchase order.
func (s *DeliveryOrderService) Create(ctx context.Context, req CreateDeliveryOrderRequest) (*DeliveryOrderResponse, error) {
	var resp *DeliveryOrderResponse
	err := s.scope.Execute(ctx, func(repos appprocurement.TransactionalRepositories) error {
		mr, err := repos.MaterialRequestRepo().FindByID(ctx, req.MaterialRequestID)
		if err != nil {
			return err
		}
		if mr.IsCancelled() {
			return shared.NewStateError("Material request " + mr.Number + " is cancelled")
		}

		var invalid []string
		for _, line := range req.Items {
			if mr.ItemByID(line.MaterialRequestItemID) == nil {
				invalid = append(invalid, line.MaterialRequestItemID.String())
				continue
			}
			poItem, err := repos.PurchaseOrderRepo().FindItemByRequestItem(ctx, line.MaterialRequestItemID)
			if err != nil {
				return err
			}
			if poItem == nil {
				invalid = append(invalid, line.MaterialRequestItemID.String())
			}
		}
		if len(invalid) > 0 {
			return shared.NewValidationError(fmt.Sprintf(
				"Material request items not yet procured: %s", strings.Join(invalid, ", ")))
		}

		last, err := repos.DeliveryOrderRepo().LastNumber(ctx)
		if err != nil {
			return err
		}
		number := procurement.NextDocumentNumber(procurement.PrefixDeliveryOrder, last)

		lines := make([]delivery.Line, 0, len(req.Items))
		for _, line := range req.Items {
			lines = append(lines, delivery.Line{
				MaterialRequestItemID: line.MaterialRequestItemID,
				Quantity:              line.Quantity,
			})
		}
		do, err := delivery.NewDeliveryOrder(number, mr.ID, req.Remarks, lines)
		if err != nil {
			return err
		}
		if err := repos.DeliveryOrderRepo().Save(ctx, do); err != nil {
			return err
		}
		resp = toDeliveryOrderResponse(do, 0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Approve records one admin's approval. The approval that reaches quorum
// marks the order approved and recomputes the linked material request's
// status from its delivery coverage.
func (s *DeliveryOrderService) Approve(ctx context.Context, id, approverID uuid.UUID) (*ApprovalResult, error) {
	var result *ApprovalResult
	err := s.scope.Execute(ctx, func(repos appprocurement.TransactionalRepositories) error {
		approver, err := repos.UserRepo().FindByID(ctx, approverID)
		if err != nil {
			return err
		}
		if !approver.IsAdmin() {
			return shared.NewForbiddenError("Only admins may approve delivery orders")
		}

		do, err := repos.DeliveryOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		already, err := repos.ApprovalRepo().Exists(ctx, procurement.DocumentTypeDeliveryOrder, do.ID, approverID)
		if err != nil {
			return err
		}
		if already {
			return shared.NewAlreadyApprovedError("User has already approved delivery order " + do.Number)
		}

		approval, err := procurement.NewApproval(procurement.DocumentTypeDeliveryOrder, do.ID, approverID)
		if err != nil {
			return err
		}
		if err := repos.ApprovalRepo().Save(ctx, approval); err != nil {
			return err
		}

		count, err := repos.ApprovalRepo().CountByDocument(ctx, procurement.DocumentTypeDeliveryOrder, do.ID)
		if err != nil {
			return err
		}

		if count >= procurement.ApprovalQuorum && !do.IsApproved() {
			if err := do.Approve(); err != nil {
				return err
			}
			if err := repos.DeliveryOrderRepo().Save(ctx, do); err != nil {
				return err
			}
			if err := s.recomputeRequestCoverage(ctx, repos, do.MaterialRequestID); err != nil {
				return err
			}
		}
		result = &ApprovalResult{
			DocumentID:    do.ID,
			Approvals:     count,
			QuorumReached: do.IsApproved(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// recomputeRequestCoverage checks every item of the request against the
// lines of its approved delivery orders: full coverage makes the request
// done, anything less makes it partial_done.
func (s *DeliveryOrderService) recomputeRequestCoverage(ctx context.Context, repos appprocurement.TransactionalRepositories, mrID uuid.UUID) error {
	mr, err := repos.MaterialRequestRepo().FindByID(ctx, mrID)
	if err != nil {
		return err
	}
	approved, err := repos.DeliveryOrderRepo().FindApprovedByMaterialRequest(ctx, mr.ID)
	if err != nil {
		return err
	}
	covered := make(map[uuid.UUID]bool)
	for _, do := range approved {
		for _, item := range do.Items {
			covered[item.MaterialRequestItemID] = true
		}
	}
	full := true
	for _, item := range mr.Items {
		if !covered[item.ID] {
			full = false
			break
		}
	}
	if full {
		mr.Status = procurement.MRStatusDone
	} else {
		mr.Status = procurement.MRStatusPartialDone
	}
	mr.Touch()
	return repos.MaterialRequestRepo().Save(ctx, mr)
}

// Approvals lists the recorded approvals on a delivery order in approval
// order, with the remaining count towards the quorum
func (s *DeliveryOrderService) Approvals(ctx context.Context, id uuid.UUID) (*ApprovalListResponse, error) {
	var resp *ApprovalListResponse
	err := s.scope.Execute(ctx, func(repos appprocurement.TransactionalRepositories) error {
		do, err := repos.DeliveryOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		approvals, err := repos.ApprovalRepo().FindByDocument(ctx, procurement.DocumentTypeDeliveryOrder, do.ID)
		if err != nil {
			return err
		}
		resp = &ApprovalListResponse{
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
		case do.IsApproved():
			resp.Status = "approved"
		case len(approvals) > 0:
			resp.Status = "partially_approved"
		default:
			resp.Status = "pending"
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Get returns one delivery order by ID with its approval count
func (s *DeliveryOrderService) Get(ctx context.Context, id uuid.UUID) (*DeliveryOrderResponse, error) {
	var resp *DeliveryOrderResponse
	err := s.scope.Execute(ctx, func(repos appprocurement.TransactionalRepositories) error {
		do, err := repos.DeliveryOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		count, err := repos.ApprovalRepo().CountByDocument(ctx, procurement.DocumentTypeDeliveryOrder, do.ID)
		if err != nil {
			return err
		}
		resp = toDeliveryOrderResponse(do, count)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List returns all delivery orders
func (s *DeliveryOrderService) List(ctx context.Context) ([]DeliveryOrderResponse, error) {
	var resp []DeliveryOrderResponse
	err := s.scope.Execute(ctx, func(repos appprocurement.TransactionalRepositories) error {
		dos, err := repos.DeliveryOrderRepo().FindAll(ctx)
		if err != nil {
			return err
		}
		resp = make([]DeliveryOrderResponse, 0, len(dos))
		for i := range dos {
			count, err := repos.ApprovalRepo().CountByDocument(ctx, procurement.DocumentTypeDeliveryOrder, dos[i].ID)
			if err != nil {
				return err
			}
			resp = append(resp, *toDeliveryOrderResponse(&dos[i], count))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Delete removes a pending delivery order and its approvals
func (s *DeliveryOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos appprocurement.TransactionalRepositories) error {
		do, err := repos.DeliveryOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if do.IsApproved() {
			return shared.NewStateError("Delivery order " + do.Number + " is approved and cannot be deleted")
		}
		if err := repos.ApprovalRepo().DeleteByDocument(ctx, procurement.DocumentTypeDeliveryOrder, do.ID); err != nil {
			return err
		}
		return repos.DeliveryOrderRepo().Delete(ctx, do.ID)
	})
}
