package procurement

// MaterialRequestStatus is the derived status of a material request. The
// literal set is wider than one state machine because three different
// recomputation paths write into it, each with its own vocabulary: the
// creation path (requested/partial/done), the update path
// (pending/done/partial_done/proses) and the order-linked path
// (pending/done/"partial done"/proses). The drift between "partial_done"
// and "partial done" is intentional and must not be unified.
type MaterialRequestStatus string

const (
	MRStatusRequested         MaterialRequestStatus = "requested"
	MRStatusPending           MaterialRequestStatus = "pending"
	MRStatusPartial           MaterialRequestStatus = "partial"
	MRStatusProses            MaterialRequestStatus = "proses"
	MRStatusPartialDone       MaterialRequestStatus = "partial_done"
	MRStatusLinkedPartialDone MaterialRequestStatus = "partial done"
	MRStatusDone              MaterialRequestStatus = "done"
	MRStatusCancelled         MaterialRequestStatus = "cancelled"
)

// String returns the string representation of MaterialRequestStatus
func (s MaterialRequestStatus) String() string {
	return string(s)
}

// ItemStatus is the status of a material request line item
type ItemStatus string

const (
	ItemStatusPending ItemStatus = "pending"
	ItemStatusProses  ItemStatus = "proses"
	ItemStatusDone    ItemStatus = "done"
)

// IsValid checks if the status is a known ItemStatus
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusPending, ItemStatusProses, ItemStatusDone:
		return true
	}
	return false
}

// String returns the string representation of ItemStatus
func (s ItemStatus) String() string {
	return string(s)
}

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	POStatusDraft    PurchaseOrderStatus = "draft"
	POStatusPending  PurchaseOrderStatus = "pending"
	POStatusProses   PurchaseOrderStatus = "proses"
	POStatusApproved PurchaseOrderStatus = "approved"
	POStatusDone     PurchaseOrderStatus = "done"
)

// IsValid checks if the status is a known PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case POStatusDraft, POStatusPending, POStatusProses, POStatusApproved, POStatusDone:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// ReceiptItemStatus represents the status of an incoming good receipt item
type ReceiptItemStatus string

const (
	ReceiptItemStatusPending  ReceiptItemStatus = "pending"
	ReceiptItemStatusReceived ReceiptItemStatus = "received"
	ReceiptItemStatusRejected ReceiptItemStatus = "rejected"
)

// IsValid checks if the status is a known ReceiptItemStatus
func (s ReceiptItemStatus) IsValid() bool {
	switch s {
	case ReceiptItemStatusPending, ReceiptItemStatusReceived, ReceiptItemStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of ReceiptItemStatus
func (s ReceiptItemStatus) String() string {
	return string(s)
}

// DeriveCreationStatus computes the status assigned to a material request
// at creation time from its just-created items. The creation path uses a
// three-way vocabulary distinct from the other derivations.
func DeriveCreationStatus(items []MaterialRequestItem) MaterialRequestStatus {
	allDone := true
	allPending := true
	for _, item := range items {
		if item.Status != ItemStatusDone {
			allDone = false
		}
		if item.Status != ItemStatusPending {
			allPending = false
		}
	}
	switch {
	case allDone:
		return MRStatusDone
	case allPending:
		return MRStatusRequested
	default:
		return MRStatusPartial
	}
}

// DeriveUpdateStatus computes the status of a material request after its
// item set has been replaced. Precedence: all pending, then all done,
// then any done, then any proses, falling back to pending.
func DeriveUpdateStatus(items []MaterialRequestItem) MaterialRequestStatus {
	allDone := true
	allPending := true
	anyDone := false
	anyProses := false
	for _, item := range items {
		switch item.Status {
		case ItemStatusDone:
			anyDone = true
			allPending = false
		case ItemStatusProses:
			anyProses = true
			allDone = false
			allPending = false
		default:
			allDone = false
		}
	}
	switch {
	case allPending:
		return MRStatusPending
	case allDone:
		return MRStatusDone
	case anyDone:
		return MRStatusPartialDone
	case anyProses:
		return MRStatusProses
	default:
		return MRStatusPending
	}
}

// DeriveLinkedStatus computes the status of a material request touched by
// purchase order processing. Precedence: all done, then any done (written
// with the space-separated literal), then any proses, then all pending,
// falling back to proses.
func DeriveLinkedStatus(items []MaterialRequestItem) MaterialRequestStatus {
	allDone := true
	allPending := true
	anyDone := false
	anyProses := false
	for _, item := range items {
		switch item.Status {
		case ItemStatusDone:
			anyDone = true
			allPending = false
		case ItemStatusProses:
			anyProses = true
			allDone = false
			allPending = false
		default:
			allDone = false
		}
	}
	switch {
	case allDone:
		return MRStatusDone
	case anyDone:
		return MRStatusLinkedPartialDone
	case anyProses:
		return MRStatusProses
	case allPending:
		return MRStatusPending
	default:
		return MRStatusProses
	}
}
