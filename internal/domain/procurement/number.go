package procurement

import (
	"fmt"
	"strconv"
	"strings"
)

// Document number prefixes
const (
	PrefixMaterialRequest = "MR"
	PrefixPurchaseOrder   = "PO"
	PrefixDeliveryOrder   = "DO"
	PrefixReceipt         = "IGR"
)

// NextDocumentNumber produces the next sequence number for a document
// type as <PREFIX>-NNN, zero-padded to three digits. An empty last
// number starts the sequence at <PREFIX>-001. An unparseable last number
// also yields <PREFIX>-001 rather than failing the request; callers must
// serialize the read of the last number and the insert of the new
// document inside one transaction.
func NextDocumentNumber(prefix, last string) string {
	if last == "" {
		return fmt.Sprintf("%s-%03d", prefix, 1)
	}
	idx := strings.LastIndex(last, "-")
	if idx < 0 {
		return fmt.Sprintf("%s-%03d", prefix, 1)
	}
	n, err := strconv.Atoi(last[idx+1:])
	if err != nil {
		return fmt.Sprintf("%s-%03d", prefix, 1)
	}
	return fmt.Sprintf("%s-%03d", prefix, n+1)
}
