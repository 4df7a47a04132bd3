package procurement

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextDocumentNumber(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		last   string
		want   string
	}{
		{"first of sequence", PrefixMaterialRequest, "", "MR-001"},
		{"increments", PrefixMaterialRequest, "MR-001", "MR-002"},
		{"keeps padding below 100", PrefixPurchaseOrder, "PO-009", "PO-010"},
		{"crosses 100 unpadded", PrefixDeliveryOrder, "DO-099", "DO-100"},
		{"grows past padding width", PrefixReceipt, "IGR-999", "IGR-1000"},
		{"unparseable suffix restarts", PrefixMaterialRequest, "MR-abc", "MR-001"},
		{"missing separator restarts", PrefixMaterialRequest, "garbage", "MR-001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDocumentNumber(tt.prefix, tt.last))
		})
	}
}

func TestNextDocumentNumberSequenceChain(t *testing.T) {
	last := ""
	for i := 1; i <= 120; i++ {
		next := NextDocumentNumber(PrefixMaterialRequest, last)
		assert.Equal(t, fmt.Sprintf("MR-%03d", i), next)
		last = next
	}
}
