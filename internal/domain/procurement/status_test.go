package procurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func itemsWith(statuses ...ItemStatus) []MaterialRequestItem {
	items := make([]MaterialRequestItem, len(statuses))
	for i, s := range statuses {
		items[i].Status = s
	}
	return items
}

func TestDeriveCreationStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []ItemStatus
		want     MaterialRequestStatus
	}{
		{"all pending", []ItemStatus{ItemStatusPending, ItemStatusPending}, MRStatusRequested},
		{"all done", []ItemStatus{ItemStatusDone, ItemStatusDone}, MRStatusDone},
		{"mixed pending and done", []ItemStatus{ItemStatusPending, ItemStatusDone}, MRStatusPartial},
		{"mixed with proses", []ItemStatus{ItemStatusProses, ItemStatusPending}, MRStatusPartial},
		{"single pending", []ItemStatus{ItemStatusPending}, MRStatusRequested},
		{"single done", []ItemStatus{ItemStatusDone}, MRStatusDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveCreationStatus(itemsWith(tt.statuses...)))
		})
	}
}

func TestDeriveUpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []ItemStatus
		want     MaterialRequestStatus
	}{
		{"all pending wins first", []ItemStatus{ItemStatusPending, ItemStatusPending}, MRStatusPending},
		{"all done", []ItemStatus{ItemStatusDone, ItemStatusDone}, MRStatusDone},
		{"some done beats proses", []ItemStatus{ItemStatusDone, ItemStatusProses}, MRStatusPartialDone},
		{"some done with pending", []ItemStatus{ItemStatusDone, ItemStatusPending}, MRStatusPartialDone},
		{"proses without done", []ItemStatus{ItemStatusProses, ItemStatusPending}, MRStatusProses},
		{"all proses", []ItemStatus{ItemStatusProses, ItemStatusProses}, MRStatusProses},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveUpdateStatus(itemsWith(tt.statuses...)))
		})
	}
}

func TestDeriveLinkedStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []ItemStatus
		want     MaterialRequestStatus
	}{
		{"all done", []ItemStatus{ItemStatusDone, ItemStatusDone}, MRStatusDone},
		{"partial done uses space literal", []ItemStatus{ItemStatusDone, ItemStatusPending}, MRStatusLinkedPartialDone},
		{"done beats proses", []ItemStatus{ItemStatusDone, ItemStatusProses}, MRStatusLinkedPartialDone},
		{"any proses", []ItemStatus{ItemStatusProses, ItemStatusPending}, MRStatusProses},
		{"all pending", []ItemStatus{ItemStatusPending, ItemStatusPending}, MRStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveLinkedStatus(itemsWith(tt.statuses...)))
		})
	}
}

// The update and linked derivations intentionally write different
// literals for the partially-done state.
func TestPartialDoneLiteralsDiffer(t *testing.T) {
	items := itemsWith(ItemStatusDone, ItemStatusPending)
	assert.Equal(t, "partial_done", DeriveUpdateStatus(items).String())
	assert.Equal(t, "partial done", DeriveLinkedStatus(items).String())
}
