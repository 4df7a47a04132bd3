package printing

import "time"

// DocumentLine is one flattened line of a printable document
type DocumentLine struct {
	ItemName   string `json:"item_name"`
	ItemCode   string `json:"item_code"`
	Quantity   int    `json:"quantity"`
	Supplier   string `json:"supplier,omitempty"`
	Duration   string `json:"duration,omitempty"`
	ShelfSlot  string `json:"shelf_slot,omitempty"`
	LineStatus string `json:"line_status"`
}

// Document is a flattened plain-data projection of a workflow document,
// handed to a rendering collaborator. It carries no entity references;
// everything is resolved to display values.
type Document struct {
	Kind      string         `json:"kind"` // material_request, purchase_order, incoming_good_receipt, delivery_order
	Number    string         `json:"number"`
	Status    string         `json:"status"`
	Remarks   string         `json:"remarks,omitempty"`
	Location  string         `json:"location,omitempty"`
	CreatedBy string         `json:"created_by,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Lines     []DocumentLine `json:"lines"`
}

// Renderer turns a flattened document into an output byte stream. The
// output format is up to the implementation.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
}
