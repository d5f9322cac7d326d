package models

// Fallback values used when a product could not be hydrated and the consumed
// item carries no usable embedded data.
const (
	UnknownProductID   = "unknown"
	UnknownProductName = "Unknown Product"
)

// A catalog entry from the Yazio product endpoint. Identity is the ID; two
// products with the same ID are interchangeable.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nutrients Nutrients `json:"nutrients"`
}
