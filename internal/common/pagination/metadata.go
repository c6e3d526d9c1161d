package pagination

// Metadata contains pagination metadata included in listing responses.
type Metadata struct {
	Page    int   `json:"page"`     // Current page number (1-based)
	Limit   int   `json:"limit"`    // Items per page
	Total   int64 `json:"total"`    // Total matching items across all pages
	HasNext bool  `json:"has_next"` // Whether a further page exists
}

// NewMetadata builds metadata for the given page and total.
func NewMetadata(page, limit int, total int64) Metadata {
	return Metadata{
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasNext: HasNext(page, limit, total),
	}
}
