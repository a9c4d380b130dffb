package types

// Category is a listing category, optionally nested under a parent.
type Category struct {
	ID       ID        `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"imageUrl,omitempty"`
	Parent   *Category `json:"parent,omitempty"`
}

// CategoryRequest is the admin payload for creating or updating a
// category. The backend expects the parent id, never the full parent
// object.
type CategoryRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
	ParentID *int64 `json:"parentId,omitempty"`
}

// CategoryRecommendation is a probability distribution over category
// names derived from the user's browsing history.
type CategoryRecommendation struct {
	Distribution map[string]float64 `json:"distribution"`
}
