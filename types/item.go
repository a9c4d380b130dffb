package types

// ItemPreview is the lightweight projection used by listing and search
// results.
type ItemPreview struct {
	ID         ID      `json:"id"`
	Title      string  `json:"title"`
	ImageURL   string  `json:"imageUrl"`
	Price      float64 `json:"price"`
	CategoryID ID      `json:"categoryId"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
}

// ItemDetails is the full item view returned by /items/details/{id}.
type ItemDetails struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Contact     string   `json:"contact"`
	ImageURLs   []string `json:"imageUrls"`
	Latitude    float64  `json:"latitude,omitempty"`
	Longitude   float64  `json:"longitude,omitempty"`
	SellerID    ID       `json:"sellerId"`
}

// ItemCreate is the payload for creating or updating a listing.
type ItemCreate struct {
	CategoryID       int64    `json:"categoryId"`
	BriefDescription string   `json:"briefDescription"`
	FullDescription  string   `json:"fullDescription"`
	Price            float64  `json:"price"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	Images           []string `json:"images,omitempty"`
}

// ItemStatus is the listing lifecycle state.
type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "ACTIVE"
	ItemStatusArchived ItemStatus = "ARCHIVED"
	ItemStatusSold     ItemStatus = "SOLD"
	ItemStatusReserved ItemStatus = "RESERVED"
)

// ItemSearchParams are the filter criteria for /items/search. Zero-valued
// fields are omitted from the query so the server treats them as
// unconstrained.
type ItemSearchParams struct {
	SearchTerm    string
	MinPrice      *float64
	MaxPrice      *float64
	Status        ItemStatus
	CategoryName  string
	UserLatitude  *float64
	UserLongitude *float64
	// MaxDistance is the geo-radius in kilometers around the user
	// position.
	MaxDistance *float64
	Page        int
	Size        int
	Sort        string
}

// RecommendedItemsRequest asks for items drawn according to a category
// probability distribution.
type RecommendedItemsRequest struct {
	Distribution map[string]float64 `json:"distribution"`
	Limit        int                `json:"limit"`
}
