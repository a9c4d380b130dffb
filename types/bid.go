package types

// BidStatus is the lifecycle state of a bid.
type BidStatus string

const (
	BidStatusPending  BidStatus = "PENDING"
	BidStatusAccepted BidStatus = "ACCEPTED"
	BidStatusRejected BidStatus = "REJECTED"
)

// Bid is an offer placed on another user's item.
type Bid struct {
	ID             ID        `json:"id"`
	ItemID         ID        `json:"itemId"`
	BidderID       ID        `json:"bidderId"`
	BidderUsername string    `json:"bidderUsername"`
	Amount         float64   `json:"amount"`
	Comment        string    `json:"comment,omitempty"`
	Status         BidStatus `json:"status"`
	CreatedAt      Timestamp `json:"createdAt"`
	UpdatedAt      Timestamp `json:"updatedAt"`
}

// BidPayload is the request body for placing a bid.
type BidPayload struct {
	ItemID  int64   `json:"itemId"`
	Amount  float64 `json:"amount"`
	Comment string  `json:"comment,omitempty"`
}

// BidUpdate carries the fields a bidder may change while the bid is still
// pending.
type BidUpdate struct {
	Amount  *float64 `json:"amount,omitempty"`
	Comment string   `json:"comment,omitempty"`
}
