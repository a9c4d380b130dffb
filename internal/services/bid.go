package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fant-market/client/internal/api"
	"github.com/fant-market/client/types"
)

var (
	// ErrBidsForbidden is returned when the caller is not allowed to see
	// an item's bids (only the seller may).
	ErrBidsForbidden = errors.New("you are not authorized to view bids for this item")

	// ErrBidsNotFound is returned when the item or its bids do not exist.
	ErrBidsNotFound = errors.New("item or bids not found")

	// ErrBidNotPending is returned when updating a bid that has already
	// been accepted or rejected.
	ErrBidNotPending = errors.New("cannot update this bid as it is no longer pending")
)

// BidService wraps the order/bid endpoints.
type BidService struct {
	api *api.Client
}

func NewBidService(client *api.Client) *BidService {
	return &BidService{api: client}
}

// Place submits a bid on an item and returns the response status.
func (s *BidService) Place(ctx context.Context, bid types.BidPayload) (int, error) {
	status, err := s.api.Post(ctx, "/orders/bid", nil, bid, nil)
	if err != nil {
		return status, fmt.Errorf("failed to place bid (status %d): %w", errStatus(err), err)
	}
	return status, nil
}

// FetchPagedUserBids returns the authenticated user's bids.
func (s *BidService) FetchPagedUserBids(ctx context.Context, p types.Pageable) (types.Page[types.Bid], error) {
	var page types.Page[types.Bid]
	if _, err := s.api.Get(ctx, "/orders/bids", pageQuery(p), &page); err != nil {
		return types.Page[types.Bid]{}, fmt.Errorf("failed to fetch paginated user bids: %w", err)
	}
	return page, nil
}

// FetchBidsForItem returns all bids placed on an item. Only the seller is
// authorized; a 403 and 404 are translated into user-facing errors.
func (s *BidService) FetchBidsForItem(ctx context.Context, itemID string) ([]types.Bid, error) {
	var bids []types.Bid
	if _, err := s.api.Get(ctx, "/orders/item/"+itemID, nil, &bids); err != nil {
		switch {
		case api.IsStatus(err, http.StatusForbidden):
			return nil, ErrBidsForbidden
		case api.IsStatus(err, http.StatusNotFound):
			return nil, ErrBidsNotFound
		default:
			return nil, fmt.Errorf("failed to fetch bids (status %d): %w", errStatus(err), err)
		}
	}
	return bids, nil
}

// Accept accepts a bid. Requires the seller's session.
func (s *BidService) Accept(ctx context.Context, itemID, bidderID string) (int, error) {
	return s.decide(ctx, "/orders/accept", itemID, bidderID, "accept")
}

// Reject rejects a bid. Requires the seller's session.
func (s *BidService) Reject(ctx context.Context, itemID, bidderID string) (int, error) {
	return s.decide(ctx, "/orders/reject", itemID, bidderID, "reject")
}

func (s *BidService) decide(ctx context.Context, path, itemID, bidderID, verb string) (int, error) {
	query := url.Values{}
	query.Set("itemId", itemID)
	query.Set("bidderId", bidderID)
	status, err := s.api.Post(ctx, path, query, nil, nil)
	if err != nil {
		return status, fmt.Errorf("failed to %s bid (status %d): %w", verb, errStatus(err), err)
	}
	return status, nil
}

// DeleteMy retracts the caller's bid on an item.
func (s *BidService) DeleteMy(ctx context.Context, itemID string) (int, error) {
	status, err := s.api.Delete(ctx, "/orders/delete/"+itemID, nil)
	if err != nil {
		return status, fmt.Errorf("failed to delete bid (status %d): %w", errStatus(err), err)
	}
	return status, nil
}

// UpdateMy changes the caller's pending bid on an item. Bids that have
// left PENDING can no longer be updated.
func (s *BidService) UpdateMy(ctx context.Context, itemID string, update types.BidUpdate) (int, error) {
	status, err := s.api.Put(ctx, "/orders/update/"+itemID, nil, update, nil)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) &&
			apiErr.StatusCode == http.StatusBadRequest &&
			strings.Contains(apiErr.Message, "not in PENDING status") {
			return status, ErrBidNotPending
		}
		return status, fmt.Errorf("failed to update bid (status %d): %w", errStatus(err), err)
	}
	return status, nil
}

// errStatus reports the HTTP status behind err, defaulting to 500 for
// transport-level failures that never produced a response.
func errStatus(err error) int {
	if status := api.StatusCode(err); status != 0 {
		return status
	}
	return http.StatusInternalServerError
}
