package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/fant-market/client/internal/api"
	"github.com/fant-market/client/internal/logger"
	"github.com/fant-market/client/internal/ws"
	"github.com/fant-market/client/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// defaultMessageSort orders history by the entity's sent timestamp.
	defaultMessageSort = "sentAt,desc"

	// reconcileWindow is how far a confirmed message's timestamp may
	// drift from the optimistic local copy and still be treated as the
	// same message.
	reconcileWindow = 2 * time.Minute

	// pendingTTL bounds how long an unconfirmed optimistic send is
	// remembered.
	pendingTTL = 10 * time.Minute
)

var (
	// ErrNotAuthenticated is returned for messaging operations that need
	// a logged-in user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSuperseded is returned when a history page response arrives
	// after a newer request for the same conversation was issued;
	// callers drop the result instead of rendering pages out of order.
	ErrSuperseded = errors.New("page request superseded by a newer one")

	// ErrNoConversationID is returned when the initiate endpoint answers
	// without the expected identifier.
	ErrNoConversationID = errors.New("invalid response received from initiate conversation endpoint")
)

// Identity is the slice of the session store messaging needs.
type Identity interface {
	UserID() string
	LoggedIn() bool
}

// Transport is the messaging client surface used by this service.
type Transport interface {
	Connect(ctx context.Context, userID string) error
	SendMessage(msg types.OutboundMessage) error
	OnMessage(userID string, handler ws.Handler) *ws.Registration
	Disconnect()
}

// pendingSend tracks an optimistic local message awaiting its
// server-confirmed copy.
type pendingSend struct {
	tempID     types.ID
	receiverID types.ID
	content    string
	sentAt     time.Time
}

// MessageService orchestrates conversations: history over REST, delivery
// over the messaging transport, and reconciliation between the two.
type MessageService struct {
	api     *api.Client
	session Identity
	socket  Transport

	mu      sync.Mutex
	pending []pendingSend
	pageSeq map[string]uint64
}

func NewMessageService(client *api.Client, session Identity, socket Transport) *MessageService {
	return &MessageService{
		api:     client,
		session: session,
		socket:  socket,
		pageSeq: make(map[string]uint64),
	}
}

// InitializeMessaging opens the real-time connection for the current
// user. Without an authenticated session it logs a warning and does
// nothing.
func (s *MessageService) InitializeMessaging(ctx context.Context) error {
	userID := s.session.UserID()
	if userID == "" {
		logger.Warn("messaging not initialized: no authenticated user")
		return nil
	}
	return s.socket.Connect(ctx, userID)
}

// FetchConversations lists the caller's conversation previews. The
// backend identifies the user from the bearer token.
func (s *MessageService) FetchConversations(ctx context.Context) ([]types.ConversationPreview, error) {
	var previews []types.ConversationPreview
	if _, err := s.api.Get(ctx, "/messaging/conversations", nil, &previews); err != nil {
		return nil, err
	}
	return previews, nil
}

// FetchPagedMessages returns one page of the conversation history for an
// item. Responses racing a newer request for the same item lose:
// the stale result is discarded and ErrSuperseded returned, so the last
// requested page always wins regardless of network ordering.
func (s *MessageService) FetchPagedMessages(ctx context.Context, itemID string, page, size int, sort string) (types.Page[types.Message], error) {
	if sort == "" {
		sort = defaultMessageSort
	}

	s.mu.Lock()
	s.pageSeq[itemID]++
	seq := s.pageSeq[itemID]
	s.mu.Unlock()

	query := url.Values{}
	query.Set("itemId", itemID)
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	query.Set("sort", sort)

	var result types.Page[types.Message]
	if _, err := s.api.Get(ctx, "/messaging/messages", query, &result); err != nil {
		return types.Page[types.Message]{}, err
	}

	s.mu.Lock()
	stale := s.pageSeq[itemID] != seq
	s.mu.Unlock()
	if stale {
		return types.Page[types.Message]{}, ErrSuperseded
	}
	return result, nil
}

// ReadMessages marks messages as read. Only unread messages addressed to
// the current user are reported; when none qualify no request is made.
func (s *MessageService) ReadMessages(ctx context.Context, messages []types.Message) error {
	userID := s.session.UserID()

	var ids []int64
	for _, msg := range messages {
		if msg.Read || msg.Receiver.ID.String() != userID {
			continue
		}
		id, err := msg.ID.Int64()
		if err != nil {
			// Optimistic temp records have no server id to mark.
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	body := struct {
		MessageIDs []int64 `json:"messageIds"`
	}{MessageIDs: ids}
	_, err := s.api.Post(ctx, "/messaging/readall", nil, body, nil)
	return err
}

// SendMessage publishes a chat message over the socket and returns an
// optimistic local copy with a synthetic "temp-" id. When the
// server-confirmed copy arrives it is matched back to this record (see
// reconcile) so callers can replace rather than duplicate it.
func (s *MessageService) SendMessage(ctx context.Context, recipientID, content, itemID string) (types.Message, error) {
	userID := s.session.UserID()
	if userID == "" {
		return types.Message{}, ErrNotAuthenticated
	}

	tempID := types.ID("temp-" + uuid.NewString())
	now := types.NewTimestamp(time.Now())

	outbound := types.OutboundMessage{
		ID:       tempID.String(),
		Receiver: types.MessageUser{ID: types.ID(recipientID)},
		Content:  content,
		SentDate: now,
		Sender:   &types.MessageUser{ID: types.ID(userID), Username: "You"},
	}
	if itemID != "" {
		outbound.Item = &types.ItemRef{ID: types.ID(itemID)}
	}

	if err := s.socket.SendMessage(outbound); err != nil {
		return types.Message{}, err
	}

	s.mu.Lock()
	s.prunePendingLocked(now.Time)
	s.pending = append(s.pending, pendingSend{
		tempID:     tempID,
		receiverID: types.ID(recipientID),
		content:    content,
		sentAt:     now.Time,
	})
	s.mu.Unlock()

	local := types.Message{
		ID:       tempID,
		Sender:   types.MessageUser{ID: types.ID(userID), Username: "You"},
		Receiver: types.MessageUser{ID: types.ID(recipientID)},
		Item:     outbound.Item,
		Content:  content,
		SentDate: now,
	}
	return local, nil
}

// OnNewMessage registers a handler for inbound messages for the current
// user. Inbound copies of the caller's own optimistic sends are annotated
// with ReplacesID before the handler runs.
func (s *MessageService) OnNewMessage(handler func(types.Message)) (*ws.Registration, error) {
	userID := s.session.UserID()
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.socket.OnMessage(userID, func(msg types.Message) {
		s.reconcile(&msg)
		handler(msg)
	}), nil
}

// InitiateConversation finds or creates the conversation thread for an
// item and returns its identifier.
func (s *MessageService) InitiateConversation(ctx context.Context, itemID string) (types.ID, error) {
	query := url.Values{}
	query.Set("itemId", itemID)

	var resp struct {
		ConversationID types.ID `json:"conversationId"`
	}
	if _, err := s.api.Post(ctx, "/messaging/conversations/initiate", query, nil, &resp); err != nil {
		return "", fmt.Errorf("initiate conversation: %w", err)
	}
	if resp.ConversationID.IsZero() {
		return "", ErrNoConversationID
	}
	return resp.ConversationID, nil
}

// CleanupMessaging tears down the real-time connection and forgets any
// unconfirmed optimistic sends. Call on logout or shutdown.
func (s *MessageService) CleanupMessaging() {
	s.socket.Disconnect()
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

// reconcile matches a server-confirmed message against the optimistic
// sends awaiting confirmation. The backend assigns its own message id, so
// correlation is by receiver, content and a bounded timestamp window; a
// match stamps ReplacesID with the temp id.
func (s *MessageService) reconcile(msg *types.Message) {
	if msg.Sender.ID.String() != s.session.UserID() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.pending {
		if p.content != msg.Content || p.receiverID != msg.Receiver.ID {
			continue
		}
		drift := msg.SentDate.Sub(p.sentAt)
		if drift < -reconcileWindow || drift > reconcileWindow {
			continue
		}
		msg.ReplacesID = p.tempID
		s.pending = append(s.pending[:i:i], s.pending[i+1:]...)
		logger.Debug("reconciled optimistic message",
			zap.String("tempId", p.tempID.String()),
			zap.String("serverId", msg.ID.String()),
		)
		return
	}
}

func (s *MessageService) prunePendingLocked(now time.Time) {
	kept := s.pending[:0]
	for _, p := range s.pending {
		if now.Sub(p.sentAt) < pendingTTL {
			kept = append(kept, p)
		}
	}
	s.pending = kept
}
