package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fant-market/client/internal/ws"
	"github.com/fant-market/client/types"
	"github.com/go-chi/chi/v5"
)

type fakeIdentity struct {
	userID string
}

func (f fakeIdentity) UserID() string { return f.userID }
func (f fakeIdentity) LoggedIn() bool { return f.userID != "" }

// fakeTransport records traffic instead of opening a socket. Handler
// registration is delegated to a real client so the returned handles
// behave exactly as in production.
type fakeTransport struct {
	inner        *ws.Client
	connected    string
	disconnected bool
	sent         []types.OutboundMessage
	handler      ws.Handler
	sendErr      error
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{inner: ws.NewClient("ws://unused", nil, nil)}
}

func (f *fakeTransport) Connect(ctx context.Context, userID string) error {
	f.connected = userID
	return nil
}

func (f *fakeTransport) SendMessage(msg types.OutboundMessage) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeTransport) OnMessage(userID string, handler ws.Handler) *ws.Registration {
	f.handler = handler
	return f.inner.OnMessage(userID, handler)
}

func (f *fakeTransport) Disconnect() {
	f.disconnected = true
	f.inner.Disconnect()
}

func TestInitializeMessaging(t *testing.T) {
	socket := newFakeTransport()
	s := NewMessageService(nil, fakeIdentity{userID: "7"}, socket)
	if err := s.InitializeMessaging(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if socket.connected != "7" {
		t.Fatalf("connected as %q", socket.connected)
	}
}

func TestInitializeMessagingAnonymousIsNoop(t *testing.T) {
	socket := newFakeTransport()
	s := NewMessageService(nil, fakeIdentity{}, socket)
	if err := s.InitializeMessaging(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if socket.connected != "" {
		t.Fatal("connected without a user")
	}
}

func TestReadMessagesFiltersAndPosts(t *testing.T) {
	var gotBody struct {
		MessageIDs []int64 `json:"messageIds"`
	}
	var calls int32
	r := chi.NewRouter()
	r.Post("/messaging/readall", func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt32(&calls, 1)
		if err := json.NewDecoder(req.Body).Decode(&gotBody); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	s := NewMessageService(newTestAPI(t, r), fakeIdentity{userID: "7"}, newFakeTransport())

	messages := []types.Message{
		{ID: "1", Receiver: types.MessageUser{ID: "7"}},
		{ID: "2", Receiver: types.MessageUser{ID: "7"}},
		{ID: "3", Receiver: types.MessageUser{ID: "7"}, Read: true},
		{ID: "4", Receiver: types.MessageUser{ID: "8"}},
		{ID: "temp-abc", Receiver: types.MessageUser{ID: "7"}},
	}
	if err := s.ReadMessages(context.Background(), messages); err != nil {
		t.Fatalf("read messages: %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if len(gotBody.MessageIDs) != 2 || gotBody.MessageIDs[0] != 1 || gotBody.MessageIDs[1] != 2 {
		t.Fatalf("messageIds = %v, want [1 2]", gotBody.MessageIDs)
	}
}

func TestReadMessagesNothingToMark(t *testing.T) {
	var calls int32
	r := chi.NewRouter()
	r.Post("/messaging/readall", func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusOK)
	})
	s := NewMessageService(newTestAPI(t, r), fakeIdentity{userID: "7"}, newFakeTransport())

	messages := []types.Message{
		{ID: "1", Receiver: types.MessageUser{ID: "7"}, Read: true},
		{ID: "2", Receiver: types.MessageUser{ID: "8"}},
	}
	if err := s.ReadMessages(context.Background(), messages); err != nil {
		t.Fatalf("read messages: %v", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("calls = %d, want 0", calls)
	}
}

func TestFetchPagedMessagesDefaultsSort(t *testing.T) {
	var gotQuery url.Values
	r := chi.NewRouter()
	r.Get("/messaging/messages", func(w http.ResponseWriter, req *http.Request) {
		gotQuery = req.URL.Query()
		w.Write([]byte(`{"content":[{"id":5,"messageContent":"hei","sentDate":"2025-03-01 12:30:00"}]}`))
	})
	s := NewMessageService(newTestAPI(t, r), fakeIdentity{userID: "7"}, newFakeTransport())

	page, err := s.FetchPagedMessages(context.Background(), "10", 0, 20, "")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotQuery.Get("itemId") != "10" || gotQuery.Get("sort") != defaultMessageSort {
		t.Fatalf("query = %v", gotQuery)
	}
	if len(page.Content) != 1 || page.Content[0].Content != "hei" {
		t.Fatalf("content = %+v", page.Content)
	}
	if page.Content[0].SentDate.IsZero() {
		t.Error("sentDate not parsed")
	}
}

func TestFetchPagedMessagesLastRequestWins(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	r := chi.NewRouter()
	r.Get("/messaging/messages", func(w http.ResponseWriter, req *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
		}
		w.Write([]byte(`{"content":[]}`))
	})
	s := NewMessageService(newTestAPI(t, r), fakeIdentity{userID: "7"}, newFakeTransport())

	firstResult := make(chan error, 1)
	go func() {
		_, err := s.FetchPagedMessages(context.Background(), "10", 0, 20, "")
		firstResult <- err
	}()

	<-started
	if _, err := s.FetchPagedMessages(context.Background(), "10", 1, 20, ""); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	close(release)

	if err := <-firstResult; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("first fetch returned %v, want ErrSuperseded", err)
	}
}

func TestSendMessageOptimisticCopy(t *testing.T) {
	socket := newFakeTransport()
	s := NewMessageService(nil, fakeIdentity{userID: "7"}, socket)

	msg, err := s.SendMessage(context.Background(), "8", "hello", "10")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !msg.ID.IsTemp() {
		t.Errorf("local id %q is not a temp id", msg.ID)
	}
	if msg.Receiver.ID != "8" || msg.Content != "hello" || msg.Item == nil || msg.Item.ID != "10" {
		t.Fatalf("local copy = %+v", msg)
	}
	if msg.SentDate.IsZero() {
		t.Error("local copy has no timestamp")
	}

	if len(socket.sent) != 1 {
		t.Fatalf("published %d messages", len(socket.sent))
	}
	out := socket.sent[0]
	if out.ID != msg.ID.String() || out.Sender == nil || out.Sender.ID != "7" {
		t.Fatalf("outbound = %+v", out)
	}
}

func TestSendMessageRequiresAuth(t *testing.T) {
	s := NewMessageService(nil, fakeIdentity{}, newFakeTransport())
	if _, err := s.SendMessage(context.Background(), "8", "hello", ""); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("got %v, want ErrNotAuthenticated", err)
	}
}

func TestSendMessageTransportError(t *testing.T) {
	socket := newFakeTransport()
	socket.sendErr = errors.New("socket closed")
	s := NewMessageService(nil, fakeIdentity{userID: "7"}, socket)
	if _, err := s.SendMessage(context.Background(), "8", "hello", ""); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestReconcileStampsReplacesID(t *testing.T) {
	socket := newFakeTransport()
	s := NewMessageService(nil, fakeIdentity{userID: "7"}, socket)

	local, err := s.SendMessage(context.Background(), "8", "hello", "")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	var got types.Message
	if _, err := s.OnNewMessage(func(msg types.Message) { got = msg }); err != nil {
		t.Fatalf("register: %v", err)
	}

	// The server-confirmed copy arrives with its own id and timestamp.
	socket.handler(types.Message{
		ID:       "501",
		Sender:   types.MessageUser{ID: "7", Username: "alice"},
		Receiver: types.MessageUser{ID: "8"},
		Content:  "hello",
		SentDate: types.NewTimestamp(time.Now().Add(3 * time.Second)),
	})

	if got.ReplacesID != local.ID {
		t.Fatalf("ReplacesID = %q, want %q", got.ReplacesID, local.ID)
	}

	// A second identical frame no longer matches; the pending record is
	// consumed by the first confirmation.
	socket.handler(types.Message{
		ID:       "502",
		Sender:   types.MessageUser{ID: "7"},
		Receiver: types.MessageUser{ID: "8"},
		Content:  "hello",
		SentDate: types.NewTimestamp(time.Now()),
	})
	if got.ReplacesID != "" {
		t.Fatalf("second frame reconciled to %q", got.ReplacesID)
	}
}

func TestReconcileIgnoresOtherSenders(t *testing.T) {
	socket := newFakeTransport()
	s := NewMessageService(nil, fakeIdentity{userID: "7"}, socket)

	if _, err := s.SendMessage(context.Background(), "8", "hello", ""); err != nil {
		t.Fatalf("send: %v", err)
	}
	var got types.Message
	if _, err := s.OnNewMessage(func(msg types.Message) { got = msg }); err != nil {
		t.Fatalf("register: %v", err)
	}

	socket.handler(types.Message{
		ID:       "600",
		Sender:   types.MessageUser{ID: "8"},
		Receiver: types.MessageUser{ID: "7"},
		Content:  "hello",
		SentDate: types.NewTimestamp(time.Now()),
	})
	if got.ReplacesID != "" {
		t.Fatalf("inbound from another user reconciled to %q", got.ReplacesID)
	}
}

func TestOnNewMessageRequiresAuth(t *testing.T) {
	s := NewMessageService(nil, fakeIdentity{}, newFakeTransport())
	if _, err := s.OnNewMessage(func(types.Message) {}); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("got %v, want ErrNotAuthenticated", err)
	}
}

func TestInitiateConversation(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/messaging/conversations/initiate", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Query().Get("itemId") != "10" {
			http.Error(w, "missing itemId", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"conversationId": 33}`))
	})
	s := NewMessageService(newTestAPI(t, r), fakeIdentity{userID: "7"}, newFakeTransport())

	id, err := s.InitiateConversation(context.Background(), "10")
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if id != "33" {
		t.Fatalf("id = %q, want 33", id)
	}
}

func TestInitiateConversationMissingID(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/messaging/conversations/initiate", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{}`))
	})
	s := NewMessageService(newTestAPI(t, r), fakeIdentity{userID: "7"}, newFakeTransport())

	if _, err := s.InitiateConversation(context.Background(), "10"); !errors.Is(err, ErrNoConversationID) {
		t.Fatalf("got %v, want ErrNoConversationID", err)
	}
}

func TestFetchConversations(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/messaging/conversations", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`[{
			"id": 1,
			"otherUser": {"id": 8, "username": "bob"},
			"item": {"id": 10, "title": "Skis", "price": 1500},
			"lastMessage": {"id": 5, "messageContent": "hei", "isRead": false, "sentDate": "2025-03-01T12:30:00Z"},
			"unreadMessagesCount": 2
		}]`))
	})
	s := NewMessageService(newTestAPI(t, r), fakeIdentity{userID: "7"}, newFakeTransport())

	previews, err := s.FetchConversations(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(previews) != 1 {
		t.Fatalf("previews = %+v", previews)
	}
	p := previews[0]
	if p.OtherUser.Username != "bob" || p.UnreadMessagesCount != 2 || p.LastMessage == nil {
		t.Fatalf("preview = %+v", p)
	}
	if !strings.EqualFold(p.Item.Title, "skis") {
		t.Fatalf("item = %+v", p.Item)
	}
}

func TestCleanupMessaging(t *testing.T) {
	socket := newFakeTransport()
	s := NewMessageService(nil, fakeIdentity{userID: "7"}, socket)
	if _, err := s.SendMessage(context.Background(), "8", "hello", ""); err != nil {
		t.Fatalf("send: %v", err)
	}

	s.CleanupMessaging()
	if !socket.disconnected {
		t.Error("transport not disconnected")
	}

	// Pending optimistic sends are forgotten; a late confirmation no
	// longer reconciles.
	var got types.Message
	if _, err := s.OnNewMessage(func(msg types.Message) { got = msg }); err != nil {
		t.Fatalf("register: %v", err)
	}
	socket.handler(types.Message{
		ID:       "700",
		Sender:   types.MessageUser{ID: "7"},
		Receiver: types.MessageUser{ID: "8"},
		Content:  "hello",
		SentDate: types.NewTimestamp(time.Now()),
	})
	if got.ReplacesID != "" {
		t.Fatalf("stale pending reconciled to %q", got.ReplacesID)
	}
}
