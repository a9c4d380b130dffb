package types

// MessageUser identifies a participant in a conversation.
type MessageUser struct {
	ID          ID     `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName,omitempty"`
}

// ItemRef is the minimal item reference attached to messages and
// conversations.
type ItemRef struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
}

// Message is a single chat message between two users about an item.
//
// Messages created locally on send carry a synthetic "temp-" prefixed ID
// until the server-confirmed copy arrives over the socket; the confirmed
// copy carries ReplacesID so callers can swap the placeholder instead of
// rendering a duplicate.
type Message struct {
	ID       ID          `json:"id"`
	Sender   MessageUser `json:"sender"`
	Receiver MessageUser `json:"receiver"`
	Item     *ItemRef    `json:"item,omitempty"`
	Content  string      `json:"messageContent"`
	Read     bool        `json:"isRead"`
	SentDate Timestamp   `json:"sentDate"`

	// ReplacesID is set on inbound messages that confirm an optimistic
	// local send. It is never serialized to the server.
	ReplacesID ID `json:"-"`
}

// OutboundMessage is the payload published to the chat send destination.
// The server assigns its own id to the stored message, so the client id is
// a local placeholder only.
type OutboundMessage struct {
	ID       string       `json:"id,omitempty"`
	Receiver MessageUser  `json:"receiver"`
	Item     *ItemRef     `json:"item,omitempty"`
	Content  string       `json:"messageContent"`
	SentDate Timestamp    `json:"sentDate"`
	Sender   *MessageUser `json:"sender,omitempty"`
}

// ConversationPreview is the inbox projection of a conversation,
// assembled server-side.
type ConversationPreview struct {
	ID                  ID          `json:"id"`
	OtherUser           MessageUser `json:"otherUser"`
	Item                ItemPreview `json:"item"`
	LastMessage         *Message    `json:"lastMessage"`
	UnreadMessagesCount int         `json:"unreadMessagesCount"`
	RelatedItem         *ItemRef    `json:"relatedItem,omitempty"`
}
