package core

// Client is a connected peer as seen by the coordinator. ID is the opaque
// connection identity minted by the transport layer; it is never reused
// across reconnects.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 16),
	}
}
