package models

// Message is one incoming chat message handed to the recognizer.
type Message struct {
	ID       string `json:"id,omitempty"` // ULID
	Nick     string `json:"nick"`         // Sender
	Channel  string `json:"channel"`      // Reply destination
	Body     string `json:"message"`
	IsPublic bool   `json:"is_public"`
}

// Reply is what the bot sends back to the message's channel.
type Reply struct {
	ID      string `json:"id"`
	Channel string `json:"channel"`
	Body    string `json:"reply"`
}
