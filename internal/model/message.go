package model

import "time"

// Message is one line of conversation tied to an application. Sender and
// receiver are always the application's two parties (the candidate and the
// internship's owning employer); the service derives them, clients never
// supply them.
//
// Messages are immutable except for Read, which only the receiver may flip
// and which never goes back to false.
type Message struct {
	ID            string    `json:"id"`
	SenderID      string    `json:"senderId"`
	ReceiverID    string    `json:"receiverId"`
	ApplicationID string    `json:"applicationId"`
	Body          string    `json:"body"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"createdAt"`
}
