package domain

import "time"

// Conversation is the single message thread attached to a project.
type Conversation struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	ProjectID string    `gorm:"size:36;not null;uniqueIndex" json:"project_id"`
	Messages  []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Conversation) TableName() string { return "conversations" }

// Message is one entry in a conversation, ordered by CreatedAt.
type Message struct {
	ID             string    `gorm:"primarykey;size:36" json:"id"`
	ConversationID string    `gorm:"size:36;not null;index" json:"conversation_id"`
	SenderID       string    `gorm:"size:36;not null" json:"sender_id"`
	Sender         *User     `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	Read           bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Message) TableName() string { return "messages" }
