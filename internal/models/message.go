package models

import "time"

// Message is one side of a chat turn. Rows are append-only: the orchestrator
// creates them in pairs (user prompt, bot reply) and nothing ever mutates or
// deletes them.
//
// Seq is a per-user monotonic sequence allocated inside the insert
// transaction. History ordering uses Seq, not CreatedAt, so near-simultaneous
// turns cannot tie or invert under clock skew.
type Message struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_user_seq"`
	Seq       uint64    `gorm:"not null;uniqueIndex:uidx_user_seq"`
	Text      string    `gorm:"not null"`
	IsBot     bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

// VoiceMessageMarker is persisted as the user-side text of a voice turn in
// place of a transcript.
const VoiceMessageMarker = "🎤 [Voice Message]"
