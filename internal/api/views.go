package api

import (
	"time"

	"github.com/lunara-app/lunara/internal/models"
	"github.com/lunara-app/lunara/internal/services"
)

type messageView struct {
	ID        uint      `json:"id"`
	Seq       uint64    `json:"seq"`
	Text      string    `json:"text"`
	IsBot     bool      `json:"isBot"`
	CreatedAt time.Time `json:"createdAt"`
}

func toMessageViews(messages []models.Message) []messageView {
	views := make([]messageView, 0, len(messages))
	for _, message := range messages {
		views = append(views, messageView{
			ID:        message.ID,
			Seq:       message.Seq,
			Text:      message.Text,
			IsBot:     message.IsBot,
			CreatedAt: message.CreatedAt,
		})
	}
	return views
}

type cycleEntryView struct {
	ID                uint      `json:"id"`
	StartDate         string    `json:"startDate"`
	DurationDays      int       `json:"durationDays"`
	CycleLengthDays   int       `json:"cycleLengthDays"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	NextExpectedStart *string   `json:"nextExpectedStart,omitempty"`
}

func toCycleEntryView(entry models.CycleEntry, includeEstimate bool) cycleEntryView {
	view := cycleEntryView{
		ID:              entry.ID,
		StartDate:       entry.StartDate.Format("2006-01-02"),
		DurationDays:    entry.DurationDays,
		CycleLengthDays: entry.CycleLengthDays,
		Notes:           entry.Notes,
		CreatedAt:       entry.CreatedAt,
	}
	if includeEstimate {
		estimate := services.NextExpectedStart(entry).Format("2006-01-02")
		view.NextExpectedStart = &estimate
	}
	return view
}

func toCycleEntryViews(entries []models.CycleEntry) []cycleEntryView {
	views := make([]cycleEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, toCycleEntryView(entry, false))
	}
	return views
}
