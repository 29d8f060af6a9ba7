package model

import "time"

// EventType classifies what happened on a simulated day.
type EventType string

const (
	EventSuccess   EventType = "SUCCESS"
	EventFailure   EventType = "FAILURE"
	EventSocial    EventType = "SOCIAL"
	EventFinancial EventType = "FINANCIAL"
	EventInternal  EventType = "INTERNAL"
	EventIdea      EventType = "IDEA"
	EventConflict  EventType = "CONFLICT"
)

// EventTypes is the fixed ordering used by the engine. Changing it changes
// every generated history.
var EventTypes = [7]EventType{
	EventSuccess,
	EventFailure,
	EventSocial,
	EventFinancial,
	EventInternal,
	EventIdea,
	EventConflict,
}

// Valid reports whether t is one of the seven known event types.
func (t EventType) Valid() bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Category is the sign classification of an impact score.
type Category string

const (
	CategoryPositive Category = "POSITIVE"
	CategoryNegative Category = "NEGATIVE"
	CategoryNeutral  Category = "NEUTRAL"
)

// Event is the immutable record of one simulated day. Only ViewedAt may change
// after creation, and only once.
type Event struct {
	ID          string     `json:"id"`
	ProfileID   string     `json:"profile_id"`
	DayNumber   int        `json:"day_number"`
	EventType   EventType  `json:"event_type"`
	Category    Category   `json:"category"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Intensity   int        `json:"intensity"`
	ImpactScore int        `json:"impact_score"`
	Details     Details    `json:"details"`
	GeneratedAt time.Time  `json:"generated_at"`
	ViewedAt    *time.Time `json:"viewed_at,omitempty"`
}

// Details is the payload stored alongside an event.
type Details struct {
	TemplateID         string       `json:"template_id"`
	TemplateTitle      string       `json:"template_title"`
	TemplateBaseImpact int          `json:"template_base_impact"`
	Tags               []string     `json:"tags,omitempty"`
	Context            EventContext `json:"context"`
}

// EventContext carries the short contextual note for a day.
type EventContext struct {
	Summary       string `json:"summary"`
	Day           int    `json:"day"`
	CharacterName string `json:"character_name"`
	Mood          string `json:"mood"`
	PreviousScore int    `json:"previous_score"`
}
