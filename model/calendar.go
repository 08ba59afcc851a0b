package model

// CalendarEvent is a dated contract event (renewal, expiry or meeting).
type CalendarEvent struct {
	ID                      ID      `json:"id,omitempty"`
	Title                   string  `json:"title"`
	Summary                 string  `json:"summary,omitempty"`
	Description             string  `json:"description,omitempty"`
	Category                string  `json:"category"`
	AssociatedContractID    *string `json:"associated_contract_id"`
	AssociatedContractTitle string  `json:"associated_contract_title,omitempty"`
	StartDatetime           string  `json:"start_datetime"`
	EndDatetime             string  `json:"end_datetime"`
	AllDay                  bool    `json:"all_day"`
}

// Event categories
const (
	CategoryRenewal = "renewal"
	CategoryExpiry  = "expiry"
	CategoryMeeting = "meeting"
)

// UntitledEvent is stored when an event is saved without a title.
const UntitledEvent = "Untitled Event"

// ContractID returns the associated contract id or "".
func (e *CalendarEvent) ContractID() string {
	if e.AssociatedContractID == nil {
		return ""
	}
	return *e.AssociatedContractID
}

// CategoryOrDefault maps unknown or empty categories to meeting.
func (e *CalendarEvent) CategoryOrDefault() string {
	switch e.Category {
	case CategoryRenewal, CategoryExpiry:
		return e.Category
	default:
		return CategoryMeeting
	}
}
