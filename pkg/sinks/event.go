package sinks

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Event summarizes one executed exchange. It never carries the response body.
type Event struct {
	ExchangeID  string    `json:"exchange_id"`
	Method      string    `json:"method"`
	URL         string    `json:"url"`
	Page        int       `json:"page"`
	Outcome     string    `json:"outcome"`
	StatusCode  int       `json:"status_code,omitempty"`
	Message     string    `json:"message,omitempty"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// NewEvent starts an Event for an exchange that began at startedAt.
func NewEvent(exchangeID, method, url string, page int, startedAt time.Time) Event {
	return Event{
		ExchangeID: exchangeID,
		Method:     method,
		URL:        url,
		Page:       page,
		StartedAt:  startedAt.UTC(),
	}
}

// Succeeded completes the event with the response status.
func (e Event) Succeeded(status int, message string) Event {
	e.Outcome = OutcomeSuccess
	e.StatusCode = status
	e.Message = message
	e.CompletedAt = time.Now().UTC()
	return e
}

// Failed completes the event with the failure message.
func (e Event) Failed(msg string) Event {
	e.Outcome = OutcomeError
	e.Error = msg
	e.CompletedAt = time.Now().UTC()
	return e
}
