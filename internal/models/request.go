// Package models defines the shared data types exchanged between the
// dispatcher, the loaders, and the external service adapters.
package models

// RequestType classifies an inbound request.
type RequestType string

const (
	// RequestTypeText carries a chat query or a control command.
	RequestTypeText RequestType = "text"
	// RequestTypeDocument carries the object key of an uploaded document.
	RequestTypeDocument RequestType = "document"
)

// Request is one inbound event. The transport (Lambda event or HTTP
// body) maps onto this shape.
type Request struct {
	UserID    string      `json:"user-id"`
	RequestID string      `json:"request-id"`
	Type      RequestType `json:"type"`
	Body      string      `json:"body"`
}

// Response is the reply for one request. Failures are propagated as
// errors rather than non-200 status codes.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Msg        string `json:"msg"`
}
