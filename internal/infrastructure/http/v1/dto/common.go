// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"billmint/internal/core/apperror"
	"billmint/internal/core/id"
	"billmint/internal/core/types"
)

// parseMoney parses a decimal string from the wire. A malformed value is a
// request defect and must never degrade to zero, so failures map to a
// validation error naming the offending field.
func parseMoney(s, field string) (types.Money, error) {
	m, err := types.NewMoneyFromString(s)
	if err != nil {
		return types.Zero(), apperror.NewValidation("invalid decimal value").
			WithDetail("field", field).
			WithDetail("value", s)
	}
	return m, nil
}

// parseLineMoney is parseMoney for table-part fields, tagging the error with
// the one-based line number.
func parseLineMoney(s, field string, lineNo int) (types.Money, error) {
	m, err := types.NewMoneyFromString(s)
	if err != nil {
		return types.Zero(), apperror.NewValidation("invalid decimal value").
			WithDetail("field", field).
			WithDetail("lineNo", lineNo).
			WithDetail("value", s)
	}
	return m, nil
}

// parseID parses an entity reference from the wire.
func parseID(s, field string) (id.ID, error) {
	parsed, err := id.Parse(s)
	if err != nil {
		return id.Nil(), apperror.NewValidation("invalid id format").
			WithDetail("field", field).
			WithDetail("value", s)
	}
	return parsed, nil
}

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any `json:"items"`
	TotalCount int `json:"totalCount"`
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// --- Status ---

// SetStatusRequest changes a document's lifecycle status.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
