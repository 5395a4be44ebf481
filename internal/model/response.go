package model

// Response is the envelope every API endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// NewSuccessResponse wraps data in a success envelope.
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewListResponse wraps a list in a success envelope with its count.
func NewListResponse(count int, data any) Response {
	return Response{Success: true, Count: &count, Data: data}
}

// NewMessageResponse returns a success envelope carrying only a message.
func NewMessageResponse(message string) Response {
	return Response{Success: true, Message: message}
}

// NewErrorResponse returns a failure envelope with a human-readable message.
func NewErrorResponse(message string) Response {
	return Response{Success: false, Message: message}
}
