package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrSeatCountOutOfRange is returned when the requested seat count is outside 1-4.
	ErrSeatCountOutOfRange = errors.New("seat count out of range: you can book between 1 and 4 seats")
	// ErrUserNotFound is returned when no user exists for the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrEventNotFound is returned when no event exists for the given name or id.
	ErrEventNotFound = errors.New("event not found")
	// ErrEventAlreadyOccurred is returned when booking an event dated before today.
	ErrEventAlreadyOccurred = errors.New("cannot book seats for past events")
	// ErrCapacityExceeded is returned when the request does not fit the remaining capacity.
	ErrCapacityExceeded = errors.New("not enough seats available")
	// ErrDuplicateBooking is returned when the user already booked this event.
	ErrDuplicateBooking = errors.New("you have already booked this event")
	// ErrEventNameTaken is returned when creating an event whose name already exists.
	ErrEventNameTaken = errors.New("event name already exists")
	// ErrCapacityBelowBooked is returned when an update would shrink capacity under the seats already booked.
	ErrCapacityBelowBooked = errors.New("total capacity cannot be lower than seats already booked")
	// ErrTransientStore is returned on lock timeouts and lost connections.
	// The failed attempt left no partial writes, so the caller may retry.
	ErrTransientStore = errors.New("temporary storage failure, please retry")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Each failure kind
// keeps a stable code so the boundary layer never inspects free text.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrSeatCountOutOfRange):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_SEAT_COUNT")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEventNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EVENT_NOT_FOUND")
	case errors.Is(err, ErrEventAlreadyOccurred):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EVENT_ALREADY_OCCURRED")
	case errors.Is(err, ErrCapacityExceeded):
		return NewHTTPError(http.StatusConflict, err.Error(), "CAPACITY_EXCEEDED")
	case errors.Is(err, ErrDuplicateBooking):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_BOOKING")
	case errors.Is(err, ErrEventNameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EVENT_NAME_TAKEN")
	case errors.Is(err, ErrCapacityBelowBooked):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CAPACITY_BELOW_BOOKED")
	case errors.Is(err, ErrTransientStore):
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "TRANSIENT_STORE_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
