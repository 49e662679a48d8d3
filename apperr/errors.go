// Package apperr defines the error categories surfaced by the booking, search
// and rating services and their mapping onto HTTP statuses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an error for the response envelope.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindReferenceNotFound
	KindUpstream
	KindRatingOverflow
	KindCacheMiss
	KindInvalidPage
	KindPersistence
	KindDuplicate
	KindUnauthorized
	KindForbidden
)

var kindNames = map[Kind]string{
	KindInternal:          "internal_error",
	KindValidation:        "validation_error",
	KindReferenceNotFound: "reference_not_found",
	KindUpstream:          "upstream_error",
	KindRatingOverflow:    "rating_overflow",
	KindCacheMiss:         "cache_miss",
	KindInvalidPage:       "invalid_page",
	KindPersistence:       "persistence_error",
	KindDuplicate:         "duplicate_entity",
	KindUnauthorized:      "unauthorized",
	KindForbidden:         "forbidden",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindInternal]
}

// HTTPStatus returns the status code a handler answers with for this kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindReferenceNotFound, KindRatingOverflow, KindInvalidPage:
		return http.StatusBadRequest
	case KindCacheMiss:
		return http.StatusNotFound
	case KindUpstream:
		return http.StatusBadGateway
	case KindDuplicate:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error is a categorized application error. Message is safe to show to
// callers; Err keeps the underlying cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	// StatusCode is the supplier-reported status for KindUpstream.
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) error { return New(KindValidation, message) }

func ReferenceNotFound(format string, args ...interface{}) error {
	return New(KindReferenceNotFound, fmt.Sprintf(format, args...))
}

// Upstream reports a failed or non-ok supplier call.
func Upstream(statusCode int, message string) error {
	return &Error{Kind: KindUpstream, Message: message, StatusCode: statusCode}
}

func RatingOverflow(total int) error {
	return New(KindRatingOverflow, fmt.Sprintf("total rating weight %d exceeds 100", total))
}

func CacheMiss(key string) error {
	return New(KindCacheMiss, fmt.Sprintf("search results %q not found or expired", key))
}

func InvalidPage(page, totalPages int) error {
	return New(KindInvalidPage, fmt.Sprintf("page %d is out of range (total pages %d)", page, totalPages))
}

func Persistence(message string, err error) error { return Wrap(KindPersistence, message, err) }

func Duplicate(message string, err error) error { return Wrap(KindDuplicate, message, err) }

// KindOf extracts the category of err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// PublicMessage is the categorized message for err; uncategorized errors
// never leak their text.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "Internal server error"
}
