package service

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Response is the uniform envelope returned for every backend call.
// Success is true exactly when Data is non-nil; Error is set otherwise.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Status  int    `json:"status"`
}

// OK builds a successful envelope. A nil data pointer is replaced by the zero value.
func OK[T any](data *T, status int) Response[T] {
	if data == nil {
		data = new(T)
	}
	return Response[T]{Success: true, Data: data, Status: status}
}

// Fail builds a failed envelope. An empty message is replaced by ErrRequestFailed.
func Fail[T any](msg string, status int) Response[T] {
	if msg == "" {
		msg = ErrRequestFailed
	}
	return Response[T]{Success: false, Error: msg, Status: status}
}

// Unauthorized reports a 401 that survived the refresh attempt.
func (r Response[T]) Unauthorized() bool {
	return !r.Success && r.Status == 401
}

// ErrorOr returns the envelope error, or fallback when it is empty.
func (r Response[T]) ErrorOr(fallback string) string {
	if r.Error != "" {
		return r.Error
	}
	return fallback
}

// Value returns the data or the zero value when the call failed.
func (r Response[T]) Value() T {
	if r.Data == nil {
		var zero T
		return zero
	}
	return *r.Data
}

// List decodes both a bare JSON array and a paginated {"count", "results"} object.
type List[T any] struct {
	Count   int
	Results []T
}

func (l *List[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &l.Results); err != nil {
			return err
		}
		l.Count = len(l.Results)
		return nil
	}

	var page struct {
		Count   *int `json:"count"`
		Results []T  `json:"results"`
	}
	if err := json.Unmarshal(data, &page); err != nil {
		return err
	}
	l.Results = page.Results
	l.Count = len(page.Results)
	if page.Count != nil {
		l.Count = *page.Count
	}
	return nil
}

// Items returns the results of a list envelope, or nil when the call failed.
func Items[T any](r Response[List[T]]) []T {
	if r.Data == nil {
		return nil
	}
	return r.Data.Results
}
