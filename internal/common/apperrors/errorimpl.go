package apperrors

import (
	"errors"
	"strings"
)

type appError struct {
	msg         string
	parent      error
	causes      []error
	statusCode  int
	expandError bool
}

// New creates a root error with the given message.
func New(msg string) Error {
	return &appError{msg: msg}
}

func (e *appError) Error() string {
	return e.msg
}

// ErrorAll returns the message followed by every cause when expansion is
// enabled, and the bare message otherwise.
func (e *appError) ErrorAll() string {
	if !e.expandError || len(e.causes) == 0 {
		return e.msg
	}
	var b strings.Builder
	b.WriteString(e.msg)
	for _, err := range e.causes {
		if err == e.parent {
			continue
		}
		b.WriteString(": ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *appError) Unwrap() error {
	return e.parent
}

func (e *appError) New(msg string) Error {
	return &appError{
		msg:         msg,
		parent:      e,
		statusCode:  e.statusCode,
		expandError: e.expandError,
	}
}

func (e *appError) Msg(msg string) Error {
	return &appError{
		msg:         msg,
		parent:      e,
		causes:      append([]error{e}, e.causes...),
		statusCode:  e.statusCode,
		expandError: e.expandError,
	}
}

func (e *appError) MsgErr(msg string, errs ...error) Error {
	return &appError{
		msg:         msg,
		parent:      e,
		causes:      append([]error{e}, errs...),
		statusCode:  e.statusCode,
		expandError: e.expandError,
	}
}

func (e *appError) Err(errs ...error) Error {
	return e.MsgErr(e.msg, errs...)
}

func (e *appError) SetExpandError(flag bool) Error {
	cp := *e
	cp.expandError = flag
	return &cp
}

func (e *appError) SetStatusCode(code int) Error {
	cp := *e
	cp.statusCode = code
	return &cp
}

func (e *appError) StatusCode() int {
	return e.statusCode
}

// Is matches the parent chain and every attached cause.
func (e *appError) Is(target error) bool {
	if target == nil {
		return false
	}
	if error(e) == target {
		return true
	}
	if e.parent != nil && errors.Is(e.parent, target) {
		return true
	}
	for _, err := range e.causes {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
