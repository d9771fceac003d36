// Package apperrors provides chainable sentinel errors. A package declares a
// root error with New, derives narrower errors from it, and attaches causes at
// the call site. Every error in the chain stays reachable through errors.Is.
package apperrors

// Error is an error that can derive children and carry causes. All methods
// return a new Error and leave the receiver untouched.
type Error interface {
	error
	Unwrap() error // parent, for errors.Is / errors.As

	New(msg string) Error                  // child error with a new message
	Msg(msg string) Error                  // child error that also wraps the receiver's causes
	MsgErr(msg string, err ...error) Error // child error with a new message and extra causes
	Err(err ...error) Error                // same message, extra causes
	SetExpandError(bool) Error             // whether ErrorAll lists the causes
	SetStatusCode(int) Error               // attach an HTTP status code
	StatusCode() int                       // attached HTTP status code, 0 if none
	ErrorAll() string                      // message plus causes when expansion is on
}
