package service

import "errors"

// AuthFailedMessage is the only text a client ever sees for a credential or
// token failure.
const AuthFailedMessage = "Auth failed"

var (
	ErrValidation = errors.New("validation") // 400
	ErrAuthFailed = errors.New("auth failed") // 401
	ErrNotFound   = errors.New("not found")   // 404
	ErrConflict   = errors.New("conflict")    // 409
)
