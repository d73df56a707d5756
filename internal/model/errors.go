package model

import "errors"

var (
	ErrNotFound = errors.New("not found")

	ErrInvalidSession = errors.New("session token invalid")
	ErrSessionRevoked = errors.New("session revoked")
	ErrSessionExpired = errors.New("session expired")

	ErrDeliveryFailed = errors.New("verification email delivery failed")
)
