package utils

import "errors"

var (
	ErrSessionNotFound = errors.New("quiz session not found")
	ErrUnknownOption   = errors.New("unknown option for step")
	ErrInvalidInput    = errors.New("invalid input")
	ErrPlanNotFound    = errors.New("plan not found")
	ErrPaymentProvider = errors.New("payment provider error")
	ErrDatabaseError   = errors.New("database error")
	ErrStepNotReached  = errors.New("quiz step not reached")
)
