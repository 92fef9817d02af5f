package domain

import "errors"

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

var (
	MessageFailedBodyRequest = "failed to parse request body"

	ErrParseUUID     = errors.New("failed to parse UUID")
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenInvalid  = errors.New("invalid or expired token")
	ErrTokenExpired  = errors.New("token expired")
)
