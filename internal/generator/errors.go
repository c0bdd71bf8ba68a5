package generator

import "errors"

var (
	ErrInvalidTagLength        = errors.New("prefix must be exactly 4 characters long")
	ErrInvalidMachineID        = errors.New("machine id must be between 0 and 65535")
	ErrInvalidDateFormat       = errors.New("invalid date format")
	ErrInvalidDateTime         = errors.New("invalid date/time")
	ErrInvalidIdentifierLength = errors.New("identifier must be exactly 32 characters long")
	ErrInvalidBase62Character  = errors.New("invalid base62 character")
	ErrMalformedPayload        = errors.New("malformed identifier payload")
	ErrInvalidBatchSize        = errors.New("batch count must be between 1 and 1000")
)
