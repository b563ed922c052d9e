package constants

import "errors"

const (
	ConfigFolder   = "CONFIG_FOLDER"
	StatePath      = "STATE_PATH"
	StreamsPath    = "STREAMS_PATH"
	DifferencePath = "DIFFERENCE_PATH"
	EncryptionKey  = "ENCRYPTION_KEY"
	LogLevel       = "LOG_LEVEL"
	SyncID         = "SYNC_ID"

	BookmarksKey   = "bookmarks"
	LastRecordKey  = "last_record"
	DefaultAPIURL  = "https://api.clockify.me/api/v1"
	DefaultPerPage = 50
	MaxPerPage     = 5000

	DefaultRequestsPerSecond = 10
	DefaultRateBurst         = 5
	DefaultMaxRetries        = 3
	DefaultUserAgent         = "tap-clockify"
)

var (
	ErrRequirementsNotMet = errors.New("stream requirements not met")
	ErrStateDecode        = errors.New("failed to decode state file")
	ErrNonRetryable       = errors.New("non-retryable error")
	ErrInvalidConfig      = errors.New("invalid config")
)
