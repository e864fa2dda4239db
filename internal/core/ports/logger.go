package ports

import "go.trai.ch/modpack/internal/core/domain"

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)

	// Outcome reports how one identifier of a resolution run ended.
	Outcome(outcome domain.Outcome)
}
