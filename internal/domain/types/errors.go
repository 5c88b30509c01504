package types

import "errors"

// Error codes of the engine's public contract.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeConfigError  = "CONFIG_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL"
)

// Input validation failures (HTTP 400, not retryable).
var (
	ErrInvalidCoordinate   = errors.New("coordinate out of valid range")
	ErrUnknownVehicleClass = errors.New("unknown vehicle class")
	ErrNegativeDistance    = errors.New("distance must not be negative")
	ErrNegativeDuration    = errors.New("duration must not be negative")
	ErrDistanceTooLong     = errors.New("distance exceeds 500 km service limit")
	ErrNegativeTip         = errors.New("tip must not be negative")
)

// Tariff configuration failures (HTTP 500, startup aborts).
var (
	ErrTariffMissingKey   = errors.New("tariff table missing required key")
	ErrTariffNegativeRate = errors.New("tariff table contains a negative rate")
	ErrTariffInvalid      = errors.New("tariff table invalid")
	ErrTariffNotLoaded    = errors.New("tariff table not loaded")
)

// Resource errors.
var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrMeterNotFound   = errors.New("meter session not found")
	ErrMeterCompleted  = errors.New("meter session already completed")
	ErrForbidden       = errors.New("access to this resource is forbidden")
)

// IsInvalidInput reports whether err belongs to the INVALID_INPUT class.
func IsInvalidInput(err error) bool {
	for _, target := range []error{
		ErrInvalidCoordinate,
		ErrUnknownVehicleClass,
		ErrNegativeDistance,
		ErrNegativeDuration,
		ErrDistanceTooLong,
		ErrNegativeTip,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConfigError reports whether err belongs to the CONFIG_ERROR class.
func IsConfigError(err error) bool {
	for _, target := range []error{
		ErrTariffMissingKey,
		ErrTariffNegativeRate,
		ErrTariffInvalid,
		ErrTariffNotLoaded,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ErrorCode maps err to its public error code.
func ErrorCode(err error) string {
	switch {
	case IsInvalidInput(err):
		return CodeInvalidInput
	case IsConfigError(err):
		return CodeConfigError
	case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrMeterNotFound):
		return CodeNotFound
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrMeterCompleted):
		return CodeConflict
	default:
		return CodeInternal
	}
}
