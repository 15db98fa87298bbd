package loadout

import "github.com/KirkDiggler/loadout-efficiency/internal/errors"

// Failure reasons reported by this package
const (
	ReasonInvalidModificationType = "INVALID_MODIFICATION_TYPE"
	ReasonInvalidRerolls          = "INVALID_REROLLS"
	ReasonUnknownStat             = "UNKNOWN_STAT"
	ReasonIncompatibleStat        = "INCOMPATIBLE_STAT"
	ReasonInvalidWeapon           = "INVALID_WEAPON"
	ReasonInvalidPoints           = "INVALID_POINTS"
)

// Sentinel errors for use with errors.Is
var (
	ErrInvalidModificationType = errors.InvalidArgument("invalid modification type").WithReason(ReasonInvalidModificationType)
	ErrInvalidRerolls          = errors.InvalidArgument("invalid rerolls").WithReason(ReasonInvalidRerolls)
	ErrUnknownStat             = errors.FailedPrecondition("ability targets non-existent stat").WithReason(ReasonUnknownStat)
	ErrIncompatibleStat        = errors.FailedPrecondition("incompatible stat value").WithReason(ReasonIncompatibleStat)
	ErrInvalidWeapon           = errors.InvalidArgument("invalid weapon").WithReason(ReasonInvalidWeapon)
	ErrInvalidPoints           = errors.InvalidArgument("invalid points").WithReason(ReasonInvalidPoints)
)
