// Package errors provides structured, coded errors for the loadout analysis service.
//
// Every failure carries a Code (the broad category, mapped onto HTTP and gRPC
// statuses) and optionally a Reason (the specific failure within that category).
// Domain packages export sentinel errors built with WithReason so callers can
// branch on the exact cause:
//
//	_, err := amount.New(6, 1)
//	if errors.Is(err, amount.ErrInvalidRange) {
//	    // stop was below start
//	}
//
// # Creating errors
//
//	err := errors.NotFoundf("weapon %s not found", id)
//	err := errors.InvalidArgument("points must not be negative").WithMeta("points", p)
//	err := errors.FailedPreconditionf("stat %s does not exist", name).WithReason(ReasonUnknownStat)
//
// # Wrapping
//
// Wrap keeps the code, reason and metadata of a wrapped *Error and defaults plain
// errors to CodeInternal:
//
//	if err := repo.Put(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to store weapon")
//	}
//
// # Layer guidelines
//
// Core packages (amount, loadout, engine) return InvalidArgument, OutOfRange and
// FailedPrecondition errors with reasons. Repositories return NotFound for missing
// records and wrap storage failures. Handlers translate codes with Code.HTTPStatus
// and report the canonical gRPC code from Status next to it.
package errors
