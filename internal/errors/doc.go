// Package errors provides the coded error type used across the arena engine.
//
// Every failure the engine reports is one of a small taxonomy, and the caller
// always receives it with the entity state left unchanged:
//   - NotFound: an entity id does not resolve
//   - PermissionDenied: the actor lacks permission, membership or ownership
//   - FailedPrecondition: the operation is illegal in the entity's lifecycle state
//   - InsufficientResources: a balance or requirement check failed
//   - InvalidArgument: malformed input shape or range
//
// A narrower cause travels as a reason in the metadata:
//
//	return errors.FailedPrecondition("rank too low for this floor").
//	    WithReason(errors.ReasonRankTooLow).
//	    WithMeta("required_rank", required)
//
// Wrapping keeps the code:
//
//	if err := repo.Save(tx, acct); err != nil {
//	    return errors.Wrap(err, "failed to save account")
//	}
//
// Checking:
//
//	if errors.IsFailedPrecondition(err) && errors.GetReason(err) == errors.ReasonBidTooLow {
//	    // ...
//	}
//
// Handlers convert with ToGRPCError; clients recover the original code and
// metadata with FromGRPCError.
package errors
