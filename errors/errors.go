// Package errors defines the typed error variants surfaced by stake-account
// operations. Callers pattern-match against these sentinels with errors.Is;
// no operation returns a bare string.
package errors

import stderrors "errors"

var (
	// ErrMissingRequiredSignature is returned when an operation that requires
	// the account's signer bit is invoked unsigned.
	ErrMissingRequiredSignature = stderrors.New("stake: missing required signature")

	// ErrInsufficientFunds is returned when an operation would move more
	// lamports than the account holds, or would delegate/withdraw below the
	// locked amount.
	ErrInsufficientFunds = stderrors.New("stake: insufficient funds")

	// ErrInvalidAccountData is returned when an operation is invoked against
	// an account whose StakeState does not match what the operation expects.
	ErrInvalidAccountData = stderrors.New("stake: invalid account data")

	// ErrInvalidArgument is returned when an operation's arguments are
	// inconsistent with the account's persisted state (e.g. a voter pubkey
	// mismatch on redemption).
	ErrInvalidArgument = stderrors.New("stake: invalid argument")

	// ErrUnbalancedInstruction is returned when a rewards pool lacks the
	// lamports needed to cover a computed redemption payout.
	ErrUnbalancedInstruction = stderrors.New("stake: unbalanced instruction")

	// ErrNothingToCollect is the "soft" error returned by redemption when the
	// voter has not accrued any new credits since the watermark. It is
	// expected traffic, not a fault.
	ErrNothingToCollect = stderrors.New("stake: nothing to collect")
)

// CustomError wraps ErrNothingToCollect with the numeric code the on-chain
// program surfaces it as (CustomError(1)).
type CustomError struct {
	Code int
}

// Error satisfies the error interface.
func (e *CustomError) Error() string {
	return ErrNothingToCollect.Error()
}

// Unwrap enables errors.Is(err, ErrNothingToCollect).
func (e *CustomError) Unwrap() error {
	return ErrNothingToCollect
}

// NothingToCollect constructs the CustomError(1) sentinel used by
// redeem_vote_credits when calculate_rewards yields no reward.
func NothingToCollect() error {
	return &CustomError{Code: 1}
}
