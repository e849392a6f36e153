package adapter

type ErrorCode int

const (
	DefaultError ErrorCode = iota
	StoreError
	InvalidPolicy
)

const (
	defaultErrorDescription  = "An unknown failure has occurred"
	storeErrorDescription    = "An error occurred while interacting with the policy store"
	invalidPolicyDescription = "invalid load policy"
)

// PolicyStoreError represents an error that occurred during the policy store operations.
type PolicyStoreError struct {
	Code        ErrorCode
	Description string
	Cause       error
}

// Error returns the description of the PolicyStoreError, followed by the
// underlying store error when one is present.
// It implements the error interface.
func (e *PolicyStoreError) Error() string {
	if e.Cause != nil {
		return e.Description + ": " + e.Cause.Error()
	}
	return e.Description
}

// Unwrap returns the underlying store error, if any.
func (e *PolicyStoreError) Unwrap() error {
	return e.Cause
}

func NewDefaultError() *PolicyStoreError {
	return &PolicyStoreError{
		Code:        DefaultError,
		Description: defaultErrorDescription,
	}
}

// NewStoreError wraps a failure reported by the underlying store client.
// The cause is surfaced as-is and never retried.
func NewStoreError(cause error) *PolicyStoreError {
	return &PolicyStoreError{
		Code:        StoreError,
		Description: storeErrorDescription,
		Cause:       cause,
	}
}

// NewInvalidPolicyError reports a stored item that decoded to an empty policy
// type or an empty rule during a load.
func NewInvalidPolicyError() *PolicyStoreError {
	return &PolicyStoreError{
		Code:        InvalidPolicy,
		Description: invalidPolicyDescription,
	}
}
