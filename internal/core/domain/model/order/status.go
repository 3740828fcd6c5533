package order

import (
	"fmt"

	"orderregistry/internal/pkg/errs"
)

// Status represents the lifecycle state of an order registration.
//
// State transitions:
//
//	Received ──┬──> Processed
//	           ├──> Duplicate
//	           └──> Error
//
// Received is the only non-terminal state. Processed, Duplicate, and Error are
// terminal: no transition leaves them, and nothing ever returns to Received.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Received is the initial status assigned at construction.
	// Orders in this status are awaiting the registration workflow's verdict.
	Received

	// Processed indicates the order passed duplicate detection and was
	// committed; a processed event has been published for it.
	Processed

	// Duplicate indicates the order's content fingerprint matched an already
	// stored order. The row is kept but never processed.
	Duplicate

	// Error indicates a processing attempt failed; the stored error message
	// explains why.
	Error
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Received:  "Received",
		Processed: "Processed",
		Duplicate: "Duplicate",
		Error:     "Error",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Received:  "Received",
		Processed: "Processed",
		Duplicate: "Duplicate",
		Error:     "Error",
	}
}

// Validate checks that the Status holds one of the defined values.
// Unknown (0) and out-of-range values are invalid. Used when reconstructing
// orders from persistence.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateProcess checks whether the status allows the Processed transition
// without performing it. Only Received qualifies; Duplicate and Error orders
// must never be processed, and Processed is terminal.
func (s Status) ValidateProcess() error {
	if s != Received {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to process", s.String()),
		)
	}
	return nil
}

// Process transitions the status to Processed.
//
// Valid transitions:
//   - Received -> Processed
//
// Everything else is rejected: duplicate and errored orders stay terminal,
// and an already processed order cannot be processed again.
func (s Status) Process() (Status, error) {
	if err := s.ValidateProcess(); err != nil {
		return 0, err
	}

	return Processed, nil
}
