package repository

import "errors"

var (
	// ErrDuplicateApplication means the seeker already holds an application
	// for the job, whether it was caught by the pre-check or by the unique
	// index when two submissions raced.
	ErrDuplicateApplication = errors.New("application already exists for this job")

	// ErrJobFilled means the job already left the open state.
	ErrJobFilled = errors.New("job is already filled")

	// ErrInvalidStateTransition means the application is no longer pending.
	ErrInvalidStateTransition = errors.New("application is not pending")

	// ErrNotOwner means the acting employer does not own the job or application.
	ErrNotOwner = errors.New("record belongs to another employer")
)
