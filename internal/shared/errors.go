package shared

import "fmt"

var (
	// Selection and validation errors
	ErrNoSelection     = fmt.Errorf("nothing selected")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	// Configuration and credential errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Submission and job lifecycle errors
	ErrSubmissionRejected = fmt.Errorf("submission rejected")
	ErrNetworkFailure     = fmt.Errorf("network failure")
	ErrJobNotFound        = fmt.Errorf("job not found")
	ErrJobSuperseded      = fmt.Errorf("job superseded")
	ErrNoActiveJob        = fmt.Errorf("no active job")
	ErrExecutorError      = fmt.Errorf("executor reported error")

	// Service errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")
)
