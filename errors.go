package eventtree

import (
	"errors"
	"fmt"
	"strings"
)

// Handler failure sentinels. Use errors.Is() to check for them, they are
// usually wrapped in a *HandlerError by the time Send returns.
var (
	// ErrHandlerPanic is returned in place of a panic when the handler runs
	// behind the Recover middleware (or the tree was built WithRecovery(true)).
	ErrHandlerPanic = errors.New("handler panicked")

	// ErrRateLimited is returned by the RateLimit middlewares when the
	// limiter refuses the invocation.
	ErrRateLimited = errors.New("handler rate limited")
)

// HandlerError reports the handler failure that aborted a Send.
// Path is the path of the node the failing handler was registered at,
// Target the path the message was sent to.
type HandlerError struct {
	Path   []string
	Target []string
	Err    error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler at %q (send to %q) failed: %v",
		strings.Join(e.Path, "/"), strings.Join(e.Target, "/"), e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// IsHandlerError checks if err was produced by a failing handler during Send.
func IsHandlerError(err error) bool {
	var hErr *HandlerError
	return errors.As(err, &hErr)
}
