package cmd

import (
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/user/perplexity-mcp/internal/errors"
)

// exitWith prints the user-facing message and terminates with the error's
// exit code when it carries one; other errors bubble up to cobra.
func exitWith(err error) error {
	var srvErr *errors.ServerError
	if stderrors.As(err, &srvErr) {
		fmt.Fprintln(os.Stderr, srvErr.GetUserMessage())
		os.Exit(srvErr.ExitCode.Int())
	}
	return err
}

func timeoutSeconds(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
