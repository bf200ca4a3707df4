package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/keyring"
	"github.com/julianstephens/worthit/internal/logger"
	"github.com/julianstephens/worthit/internal/storage"
	"github.com/julianstephens/worthit/internal/storage/postgres"
)

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// hints name the command that fixes errors a user can act on.
var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotInitialized, "Run 'worthit init' to create it, or pass --config to use an existing journal."},
	{postgres.ErrEmbeddedCredentials, "Store the connection string with 'worthit config set-connection' or set " + constants.EnvDBConnection + "."},
	{keyring.ErrKeyringUnavailable, "Set " + constants.EnvDBConnection + " instead of using the OS keyring."},
}

// Format renders err with an "Error: " prefix and, when one applies, a hint
// on the next line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return msg + "\n" + h.hint
		}
	}
	return msg
}

// Fatal logs err, prints it to stderr and exits with status 1. A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(stderr, Format(err))
	exit(1)
}
