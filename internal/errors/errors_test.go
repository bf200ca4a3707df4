package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/julianstephens/worthit/internal/storage"
	"github.com/julianstephens/worthit/internal/storage/postgres"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil error", err: nil, want: ""},
		{name: "simple error", err: stderrors.New("entry not found"), want: "Error: entry not found"},
		{
			name: "wrapped error",
			err:  fmt.Errorf("failed to save entries: %w", stderrors.New("disk full")),
			want: "Error: failed to save entries: disk full",
		},
		{
			name: "not initialized",
			err:  fmt.Errorf("failed to load storage: %w", storage.ErrNotInitialized),
			want: "Error: failed to load storage: storage not initialized\nRun 'worthit init' to create it, or pass --config to use an existing journal.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatEmbeddedCredentials(t *testing.T) {
	got := Format(postgres.ErrEmbeddedCredentials)
	if !strings.Contains(got, "worthit config set-connection") {
		t.Errorf("Format() = %q, want a set-connection hint", got)
	}
}

func TestFatal(t *testing.T) {
	var buf bytes.Buffer
	code := -1
	origStderr, origExit := stderr, exit
	stderr = &buf
	exit = func(c int) { code = c }
	t.Cleanup(func() { stderr, exit = origStderr, origExit })

	Fatal(nil)
	if code != -1 || buf.Len() != 0 {
		t.Fatalf("Fatal(nil) exited with %d and wrote %q", code, buf.String())
	}

	Fatal(storage.ErrNotInitialized)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(buf.String(), "worthit init") {
		t.Errorf("stderr = %q, want the init hint", buf.String())
	}
}
