// Package cli is basket's command line: a cobra command tree over the
// shopping service, with viper-backed configuration.
package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/basket/internal/category"
	"github.com/idilsaglam/basket/internal/store"
	"github.com/idilsaglam/basket/internal/ui"
	"github.com/idilsaglam/basket/internal/validate"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// usageError marks bad invocations: wrong arguments, unknown flags and
// references that resolve to nothing.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func usage(err error) error {
	if err == nil {
		return nil
	}
	return usageError{err}
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usage(check(cmd, args))
	}
}

// Run executes args and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp()
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	ui.Fail(stderr, message(err))
	code := exitCode(err)
	if code == 2 {
		ui.Hint(stderr, "Run `basket --help` for usage.")
	}
	return code
}

func message(err error) string {
	var verr *validate.Error
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}

func exitCode(err error) int {
	var uerr usageError
	var verr *validate.Error
	switch {
	case errors.As(err, &uerr), errors.As(err, &verr), errors.Is(err, category.ErrInvalidName):
		return 2
	case errors.Is(err, store.ErrNotFound):
		return 2
	}
	return 1
}
