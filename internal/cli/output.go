package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fastprodman/vendingmachine/internal/coins"
	"github.com/fastprodman/vendingmachine/internal/services/vending"
	"github.com/shopspring/decimal"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitRejected     = 1 // The engine refused the operation (domain failure)
	ExitCommandError = 2 // Bad flags, unreachable database, internal failure
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitCommandError
}

// engineError tags a service error with the matching exit code.
func engineError(message string, err error) error {
	if vending.IsDomain(err) {
		return WrapExitError(ExitRejected, message, err)
	}

	return WrapExitError(ExitCommandError, message, err)
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Response is the JSON envelope for successful output.
type Response struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

// Success writes data as a JSON envelope, or calls text for the text format.
func (f *OutputFormatter) Success(data any, text func(w io.Writer)) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")

		err := enc.Encode(Response{Status: "ok", Data: data})
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}

		return nil
	}

	text(f.Writer)

	return nil
}

func money(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

// changeMap keys a breakdown by denomination, largest first when printed.
func changeMap(c coins.Change) map[string]int64 {
	out := make(map[string]int64, len(c))
	for coin, n := range c {
		if n > 0 {
			out[strconv.FormatInt(int64(coin), 10)] = n
		}
	}

	return out
}

func writeCoins(w io.Writer, counts map[coins.Coin]int64) {
	for _, d := range coins.Denominations() {
		if n, ok := counts[d]; ok {
			fmt.Fprintf(w, "  %3d x %d\n", d, n)
		}
	}
}
