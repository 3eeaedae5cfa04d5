package bridge

import (
	"errors"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
)

// Wire error codes produced by the bridge itself.
const (
	CodeUnknownCommand   = "UNKNOWN_COMMAND"
	CodeInvalidArguments = "INVALID_ARGUMENTS"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInternal         = "INTERNAL_ERROR"
	CodeExecutionFailed  = "COMMAND_EXECUTION_FAILED"
)

var (
	ErrCommandNameRequired = errors.New("bridge: command name is required")
	ErrInvokerRequired     = errors.New("bridge: command invoker is required")
	ErrDuplicateCommand    = errors.New("bridge: command already registered")
	ErrUnknownCommand      = errors.New("bridge: unknown command")
	ErrInvalidArguments    = errors.New("bridge: invalid command arguments")
	ErrInvalidSchema       = errors.New("bridge: invalid argument schema")
)

// ErrorMapper turns a command failure into its wire representation.
type ErrorMapper func(err error) *ResponseError

// DefaultErrorMapper uses the go-errors text code when present and falls back
// to CodeExecutionFailed.
func DefaultErrorMapper(err error) *ResponseError {
	if err == nil {
		return nil
	}

	var rich *goerrors.Error
	if errors.As(err, &rich) {
		code := rich.TextCode
		if code == "" {
			code = CodeExecutionFailed
		}
		message := rich.Message
		if rich.Source != nil {
			message += ": " + rich.Source.Error()
		}
		return &ResponseError{Code: code, Message: message}
	}

	return &ResponseError{Code: CodeExecutionFailed, Message: err.Error()}
}

func unknownCommandError(name string) error {
	return goerrors.Wrap(ErrUnknownCommand, goerrors.CategoryNotFound, "unknown command "+strconv.Quote(name)).
		WithTextCode(CodeUnknownCommand)
}

func invalidArgumentsError(cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryValidation, "invalid command arguments").
		WithTextCode(CodeInvalidArguments)
}
