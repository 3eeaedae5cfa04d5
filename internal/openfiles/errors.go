package openfiles

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// CodeQueueCorrupted is the text code carried by corruption errors.
const CodeQueueCorrupted = "OPEN_FILES_QUEUE_CORRUPTED"

// ErrQueueCorrupted reports that an earlier Take failed inside the critical
// section. The queue is treated as empty from then on.
var ErrQueueCorrupted = errors.New("open files queue: state corrupted")

func corruptionError(cause any) error {
	err := ErrQueueCorrupted
	if cause != nil {
		err = fmt.Errorf("%w: %v", ErrQueueCorrupted, cause)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "open files queue corrupted").
		WithTextCode(CodeQueueCorrupted)
}
