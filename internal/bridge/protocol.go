package bridge

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxMessageBytes caps a single inbound frame.
const DefaultMaxMessageBytes = 64 << 20

var (
	// ErrEmptyFrame is returned for a zero-length frame.
	ErrEmptyFrame = errors.New("bridge: invalid message length: 0")
	// ErrFrameTooLarge is returned when a frame exceeds the configured cap.
	// The oversized body has been consumed, so the stream stays in sync.
	ErrFrameTooLarge = errors.New("bridge: message too large")
)

// Request is one front-end command invocation.
type Request struct {
	ID      string          `json:"id,omitempty"`
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args,omitempty"`
}

// Response answers exactly one Request. Result is null for commands without
// a return value and for failures.
type Response struct {
	ID      string         `json:"id"`
	Success bool           `json:"success"`
	Result  any            `json:"result"`
	Error   *ResponseError `json:"error,omitempty"`
}

// ResponseError carries a stable code and a human readable message.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ReadFrame reads one length-prefixed payload. io.EOF is returned unwrapped
// when the stream ends cleanly between frames.
func ReadFrame(r io.Reader, maxBytes int) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxMessageBytes
	}

	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read message length: %w", err)
	}

	if length == 0 {
		return nil, ErrEmptyFrame
	}
	if uint64(length) > uint64(maxBytes) {
		if _, err := io.CopyN(io.Discard, r, int64(length)); err != nil {
			return nil, fmt.Errorf("failed to skip oversized message: %w", err)
		}
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFrameTooLarge, length, maxBytes)
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("failed to read message body: %w", err)
	}
	return buf, nil
}

// WriteFrame writes payload with its length prefix.
func WriteFrame(w io.Writer, payload []byte) error {
	if uint64(len(payload)) > uint64(^uint32(0)) {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}

	frame := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(frame, uint32(len(payload)))
	copy(frame[4:], payload)

	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// DecodeRequest parses a frame payload into a Request.
func DecodeRequest(payload []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return &req, nil
}

// ReadRequest reads and decodes one request frame.
func ReadRequest(r io.Reader, maxBytes int) (*Request, error) {
	payload, err := ReadFrame(r, maxBytes)
	if err != nil {
		return nil, err
	}
	return DecodeRequest(payload)
}

// WriteResponse encodes resp and writes it as one frame.
func WriteResponse(w io.Writer, resp *Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	return WriteFrame(w, data)
}

// isRecoverableFrameError reports whether the stream is still aligned on a
// frame boundary after err.
func isRecoverableFrameError(err error) bool {
	return errors.Is(err, ErrEmptyFrame) || errors.Is(err, ErrFrameTooLarge)
}
