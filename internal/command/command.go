package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Directive is the decoded intent of a received command.
type Directive string

// Motion directives understood by the container.
const (
	DirectiveForward     Directive = "forward"
	DirectiveBackward    Directive = "backward"
	DirectiveRotateLeft  Directive = "rotateLeft"
	DirectiveRotateRight Directive = "rotateRight"
	DirectiveStop        Directive = "stop"
)

// directionTokens maps the closed set of wire tokens to directives.
// The token set mirrors the sending client's key bindings.
var directionTokens = map[string]Directive{
	"w": DirectiveForward,
	"s": DirectiveBackward,
	"e": DirectiveRotateRight,
	"q": DirectiveRotateLeft,
	"k": DirectiveStop,
}

// Command is a transient value parsed from one received datagram.
// It is constructed fresh per datagram, consumed by Dispatch, and discarded.
type Command struct {
	Directive Directive
	Speed     int
	Raw       string
}

// ParseCommand parses one datagram payload of the form "<direction> <speed>".
//
// The payload is trimmed and split on whitespace. A token count other than
// two yields ErrInvalidFormat. A first token outside the direction set yields
// ErrUnknownCommand regardless of the second token. A second token that is
// not a base-10 integer yields ErrInvalidSpeed. The speed magnitude is not
// range-checked; enforcing limits is the motor driver's concern.
func ParseCommand(raw string) (*Command, error) {
	parts := strings.Fields(strings.TrimSpace(raw))
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: got %d tokens", ErrInvalidFormat, len(parts))
	}

	directive, ok := directionTokens[parts[0]]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}

	speed, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSpeed, parts[1])
	}

	return &Command{
		Directive: directive,
		Speed:     speed,
		Raw:       raw,
	}, nil
}
