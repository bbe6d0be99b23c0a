package command

import (
	"errors"
	"testing"
)

func TestParseCommandDirectives(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		directive Directive
		speed     int
	}{
		{"forward", "w 150", DirectiveForward, 150},
		{"backward", "s 75", DirectiveBackward, 75},
		{"rotate right", "e 40", DirectiveRotateRight, 40},
		{"rotate left", "q 40", DirectiveRotateLeft, 40},
		{"stop", "k 0", DirectiveStop, 0},
		{"negative speed passes through", "w -20", DirectiveForward, -20},
		{"huge speed passes through", "w 99999999", DirectiveForward, 99999999},
		{"surrounding whitespace trimmed", "  w 150\n", DirectiveForward, 150},
		{"multiple separators collapse", "w   150", DirectiveForward, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand(tt.raw)
			if err != nil {
				t.Fatalf("ParseCommand(%q) returned error: %v", tt.raw, err)
			}
			if cmd.Directive != tt.directive {
				t.Errorf("directive = %q, want %q", cmd.Directive, tt.directive)
			}
			if cmd.Speed != tt.speed {
				t.Errorf("speed = %d, want %d", cmd.Speed, tt.speed)
			}
			if cmd.Raw != tt.raw {
				t.Errorf("raw = %q, want %q", cmd.Raw, tt.raw)
			}
		})
	}
}

func TestParseCommandRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"single token", "w", ErrInvalidFormat},
		{"three tokens", "w 150 extra", ErrInvalidFormat},
		{"empty payload", "", ErrInvalidFormat},
		{"whitespace only", "   ", ErrInvalidFormat},
		{"unknown direction", "x 10", ErrUnknownCommand},
		{"unknown direction with bad speed", "x abc", ErrUnknownCommand},
		{"uppercase direction is unknown", "W 150", ErrUnknownCommand},
		{"non-numeric speed", "w abc", ErrInvalidSpeed},
		{"float speed", "w 1.5", ErrInvalidSpeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand(tt.raw)
			if cmd != nil {
				t.Fatalf("ParseCommand(%q) returned a command, want rejection", tt.raw)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseCommand(%q) error = %v, want %v", tt.raw, err, tt.want)
			}
		})
	}
}

// Processing the same payload twice yields the same outcome: parsing holds
// no state across calls.
func TestParseCommandIdempotent(t *testing.T) {
	first, err1 := ParseCommand("w 150")
	second, err2 := ParseCommand("w 150")

	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if *first != *second {
		t.Errorf("repeated parse differs: %+v vs %+v", first, second)
	}
}
