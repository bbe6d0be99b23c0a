package receiver

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/motion-control/mcc/internal/command"
	"github.com/motion-control/mcc/internal/config"
)

// recordingDispatcher captures dispatches and rejections from the loop.
type recordingDispatcher struct {
	mu         sync.Mutex
	dispatched []command.Command
	rejected   []error
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, cmd *command.Command) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dispatched = append(d.dispatched, *cmd)
	return nil
}

func (d *recordingDispatcher) ReportRejection(ctx context.Context, raw string, cause error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rejected = append(d.rejected, cause)
}

func (d *recordingDispatcher) counts() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.dispatched), len(d.rejected)
}

func (d *recordingDispatcher) lastDispatched() (command.Command, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.dispatched) == 0 {
		return command.Command{}, false
	}
	return d.dispatched[len(d.dispatched)-1], true
}

func (d *recordingDispatcher) lastRejected() (error, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.rejected) == 0 {
		return nil, false
	}
	return d.rejected[len(d.rejected)-1], true
}

// startReceiver binds a receiver on an ephemeral localhost port and runs
// Serve in the background.
func startReceiver(t *testing.T, strict bool) (*Receiver, *recordingDispatcher, *net.UDPConn, chan error) {
	t.Helper()

	cfg := config.Default()
	cfg.Network.ListenAddr = "127.0.0.1"
	cfg.Network.ListenPort = 0 // ephemeral port
	cfg.Parsing.Strict = strict

	dispatcher := &recordingDispatcher{}
	rcv := New(cfg, dispatcher)

	if err := rcv.Listen(); err != nil {
		t.Fatalf("failed to bind: %v", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- rcv.Serve()
	}()

	client, err := net.DialUDP("udp", nil, rcv.LocalAddr().(*net.UDPAddr))
	if err != nil {
		t.Fatalf("failed to dial receiver: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
		_ = rcv.Close()
	})

	return rcv, dispatcher, client, serveErr
}

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestListenBindFailure(t *testing.T) {
	cfg := config.Default()
	cfg.Network.ListenAddr = "256.0.0.1" // not a valid address

	rcv := New(cfg, &recordingDispatcher{})
	if err := rcv.Listen(); err == nil {
		t.Fatal("Listen succeeded on an invalid address, want error")
	}
}

func TestServeDispatchesValidCommands(t *testing.T) {
	tests := []struct {
		payload   string
		directive command.Directive
		speed     int
	}{
		{"w 150", command.DirectiveForward, 150},
		{"s 75", command.DirectiveBackward, 75},
		{"k 0", command.DirectiveStop, 0},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			_, dispatcher, client, _ := startReceiver(t, false)

			if _, err := client.Write([]byte(tt.payload)); err != nil {
				t.Fatalf("failed to send datagram: %v", err)
			}

			ok := waitFor(t, func() bool {
				n, _ := dispatcher.counts()
				return n == 1
			})
			if !ok {
				t.Fatal("datagram was not dispatched")
			}

			cmd, _ := dispatcher.lastDispatched()
			if cmd.Directive != tt.directive || cmd.Speed != tt.speed {
				t.Errorf("dispatched %s/%d, want %s/%d", cmd.Directive, cmd.Speed, tt.directive, tt.speed)
			}
		})
	}
}

func TestServeRejectsWithoutDispatch(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		cause   error
	}{
		{"wrong token count", "w", command.ErrInvalidFormat},
		{"unknown direction", "x 10", command.ErrUnknownCommand},
		{"unknown direction bad speed", "x abc", command.ErrUnknownCommand},
		{"non-numeric speed", "w abc", command.ErrInvalidSpeed},
		{"invalid encoding", "\xff\xfe 10", command.ErrInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, dispatcher, client, _ := startReceiver(t, false)

			if _, err := client.Write([]byte(tt.payload)); err != nil {
				t.Fatalf("failed to send datagram: %v", err)
			}

			ok := waitFor(t, func() bool {
				_, n := dispatcher.counts()
				return n == 1
			})
			if !ok {
				t.Fatal("rejection was not reported")
			}

			dispatched, _ := dispatcher.counts()
			if dispatched != 0 {
				t.Errorf("rejected datagram was dispatched %d times", dispatched)
			}

			cause, _ := dispatcher.lastRejected()
			if !errors.Is(cause, tt.cause) {
				t.Errorf("rejection cause = %v, want %v", cause, tt.cause)
			}
		})
	}
}

func TestServeContinuesAfterRejection(t *testing.T) {
	_, dispatcher, client, _ := startReceiver(t, false)

	payloads := []string{"w", "x 10", "w abc", "w 150"}
	for _, payload := range payloads {
		if _, err := client.Write([]byte(payload)); err != nil {
			t.Fatalf("failed to send datagram: %v", err)
		}
	}

	ok := waitFor(t, func() bool {
		dispatched, rejected := dispatcher.counts()
		return dispatched == 1 && rejected == 3
	})
	if !ok {
		dispatched, rejected := dispatcher.counts()
		t.Fatalf("dispatched=%d rejected=%d, want 1/3", dispatched, rejected)
	}

	cmd, _ := dispatcher.lastDispatched()
	if cmd.Directive != command.DirectiveForward || cmd.Speed != 150 {
		t.Errorf("dispatched %s/%d, want forward/150", cmd.Directive, cmd.Speed)
	}
}

// Processing the same payload twice produces the same outcome both times.
func TestServeIdempotentAcrossDatagrams(t *testing.T) {
	_, dispatcher, client, _ := startReceiver(t, false)

	for i := 0; i < 2; i++ {
		if _, err := client.Write([]byte("w 150")); err != nil {
			t.Fatalf("failed to send datagram: %v", err)
		}
	}

	ok := waitFor(t, func() bool {
		n, _ := dispatcher.counts()
		return n == 2
	})
	if !ok {
		t.Fatal("expected two dispatches")
	}

	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	first, second := dispatcher.dispatched[0], dispatcher.dispatched[1]
	if first.Directive != second.Directive || first.Speed != second.Speed {
		t.Errorf("outcomes differ: %+v vs %+v", first, second)
	}
}

func TestServeStrictModeAbortsOnBadSpeed(t *testing.T) {
	_, dispatcher, client, serveErr := startReceiver(t, true)

	if _, err := client.Write([]byte("w abc")); err != nil {
		t.Fatalf("failed to send datagram: %v", err)
	}

	select {
	case err := <-serveErr:
		if !errors.Is(err, command.ErrInvalidSpeed) {
			t.Errorf("Serve error = %v, want %v", err, command.ErrInvalidSpeed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not abort in strict mode")
	}

	dispatched, rejected := dispatcher.counts()
	if dispatched != 0 || rejected != 0 {
		t.Errorf("dispatched=%d rejected=%d after fatal parse, want 0/0", dispatched, rejected)
	}
}

func TestServeStrictModeStillRecoversFormatErrors(t *testing.T) {
	_, dispatcher, client, _ := startReceiver(t, true)

	if _, err := client.Write([]byte("w 1 2")); err != nil {
		t.Fatalf("failed to send datagram: %v", err)
	}
	if _, err := client.Write([]byte("x 10")); err != nil {
		t.Fatalf("failed to send datagram: %v", err)
	}

	ok := waitFor(t, func() bool {
		_, rejected := dispatcher.counts()
		return rejected == 2
	})
	if !ok {
		t.Fatal("format and unknown-command errors must stay recovered in strict mode")
	}
}

func TestCloseStopsServe(t *testing.T) {
	rcv, _, _, serveErr := startReceiver(t, false)

	if err := rcv.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	select {
	case err := <-serveErr:
		if err != nil {
			t.Errorf("Serve returned %v after Close, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Close")
	}
}

// Oversized datagrams are truncated by the read buffer, not rejected.
func TestServeTruncatesOversizedDatagrams(t *testing.T) {
	cfg := config.Default()
	cfg.Network.ListenAddr = "127.0.0.1"
	cfg.Network.ListenPort = 0

	dispatcher := &recordingDispatcher{}
	rcv := New(cfg, dispatcher)

	if err := rcv.Listen(); err != nil {
		t.Fatalf("failed to bind: %v", err)
	}
	go func() { _ = rcv.Serve() }()
	t.Cleanup(func() { _ = rcv.Close() })

	client, err := net.DialUDP("udp", nil, rcv.LocalAddr().(*net.UDPAddr))
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer client.Close()

	// "w 1" + enough padding to exceed the 1024-byte buffer; the padding
	// past the buffer is dropped, leaving extra tokens → invalid format.
	payload := make([]byte, 2048)
	copy(payload, "w 1 ")
	for i := 4; i < len(payload); i++ {
		payload[i] = 'z'
	}
	if _, err := client.Write(payload); err != nil {
		t.Fatalf("failed to send datagram: %v", err)
	}

	ok := waitFor(t, func() bool {
		_, rejected := dispatcher.counts()
		return rejected == 1
	})
	if !ok {
		t.Fatal("truncated datagram was not processed")
	}
}
