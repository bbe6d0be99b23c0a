package receiver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/motion-control/mcc/internal/command"
	"github.com/motion-control/mcc/internal/config"
	"github.com/motion-control/mcc/pkg/logger"
)

// Receiver owns the listening socket for the lifetime of the process and
// turns each inbound datagram into a dispatched directive or a reported
// parse failure.
type Receiver struct {
	cfg        *config.Config
	dispatcher command.DispatcherPort
	conn       *net.UDPConn
	log        *logrus.Entry
}

// New creates a receiver. Listen must be called before Serve.
func New(cfg *config.Config, dispatcher command.DispatcherPort) *Receiver {
	return &Receiver{
		cfg:        cfg,
		dispatcher: dispatcher,
		log:        logger.Log.WithField("component", "receiver"),
	}
}

// Listen binds the UDP socket. Bind failure is fatal: the caller must not
// proceed to Serve.
func (r *Receiver) Listen() error {
	addr, err := net.ResolveUDPAddr("udp", r.cfg.ListenAddress())
	if err != nil {
		return fmt.Errorf("failed to resolve listen address %s: %w", r.cfg.ListenAddress(), err)
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind UDP socket on %s: %w", r.cfg.ListenAddress(), err)
	}

	r.conn = conn
	r.log.Infof("Listening for UDP packets on %s", conn.LocalAddr())
	return nil
}

// LocalAddr returns the bound socket address. Valid after Listen.
func (r *Receiver) LocalAddr() net.Addr {
	if r.conn == nil {
		return nil
	}
	return r.conn.LocalAddr()
}

// Serve runs the blocking receive loop: one datagram per iteration, no
// concurrency. It returns nil after Close, or an error if the loop aborts
// (read failure, or a strict-mode parse fault).
func (r *Receiver) Serve() error {
	if r.conn == nil {
		return fmt.Errorf("receiver is not listening")
	}

	buf := make([]byte, r.cfg.Network.MaxDatagramSize)

	for {
		n, sender, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("failed to read datagram: %w", err)
		}

		if err := r.handleDatagram(buf[:n], sender); err != nil {
			return err
		}
	}
}

// handleDatagram processes one datagram: decode, validate, dispatch or
// report. A non-nil return aborts the loop (strict mode only).
func (r *Receiver) handleDatagram(payload []byte, sender *net.UDPAddr) error {
	raw := string(payload)
	correlationID := uuid.NewString()
	ctx := command.WithDatagram(context.Background(), sender.String(), correlationID)

	msg := strings.TrimSpace(raw)
	r.log.WithFields(logrus.Fields{
		"sender":        sender.String(),
		"correlationId": correlationID,
	}).Infof("Received from %s: %s", sender, msg)

	if !utf8.ValidString(raw) {
		if r.cfg.Parsing.Strict {
			return fmt.Errorf("%w: non-UTF-8 payload from %s", command.ErrInvalidEncoding, sender)
		}
		r.log.Warnf("Invalid encoding from %s", sender)
		r.dispatcher.ReportRejection(ctx, msg, command.ErrInvalidEncoding)
		return nil
	}

	cmd, err := command.ParseCommand(raw)
	if err != nil {
		if errors.Is(err, command.ErrInvalidSpeed) && r.cfg.Parsing.Strict {
			return fmt.Errorf("fatal parse failure from %s: %w", sender, err)
		}
		r.log.Warnf("%v", err)
		r.dispatcher.ReportRejection(ctx, msg, err)
		return nil
	}

	if err := r.dispatcher.Dispatch(ctx, cmd); err != nil {
		// Dispatch faults are audited and published by the orchestrator;
		// the loop continues with the next datagram.
		r.log.Errorf("Dispatch %s failed: %v", cmd.Directive, err)
		return nil
	}

	r.log.WithFields(logrus.Fields{
		"directive":     string(cmd.Directive),
		"speed":         cmd.Speed,
		"correlationId": correlationID,
	}).Info("Directive dispatched")
	return nil
}

// Close closes the listening socket; a blocked Serve returns nil.
func (r *Receiver) Close() error {
	if r.conn == nil {
		return nil
	}
	return r.conn.Close()
}
