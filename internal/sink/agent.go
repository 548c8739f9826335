// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package sink

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/specialistvlad/profilegrid/internal/ctxlog"
	"github.com/specialistvlad/profilegrid/internal/model"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	// DeclareEvent carries one declaration to the agent.
	DeclareEvent = "declare"
	// DeclaredEvent is the agent's reply to DeclareEvent.
	DeclaredEvent = "declared"

	defaultAgentTimeout = 10 * time.Second
	connectTimeout      = 15 * time.Second
)

// AgentOptions configures a connection to a remote agent.
type AgentOptions struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	// Timeout bounds the wait for each reply. Zero means 10s.
	Timeout time.Duration
}

// conn is the part of a socket.io client the agent uses.
type conn interface {
	On(event string, fn func(...any))
	Emit(event string, data any)
	Close()
}

// Agent is a sink that forwards declarations to a remote agent. Requests
// are sent one at a time because replies carry no correlation id beyond the
// address. A reply that arrives after its request timed out is dropped.
type Agent struct {
	conn    conn
	timeout time.Duration
	logger  *slog.Logger
	mu      sync.Mutex

	pendingMu sync.Mutex
	pending   *pendingReply
}

type pendingReply struct {
	addr string
	done chan error
}

// AgentError is a rejection reported by the agent.
type AgentError struct {
	Address string
	Reason  string
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("agent rejected %s: %s", e.Address, e.Reason)
}

// DialAgent connects to the agent at opts.URL and waits for the connection
// to be established.
func DialAgent(ctx context.Context, opts AgentOptions) (*Agent, error) {
	logger := ctxlog.FromContext(ctx).With("sink", "agent", "url", opts.URL)

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse agent URL: %w", err)
	}

	sopts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		sopts.SetPath(parsedURL.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sopts)
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "/"
	}
	io := manager.Socket(namespace, sopts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected to agent", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = fmt.Errorf("connection refused")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connectChan <- err
	})

	logger.Debug("Connecting to agent")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(connectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", connectTimeout)
	}

	return newAgent(&socketConn{io: io}, opts.Timeout, logger), nil
}

func newAgent(c conn, timeout time.Duration, logger *slog.Logger) *Agent {
	if timeout <= 0 {
		timeout = defaultAgentTimeout
	}
	a := &Agent{conn: c, timeout: timeout, logger: logger}
	c.On(DeclaredEvent, a.onReply)
	return a
}

// onReply hands a "declared" event to the pending request when the reply
// is addressed to it. Replies without an address go to whatever is pending.
func (a *Agent) onReply(data ...any) {
	a.pendingMu.Lock()
	p := a.pending
	if p != nil {
		if got := replyAddress(data); got != "" && got != p.addr {
			p = nil
		}
	}
	if p != nil {
		a.pending = nil
	}
	a.pendingMu.Unlock()

	if p == nil {
		a.logger.Debug("Dropping agent reply with no pending request", "address", replyAddress(data))
		return
	}
	p.done <- parseReply(p.addr, data)
}

func (a *Agent) setPending(p *pendingReply) {
	a.pendingMu.Lock()
	a.pending = p
	a.pendingMu.Unlock()
}

// Declare emits d and waits for the agent to accept it.
func (a *Agent) Declare(ctx context.Context, d model.Declaration) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	addr := d.Intent.Address().String()
	logger := ctxlog.FromContext(ctx).With("sink", "agent", "address", addr)

	opCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	p := &pendingReply{addr: addr, done: make(chan error, 1)}
	a.setPending(p)
	defer a.setPending(nil)

	logger.Debug("Emitting declaration", "event", DeclareEvent)
	a.conn.Emit(DeclareEvent, declarePayload(d))

	select {
	case <-opCtx.Done():
		return fmt.Errorf("timed out after %v waiting for agent to acknowledge %s", a.timeout, addr)
	case err := <-p.done:
		if err != nil {
			return err
		}
		logger.Debug("Agent acknowledged declaration")
		return nil
	}
}

// Close disconnects from the agent.
func (a *Agent) Close() {
	a.conn.Close()
}

func declarePayload(d model.Declaration) map[string]any {
	return map[string]any{
		"component": d.Component,
		"type":      d.Intent.Type,
		"name":      d.Intent.Name,
		"mode":      d.Mode.String(),
		"params":    d.Intent.NativeParams(),
	}
}

// replyAddress returns the address a reply names, if any.
func replyAddress(data []any) string {
	if len(data) == 0 {
		return ""
	}
	reply, _ := data[0].(map[string]any)
	addr, _ := reply["address"].(string)
	return addr
}

// parseReply interprets a "declared" event. The agent replies with
// {address, ok, error}.
func parseReply(addr string, data []any) error {
	if len(data) == 0 {
		return fmt.Errorf("agent sent an empty reply for %s", addr)
	}
	reply, ok := data[0].(map[string]any)
	if !ok {
		return fmt.Errorf("agent sent a malformed reply for %s: %T", addr, data[0])
	}
	if got, _ := reply["address"].(string); got != "" && got != addr {
		return fmt.Errorf("agent replied for %s while %s was pending", got, addr)
	}
	if accepted, _ := reply["ok"].(bool); !accepted {
		reason, _ := reply["error"].(string)
		if reason == "" {
			reason = "no reason given"
		}
		return &AgentError{Address: addr, Reason: reason}
	}
	return nil
}

// socketConn adapts a socket.io client socket to conn.
type socketConn struct {
	io *socket.Socket
}

func (s *socketConn) On(event string, fn func(...any)) {
	s.io.On(types.EventName(event), fn)
}

func (s *socketConn) Emit(event string, data any) {
	s.io.Emit(event, data)
}

func (s *socketConn) Close() {
	s.io.Disconnect()
}
