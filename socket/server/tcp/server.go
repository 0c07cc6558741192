/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package tcp

import (
	"context"
	"crypto/tls"
	"net"
	"sync"
	"sync/atomic"

	libtls "github.com/FeatheredSystems/falcotcp/certificates"
	libsck "github.com/FeatheredSystems/falcotcp/socket"
	sckcfg "github.com/FeatheredSystems/falcotcp/socket/config"
)

type serverTcp struct {
	cfg     sckcfg.Server
	handler libsck.HandlerFunc
	update  libsck.UpdateConn

	mu        sync.Mutex
	listener  net.Listener
	tlsOn     bool
	tlsConfig libtls.TLSConfig

	running atomic.Bool
	conns   atomic.Int64
	wg      sync.WaitGroup

	funcErr        atomic.Pointer[libsck.FuncError]
	funcInfo       atomic.Pointer[libsck.FuncInfo]
	funcInfoServer atomic.Pointer[func(string)]
}

// New builds a TCP/TCP4/TCP6 server bound to cfg. update, when non-nil, is
// called on every freshly accepted net.Conn before it is handed to handler.
func New(update libsck.UpdateConn, handler libsck.HandlerFunc, cfg sckcfg.Server) (ServerTcp, error) {
	if !cfg.Network.IsTCP() {
		return nil, sckcfg.ErrInvalidProtocol
	}
	if cfg.Address == "" {
		return nil, ErrInvalidAddress
	}
	if _, err := net.ResolveTCPAddr(cfg.Network.String(), cfg.Address); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &serverTcp{
		cfg:     cfg,
		handler: handler,
		update:  update,
	}

	if ok, tc := cfg.GetTLS(); ok {
		if err := s.SetTLS(true, tc); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *serverTcp) emitError(err error) {
	err = libsck.ErrorFilter(err)
	if err == nil {
		return
	}
	if fn := s.funcErr.Load(); fn != nil && *fn != nil {
		(*fn)(err)
	}
}

func (s *serverTcp) emitInfo(local, remote net.Addr, state libsck.ConnState) {
	if fn := s.funcInfo.Load(); fn != nil && *fn != nil {
		(*fn)(local, remote, state)
	}
}

func (s *serverTcp) emitServerInfo(msg string) {
	if fn := s.funcInfoServer.Load(); fn != nil && *fn != nil {
		(*fn)(msg)
	}
}

func (s *serverTcp) RegisterFuncError(fct libsck.FuncError) {
	s.funcErr.Store(&fct)
}

func (s *serverTcp) RegisterFuncInfo(fct libsck.FuncInfo) {
	s.funcInfo.Store(&fct)
}

func (s *serverTcp) RegisterFuncInfoServer(fct func(msg string)) {
	s.funcInfoServer.Store(&fct)
}

// SetTLS enables or disables TLS termination for subsequent Listen calls.
// Enabling requires cfg to carry at least one certificate pair.
func (s *serverTcp) SetTLS(enable bool, cfg libtls.TLSConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !enable {
		s.tlsOn = false
		s.tlsConfig = nil
		return nil
	}

	if cfg == nil || cfg.LenCertificatePair() == 0 {
		return sckcfg.ErrInvalidTLSConfig
	}

	s.tlsOn = true
	s.tlsConfig = cfg
	return nil
}

func (s *serverTcp) bind() (net.Listener, error) {
	s.mu.Lock()
	tlsOn, tlsCfg := s.tlsOn, s.tlsConfig
	s.mu.Unlock()

	lst, err := net.Listen(s.cfg.Network.String(), s.cfg.Address)
	if err != nil {
		return nil, err
	}

	if tlsOn {
		var std *tls.Config
		if tlsCfg != nil {
			std = tlsCfg.TLS("")
		}
		lst = tls.NewListener(lst, std)
	}

	return lst, nil
}

// Listen runs the accept loop until ctx is cancelled or Shutdown/Close
// stops the listener. Each accepted connection runs handler in its own
// goroutine with a socket.Context derived from ctx.
func (s *serverTcp) Listen(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lst, err := s.bind()
	if err != nil {
		s.emitError(err)
		return err
	}

	s.mu.Lock()
	s.listener = lst
	s.mu.Unlock()
	s.running.Store(true)
	s.emitServerInfo("listening on " + s.cfg.Address)

	type accepted struct {
		conn net.Conn
		err  error
	}
	acceptCh := make(chan accepted)
	go func() {
		for {
			c, e := lst.Accept()
			acceptCh <- accepted{c, e}
			if e != nil {
				return
			}
		}
	}()

	var loopErr error
loop:
	for {
		select {
		case <-ctx.Done():
			loopErr = ctx.Err()
			break loop
		case a := <-acceptCh:
			if a.err != nil {
				loopErr = libsck.ErrorFilter(a.err)
				s.emitError(a.err)
				break loop
			}
			s.handleConn(ctx, a.conn)
		}
	}

	s.mu.Lock()
	_ = lst.Close()
	s.listener = nil
	s.mu.Unlock()
	s.running.Store(false)
	s.emitServerInfo("listener closed")

	return loopErr
}

func (s *serverTcp) handleConn(ctx context.Context, conn net.Conn) {
	if s.update != nil {
		s.update(conn)
	}

	s.conns.Add(1)
	s.wg.Add(1)

	local, remote := conn.LocalAddr(), conn.RemoteAddr()
	s.emitInfo(local, remote, libsck.ConnectionNew)

	go func() {
		defer s.wg.Done()
		defer s.conns.Add(-1)
		defer func() { _ = conn.Close() }()

		c, cancel := newContext(ctx, conn, s.cfg.ConIdleTimeout)
		defer cancel()

		s.emitInfo(local, remote, libsck.ConnectionHandler)
		s.handler(c)
		s.emitInfo(local, remote, libsck.ConnectionClose)
	}()
}

// Shutdown stops accepting new connections and waits for in-flight ones to
// finish, or for ctx to expire, whichever happens first.
func (s *serverTcp) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	lst := s.listener
	s.listener = nil
	s.mu.Unlock()

	if lst != nil {
		_ = lst.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the listener immediately without waiting for in-flight
// connections to drain.
func (s *serverTcp) Close() error {
	s.mu.Lock()
	lst := s.listener
	s.listener = nil
	s.mu.Unlock()

	if lst == nil {
		return nil
	}
	return lst.Close()
}

func (s *serverTcp) IsRunning() bool {
	return s.running.Load()
}

func (s *serverTcp) IsGone() bool {
	return !s.running.Load() && s.conns.Load() == 0
}

func (s *serverTcp) OpenConnections() int64 {
	return s.conns.Load()
}
