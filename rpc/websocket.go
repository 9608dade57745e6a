// Copyright 2016 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.


package rpc

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sunyihoo/go-evmabi/log"
)

const (
	wsReadBuffer       = 1024
	wsWriteBuffer      = 1024
	wsPingInterval     = 30 * time.Second
	wsPingWriteTimeout = 5 * time.Second
	wsPongTimeout      = 30 * time.Second
)

var wsBufferPool = new(sync.Pool)

type wsHandshakeError struct {
	err    error
	status string
}

func (e wsHandshakeError) Error() string {
	s := e.err.Error()
	if e.status != "" {
		s += " (HTTP status " + e.status + ")"
	}
	return s
}

func (e wsHandshakeError) Unwrap() error {
	return e.err
}

// dialWebsocket opens the connection of a ws:// or wss:// client.
func dialWebsocket(ctx context.Context, endpoint string, cfg *clientConfig) (*websocketConn, error) {
	dialer := cfg.wsDialer
	if dialer == nil {
		dialer = &websocket.Dialer{
			ReadBufferSize:  wsReadBuffer,
			WriteBufferSize: wsWriteBuffer,
			WriteBufferPool: wsBufferPool,
			Proxy:           http.ProxyFromEnvironment,
		}
	}
	dialURL, header, err := wsClientHeaders(endpoint)
	if err != nil {
		return nil, err
	}
	for key, values := range cfg.headers {
		header[key] = values
	}

	conn, resp, err := dialer.DialContext(ctx, dialURL, header)
	if err != nil {
		hErr := wsHandshakeError{err: err}
		if resp != nil {
			hErr.status = resp.Status
		}
		return nil, hErr
	}
	return newWebsocketConn(conn, cfg.responseLimit), nil
}

// wsClientHeaders moves basic auth credentials of the endpoint into headers.
func wsClientHeaders(endpoint string) (string, http.Header, error) {
	endpointURL, err := url.Parse(endpoint)
	if err != nil {
		return endpoint, nil, err
	}
	header := make(http.Header)
	if endpointURL.User != nil {
		b64auth := base64.StdEncoding.EncodeToString([]byte(endpointURL.User.String()))
		header.Add("authorization", "Basic "+b64auth)
		endpointURL.User = nil
	}
	return endpointURL.String(), header, nil
}

// websocketConn multiplexes calls over one connection. Responses are routed
// to the waiting call by id.
// websocketConn 在单个连接上复用调用，响应按 id 路由到等待的调用。
type websocketConn struct {
	conn *websocket.Conn

	writeMu sync.Mutex // serialises writes

	mu      sync.Mutex // protects pending and err
	pending map[string]chan *jsonrpcMessage
	err     error

	closeOnce sync.Once
	closeCh   chan struct{}
	wg        sync.WaitGroup
}

func newWebsocketConn(conn *websocket.Conn, readLimit int64) *websocketConn {
	conn.SetReadLimit(readLimit)
	wc := &websocketConn{
		conn:    conn,
		pending: make(map[string]chan *jsonrpcMessage),
		closeCh: make(chan struct{}),
	}
	conn.SetPongHandler(func(appData string) error {
		conn.SetReadDeadline(time.Time{})
		return nil
	})
	wc.wg.Add(2)
	go wc.readLoop()
	go wc.pingLoop()
	return wc
}

func (wc *websocketConn) call(ctx context.Context, msg *jsonrpcMessage) (*jsonrpcMessage, error) {
	id := string(msg.ID)
	ch := make(chan *jsonrpcMessage, 1)

	wc.mu.Lock()
	if wc.err != nil {
		wc.mu.Unlock()
		return nil, wc.err
	}
	wc.pending[id] = ch
	wc.mu.Unlock()

	defer func() {
		wc.mu.Lock()
		delete(wc.pending, id)
		wc.mu.Unlock()
	}()

	wc.writeMu.Lock()
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	wc.conn.SetWriteDeadline(deadline)
	err := wc.conn.WriteJSON(msg)
	wc.writeMu.Unlock()
	if err != nil {
		return nil, err
	}

	select {
	case resp := <-ch:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-wc.closeCh:
		wc.mu.Lock()
		defer wc.mu.Unlock()
		return nil, wc.err
	}
}

// readLoop delivers responses until the connection fails.
func (wc *websocketConn) readLoop() {
	defer wc.wg.Done()

	for {
		var msg jsonrpcMessage
		if err := wc.conn.ReadJSON(&msg); err != nil {
			log.Debug("WebSocket read failed", "err", err)
			wc.shutdown(errDead)
			return
		}
		wc.mu.Lock()
		ch := wc.pending[string(msg.ID)]
		wc.mu.Unlock()
		if ch == nil {
			log.Trace("Dropping unsolicited WebSocket message", "msg", &msg)
			continue
		}
		select {
		case ch <- &msg:
		default:
		}
	}
}

// pingLoop sends periodic ping frames.
func (wc *websocketConn) pingLoop() {
	var pingTimer = time.NewTimer(wsPingInterval)
	defer wc.wg.Done()
	defer pingTimer.Stop()

	for {
		select {
		case <-wc.closeCh:
			return
		case <-pingTimer.C:
			wc.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsPingWriteTimeout))
			wc.conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
			pingTimer.Reset(wsPingInterval)
		}
	}
}

// shutdown marks the connection dead with err and wakes all waiting calls.
func (wc *websocketConn) shutdown(err error) {
	wc.mu.Lock()
	if wc.err == nil {
		wc.err = err
	}
	wc.mu.Unlock()
	wc.closeOnce.Do(func() { close(wc.closeCh) })
}

func (wc *websocketConn) close() {
	wc.shutdown(ErrClientQuit)
	wc.conn.Close()
	wc.wg.Wait()
}
