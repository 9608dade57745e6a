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
	"fmt"
	"net/url"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/sunyihoo/go-evmabi/log"
)

// conn is a client transport. Every call carries one message and waits for
// the response with the same id.
type conn interface {
	call(ctx context.Context, msg *jsonrpcMessage) (*jsonrpcMessage, error)
	close()
}

// Client represents a connection to an RPC server.
// Client 表示与 RPC 服务器的连接。
type Client struct {
	isHTTP    bool // connection type: http or ws
	idCounter atomic.Uint32
	conn      conn

	closeOnce sync.Once
	closed    atomic.Bool
}

// Dial creates a new client for the given URL.
//
// The currently supported URL schemes are "http", "https", "ws" and "wss".
// If you want to further configure the transport, use DialOptions instead of
// this function.
func Dial(rawurl string) (*Client, error) {
	return DialOptions(context.Background(), rawurl)
}

// DialContext creates a new RPC client, just like Dial.
//
// The context is used to cancel or time out the initial connection establishment. It does
// not affect subsequent interactions with the client.
func DialContext(ctx context.Context, rawurl string) (*Client, error) {
	return DialOptions(ctx, rawurl)
}

// DialOptions creates a new RPC client for the given URL. You can supply any of the
// pre-defined client options to configure the underlying transport.
//
// The context is used to cancel or time out the initial connection establishment. It does
// not affect subsequent interactions with the client.
// DialOptions 使用给定的 URL 和选项创建新的 RPC 客户端。
func DialOptions(ctx context.Context, rawurl string, options ...ClientOption) (*Client, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}
	cfg := newClientConfig(options)

	c := new(Client)
	switch u.Scheme {
	case "http", "https":
		c.isHTTP = true
		c.conn = newHTTPConn(rawurl, cfg)
	case "ws", "wss":
		if c.conn, err = dialWebsocket(ctx, rawurl, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("no known transport for URL scheme %q", u.Scheme)
	}
	log.Debug("Connected to RPC endpoint", "scheme", u.Scheme, "host", u.Host)
	return c, nil
}

func (c *Client) nextID() uint32 {
	return c.idCounter.Add(1)
}

// Close closes the client, aborting any in-flight requests.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.conn.close()
	})
}

// Call performs a JSON-RPC call with the given arguments and unmarshals into
// result if no error occurred.
//
// The result must be a pointer so that package json can unmarshal into it. You
// can also pass nil, in which case the result is ignored.
func (c *Client) Call(result interface{}, method string, args ...interface{}) error {
	ctx := context.Background()
	return c.CallContext(ctx, result, method, args...)
}

// CallContext performs a JSON-RPC call with the given arguments. If the context is
// canceled before the call has successfully returned, CallContext returns immediately.
//
// The result must be a pointer so that package json can unmarshal into it. You
// can also pass nil, in which case the result is ignored.
// CallContext 使用给定参数执行 JSON-RPC 调用，上下文取消时立即返回。
func (c *Client) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if result != nil && reflect.TypeOf(result).Kind() != reflect.Ptr {
		return fmt.Errorf("call result parameter must be pointer or nil interface: %v", result)
	}
	if c.closed.Load() {
		return ErrClientQuit
	}
	msg, err := newMessage(c.nextID(), method, args...)
	if err != nil {
		return err
	}
	resp, err := c.conn.call(ctx, msg)
	if err != nil {
		return err
	}
	return decodeResult(resp, result)
}
