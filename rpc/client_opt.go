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
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// defaultResponseLimit bounds a single response. eth_call results are rarely
// larger than a few kilobytes, the limit guards against misbehaving proxies.
const defaultResponseLimit = 32 * 1024 * 1024

// ClientOption configures the transport of a Client.
// ClientOption 配置客户端的传输层。
type ClientOption interface {
	applyOption(*clientConfig)
}

type clientConfig struct {
	headers       http.Header       // sent with every HTTP request and the WebSocket handshake
	httpClient    *http.Client      // nil = a fresh http.Client
	wsDialer      *websocket.Dialer // nil = a dialer honouring the proxy environment
	responseLimit int64             // 0 = defaultResponseLimit
}

func newClientConfig(options []ClientOption) *clientConfig {
	cfg := &clientConfig{headers: make(http.Header)}
	for _, opt := range options {
		opt.applyOption(cfg)
	}
	if cfg.responseLimit <= 0 {
		cfg.responseLimit = defaultResponseLimit
	}
	return cfg
}

type optionFunc func(*clientConfig)

func (fn optionFunc) applyOption(cfg *clientConfig) { fn(cfg) }

// WithHeader sets an HTTP header on every request, for example an API key a
// hosted node requires. It applies to HTTP calls and to the WebSocket
// handshake.
func WithHeader(key, value string) ClientOption {
	return optionFunc(func(cfg *clientConfig) {
		cfg.headers.Set(key, value)
	})
}

// WithHeaders is WithHeader for a whole header set.
func WithHeaders(headers http.Header) ClientOption {
	return optionFunc(func(cfg *clientConfig) {
		for k, vs := range headers {
			cfg.headers[http.CanonicalHeaderKey(k)] = vs
		}
	})
}

// WithHTTPClient sets the http.Client of HTTP transports.
func WithHTTPClient(c *http.Client) ClientOption {
	return optionFunc(func(cfg *clientConfig) {
		cfg.httpClient = c
	})
}

// WithWebsocketDialer sets the dialer of WebSocket transports.
func WithWebsocketDialer(dialer websocket.Dialer) ClientOption {
	return optionFunc(func(cfg *clientConfig) {
		cfg.wsDialer = &dialer
	})
}

// WithResponseLimit bounds the size of a single response in bytes. Larger
// responses fail the call.
func WithResponseLimit(limit int64) ClientOption {
	return optionFunc(func(cfg *clientConfig) {
		cfg.responseLimit = limit
	})
}

// ParseHeader splits a "Name: value" header line as given on the command line.
// ParseHeader 解析命令行中 "Name: value" 形式的请求头。
func ParseHeader(line string) (string, string, error) {
	key, value, ok := strings.Cut(line, ":")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid header %q, want \"Name: value\"", line)
	}
	return key, strings.TrimSpace(value), nil
}
