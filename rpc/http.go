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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const contentType = "application/json"

// httpConn posts every call as its own request. It holds no state besides
// the configuration, so concurrent calls share it freely.
type httpConn struct {
	client  *http.Client
	url     string
	headers http.Header // read-only after construction
	limit   int64
}

func newHTTPConn(endpoint string, cfg *clientConfig) *httpConn {
	headers := cfg.headers.Clone()
	headers.Set("Accept", contentType)
	headers.Set("Content-Type", contentType)

	client := cfg.httpClient
	if client == nil {
		client = new(http.Client)
	}
	return &httpConn{client: client, url: endpoint, headers: headers, limit: cfg.responseLimit}
}

func (hc *httpConn) close() {
	hc.client.CloseIdleConnections()
}

func (hc *httpConn) call(ctx context.Context, msg *jsonrpcMessage) (*jsonrpcMessage, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hc.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header = hc.headers.Clone()

	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// One byte past the limit tells an oversized response from one that
	// fills it exactly.
	// 多读一个字节用于区分超限响应与恰好等于上限的响应。
	blob, err := io.ReadAll(io.LimitReader(resp.Body, hc.limit+1))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, HTTPError{Status: resp.Status, StatusCode: resp.StatusCode, Body: blob}
	}
	if int64(len(blob)) > hc.limit {
		return nil, fmt.Errorf("response of %s exceeds %d bytes", msg.Method, hc.limit)
	}
	var out jsonrpcMessage
	if err := json.Unmarshal(blob, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
