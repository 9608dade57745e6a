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
	"errors"
	"fmt"
)

var (
	ErrClientQuit = errors.New("client is closed")
	ErrNoResult   = errors.New("JSON-RPC response has no result")
	errDead       = errors.New("connection lost")
)

// HTTPError is returned by client operations when the HTTP status code of the
// response is not a 2xx status.
// HTTPError 在 HTTP 响应状态码不是 2xx 时由客户端操作返回。
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (err HTTPError) Error() string {
	if len(err.Body) == 0 {
		return err.Status
	}
	return fmt.Sprintf("%v: %s", err.Status, err.Body)
}

// Error wraps RPC errors, which contain an error code in addition to the message.
type Error interface {
	Error() string  // returns the message
	ErrorCode() int // returns the code
}

// A DataError contains some data in addition to the error message.
// DataError 在错误消息之外还携带附加数据，例如回滚数据。
type DataError interface {
	Error() string          // returns the message
	ErrorData() interface{} // returns the error data
}

var (
	_ Error     = new(jsonError)
	_ DataError = new(jsonError)
)

const (
	errcodeDefault = -32000

	// errcodeReverted is the code nodes use for an execution that reverted.
	errcodeReverted = 3
)

// jsonError is the error object of a JSON-RPC response.
type jsonError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (err *jsonError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("json-rpc error %d", err.Code)
	}
	return err.Message
}

func (err *jsonError) ErrorCode() int {
	return err.Code
}

func (err *jsonError) ErrorData() interface{} {
	return err.Data
}

// IsRevert reports whether err is a JSON-RPC error signalling reverted
// execution.
func IsRevert(err error) bool {
	var rpcErr Error
	if !errors.As(err, &rpcErr) {
		return false
	}
	return rpcErr.ErrorCode() == errcodeReverted
}
