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


/*
Package rpc implements a client for the Ethereum JSON-RPC 2.0 API.

A Client is created with Dial or DialContext. The URL scheme selects the
transport: "http" and "https" post every call as its own request, "ws" and
"wss" keep one WebSocket connection open and match responses to calls by id.

	client, err := rpc.DialContext(ctx, "ws://localhost:8546")
	if err != nil {
		return err
	}
	defer client.Close()

	var code hexutil.Bytes
	err = client.CallContext(ctx, &code, "eth_getCode", addr, "latest")

Errors returned by the server implement the Error interface. When the server
attached data to the error, as nodes do for reverted calls, the error also
implements DataError.
*/
package rpc
