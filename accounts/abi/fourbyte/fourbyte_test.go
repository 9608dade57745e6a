// Copyright 2019 The go-ethereum Authors
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


package fourbyte

import (
	"encoding/hex"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-evmabi/accounts/abi"
	"github.com/sunyihoo/go-evmabi/common"
)

// Tests that all the selectors contained in the 4byte database are valid.
func TestEmbeddedDatabase(t *testing.T) {
	db, err := New()
	require.NoError(t, err)

	for id, selector := range db.embedded {
		e, err := abi.ParseError(selector)
		require.NoError(t, err, "selector %s", id)
		require.Equal(t, selector, e.Sig, "signature %s is not canonical", selector)

		sel := e.Selector()
		require.Equal(t, id, hex.EncodeToString(sel[:]), "selector %s mismatch", selector)
	}
	embedded, custom := db.Size()
	require.NotZero(t, embedded)
	require.Zero(t, custom)
}

// Tests that custom 4byte datasets can be handled too.
func TestCustomDatabase(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "4byte_custom.json")

	db, err := NewWithFile(filename)
	require.NoError(t, err)
	db.embedded = make(map[string]string)

	// Ensure the database is empty, insert and verify
	calldata := common.FromHex("a52c101edeadbeef")
	_, err = db.Selector(calldata)
	require.Error(t, err)

	id, err := db.AddSelector("send(uint256 amount)")
	require.NoError(t, err)
	require.Equal(t, calldata[:4], id[:])

	selector, err := db.Selector(calldata)
	require.NoError(t, err)
	require.Equal(t, "send(uint256)", selector)

	// Check that the file as persisted to disk by creating a new instance
	db, err = NewFromFile(filename)
	require.NoError(t, err)
	selector, err = db.Selector(calldata)
	require.NoError(t, err)
	require.Equal(t, "send(uint256)", selector)

	_, err = db.AddSelector("send(")
	require.Error(t, err)
}

func TestCustomDatabaseMerge(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "4byte_custom.json")

	a, err := NewWithFile(filename)
	require.NoError(t, err)
	b, err := NewWithFile(filename)
	require.NoError(t, err)

	_, err = a.AddSelector("frob(uint256)")
	require.NoError(t, err)
	_, err = b.AddSelector("wibble(address)")
	require.NoError(t, err)

	db, err := NewFromFile(filename)
	require.NoError(t, err)
	loaded, _ := db.Size()
	require.Equal(t, 2, loaded)
}

func TestDecodeCallData(t *testing.T) {
	db, err := New()
	require.NoError(t, err)

	transfer, err := abi.ParseSignature("transfer(address,uint256)")
	require.NoError(t, err)
	to := common.HexToAddress("0x1111111111111111111111111111111111111111")
	calldata, err := transfer.Pack(abi.AddressValue(to), abi.Uint64Value(42))
	require.NoError(t, err)

	call, err := db.DecodeCallData(calldata)
	require.NoError(t, err)
	require.Equal(t, "transfer(address,uint256)", call.Function.Sig)
	require.Equal(t, "transfer(address: "+to.Hex()+", uint256: 42)", call.String())

	// Extra words past the arguments are rejected.
	_, err = db.DecodeCallData(append(calldata, make([]byte, 32)...))
	require.ErrorContains(t, err, "stuffed with extra data")

	_, err = db.DecodeCallData(calldata[:20])
	require.ErrorContains(t, err, "multiple of 32 bytes")

	_, err = db.DecodeCallData([]byte{0xde, 0xad, 0xbe, 0xef})
	require.ErrorContains(t, err, "not found")
}

func TestDecodeRevert(t *testing.T) {
	db, err := New()
	require.NoError(t, err)

	declared, err := abi.ParseError("ERC20InsufficientBalance(address sender, uint256 balance, uint256 needed)")
	require.NoError(t, err)
	data, err := declared.Pack(abi.AddressValue(common.Address{1}), abi.Uint64Value(5), abi.Uint64Value(10))
	require.NoError(t, err)

	e, ok := db.DecodeRevert(data)
	require.True(t, ok)
	require.Equal(t, "ERC20InsufficientBalance(address,uint256,uint256)", e.Sig)

	_, ok = db.DecodeRevert(data[:36])
	require.False(t, ok)
	_, ok = db.DecodeRevert([]byte{0xde, 0xad})
	require.False(t, ok)
}
