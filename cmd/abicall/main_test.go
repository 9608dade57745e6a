// Copyright 2015 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-evmabi/accounts/abi"
	"github.com/sunyihoo/go-evmabi/common"
	"github.com/sunyihoo/go-evmabi/common/hexutil"
	"github.com/urfave/cli/v2"
)

const holder = "0x1111111111111111111111111111111111111111"

// run executes abicall with the given arguments and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app.Writer = &out
	defer func() { app.Writer = os.Stdout }()

	err := app.Run(append([]string{"abicall", "--verbosity", "0"}, args...))
	return out.String(), err
}

func TestSelector(t *testing.T) {
	out, err := run(t, "selector", "transfer(address,uint256)")
	require.NoError(t, err)
	require.Equal(t, "0xa9059cbb transfer(address,uint256)\n", out)

	out, err = run(t, "selector", "Error(string)")
	require.NoError(t, err)
	require.Equal(t, "0x08c379a0 Error(string)\n", out)

	_, err = run(t, "selector")
	require.Error(t, err)
}

func TestEncode(t *testing.T) {
	out, err := run(t, "encode", "transfer(address,uint256)", holder, "42")
	require.NoError(t, err)

	data := common.FromHex(strings.TrimSpace(out))
	require.Len(t, data, 4+64)
	require.Equal(t, common.FromHex("0xa9059cbb"), data[:4])
	require.Equal(t, byte(42), data[67])

	out, err = run(t, "encode", "--args-only", "f(address[])", "[]")
	require.NoError(t, err)
	data = common.FromHex(strings.TrimSpace(out))
	require.Len(t, data, 64)
	require.Equal(t, byte(32), data[31])

	_, err = run(t, "encode", "transfer(address,uint256)", holder)
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	args := abi.NewArguments(abi.Uint256, abi.Address, abi.Bytes)
	data, err := args.Pack(abi.Uint64Value(5), abi.AddressValue(common.HexToAddress(holder)), abi.BytesValue([]byte{0xca, 0xfe}))
	require.NoError(t, err)

	out, err := run(t, "decode", "--types", "uint256,address,bytes", hexutil.Encode(data))
	require.NoError(t, err)
	require.Equal(t, "uint256: 5\naddress: "+common.HexToAddress(holder).Hex()+"\nbytes: 0xcafe\n", out)

	fn, err := abi.ParseSignature("transfer(address to, uint256 amount) returns (bool ok)")
	require.NoError(t, err)
	call, err := fn.Pack(abi.AddressValue(common.HexToAddress(holder)), abi.Uint64Value(42))
	require.NoError(t, err)

	out, err = run(t, "decode", "--sig", "transfer(address to, uint256 amount) returns (bool ok)", hexutil.Encode(call))
	require.NoError(t, err)
	require.Equal(t, "address to: "+common.HexToAddress(holder).Hex()+"\nuint256 amount: 42\n", out)

	ret, err := fn.Outputs.Pack(abi.BoolValue(true))
	require.NoError(t, err)
	out, err = run(t, "decode", "--output", "--sig", "transfer(address,uint256)(bool)", hexutil.Encode(ret))
	require.NoError(t, err)
	require.Equal(t, "bool: true\n", out)

	// Truncated data is a decoding error, not a crash.
	_, err = run(t, "decode", "--types", "uint256,address,bytes", hexutil.Encode(data[:40]))
	require.ErrorIs(t, err, abi.ErrMismatchedType)

	_, err = run(t, "decode", "--types", "uint256", "--sig", "f()", "0x")
	require.Error(t, err)
}

// newNode starts a fake node whose eth_call answers balanceOf with 42, reverts
// burn with an undeclared ERC20InsufficientBalance and every other call with
// Error("denied").
func newNode(t *testing.T) *httptest.Server {
	balanceOf, err := abi.ParseSignature("balanceOf(address)(uint256)")
	require.NoError(t, err)
	burn, err := abi.ParseSignature("burn(uint256)")
	require.NoError(t, err)
	insufficient, err := abi.ParseError("ERC20InsufficientBalance(address,uint256,uint256)")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Params []struct {
				Input hexutil.Bytes `json:"input"`
			} `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		input := req.Params[0].Input
		switch {
		case len(input) >= 4 && bytes.Equal(input[:4], balanceOf.ID):
			ret, _ := balanceOf.Outputs.Pack(abi.Uint64Value(42))
			resp["result"] = hexutil.Bytes(ret)
		case len(input) >= 4 && bytes.Equal(input[:4], burn.ID):
			data, _ := insufficient.Pack(abi.AddressValue(common.HexToAddress(holder)), abi.Uint64Value(5), abi.Uint64Value(10))
			resp["error"] = map[string]interface{}{"code": 3, "message": "execution reverted", "data": hexutil.Encode(data)}
		default:
			data, _ := abi.BuiltinErrors()[0].Pack(abi.StringValue("denied"))
			resp["error"] = map[string]interface{}{"code": 3, "message": "execution reverted: denied", "data": hexutil.Encode(data)}
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCall(t *testing.T) {
	srv := newNode(t)

	out, err := run(t, "call", "--rpc", srv.URL, "--code", "0x6001", "--sig", "balanceOf(address owner)(uint256)", holder)
	require.NoError(t, err)
	require.Equal(t, "uint256: 42\n", out)

	_, err = run(t, "call", "--rpc", srv.URL, "--sig", "balanceOf(address)(uint256)", holder)
	require.EqualError(t, err, "no runtime code given (--code)")
}

func TestCallRevert(t *testing.T) {
	srv := newNode(t)

	var code int
	cli.OsExiter = func(c int) { code = c }
	defer func() { cli.OsExiter = os.Exit }()

	out, err := run(t, "call", "--rpc", srv.URL, "--code", "0x6001", "--sig", "withdraw(uint256)", "7")
	require.Error(t, err)
	require.Equal(t, 2, code)
	require.Equal(t, "execution reverted: denied\n", out)

	// Without --4byte the custom error stays undecoded.
	out, _ = run(t, "call", "--rpc", srv.URL, "--code", "0x6001", "--sig", "burn(uint256)", "1")
	require.Equal(t, "execution reverted: 0x", out[:len("execution reverted: 0x")])

	out, _ = run(t, "call", "--rpc", srv.URL, "--code", "0x6001", "--4byte", "--sig", "burn(uint256)", "1")
	require.Equal(t, "execution reverted: ERC20InsufficientBalance("+common.HexToAddress(holder).Hex()+", 5, 10)\n", out)

	out, _ = run(t, "call", "--rpc", srv.URL, "--code", "0x6001", "--error", "ERC20InsufficientBalance(address,uint256,uint256)", "--sig", "burn(uint256)", "1")
	require.Contains(t, out, "ERC20InsufficientBalance(")
}

func TestLookup(t *testing.T) {
	out, err := run(t, "lookup", "0xa9059cbb")
	require.NoError(t, err)
	require.Equal(t, "transfer(address,uint256)\n", out)

	fn, err := abi.ParseSignature("approve(address,uint256)")
	require.NoError(t, err)
	call, err := fn.Pack(abi.AddressValue(common.HexToAddress(holder)), abi.Uint64Value(1))
	require.NoError(t, err)
	out, err = run(t, "lookup", hexutil.Encode(call))
	require.NoError(t, err)
	require.Equal(t, "approve(address: "+common.HexToAddress(holder).Hex()+", uint256: 1)\n", out)

	_, err = run(t, "lookup", "0xdeadbeef")
	require.Error(t, err)
}

func TestSelectorSave(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "4byte.json")

	_, err := run(t, "selector", "--save", "frob(uint256 x)")
	require.Error(t, err)

	out, err := run(t, "selector", "--save", "--4byte.custom", custom, "frob(uint256 x)")
	require.NoError(t, err)
	sel := strings.Fields(out)[0]

	out, err = run(t, "lookup", "--4byte.custom", custom, sel)
	require.NoError(t, err)
	require.Equal(t, "frob(uint256)\n", out)
}

func TestCallBatch(t *testing.T) {
	srv := newNode(t)
	batch := filepath.Join(t.TempDir(), "queries.txt")
	require.NoError(t, os.WriteFile(batch, []byte(`
# balances
balanceOf(address)(uint256); `+holder+`
withdraw(uint256); 7
balanceOf(address)(uint256); 0x2222222222222222222222222222222222222222
`), 0600))

	out, err := run(t, "call", "--rpc", srv.URL, "--code", "0x6001", "--batch", batch, "--parallel", "2", "--ratelimit", "100")
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		"balanceOf(address): 42",
		"withdraw(uint256): execution reverted: denied",
		"balanceOf(address): 42",
		"",
	}, "\n"), out)
}

func TestParseBatch(t *testing.T) {
	queries, err := parseBatch(strings.NewReader("f()\n\n# skip\ng(uint256,bool); 1; true\n"))
	require.NoError(t, err)
	require.Len(t, queries, 2)
	require.Equal(t, "g(uint256,bool)", queries[1].fn.Sig)
	require.Len(t, queries[1].args, 2)

	_, err = parseBatch(strings.NewReader("g(uint256); x\n"))
	require.ErrorContains(t, err, "line 1:")

	_, err = parseBatch(strings.NewReader("# nothing\n"))
	require.EqualError(t, err, "batch holds no queries")
}
