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

// Package utils contains internal helper functions for go-evmabi commands.
package utils

import (
	"fmt"
	"os"

	"github.com/sunyihoo/go-evmabi/internal/flags"
	"github.com/urfave/cli/v2"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	// Query execution settings
	ConfigFileFlag = &flags.PathFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.MiscCategory,
	}
	RPCFlag = &cli.StringFlag{
		Name:     "rpc",
		Usage:    "Endpoint of the node executing queries (http, https, ws or wss URL)",
		EnvVars:  []string{"EVMABI_RPC"},
		Category: flags.RPCCategory,
	}
	RPCHeaderFlag = &cli.StringSliceFlag{
		Name:     "rpc.header",
		Usage:    "Extra HTTP header sent to the endpoint, as 'Key: value' (repeatable)",
		Category: flags.RPCCategory,
	}
	BlockFlag = &cli.StringFlag{
		Name:     "block",
		Usage:    "Block the query runs against (latest, pending, safe, finalized, earliest or a hex number)",
		Value:    "latest",
		Category: flags.RPCCategory,
	}
	TargetFlag = &cli.StringFlag{
		Name:     "target",
		Usage:    "Address the runtime code is installed at",
		Category: flags.RPCCategory,
	}
	FromFlag = &cli.StringFlag{
		Name:     "from",
		Usage:    "Caller address of the query",
		Category: flags.RPCCategory,
	}
	CodeFlag = &cli.StringFlag{
		Name:     "code",
		Usage:    "Runtime code to simulate, as a .bin file or inline hex",
		Category: flags.RPCCategory,
	}
	StubFlag = &cli.StringSliceFlag{
		Name:     "stub",
		Usage:    "Code installed at an extra address, as address=file or address=hex (repeatable)",
		Category: flags.RPCCategory,
	}
	TimeoutFlag = &cli.DurationFlag{
		Name:     "timeout",
		Usage:    "Maximum duration of a single query",
		Category: flags.RPCCategory,
	}

	// Codec settings
	TypesFlag = &cli.StringFlag{
		Name:     "types",
		Usage:    "Comma separated list of ABI types, e.g. uint256,address,bytes",
		Category: flags.CodecCategory,
	}
	FourByteFlag = &cli.BoolFlag{
		Name:     "4byte",
		Usage:    "Resolve unknown selectors through the 4byte signature database",
		Category: flags.CodecCategory,
	}
	FourByteCustomFlag = &flags.PathFlag{
		Name:     "4byte.custom",
		Usage:    "File of user added 4byte signatures, loaded next to the embedded set",
		Category: flags.CodecCategory,
	}
	ErrorsFlag = &cli.StringSliceFlag{
		Name:     "error",
		Usage:    "Custom error declaration used to decode reverts, e.g. 'Unauthorized(address)' (repeatable)",
		Category: flags.CodecCategory,
	}
)

// QueryFlags are the flags shared by all commands that run queries.
var QueryFlags = []cli.Flag{
	ConfigFileFlag,
	RPCFlag,
	RPCHeaderFlag,
	BlockFlag,
	TargetFlag,
	FromFlag,
	StubFlag,
	TimeoutFlag,
	ErrorsFlag,
}

// Fatalf formats a message to standard error and exits the program.
// The message is also printed to standard output if standard error
// is redirected to a different file.
// Fatalf 将错误消息输出到标准错误并退出程序。
func Fatalf(format string, args ...interface{}) {
	w := os.Stderr
	if fi, err := os.Stdout.Stat(); err == nil {
		if fe, err := os.Stderr.Stat(); err == nil && !os.SameFile(fi, fe) {
			fmt.Fprintf(os.Stdout, "Fatal: "+format+"\n", args...)
		}
	}
	fmt.Fprintf(w, "Fatal: "+format+"\n", args...)
	os.Exit(1)
}
