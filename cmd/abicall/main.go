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

// abicall is a command line front end of the ABI codec: it computes
// selectors, encodes and decodes ABI data and runs queries against contract
// code through a node's eth_call.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sunyihoo/go-evmabi/accounts/abi"
	"github.com/sunyihoo/go-evmabi/accounts/abi/bind"
	"github.com/sunyihoo/go-evmabi/cmd/utils"
	"github.com/sunyihoo/go-evmabi/common/hexutil"
	"github.com/sunyihoo/go-evmabi/internal/debug"
	"github.com/sunyihoo/go-evmabi/internal/flags"
	"github.com/urfave/cli/v2"
)

var (
	sigFlag = &cli.StringFlag{
		Name:     "sig",
		Usage:    "Function signature, e.g. 'balanceOf(address)(uint256)'",
		Category: flags.CodecCategory,
	}
	argsOnlyFlag = &cli.BoolFlag{
		Name:     "args-only",
		Usage:    "Encode the arguments without the 4-byte selector",
		Category: flags.CodecCategory,
	}
	saveFlag = &cli.BoolFlag{
		Name:     "save",
		Usage:    "Add the signature to the --4byte.custom database",
		Category: flags.CodecCategory,
	}
	outputFlag = &cli.BoolFlag{
		Name:     "output",
		Usage:    "Decode the data as return values of --sig instead of call data",
		Category: flags.CodecCategory,
	}
)

var (
	selectorCommand = &cli.Command{
		Name:      "selector",
		Usage:     "Compute the 4-byte selector of a function or error signature",
		ArgsUsage: "<signature>",
		Flags:     []cli.Flag{saveFlag, utils.FourByteCustomFlag},
		Action:    selector,
	}
	lookupCommand = &cli.Command{
		Name:      "lookup",
		Usage:     "Resolve a selector or decode call data through the 4byte database",
		ArgsUsage: "<selector or call data>",
		Flags:     []cli.Flag{utils.FourByteCustomFlag},
		Action:    lookup,
	}
	encodeCommand = &cli.Command{
		Name:      "encode",
		Usage:     "ABI encode a call",
		ArgsUsage: "<signature> [arguments...]",
		Flags:     []cli.Flag{argsOnlyFlag},
		Action:    encode,
		Description: `
Encodes the arguments of a function call. Numbers are decimal or 0x-prefixed
hex, byte strings are 0x-prefixed hex, arrays are written as [a, b] and tuples
as (a, b).

    abicall encode 'transfer(address,uint256)' 0x1111111111111111111111111111111111111111 42`,
	}
	decodeCommand = &cli.Command{
		Name:      "decode",
		Usage:     "Decode ABI encoded data",
		ArgsUsage: "<hex data>",
		Flags:     []cli.Flag{utils.TypesFlag, sigFlag, outputFlag},
		Action:    decode,
		Description: `
Decodes ABI data, either a bare value list described by --types, or call data
(respectively return data with --output) of the function given with --sig.`,
	}
)

var app = flags.NewApp("Ethereum ABI codec and contract query tool")

func init() {
	app.Name = "abicall"
	app.Flags = debug.Flags
	app.Commands = []*cli.Command{
		selectorCommand,
		encodeCommand,
		decodeCommand,
		lookupCommand,
		callCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		flags.MigrateGlobalFlags(ctx)
		return debug.Setup(ctx)
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
}

func selector(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("need exactly one signature, got %d arguments", c.NArg())
	}
	var (
		sig = c.Args().First()
		sel [4]byte
	)
	if fn, err := abi.ParseSignature(sig); err == nil {
		sel, sig = fn.Selector(), fn.Sig
	} else {
		e, err := abi.ParseError(sig)
		if err != nil {
			return err
		}
		sel, sig = e.Selector(), e.Sig
	}
	if c.Bool(saveFlag.Name) {
		if !c.IsSet(utils.FourByteCustomFlag.Name) {
			return fmt.Errorf("--%s needs --%s", saveFlag.Name, utils.FourByteCustomFlag.Name)
		}
		db, err := utils.MakeFourByte(c)
		if err != nil {
			return err
		}
		if _, err := db.AddSelector(sig); err != nil {
			return err
		}
	}
	fmt.Fprintln(c.App.Writer, hexutil.Encode(sel[:]), sig)
	return nil
}

func lookup(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("need exactly one selector or call data argument, got %d", c.NArg())
	}
	data, err := bind.ParseCode(c.Args().First())
	if err != nil {
		return err
	}
	db, err := utils.MakeFourByte(c)
	if err != nil {
		return err
	}
	if len(data) == 4 {
		sig, err := db.Selector(data)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, sig)
		return nil
	}
	call, err := db.DecodeCallData(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, call)
	return nil
}

func encode(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("no signature given")
	}
	fn, err := abi.ParseSignature(c.Args().First())
	if err != nil {
		return err
	}
	values, err := parseArgs(fn.Inputs, c.Args().Tail())
	if err != nil {
		return err
	}
	var data []byte
	if c.Bool(argsOnlyFlag.Name) {
		data, err = fn.Inputs.Pack(values...)
	} else {
		data, err = fn.Pack(values...)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, hexutil.Encode(data))
	return nil
}

func decode(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("need exactly one hex data argument, got %d", c.NArg())
	}
	if err := flags.CheckExclusive(c, utils.TypesFlag, sigFlag); err != nil {
		return err
	}
	data, err := bind.ParseCode(c.Args().First())
	if err != nil {
		return err
	}
	var (
		args   abi.Arguments
		values []abi.Value
	)
	switch {
	case c.IsSet(utils.TypesFlag.Name):
		fn, err := abi.ParseSignature("decode(" + c.String(utils.TypesFlag.Name) + ")")
		if err != nil {
			return fmt.Errorf("invalid --types: %v", err)
		}
		args = fn.Inputs
		values, err = args.Unpack(data)
		if err != nil {
			return err
		}
	case c.IsSet(sigFlag.Name):
		fn, err := abi.ParseSignature(c.String(sigFlag.Name))
		if err != nil {
			return err
		}
		if c.Bool(outputFlag.Name) {
			args = fn.Outputs
			values, err = fn.Unpack(data)
		} else {
			args = fn.Inputs
			values, err = fn.UnpackInput(data)
		}
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("either --%s or --%s is required", utils.TypesFlag.Name, sigFlag.Name)
	}
	printValues(c.App.Writer, args, values)
	return nil
}

// printValues writes one "type name: value" line per decoded value.
func printValues(w io.Writer, args abi.Arguments, values []abi.Value) {
	for i, v := range values {
		label := args[i].Type.String()
		if args[i].Name != "" {
			label += " " + args[i].Name
		}
		fmt.Fprintf(w, "%s: %v\n", label, v)
	}
}

// formatValues renders values on a single line.
func formatValues(values []abi.Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
