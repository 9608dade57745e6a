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
	"fmt"
	"os"
	"strings"

	"github.com/sunyihoo/go-evmabi/accounts/abi/bind"
	"github.com/sunyihoo/go-evmabi/cmd/utils"
	"github.com/sunyihoo/go-evmabi/internal/debug"
	"github.com/sunyihoo/go-evmabi/internal/flags"
	"github.com/sunyihoo/go-evmabi/log"
	"github.com/urfave/cli/v2"
)

var (
	// Flags needed by abigen
	tableFlag = &flags.PathFlag{
		Name:     "table",
		Usage:    "Path to the TOML binding table (use - for STDIN)",
		Category: flags.GeneratorCategory,
	}
	abiFlag = &flags.PathFlag{
		Name:     "abi",
		Usage:    "Path to the Ethereum contract ABI json to bind",
		Category: flags.GeneratorCategory,
	}
	binFlag = &flags.PathFlag{
		Name:     "bin",
		Usage:    "Path to the contract runtime bytecode to simulate",
		Category: flags.GeneratorCategory,
	}
	typeFlag = &cli.StringFlag{
		Name:     "type",
		Usage:    "Go struct name for the binding (default = package name)",
		Category: flags.GeneratorCategory,
	}
	pkgFlag = &cli.StringFlag{
		Name:     "pkg",
		Usage:    "Package name to generate the binding into (default = table Package)",
		Category: flags.GeneratorCategory,
	}
	outFlag = &flags.PathFlag{
		Name:     "out",
		Usage:    "Output file for the generated binding (default = stdout)",
		Category: flags.GeneratorCategory,
	}
	aliasFlag = &cli.StringFlag{
		Name:     "alias",
		Usage:    "Comma separated aliases for function renaming, e.g. original1=alias1, original2=alias2",
		Category: flags.GeneratorCategory,
	}
)

var app = flags.NewApp("Ethereum ABI wrapper code generator")

func init() {
	app.Name = "abigen"
	app.Flags = flags.Merge([]cli.Flag{
		tableFlag,
		abiFlag,
		binFlag,
		typeFlag,
		pkgFlag,
		outFlag,
		aliasFlag,
	}, debug.Flags)
	app.Before = func(ctx *cli.Context) error {
		flags.MigrateGlobalFlags(ctx)
		return debug.Setup(ctx)
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
	app.Action = abigen
}

func abigen(c *cli.Context) error {
	// Only one source can be selected.
	if err := flags.CheckExclusive(c, tableFlag, abiFlag); err != nil {
		utils.Fatalf("%v", err)
	}
	if err := flags.CheckExclusive(c, tableFlag, binFlag); err != nil {
		utils.Fatalf("%v", err)
	}
	if err := flags.CheckExclusive(c, tableFlag, typeFlag); err != nil {
		utils.Fatalf("%v", err)
	}
	aliases, err := parseAliases(c.String(aliasFlag.Name))
	if err != nil {
		utils.Fatalf("%v", err)
	}
	var (
		contracts []*bind.Contract
		pkg       = c.String(pkgFlag.Name)
	)
	switch {
	case c.IsSet(tableFlag.Name):
		var table *bind.Table
		if table, err = loadTable(flags.Path(c, tableFlag.Name)); err != nil {
			utils.Fatalf("Failed to load binding table: %v", err)
		}
		if pkg == "" {
			pkg = table.Package
		}
		contracts = table.Contracts

	case c.IsSet(abiFlag.Name):
		if pkg == "" {
			utils.Fatalf("No destination package specified (--pkg)")
		}
		kind := c.String(typeFlag.Name)
		if kind == "" {
			kind = pkg
		}
		contract, err := loadABI(kind, flags.Path(c, abiFlag.Name), flags.Path(c, binFlag.Name))
		if err != nil {
			utils.Fatalf("Failed to load contract ABI: %v", err)
		}
		contracts = append(contracts, contract)

	default:
		utils.Fatalf("No binding table (--table) or contract ABI (--abi) specified")
	}
	if pkg == "" {
		utils.Fatalf("No destination package specified (--pkg or Package in the table)")
	}
	applyAliases(contracts, aliases)

	// Generate the contract binding
	code, err := bind.Bind(contracts, pkg)
	if err != nil {
		utils.Fatalf("Failed to generate ABI binding: %v", err)
	}
	// Either flush it out to a file or display on the standard output
	if !c.IsSet(outFlag.Name) {
		fmt.Printf("%s\n", code)
		return nil
	}
	out := flags.Path(c, outFlag.Name)
	if err := os.WriteFile(out, []byte(code), 0600); err != nil {
		utils.Fatalf("Failed to write ABI binding: %v", err)
	}
	log.Info("Wrote binding", "file", out, "package", pkg, "contracts", len(contracts))
	return nil
}

// loadTable reads a binding table from a file, or from stdin for "-".
func loadTable(path string) (*bind.Table, error) {
	if path == "-" {
		return bind.LoadTable(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := bind.LoadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s, %v", path, err)
	}
	return table, nil
}

// loadABI builds a single table entry from an ABI json file and an optional
// runtime bytecode file.
func loadABI(kind, abiPath, binPath string) (*bind.Contract, error) {
	f, err := os.Open(abiPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var code string
	if binPath != "" {
		blob, err := os.ReadFile(binPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read input bytecode: %v", err)
		}
		code = strings.TrimSpace(string(blob))
		if _, err := bind.ParseCode(code); err != nil {
			return nil, fmt.Errorf("%s: %v", binPath, err)
		}
	}
	return bind.ContractFromABI(kind, f, code)
}

// parseAliases parses the --alias flag, e.g. "transfer0=transferFrom,balanceOf=balance".
func parseAliases(s string) (map[string]string, error) {
	aliases := make(map[string]string)
	if s == "" {
		return aliases, nil
	}
	for _, entry := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(entry, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			return nil, fmt.Errorf("invalid alias %q, want original=alias", entry)
		}
		aliases[k] = v
	}
	return aliases, nil
}

// applyAliases merges the command line aliases into every contract. Command
// line entries take precedence over the table.
func applyAliases(contracts []*bind.Contract, aliases map[string]string) {
	if len(aliases) == 0 {
		return
	}
	for _, contract := range contracts {
		if contract.Aliases == nil {
			contract.Aliases = make(map[string]string, len(aliases))
		}
		for k, v := range aliases {
			contract.Aliases[k] = v
		}
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
