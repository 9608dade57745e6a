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

package utils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/naoina/toml"
	"github.com/sunyihoo/go-evmabi/accounts/abi"
	"github.com/sunyihoo/go-evmabi/accounts/abi/bind"
	"github.com/sunyihoo/go-evmabi/accounts/abi/bind/backends"
	"github.com/sunyihoo/go-evmabi/accounts/abi/fourbyte"
	"github.com/sunyihoo/go-evmabi/common"
	"github.com/sunyihoo/go-evmabi/internal/flags"
	"github.com/sunyihoo/go-evmabi/internal/version"
	"github.com/sunyihoo/go-evmabi/log"
	"github.com/sunyihoo/go-evmabi/rpc"
	"github.com/urfave/cli/v2"
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// QueryConfig holds the settings of query commands. It is loaded from the
// --config file first, command line flags override it.
//
//	RPC = "http://localhost:8545"
//	Headers = ["Authorization: Bearer s3cr3t"]
//	Block = "latest"
//	Stubs = ["0x00000000000000000000000000000000000000aa=oracle.bin"]
//	Errors = ["Unauthorized(address caller)"]
type QueryConfig struct {
	RPC     string
	Headers []string `toml:",omitempty"` // "Key: value"
	Block   string   `toml:",omitempty"`
	Target  string   `toml:",omitempty"`
	From    string   `toml:",omitempty"`
	Stubs   []string `toml:",omitempty"`
	Errors  []string `toml:",omitempty"`
	Timeout int      `toml:",omitempty"` // seconds
}

// LoadConfig decodes a TOML configuration file into cfg.
func LoadConfig(file string, cfg *QueryConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// MakeQueryConfig loads the configuration file, if any, and applies the
// command line flags on top of it.
// MakeQueryConfig 先加载配置文件，再用命令行标志覆盖。
func MakeQueryConfig(ctx *cli.Context) (*QueryConfig, error) {
	cfg := new(QueryConfig)
	if ctx.IsSet(ConfigFileFlag.Name) {
		if err := LoadConfig(flags.Path(ctx, ConfigFileFlag.Name), cfg); err != nil {
			return nil, err
		}
	}
	if ctx.IsSet(RPCFlag.Name) || cfg.RPC == "" {
		cfg.RPC = ctx.String(RPCFlag.Name)
	}
	if ctx.IsSet(BlockFlag.Name) || cfg.Block == "" {
		cfg.Block = ctx.String(BlockFlag.Name)
	}
	if ctx.IsSet(TargetFlag.Name) {
		cfg.Target = ctx.String(TargetFlag.Name)
	}
	if ctx.IsSet(FromFlag.Name) {
		cfg.From = ctx.String(FromFlag.Name)
	}
	if ctx.IsSet(TimeoutFlag.Name) {
		cfg.Timeout = int(ctx.Duration(TimeoutFlag.Name) / time.Second)
	}
	cfg.Headers = append(cfg.Headers, ctx.StringSlice(RPCHeaderFlag.Name)...)
	cfg.Stubs = append(cfg.Stubs, ctx.StringSlice(StubFlag.Name)...)
	cfg.Errors = append(cfg.Errors, ctx.StringSlice(ErrorsFlag.Name)...)
	if cfg.RPC == "" {
		return nil, errors.New("no RPC endpoint given (--rpc or RPC in --config)")
	}
	return cfg, nil
}

// MakeRunner dials the configured endpoint and sets up an eth_call runner.
func MakeRunner(ctx context.Context, cfg *QueryConfig) (*backends.RPCRunner, error) {
	block, err := rpc.ParseBlockNumber(cfg.Block)
	if err != nil {
		return nil, fmt.Errorf("invalid block %q: %v", cfg.Block, err)
	}
	opts := []rpc.ClientOption{rpc.WithHeader("User-Agent", version.ClientName("go-evmabi"))}
	for _, line := range cfg.Headers {
		key, value, err := rpc.ParseHeader(line)
		if err != nil {
			return nil, err
		}
		opts = append(opts, rpc.WithHeader(key, value))
	}
	runner, err := backends.DialRPCRunner(ctx, cfg.RPC, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %v", cfg.RPC, err)
	}
	runner.Block = block
	if cfg.Target != "" {
		if !common.IsHexAddress(cfg.Target) {
			runner.Close()
			return nil, fmt.Errorf("invalid target address %q", cfg.Target)
		}
		runner.Target = common.HexToAddress(cfg.Target)
	}
	if cfg.From != "" {
		if !common.IsHexAddress(cfg.From) {
			runner.Close()
			return nil, fmt.Errorf("invalid caller address %q", cfg.From)
		}
		from := common.HexToAddress(cfg.From)
		runner.From = &from
	}
	log.Debug("Connected query runner", "url", cfg.RPC, "block", block, "target", runner.Target)
	return runner, nil
}

// MakeStubs loads the configured stubs. Each code part is read as a file
// when one exists at that path, and as hex otherwise.
func MakeStubs(cfg *QueryConfig) (bind.Stubs, error) {
	return bind.ParseStubs(cfg.Stubs, LoadCode)
}

// MakeErrors parses the configured custom error declarations.
func MakeErrors(cfg *QueryConfig) ([]abi.Error, error) {
	errs := make([]abi.Error, 0, len(cfg.Errors))
	for _, sig := range cfg.Errors {
		e, err := abi.ParseError(sig)
		if err != nil {
			return nil, err
		}
		errs = append(errs, e)
	}
	return errs, nil
}

// MakeFourByte opens the 4byte signature database, extended with the
// --4byte.custom file when given.
func MakeFourByte(ctx *cli.Context) (*fourbyte.Database, error) {
	custom := ""
	if ctx.IsSet(FourByteCustomFlag.Name) {
		custom = flags.Path(ctx, FourByteCustomFlag.Name)
	}
	db, err := fourbyte.NewWithFile(custom)
	if err != nil {
		return nil, fmt.Errorf("failed to open 4byte database: %v", err)
	}
	embedded, added := db.Size()
	log.Debug("Loaded 4byte database", "embedded", embedded, "custom", added)
	return db, nil
}

// LoadCode reads runtime code from a .bin file, or decodes it as inline hex
// when no such file exists.
// LoadCode 从 .bin 文件读取运行时代码，文件不存在时按十六进制解析。
func LoadCode(src string) ([]byte, error) {
	path := src
	if strings.HasPrefix(path, "~/") {
		path = flags.HomeDir() + path[1:]
	}
	blob, err := os.ReadFile(path)
	if err == nil {
		return bind.ParseCode(string(blob))
	}
	if code, herr := bind.ParseCode(src); herr == nil {
		return code, nil
	}
	return nil, err
}
