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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sunyihoo/go-evmabi/accounts/abi"
	"github.com/sunyihoo/go-evmabi/accounts/abi/bind"
	"github.com/sunyihoo/go-evmabi/accounts/abi/fourbyte"
	"github.com/sunyihoo/go-evmabi/cmd/utils"
	"github.com/sunyihoo/go-evmabi/common"
	"github.com/sunyihoo/go-evmabi/internal/flags"
	"github.com/sunyihoo/go-evmabi/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var (
	batchFlag = &flags.PathFlag{
		Name:     "batch",
		Usage:    "File of queries to run, one 'signature; arg; arg...' per line (use - for STDIN)",
		Category: flags.RPCCategory,
	}
	parallelFlag = &cli.IntFlag{
		Name:     "parallel",
		Usage:    "Maximum number of batch queries in flight",
		Value:    8,
		Category: flags.RPCCategory,
	}
	rateFlag = &cli.Float64Flag{
		Name:     "ratelimit",
		Usage:    "Maximum number of queries sent per second (0 = unlimited)",
		Category: flags.RPCCategory,
	}

	callCommand = &cli.Command{
		Name:      "call",
		Usage:     "Run a query against runtime code through eth_call",
		ArgsUsage: "[arguments...]",
		Flags: flags.Merge([]cli.Flag{
			utils.CodeFlag,
			sigFlag,
			batchFlag,
			parallelFlag,
			rateFlag,
			utils.FourByteFlag,
			utils.FourByteCustomFlag,
		}, utils.QueryFlags),
		Action: call,
		Description: `
Installs the runtime code given with --code (and any --stub) through the state
override set of an eth_call, invokes the function described by --sig and
decodes the result. Reverts are decoded against the builtin Error(string) and
Panic(uint256) errors as well as every --error declaration. With --4byte,
reverts matching none of them are looked up in the 4byte database.

    abicall call --rpc http://localhost:8545 --code token.bin \
        --sig 'balanceOf(address)(uint256)' 0x1111111111111111111111111111111111111111

With --batch, every line of the file holds one query whose arguments are
separated by semicolons. Queries run concurrently and their results are
printed in input order.`,
	}
)

// query is a single call of a batch.
type query struct {
	fn   abi.Function
	args []abi.Value
}

// result is the outcome of a query: either return values or a revert.
type result struct {
	out    []abi.Value
	revert *bind.RevertError
}

func call(c *cli.Context) error {
	if err := flags.CheckExclusive(c, sigFlag, batchFlag); err != nil {
		return err
	}
	if !c.IsSet(utils.CodeFlag.Name) {
		return fmt.Errorf("no runtime code given (--%s)", utils.CodeFlag.Name)
	}
	cfg, err := utils.MakeQueryConfig(c)
	if err != nil {
		return err
	}
	code, err := utils.LoadCode(c.String(utils.CodeFlag.Name))
	if err != nil {
		return fmt.Errorf("failed to load runtime code: %v", err)
	}
	stubs, err := utils.MakeStubs(cfg)
	if err != nil {
		return err
	}
	errs, err := utils.MakeErrors(cfg)
	if err != nil {
		return err
	}
	var queries []query
	switch {
	case c.IsSet(batchFlag.Name):
		if queries, err = loadBatch(flags.Path(c, batchFlag.Name)); err != nil {
			return err
		}
	case c.IsSet(sigFlag.Name):
		q, err := newQuery(c.String(sigFlag.Name), c.Args().Slice())
		if err != nil {
			return err
		}
		queries = append(queries, q)
	default:
		return fmt.Errorf("either --%s or --%s is required", sigFlag.Name, batchFlag.Name)
	}
	runner, err := utils.MakeRunner(c.Context, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	contract := bind.NewBoundContract(code, errs, runner, stubs)
	var limiter *rate.Limiter
	if r := c.Float64(rateFlag.Name); r > 0 {
		limiter = rate.NewLimiter(rate.Limit(r), 1)
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	results, err := runQueries(c.Context, contract, queries, c.Int(parallelFlag.Name), limiter, timeout)
	if err != nil {
		return err
	}
	if c.Bool(utils.FourByteFlag.Name) {
		db, err := utils.MakeFourByte(c)
		if err != nil {
			return err
		}
		resolveReverts(db, results)
	}
	if len(queries) == 1 {
		return printResult(c.App.Writer, queries[0], results[0])
	}
	for i, res := range results {
		if res.revert != nil {
			fmt.Fprintf(c.App.Writer, "%s: %v\n", queries[i].fn.Sig, res.revert)
			continue
		}
		fmt.Fprintf(c.App.Writer, "%s: %s\n", queries[i].fn.Sig, formatValues(res.out))
	}
	return nil
}

// runQueries executes the queries with at most parallel calls in flight,
// paced by limiter when one is given. The first transport failure cancels the
// remaining queries, reverts do not.
// runQueries 并发执行查询，最多 parallel 个同时进行；回滚不会中断其它查询。
func runQueries(ctx context.Context, contract *bind.BoundContract, queries []query, parallel int, limiter *rate.Limiter, timeout time.Duration) ([]result, error) {
	var (
		results = make([]result, len(queries))
		start   = time.Now()
	)
	g, gctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(gctx); err != nil {
					return err
				}
			}
			qctx := gctx
			if timeout > 0 {
				var cancel context.CancelFunc
				qctx, cancel = context.WithTimeout(gctx, timeout)
				defer cancel()
			}
			out, rev, err := contract.Call(qctx, q.fn, q.args...)
			if err != nil {
				return fmt.Errorf("query %d (%s): %w", i, q.fn.Sig, err)
			}
			results[i] = result{out: out, revert: rev}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Debug("Executed queries", "count", len(queries), "parallel", parallel, "elapsed", common.PrettyDuration(time.Since(start)))
	return results, nil
}

// resolveReverts decodes reverts no declared error matched with the error
// signatures of the 4byte database.
func resolveReverts(db *fourbyte.Database, results []result) {
	for i, res := range results {
		if res.revert == nil || res.revert.Match != nil {
			continue
		}
		if e, ok := db.DecodeRevert(res.revert.Data); ok {
			results[i].revert = bind.DecodeRevert(res.revert.Data, []abi.Error{e})
		}
	}
}

func printResult(w io.Writer, q query, res result) error {
	if res.revert != nil {
		fmt.Fprintln(w, res.revert.Error())
		return cli.Exit("", 2)
	}
	printValues(w, q.fn.Outputs, res.out)
	return nil
}

// newQuery parses a signature and its argument literals.
func newQuery(sig string, literals []string) (query, error) {
	fn, err := abi.ParseSignature(sig)
	if err != nil {
		return query{}, err
	}
	args, err := parseArgs(fn.Inputs, literals)
	if err != nil {
		return query{}, fmt.Errorf("%s: %v", fn.Sig, err)
	}
	return query{fn: fn, args: args}, nil
}

// loadBatch reads a batch file. Blank lines and lines starting with # are
// skipped.
func loadBatch(path string) ([]query, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return parseBatch(r)
}

func parseBatch(r io.Reader) ([]query, error) {
	var (
		queries []query
		scanner = bufio.NewScanner(r)
		line    int
	)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, ";")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		q, err := newQuery(fields[0], fields[1:])
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", line, err)
		}
		queries = append(queries, q)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("batch holds no queries")
	}
	return queries, nil
}
