// Copyright 2015 The go-ethereum Authors
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


package flags

import (
	"flag"
	"os"
	"os/user"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestPathExpansion(t *testing.T) {
	user, _ := user.Current()
	var tests map[string]string

	if runtime.GOOS == "windows" {
		tests = map[string]string{
			`/home/someuser/tmp`:        `\home\someuser\tmp`,
			`~/tmp`:                     user.HomeDir + `\tmp`,
			`~thisOtherUser/b/`:         `~thisOtherUser\b`,
			`$DDDXXX/a/b`:               `\tmp\a\b`,
			`/a/b/`:                     `\a\b`,
			`C:\Documents\Newsletters\`: `C:\Documents\Newsletters`,
			`C:\`:                       `C:\`,
		}
	} else {
		tests = map[string]string{
			`/home/someuser/tmp`: `/home/someuser/tmp`,
			`~/tmp`:              user.HomeDir + `/tmp`,
			`~thisOtherUser/b/`:  `~thisOtherUser/b`,
			`$DDDXXX/a/b`:        `/tmp/a/b`,
			`/a/b/`:              `/a/b`,
			``:                   ``,
		}
	}
	os.Setenv(`DDDXXX`, `/tmp`)
	os.Setenv(`HOME`, user.HomeDir)
	for test, expected := range tests {
		require.Equal(t, expected, expandPath(test), "input %q", test)
	}
}

func newContext(t *testing.T, flags []cli.Flag, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range flags {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestPathFlag(t *testing.T) {
	os.Setenv(`DDDXXX`, `/tmp`)
	code := &PathFlag{Name: "code"}
	ctx := newContext(t, []cli.Flag{code}, "--code", "$DDDXXX/token/../token.bin")

	require.True(t, ctx.IsSet("code"))
	require.Equal(t, "/tmp/token.bin", Path(ctx, "code"))
	require.Empty(t, Path(ctx, "missing"))
}

func TestCheckExclusive(t *testing.T) {
	var (
		table = &cli.StringFlag{Name: "table"}
		abi   = &cli.StringFlag{Name: "abi"}
		all   = []cli.Flag{table, abi}
	)
	require.NoError(t, CheckExclusive(newContext(t, all, "--table", "a.toml"), table, abi))
	require.NoError(t, CheckExclusive(newContext(t, all), table, abi))

	err := CheckExclusive(newContext(t, all, "--table", "a.toml", "--abi", "a.abi"), table, abi)
	require.EqualError(t, err, "flags --table, --abi can't be used at the same time")

	require.Error(t, CheckExclusive(newContext(t, all), table, 42))
}

func TestMerge(t *testing.T) {
	a := []cli.Flag{&cli.StringFlag{Name: "a"}}
	b := []cli.Flag{&cli.StringFlag{Name: "b"}, &cli.IntFlag{Name: "c"}}
	require.Len(t, Merge(a, b), 3)
	require.Nil(t, Merge())
}
