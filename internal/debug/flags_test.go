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


package debug

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-evmabi/log"
)

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer

	h, err := NewHandler("json", &buf, log.FromLegacyLevel(3), false)
	require.NoError(t, err)
	logger := log.NewLogger(h)
	logger.Debug("hidden")
	logger.Info("Bound contract", "name", "Token")

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), "output: %s", buf.String())
	require.Equal(t, "Bound contract", rec["msg"])
	require.Equal(t, "Token", rec["name"])

	buf.Reset()
	h, err = NewHandler("logfmt", &buf, log.FromLegacyLevel(4), false)
	require.NoError(t, err)
	log.NewLogger(h).Debug("Packed call", "fn", "transfer(address,uint256)")
	require.Contains(t, buf.String(), `fn=transfer(address,uint256)`)

	buf.Reset()
	h, err = NewHandler("", &buf, log.FromLegacyLevel(2), false)
	require.NoError(t, err)
	log.NewLogger(h).Info("hidden")
	log.NewLogger(h).Warn("shown")
	require.False(t, strings.Contains(buf.String(), "hidden"))
	require.Contains(t, buf.String(), "shown")

	_, err = NewHandler("xml", &buf, log.FromLegacyLevel(3), false)
	require.EqualError(t, err, "unknown log format: xml")
}

func TestGoTrace(t *testing.T) {
	file := filepath.Join(t.TempDir(), "trace.out")
	h := new(HandlerT)

	require.Error(t, h.StopGoTrace())
	require.NoError(t, h.StartGoTrace(file))
	require.Error(t, h.StartGoTrace(file))
	require.NoError(t, h.StopGoTrace())
	require.FileExists(t, file)
}

func TestValidateLogLocation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	require.NoError(t, validateLogLocation(dir))
	require.DirExists(t, dir)
	require.NoFileExists(t, filepath.Join(dir, "tmp"))
}
