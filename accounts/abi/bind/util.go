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


package bind

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/sunyihoo/go-evmabi/common"
)

// ParseCode decodes runtime code written as hex. The 0x prefix is optional
// and whitespace (line breaks in .bin files) is ignored.
// ParseCode 解析十六进制的运行时代码，0x 前缀可选，忽略空白字符。
func ParseCode(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 == 1 {
		return nil, errors.New("odd length hex code")
	}
	code, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex code: %v", err)
	}
	return code, nil
}

// ParseStubs builds a stub table from "address=code" entries. The code part
// is handed to load, which lets callers accept file names as well as hex.
func ParseStubs(entries []string, load func(string) ([]byte, error)) (Stubs, error) {
	if load == nil {
		load = ParseCode
	}
	stubs := make(Stubs, len(entries))
	for _, entry := range entries {
		addr, src, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid stub %q, want address=code", entry)
		}
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("invalid stub address %q", addr)
		}
		address := common.HexToAddress(addr)
		if _, dup := stubs[address]; dup {
			return nil, fmt.Errorf("duplicate stub for %v", address)
		}
		code, err := load(src)
		if err != nil {
			return nil, fmt.Errorf("stub %v: %w", address, err)
		}
		stubs[address] = code
	}
	return stubs, nil
}
