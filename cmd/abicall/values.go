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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-evmabi/accounts/abi"
	"github.com/sunyihoo/go-evmabi/common"
	"github.com/sunyihoo/go-evmabi/common/hexutil"
	"github.com/sunyihoo/go-evmabi/common/math"
)

// parseArgs converts command line literals into values of the given
// arguments, one literal per argument.
func parseArgs(args abi.Arguments, literals []string) ([]abi.Value, error) {
	if len(literals) != len(args) {
		return nil, fmt.Errorf("argument count mismatch: got %d for %d", len(literals), len(args))
	}
	values := make([]abi.Value, len(args))
	for i, arg := range args {
		v, err := parseValue(arg.Type, literals[i])
		if err != nil {
			name := arg.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("argument %s (%s): %v", name, arg.Type, err)
		}
		values[i] = v
	}
	return values, nil
}

// parseValue converts a literal into a value of type t. Numbers are decimal
// or 0x-prefixed hex, byte strings are 0x-prefixed hex, arrays are written
// as [a, b] and tuples as (a, b). Strings nested in arrays or tuples must be
// double quoted.
// parseValue 将命令行字面量解析为指定类型的值。
func parseValue(t abi.Type, s string) (abi.Value, error) {
	s = strings.TrimSpace(s)
	switch t.T {
	case abi.UintTy:
		n, ok := math.ParseBig256(s)
		if !ok || s == "" {
			return abi.Value{}, fmt.Errorf("invalid number %q", s)
		}
		if n.Sign() < 0 {
			return abi.Value{}, fmt.Errorf("negative value %q for unsigned type", s)
		}
		u, overflow := uint256.FromBig(n)
		if overflow {
			return abi.Value{}, fmt.Errorf("number %q overflows 256 bits", s)
		}
		return abi.UintValue(u), nil

	case abi.IntTy:
		n, ok := math.ParseBig256(s)
		if !ok || s == "" {
			return abi.Value{}, fmt.Errorf("invalid number %q", s)
		}
		return abi.IntValue(n), nil

	case abi.AddressTy:
		if !common.IsHexAddress(s) {
			return abi.Value{}, fmt.Errorf("invalid address %q", s)
		}
		return abi.AddressValue(common.HexToAddress(s)), nil

	case abi.BoolTy:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return abi.Value{}, fmt.Errorf("invalid bool %q", s)
		}
		return abi.BoolValue(b), nil

	case abi.StringTy:
		if len(s) >= 2 && s[0] == '"' {
			return unquote(s)
		}
		return abi.StringValue(s), nil

	case abi.BytesTy:
		b, err := hexutil.Decode(s)
		if err != nil {
			return abi.Value{}, fmt.Errorf("invalid bytes %q: %v", s, err)
		}
		return abi.BytesValue(b), nil

	case abi.FixedBytesTy:
		b, err := hexutil.Decode(s)
		if err != nil {
			return abi.Value{}, fmt.Errorf("invalid bytes %q: %v", s, err)
		}
		if len(b) > t.Size {
			return abi.Value{}, fmt.Errorf("%d bytes do not fit %s", len(b), t)
		}
		return abi.FixedBytesValue(common.RightPadBytes(b, t.Size)), nil

	case abi.ArrayTy, abi.SliceTy:
		items, err := splitList(s, '[', ']')
		if err != nil {
			return abi.Value{}, err
		}
		if t.T == abi.ArrayTy && len(items) != t.Size {
			return abi.Value{}, fmt.Errorf("array of %d elements for %s", len(items), t)
		}
		elems := make([]abi.Value, len(items))
		for i, item := range items {
			if elems[i], err = parseValue(*t.Elem, item); err != nil {
				return abi.Value{}, fmt.Errorf("element %d: %v", i, err)
			}
		}
		return abi.ArrayValue(elems...), nil

	case abi.TupleTy:
		items, err := splitList(s, '(', ')')
		if err != nil {
			return abi.Value{}, err
		}
		if len(items) != len(t.TupleElems) {
			return abi.Value{}, fmt.Errorf("tuple of %d fields for %s", len(items), t)
		}
		elems := make([]abi.Value, len(items))
		for i, item := range items {
			if elems[i], err = parseValue(*t.TupleElems[i], item); err != nil {
				return abi.Value{}, fmt.Errorf("field %d: %v", i, err)
			}
		}
		return abi.TupleValue(elems...), nil
	}
	return abi.Value{}, fmt.Errorf("unsupported type %s", t)
}

func unquote(s string) (abi.Value, error) {
	str, err := strconv.Unquote(s)
	if err != nil {
		return abi.Value{}, fmt.Errorf("invalid string %s", s)
	}
	return abi.StringValue(str), nil
}

// splitList strips the enclosing brackets of a list literal and splits its
// top level elements. Separators nested in brackets or quotes are kept.
func splitList(s string, open, closing byte) ([]string, error) {
	if len(s) < 2 || s[0] != open || s[len(s)-1] != closing {
		return nil, fmt.Errorf("%q is not enclosed in %c%c", s, open, closing)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return nil, nil
	}
	var (
		items  []string
		depth  int
		quoted bool
		start  int
	)
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case quoted:
			if c == '\\' {
				i++
			} else if c == '"' {
				quoted = false
			}
		case c == '"':
			quoted = true
		case c == '[' || c == '(':
			depth++
		case c == ']' || c == ')':
			if depth--; depth < 0 {
				return nil, fmt.Errorf("unbalanced %q", s)
			}
		case c == ',' && depth == 0:
			items = append(items, strings.TrimSpace(body[start:i]))
			start = i + 1
		}
	}
	if depth != 0 || quoted {
		return nil, errors.New("unterminated list " + strconv.Quote(s))
	}
	return append(items, strings.TrimSpace(body[start:])), nil
}
