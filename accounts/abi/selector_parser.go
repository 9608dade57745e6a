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

package abi

import (
	"errors"
	"fmt"
	"strings"
)

// SelectorMarshaling is a struct that represents the JSON-serializable form of a method selector.
// It includes the method name, type, and input and output arguments.
// SelectorMarshaling 是方法选择器的可 JSON 序列化形式。
type SelectorMarshaling struct {
	Name    string               `json:"name"`
	Type    string               `json:"type"`
	Inputs  []ArgumentMarshaling `json:"inputs"`
	Outputs []ArgumentMarshaling `json:"outputs,omitempty"`
}

// typeAliases maps solidity shorthands to canonical names.
var typeAliases = map[string]string{
	"uint": "uint256",
	"int":  "int256",
	"byte": "bytes1",
}

// paramModifiers may follow a parameter type and are dropped.
var paramModifiers = map[string]bool{
	"memory":   true,
	"calldata": true,
	"storage":  true,
	"indexed":  true,
	"payable":  true,
}

// funcModifiers may follow a function's parameter list and are dropped.
var funcModifiers = map[string]bool{
	"external":   true,
	"public":     true,
	"view":       true,
	"pure":       true,
	"payable":    true,
	"nonpayable": true,
}

// isDigit checks if the given byte is a digit (0-9).
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isAlpha checks if the given byte is an alphabet character (a-z or A-Z).
func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isIdentifierSymbol checks if the given byte is a valid identifier symbol ($ or _).
func isIdentifierSymbol(c byte) bool {
	return c == '$' || c == '_'
}

func skipSpace(s string) string {
	return strings.TrimLeft(s, " \t\r\n")
}

// parseToken parses a token from the unescapedSelector string based on whether it's an identifier.
// parseToken 从字符串中解析一个标记，基于它是否是标识符。
func parseToken(unescapedSelector string, isIdent bool) (string, string, error) {
	if len(unescapedSelector) == 0 {
		return "", "", errors.New("empty token")
	}
	firstChar := unescapedSelector[0]
	position := 1
	if !(isAlpha(firstChar) || (isIdent && isIdentifierSymbol(firstChar))) {
		return "", "", fmt.Errorf("invalid token start: %c", firstChar)
	}
	for position < len(unescapedSelector) {
		char := unescapedSelector[position]
		if !(isAlpha(char) || isDigit(char) || (isIdent && isIdentifierSymbol(char))) {
			break
		}
		position++
	}
	return unescapedSelector[:position], unescapedSelector[position:], nil
}

// parseIdentifier parses an identifier from the unescapedSelector string.
func parseIdentifier(unescapedSelector string) (string, string, error) {
	return parseToken(unescapedSelector, true)
}

// parseArrayMarks parses trailing array suffixes such as [2][].
func parseArrayMarks(rest string) (string, string, error) {
	var marks string
	for len(rest) > 0 && rest[0] == '[' {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", "", errors.New("failed to parse array: expected ']'")
		}
		for i := 1; i < end; i++ {
			if !isDigit(rest[i]) {
				return "", "", fmt.Errorf("failed to parse array: invalid size %q", rest[1:end])
			}
		}
		marks += rest[:end+1]
		rest = rest[end+1:]
	}
	return marks, rest, nil
}

// parseParam parses one parameter: a type, optional data location keywords
// and an optional name.
// parseParam 解析单个参数：类型、可选的数据位置关键字和可选的名称。
func parseParam(s string) (ArgumentMarshaling, string, error) {
	var arg ArgumentMarshaling
	s = skipSpace(s)
	if strings.HasPrefix(s, "tuple(") {
		s = s[len("tuple"):]
	}
	if len(s) > 0 && s[0] == '(' {
		components, rest, err := parseParamList(s)
		if err != nil {
			return arg, "", err
		}
		arg.Type, arg.Components, s = "tuple", components, rest
	} else {
		typ, rest, err := parseToken(s, false)
		if err != nil {
			return arg, "", fmt.Errorf("failed to parse elementary type: %v", err)
		}
		if alias, ok := typeAliases[typ]; ok {
			typ = alias
		}
		arg.Type, s = typ, rest
	}
	marks, rest, err := parseArrayMarks(s)
	if err != nil {
		return arg, "", err
	}
	arg.Type += marks

	for {
		trimmed := skipSpace(rest)
		if trimmed == rest || len(trimmed) == 0 || !(isAlpha(trimmed[0]) || isIdentifierSymbol(trimmed[0])) {
			return arg, trimmed, nil
		}
		ident, r, err := parseIdentifier(trimmed)
		if err != nil {
			return arg, "", err
		}
		rest = r
		if paramModifiers[ident] {
			continue
		}
		if arg.Name != "" {
			return arg, "", fmt.Errorf("unexpected identifier '%s' after parameter '%s'", ident, arg.Name)
		}
		arg.Name = ident
	}
}

// parseParamList parses a parenthesised, comma separated parameter list.
// parseParamList 解析括号内以逗号分隔的参数列表。
func parseParamList(s string) ([]ArgumentMarshaling, string, error) {
	s = skipSpace(s)
	if len(s) == 0 || s[0] != '(' {
		return nil, "", fmt.Errorf("expected '(', got '%s'", s)
	}
	s = skipSpace(s[1:])
	if len(s) > 0 && s[0] == ')' {
		return []ArgumentMarshaling{}, s[1:], nil
	}
	var params []ArgumentMarshaling
	for {
		param, rest, err := parseParam(s)
		if err != nil {
			return nil, "", fmt.Errorf("failed to parse type: %v", err)
		}
		params = append(params, param)
		rest = skipSpace(rest)
		switch {
		case len(rest) == 0:
			return nil, "", errors.New("expected ')', got end of input")
		case rest[0] == ',':
			s = rest[1:]
		case rest[0] == ')':
			return params, rest[1:], nil
		default:
			return nil, "", fmt.Errorf("expected ',' or ')', got '%s'", rest)
		}
	}
}

// ParseSelector converts a human readable signature into a struct that can
// be JSON encoded and consumed by other functions in this package.
// Accepted forms include "transfer(address,uint256)",
// "function balanceOf(address owner) view returns (uint256)",
// "get()(uint256,bytes)" and "error Unauthorized(address caller)".
// Note, although uppercase letters are not part of the ABI spec, this function
// still accepts it as the general format is valid.
// ParseSelector 将人类可读的签名转换为可以 JSON 编码的结构体。
func ParseSelector(unescapedSelector string) (SelectorMarshaling, error) {
	fail := func(err error) (SelectorMarshaling, error) {
		return SelectorMarshaling{}, fmt.Errorf("failed to parse selector '%s': %v", unescapedSelector, err)
	}
	kind := "function"
	name, rest, err := parseIdentifier(skipSpace(unescapedSelector))
	if err != nil {
		return fail(err)
	}
	if (name == "function" || name == "error") && len(rest) > 0 && (rest[0] == ' ' || rest[0] == '\t') {
		kind = name
		if name, rest, err = parseIdentifier(skipSpace(rest)); err != nil {
			return fail(err)
		}
	}
	inputs, rest, err := parseParamList(skipSpace(rest))
	if err != nil {
		return fail(err)
	}
	var outputs []ArgumentMarshaling
	for {
		rest = skipSpace(rest)
		if len(rest) == 0 {
			break
		}
		if rest[0] == '(' {
			if outputs != nil {
				return fail(fmt.Errorf("unexpected string '%s'", rest))
			}
			if outputs, rest, err = parseParamList(rest); err != nil {
				return fail(err)
			}
			continue
		}
		ident, r, err := parseIdentifier(rest)
		if err != nil || !(funcModifiers[ident] || ident == "returns") || outputs != nil {
			return fail(fmt.Errorf("unexpected string '%s'", rest))
		}
		rest = r
	}
	if kind == "error" && len(outputs) > 0 {
		return fail(errors.New("errors have no outputs"))
	}
	return SelectorMarshaling{Name: name, Type: kind, Inputs: inputs, Outputs: outputs}, nil
}

// newArgumentList builds typed arguments from their marshaling form.
func newArgumentList(ms []ArgumentMarshaling) (Arguments, error) {
	args := make(Arguments, len(ms))
	for i, m := range ms {
		typ, err := NewType(m.Type, m.InternalType, m.Components)
		if err != nil {
			return nil, err
		}
		args[i] = Argument{Name: m.Name, Type: typ}
	}
	return args, nil
}

// ParseSignature parses a human readable function signature, optionally with
// outputs, into a Function.
// ParseSignature 将人类可读的函数签名解析为 Function。
func ParseSignature(sig string) (Function, error) {
	sel, err := ParseSelector(sig)
	if err != nil {
		return Function{}, err
	}
	if sel.Type != "function" {
		return Function{}, fmt.Errorf("'%s' is not a function signature", sig)
	}
	inputs, err := newArgumentList(sel.Inputs)
	if err != nil {
		return Function{}, fmt.Errorf("invalid inputs of '%s': %v", sig, err)
	}
	outputs, err := newArgumentList(sel.Outputs)
	if err != nil {
		return Function{}, fmt.Errorf("invalid outputs of '%s': %v", sig, err)
	}
	return NewFunction(sel.Name, inputs, outputs), nil
}

// ParseError parses a human readable error signature such as
// "InsufficientBalance(uint256 available, uint256 required)".
func ParseError(sig string) (Error, error) {
	sel, err := ParseSelector(sig)
	if err != nil {
		return Error{}, err
	}
	if len(sel.Outputs) > 0 {
		return Error{}, fmt.Errorf("'%s' is not an error signature", sig)
	}
	inputs, err := newArgumentList(sel.Inputs)
	if err != nil {
		return Error{}, fmt.Errorf("invalid inputs of '%s': %v", sig, err)
	}
	return NewError(sel.Name, inputs), nil
}
