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

// Package abi implements the Ethereum ABI (Application Binary
// Interface) over a closed set of types and values.
//
// A Type is one of uint<N>, int<N>, address, bool, bytes<N>, bytes, string,
// T[N], T[] or a tuple (T1,...,Tk). A Value mirrors it with one Kind per
// case. Encode and Decode convert between values and the head/tail binary
// layout, Selector derives the 4 byte identifier of a function or error from
// its canonical signature.
//
// abi 包在一组封闭的类型与值之上实现了以太坊 ABI。
//
// Encoding, decoding and selector computation are pure functions over
// immutable inputs and may be used from multiple goroutines.
package abi
