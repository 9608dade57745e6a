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

import "strconv"

// ResolveNameConflict appends the smallest numeric suffix that makes name
// unused. Overloaded functions and errors registered into an ABI get names
// like "transfer0", and generated Go identifiers that collide after
// capitalisation are separated the same way.
// ResolveNameConflict 为重名项追加最小的未占用数字后缀。
func ResolveNameConflict(name string, used func(string) bool) string {
	if !used(name) {
		return name
	}
	for n := 0; ; n++ {
		if candidate := name + strconv.Itoa(n); !used(candidate) {
			return candidate
		}
	}
}
