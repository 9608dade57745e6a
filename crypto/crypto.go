// Copyright 2014 The go-ethereum Authors
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

// Package crypto provides the Keccak-256 hashing used for selectors and for
// keying simulated contracts by their code.
package crypto

import (
	"hash"
	"sync"

	"github.com/sunyihoo/go-evmabi/common"
	"golang.org/x/crypto/sha3"
)

// keccakState is the legacy Keccak-256 sponge. Read squeezes the digest out
// without the copy Sum makes.
type keccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// Selectors are hashed on every pack and every error lookup, so sponges are
// reused instead of allocated per call.
// 海绵状态按需复用，避免每次计算选择器都重新分配。
var keccakPool = sync.Pool{
	New: func() any { return sha3.NewLegacyKeccak256().(keccakState) },
}

func keccak(out []byte, data [][]byte) {
	d := keccakPool.Get().(keccakState)
	d.Reset()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(out)
	keccakPool.Put(d)
}

// Keccak256 returns the Keccak-256 digest of the concatenated inputs.
func Keccak256(data ...[]byte) []byte {
	out := make([]byte, common.HashLength)
	keccak(out, data)
	return out
}

// Keccak256Hash is Keccak256 returning a common.Hash.
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	keccak(h[:], data)
	return h
}

// Selector returns the first four bytes of the digest of a canonical
// signature such as "transfer(address,uint256)".
// Selector 返回规范签名哈希的前 4 个字节。
func Selector(sig string) (sel [4]byte) {
	var h common.Hash
	keccak(h[:], [][]byte{[]byte(sig)})
	copy(sel[:], h[:4])
	return sel
}
