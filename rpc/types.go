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


package rpc

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sunyihoo/go-evmabi/common/hexutil"
)

// BlockNumber selects the state a call is executed against: a block height or
// one of the named tags.
// BlockNumber 选择调用所针对的状态：区块高度或命名标签。
type BlockNumber int64

const (
	SafeBlockNumber      = BlockNumber(-4)
	FinalizedBlockNumber = BlockNumber(-3)
	LatestBlockNumber    = BlockNumber(-2)
	PendingBlockNumber   = BlockNumber(-1)
	EarliestBlockNumber  = BlockNumber(0)
)

// ParseBlockNumber parses "safe", "finalized", "latest", "earliest", "pending"
// or a hex block number.
func ParseBlockNumber(input string) (BlockNumber, error) {
	switch input {
	case "earliest":
		return EarliestBlockNumber, nil
	case "latest", "":
		return LatestBlockNumber, nil
	case "pending":
		return PendingBlockNumber, nil
	case "finalized":
		return FinalizedBlockNumber, nil
	case "safe":
		return SafeBlockNumber, nil
	}
	blckNum, err := hexutil.DecodeUint64(input)
	if err != nil {
		return 0, err
	}
	if blckNum > math.MaxInt64 {
		return 0, errors.New("block number larger than int64")
	}
	return BlockNumber(blckNum), nil
}

// UnmarshalJSON parses the given JSON fragment into a BlockNumber. It supports:
// - "safe", "finalized", "latest", "earliest" or "pending" as string arguments
// - the block number
func (bn *BlockNumber) UnmarshalJSON(data []byte) error {
	input := strings.TrimSpace(string(data))
	if len(input) >= 2 && input[0] == '"' && input[len(input)-1] == '"' {
		input = input[1 : len(input)-1]
	}
	n, err := ParseBlockNumber(input)
	if err != nil {
		return err
	}
	*bn = n
	return nil
}

// Int64 returns the block number as int64.
func (bn BlockNumber) Int64() int64 {
	return (int64)(bn)
}

// MarshalText implements encoding.TextMarshaler. It marshals:
// - "safe", "finalized", "latest", "earliest" or "pending" as strings
// - other numbers as hex
func (bn BlockNumber) MarshalText() ([]byte, error) {
	return []byte(bn.String()), nil
}

func (bn BlockNumber) String() string {
	switch bn {
	case EarliestBlockNumber:
		return "earliest"
	case LatestBlockNumber:
		return "latest"
	case PendingBlockNumber:
		return "pending"
	case FinalizedBlockNumber:
		return "finalized"
	case SafeBlockNumber:
		return "safe"
	default:
		if bn < 0 {
			return fmt.Sprintf("<invalid %d>", bn)
		}
		return hexutil.Uint64(bn).String()
	}
}
