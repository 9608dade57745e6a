// Copyright 2022 The go-ethereum Authors
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

import "github.com/urfave/cli/v2"

// Help sections of the abigen and abicall flags.
const (
	GeneratorCategory = "BINDING GENERATOR" // abigen inputs and output
	CodecCategory     = "ABI CODEC"         // type lists, custom errors, 4byte lookups
	RPCCategory       = "QUERY EXECUTION"   // eth_call endpoint and call context
	LoggingCategory   = "LOGGING AND DEBUGGING"
	MiscCategory      = "MISC"
)

// urfave/cli's built-in flags would otherwise be listed without a section.
// 将 help 与 version 标志归入 MISC 分类。
func init() {
	cli.HelpFlag.(*cli.BoolFlag).Category = MiscCategory
	cli.VersionFlag.(*cli.BoolFlag).Category = MiscCategory
}
