// Copyright 2019 The go-ethereum Authors
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


// Package fourbyte contains the 4byte database, mapping selectors of well
// known functions and errors back to their signatures.
package fourbyte

import (
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/gofrs/flock"
	"github.com/sunyihoo/go-evmabi/accounts/abi"
)

//go:embed 4byte.json
var embeddedJSON []byte

// Database is a 4byte database with the possibility of maintaining an immutable
// set (embedded) into the process and a mutable set (loaded and written to file).
//
// Database 是一个 4byte 数据库，可以维护一个嵌入进程的不可变集合（embedded）
// 和一个可变集合（加载并写入文件）。
type Database struct {
	mu         sync.RWMutex
	embedded   map[string]string // 嵌入的标准签名，键为不带 0x 的十六进制选择器
	custom     map[string]string // 用户添加的签名，可持久化到 customPath
	customPath string
}

// newEmpty exists for testing purposes.
func newEmpty() *Database {
	return &Database{
		embedded: make(map[string]string),
		custom:   make(map[string]string),
	}
}

// New loads the standard signature database embedded in the package.
// New 加载包中嵌入的标准签名数据库。
func New() (*Database, error) {
	return NewWithFile("")
}

// NewFromFile loads signature database from file, and errors if the file is not
// valid JSON. The constructor does no other validation of contents. This method
// does not load the embedded 4byte database.
func NewFromFile(path string) (*Database, error) {
	raw, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer raw.Close()

	db := newEmpty()
	if err := json.NewDecoder(raw).Decode(&db.embedded); err != nil {
		return nil, err
	}
	return db, nil
}

// NewWithFile loads both the standard signature database (embedded resource
// file) as well as a custom database. The latter will be used to write new
// values into if they are added with AddSelector.
//
// NewWithFile 加载标准签名数据库（嵌入的资源文件）以及自定义数据库。
func NewWithFile(path string) (*Database, error) {
	db := newEmpty()
	db.customPath = path

	if err := json.Unmarshal(embeddedJSON, &db.embedded); err != nil {
		return nil, err
	}
	// Custom file may not exist. Will be created during save, if needed.
	// 自定义文件可能不存在。如果需要，将在保存时创建。
	if _, err := os.Stat(path); err == nil {
		var blob []byte
		if blob, err = os.ReadFile(path); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(blob, &db.custom); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Size returns the number of 4byte entries in the embedded and custom datasets.
func (db *Database) Size() (int, int) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.embedded), len(db.custom)
}

// Selector checks the given 4byte ID against the known signatures.
//
// This method does not validate the match, it's assumed the caller will do.
//
// Selector 检查给定的 4byte ID 是否存在于已知的签名中。
func (db *Database) Selector(id []byte) (string, error) {
	if len(id) < 4 {
		return "", fmt.Errorf("expected 4-byte id, got %d", len(id))
	}
	sig := hex.EncodeToString(id[:4])

	db.mu.RLock()
	defer db.mu.RUnlock()
	if selector, exists := db.embedded[sig]; exists {
		return selector, nil
	}
	if selector, exists := db.custom[sig]; exists {
		return selector, nil
	}
	return "", fmt.Errorf("signature %v not found", sig)
}

// AddSelector inserts a new signature, such as "Unauthorized(address)", into
// the database. The selector is derived from the canonical form of the
// signature. If custom database saving is enabled, the new dataset is also
// persisted to disk.
//
// AddSelector 将新签名插入数据库，选择器由规范签名计算得出。
func (db *Database) AddSelector(signature string) ([4]byte, error) {
	e, err := abi.ParseError(signature)
	if err != nil {
		return [4]byte{}, err
	}
	id := e.Selector()
	// If the selector is already known, skip duplicating it
	if _, err := db.Selector(id[:]); err == nil {
		return id, nil
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	// Inject the custom selector into the database and persist if needed
	db.custom[hex.EncodeToString(id[:])] = e.Sig
	if db.customPath == "" {
		return id, nil
	}
	return id, db.persist()
}

// persist writes the custom dataset to disk. Entries another process saved
// since the file was loaded are merged in first, the file lock keeps
// concurrent writers from dropping each other's selectors.
// persist 在文件锁保护下合并磁盘上的条目后写回。
func (db *Database) persist() error {
	lock := flock.New(db.customPath + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock %s: %v", db.customPath, err)
	}
	defer lock.Unlock()

	if blob, err := os.ReadFile(db.customPath); err == nil {
		var onDisk map[string]string
		if err := json.Unmarshal(blob, &onDisk); err != nil {
			return err
		}
		for id, sig := range onDisk {
			if _, ok := db.custom[id]; !ok {
				db.custom[id] = sig
			}
		}
	}
	blob, err := json.MarshalIndent(db.custom, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(db.customPath, blob, 0600)
}
