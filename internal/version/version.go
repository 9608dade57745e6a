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


// Package version reports the version of the go-evmabi tools, stamped with the
// git commit the go tool embeds in module builds.
// 版本信息包：读取 go 工具嵌入构建中的 VCS 信息。
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/sunyihoo/go-evmabi/version"
)

const ourPath = "github.com/sunyihoo/go-evmabi" // main module path of our binaries

// Semantic is the major.minor.patch version.
var Semantic = fmt.Sprintf("%d.%d.%d", version.Major, version.Minor, version.Patch)

// WithMeta is Semantic plus the release tag, e.g. "0.3.0-unstable".
var WithMeta = Semantic + withDash(version.Meta)

// These can be overridden with -ldflags "-X ..." when the build runs outside
// a git checkout.
var gitCommit, gitDate string

// VCSInfo is the git state a binary was built from.
type VCSInfo struct {
	Commit string // full commit hash
	Date   string // commit date as YYYYMMDD
	Dirty  bool   // uncommitted changes were present
}

// VCS returns the git state of the running binary, if known.
func VCS() (VCSInfo, bool) {
	if gitCommit != "" {
		return VCSInfo{Commit: gitCommit, Date: gitDate}, true
	}
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Path != ourPath {
		return VCSInfo{}, false
	}
	return buildInfoVCS(info)
}

// buildInfoVCS extracts the vcs.* settings the go tool records. The result is
// only valid if both the commit and its date are present.
func buildInfoVCS(info *debug.BuildInfo) (VCSInfo, bool) {
	var s VCSInfo
	for _, v := range info.Settings {
		switch v.Key {
		case "vcs.revision":
			s.Commit = v.Value
		case "vcs.modified":
			s.Dirty = v.Value == "true"
		case "vcs.time":
			if t, err := time.Parse(time.RFC3339, v.Value); err == nil {
				s.Date = t.UTC().Format("20060102")
			}
		}
	}
	return s, s.Commit != "" && s.Date != ""
}

// WithCommit appends the short commit hash and, for unstable builds, the
// commit date to WithMeta.
func WithCommit(gitCommit, gitDate string) string {
	vsn := WithMeta
	if len(gitCommit) >= 8 {
		vsn += "-" + gitCommit[:8]
	}
	if version.Meta != "stable" && gitDate != "" {
		vsn += "-" + gitDate
	}
	return vsn
}

// ClientName builds the identifier the tools send as their HTTP User-Agent,
// e.g. "abicall/v0.3.0-unstable-1c7c2f4b/linux-amd64/go1.22.4".
// ClientName 生成作为 HTTP User-Agent 发送的客户端标识。
func ClientName(name string) string {
	git, _ := VCS()
	return fmt.Sprintf("%s/v%s/%s-%s/%s", name, WithCommit(git.Commit, git.Date), runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func withDash(s string) string {
	if s == "" {
		return ""
	}
	return "-" + s
}
