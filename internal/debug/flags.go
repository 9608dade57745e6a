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


package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sunyihoo/go-evmabi/internal/flags"
	"github.com/sunyihoo/go-evmabi/log"
	"github.com/urfave/cli/v2"
)

var (
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		// 日志详细级别：0=静默，1=错误，2=警告，3=信息，4=调试，5=详细。
		Value:    3,
		Category: flags.LoggingCategory,
	}
	logjsonFlag = &cli.BoolFlag{
		Name:     "log.json",
		Usage:    "Format logs with JSON",
		Hidden:   true,
		Category: flags.LoggingCategory,
	}
	logFormatFlag = &cli.StringFlag{
		Name:  "log.format",
		Usage: "Log format to use (json|logfmt|terminal)",
		// 要使用的日志格式（json|logfmt|终端）。
		Category: flags.LoggingCategory,
	}
	logFileFlag = &cli.StringFlag{
		Name:     "log.file",
		Usage:    "Write logs to a file",
		Category: flags.LoggingCategory,
	}
	cpuprofileFlag = &cli.StringFlag{
		Name:     "pprof.cpuprofile",
		Usage:    "Write CPU profile to the given file",
		Category: flags.LoggingCategory,
	}
	traceFlag = &cli.StringFlag{
		Name:     "go-execution-trace",
		Usage:    "Write Go execution trace to the given file",
		Category: flags.LoggingCategory,
	}
)

// Flags holds all command-line flags required for debugging.
// Flags 包含所有用于调试的命令行标志。
var Flags = []cli.Flag{
	verbosityFlag,
	logjsonFlag,
	logFormatFlag,
	logFileFlag,
	cpuprofileFlag,
	traceFlag,
}

var logOutputFile io.WriteCloser

// Setup initializes profiling and logging based on the CLI flags.
// It should be called as early as possible in the program.
// Setup 根据 CLI 标志初始化性能分析和日志记录。应尽可能早地在程序中调用。
func Setup(ctx *cli.Context) error {
	var (
		output     = io.Writer(os.Stderr)
		logFmtFlag = ctx.String(logFormatFlag.Name)
		logFile    = ctx.String(logFileFlag.Name)
		useColor   bool
	)
	if logFile != "" {
		if err := validateLogLocation(filepath.Dir(logFile)); err != nil {
			return fmt.Errorf("failed to initialize file logger: %v", err)
		}
		var err error
		if logOutputFile, err = os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err != nil {
			return err
		}
		output = io.MultiWriter(logOutputFile, os.Stderr)
	} else if logFmtFlag == "" || logFmtFlag == "terminal" {
		// Colour only when stderr is the sole sink and a real terminal.
		useColor = (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		if useColor {
			output = colorable.NewColorableStderr()
		}
	}
	if ctx.Bool(logjsonFlag.Name) && logFmtFlag == "" {
		// Retain backwards compatibility with `--log.json` flag if `--log.format` not set
		defer log.Warn("The flag '--log.json' is deprecated, please use '--log.format=json' instead")
		logFmtFlag = "json"
	}
	verbosity := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))
	handler, err := NewHandler(logFmtFlag, output, verbosity, useColor)
	if err != nil {
		return err
	}
	log.SetDefault(log.NewLogger(handler))

	if traceFile := ctx.String(traceFlag.Name); traceFile != "" {
		if err := Handler.StartGoTrace(traceFile); err != nil {
			return err
		}
	}
	if cpuFile := ctx.String(cpuprofileFlag.Name); cpuFile != "" {
		if err := Handler.StartCPUProfile(cpuFile); err != nil {
			return err
		}
	}
	if logFile != "" {
		log.Info("Logging configured", "format", logFmtFlag, "location", logFile)
	}
	return nil
}

// NewHandler creates the log handler for the given --log.format value.
// NewHandler 根据日志格式创建对应的处理程序。
func NewHandler(format string, output io.Writer, level slog.Level, useColor bool) (slog.Handler, error) {
	switch format {
	case "json":
		return log.JSONHandlerWithLevel(output, level), nil
	case "logfmt":
		return log.LogfmtHandlerWithLevel(output, level), nil
	case "", "terminal":
		return log.NewTerminalHandlerWithLevel(output, level, useColor), nil
	default:
		// Unknown log format specified
		return nil, fmt.Errorf("unknown log format: %v", format)
	}
}

// Exit stops all running profiles, flushing their output to the respective file.
// Exit 停止所有正在运行的性能分析，并将其输出刷新到各自的文件。
func Exit() {
	Handler.StopCPUProfile()
	Handler.StopGoTrace()
	if logOutputFile != nil {
		logOutputFile.Close()
	}
}

// validateLogLocation checks if the log directory is valid and writable.
func validateLogLocation(path string) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return fmt.Errorf("error creating the directory: %w", err)
	}
	// Check if the path is writable by trying to create a temporary file
	tmp := filepath.Join(path, "tmp")
	if f, err := os.Create(tmp); err != nil {
		return err
	} else {
		f.Close()
	}
	return os.Remove(tmp)
}
