// Copyright 2026 The CPrime Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package clog is the compiler's ambient logging surface: a thin
// log/slog wrapper so internal/driver and cmd/cprimec don't each roll
// their own handler setup.
package clog

import (
	"io"
	"log/slog"
	"os"
)

var std atomicLogger

type atomicLogger struct {
	l *slog.Logger
}

func init() {
	std.l = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// SetOutput replaces the destination and level for the package logger.
// cmd/cprimec calls this once at startup from its --verbose/-v flag.
func SetOutput(w io.Writer, level slog.Level) {
	std.l = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Logger returns the current package-level logger.
func Logger() *slog.Logger { return std.l }

func Debug(msg string, args ...any) { std.l.Debug(msg, args...) }
func Info(msg string, args ...any)  { std.l.Info(msg, args...) }
func Warn(msg string, args ...any)  { std.l.Warn(msg, args...) }
func Error(msg string, args ...any) { std.l.Error(msg, args...) }

// With returns a logger annotated with the given key/value pairs
// (e.g. the file name a Layer 0-2B run is processing).
func With(args ...any) *slog.Logger { return std.l.With(args...) }
