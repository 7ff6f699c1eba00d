// SPDX-License-Identifier: MIT

// Package logging builds the slog logger used by the command line tool.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
)

var (
	// ErrUnknownLevel is returned for a level other than debug, info, warn or error.
	ErrUnknownLevel = errors.New("logging: unknown level")

	// ErrUnknownFormat is returned for a format other than text or json.
	ErrUnknownFormat = errors.New("logging: unknown format")
)

// TimeFormat is the timestamp layout of the text handler.
const TimeFormat = "15:04:05"

// ParseLevel maps a case-insensitive level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}

// New returns a logger writing to w. format "text" (or "") uses the tint
// handler for terminals, "json" the standard JSON handler.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return slog.New(tint.NewHandler(w, &tint.Options{Level: lvl, TimeFormat: TimeFormat})), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
