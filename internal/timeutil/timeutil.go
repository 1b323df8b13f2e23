// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package timeutil formats server timestamps for display.
package timeutil

import (
	"strconv"
	"time"
)

// Relative renders a timestamp the way the board displays it: recent
// times as a coarse age, older times as an absolute date.
//
//	< 1 minute  -> "just now"
//	< 1 hour    -> "N min"
//	< 1 day     -> "N h"
//	< 7 days    -> "N d"
//	otherwise   -> "Jan 2" (current year) or "Jan 2 2006"
//
// A zero time renders as an empty string.
func Relative(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := now.Sub(t)
	if d < 0 {
		// Clock skew between client and server. Treat as fresh.
		d = 0
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return strconv.Itoa(int(d/time.Minute)) + " min"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d/time.Hour)) + " h"
	case d < 7*24*time.Hour:
		return strconv.Itoa(int(d/(24*time.Hour))) + " d"
	}

	if t.Year() == now.Year() {
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2 2006")
}

// RelativeNow is Relative against the current wall clock.
func RelativeNow(t time.Time) string {
	return Relative(t, time.Now())
}
