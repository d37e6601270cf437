// Copyright (c) 2026 Musée Virtuel. All rights reserved.
// Author: dev@musee-virtuel.sn

// Package convert provides safe string-to-number conversion helpers for
// query string and path parameter parsing.
package convert

import "strconv"

// ToInt parses a string into an int, returning fallback on failure.
func ToInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// ToFloat parses a string into a float64, returning fallback on failure.
func ToFloat(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

// ToBool parses a string into a bool, returning fallback on failure.
// Accepts the forms understood by strconv.ParseBool (1, t, true, 0, f, false).
func ToBool(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
