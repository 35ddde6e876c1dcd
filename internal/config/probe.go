package config

import (
	"os"
	"strings"
)

// ReducedMotion reports whether the environment asks for animations to be
// suppressed. TADA_REDUCED_MOTION forces it; NO_COLOR is read as a request
// for a calm terminal and suppresses motion as well. A nil getenv falls
// back to the process environment.
func ReducedMotion(getenv func(string) string) bool {
	if getenv == nil {
		getenv = os.Getenv
	}
	switch strings.ToLower(getenv("TADA_REDUCED_MOTION")) {
	case "", "0", "false", "no":
	default:
		return true
	}
	return getenv("NO_COLOR") != ""
}
