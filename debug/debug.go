// Package debug provides environment-gated debug logging.
//
// Each area of the module has a switch set from an environment variable
// at startup, for example XJ_DEBUG_TRANSFORM=1. Logging goes to stderr.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse     bool
	Encode    bool
	Decode    bool
	Transform bool
	Rules     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("XJ_DEBUG_PARSE")
	d.Encode = boolEnv("XJ_DEBUG_ENCODE")
	d.Decode = boolEnv("XJ_DEBUG_DECODE")
	d.Transform = boolEnv("XJ_DEBUG_TRANSFORM")
	d.Rules = boolEnv("XJ_DEBUG_RULES")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Encode() bool {
	return d.Encode
}
func Decode() bool {
	return d.Decode
}
func Transform() bool {
	return d.Transform
}
func Rules() bool {
	return d.Rules
}
