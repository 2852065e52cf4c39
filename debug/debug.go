package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Resolve bool
	Patch   bool
	Commit  bool
	Match   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Resolve = boolEnv("MKHUB_DEBUG_RESOLVE")
	d.Patch = boolEnv("MKHUB_DEBUG_PATCH")
	d.Commit = boolEnv("MKHUB_DEBUG_COMMIT")
	d.Match = boolEnv("MKHUB_DEBUG_MATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Resolve() bool {
	return d.Resolve
}
func Patch() bool {
	return d.Patch
}
func Commit() bool {
	return d.Commit
}
func Match() bool {
	return d.Match
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case []byte:
			args[i] = string(a.([]byte))
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
