package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse   bool
	Get     bool
	Set     bool
	Delete  bool
	Flatten bool
	Eval    bool
	Patch   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("DOT_DEBUG_PARSE")
	d.Get = boolEnv("DOT_DEBUG_GET")
	d.Set = boolEnv("DOT_DEBUG_SET")
	d.Delete = boolEnv("DOT_DEBUG_DELETE")
	d.Flatten = boolEnv("DOT_DEBUG_FLATTEN")
	d.Eval = boolEnv("DOT_DEBUG_EVAL")
	d.Patch = boolEnv("DOT_DEBUG_PATCH")
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
func Get() bool {
	return d.Get
}
func Set() bool {
	return d.Set
}
func Delete() bool {
	return d.Delete
}
func Flatten() bool {
	return d.Flatten
}
func Eval() bool {
	return d.Eval
}
func Patch() bool {
	return d.Patch
}
