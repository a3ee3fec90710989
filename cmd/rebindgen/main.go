// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Rebindgen emits mechanical per-field Rebind methods for payload structs
// used with code.hybscloud.com/pin, so that a struct can satisfy the
// Rebindable interface without hand-written boilerplate.
//
// Usage:
//
//	rebindgen -type VecStr,Mixed [-src file.go] [-out file_rebind.go]
//
// With no -src flag the file named by $GOFILE is used, which makes the
// tool directly usable from a go:generate directive:
//
//	//go:generate rebindgen -type VecStr
//
// The emitted file carries the standard generated-code header and is
// formatted with go/format.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

func main() {
	var (
		typeList = flag.String("type", "", "comma-separated list of struct type names (required)")
		src      = flag.String("src", os.Getenv("GOFILE"), "source file to scan; defaults to $GOFILE")
		out      = flag.String("out", "", "output file; defaults to <src>_rebind.go")
	)
	flag.Parse()

	if err := run(*typeList, *src, *out); err != nil {
		fmt.Fprintln(os.Stderr, "rebindgen:", err)
		os.Exit(1)
	}
}

func run(typeList, src, out string) error {
	if typeList == "" {
		return fmt.Errorf("missing -type flag")
	}
	if src == "" {
		return fmt.Errorf("no source file: pass -src or run via go:generate")
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	code, err := generate(data, src, strings.Split(typeList, ","))
	if err != nil {
		return err
	}

	if out == "" {
		out = strings.TrimSuffix(src, ".go") + "_rebind.go"
	}
	return os.WriteFile(out, code, 0o644)
}
