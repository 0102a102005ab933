//go:build none

// This program regenerates builtin_names.go from the BuiltinOp constant
// block in builtin.go. It is not part of the module build (see the
// go:build tag above); run it with `go run _generate/builtin_names.go`
// from the expr/ directory after editing the const block.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// rename overrides the default lower-first-letter derivation for
// constants whose RecordPath function name doesn't match that pattern.
var rename = map[string]string{
	"ToStringFn":   "toString",
	"EscapeJSON":   "escapeJson",
	"UnescapeJSON": "unescapeJson",
}

func main() {
	names := extract("builtin.go")
	write("builtin_names.go", names)
}

func extract(path string) []string {
	f, err := os.Open(path)
	check(err)
	defer f.Close()

	var names []string
	scanning := false
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if !scanning {
			if strings.Contains(line, "Contains BuiltinOp = iota") {
				scanning = true
				names = append(names, deriveName("Contains"))
			}
			continue
		}
		if line == "numBuiltins" || strings.HasPrefix(line, ")") {
			break
		}
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		names = append(names, deriveName(line))
	}
	check(s.Err())
	return names
}

func deriveName(constName string) string {
	if n, ok := rename[constName]; ok {
		return n
	}
	if constName == "" {
		return constName
	}
	return strings.ToLower(constName[:1]) + constName[1:]
}

func write(path string, names []string) {
	var b strings.Builder
	b.WriteString("// Code generated by _generate/builtin_names.go; DO NOT EDIT.\n\n")
	b.WriteString("package expr\n\n")
	b.WriteString("var builtin2Name = [numBuiltins]string{\n")
	for _, n := range names {
		fmt.Fprintf(&b, "\t%q,\n", n)
	}
	b.WriteString("}\n")
	check(os.WriteFile(path, []byte(b.String()), 0o644))
}

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
