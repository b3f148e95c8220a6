// Copyright (c) 2024 John Millikin <john@john-millikin.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/DarrenHaba/ftml/ftml"
)

// cmdFormat reformats a data file to stdout or -o (P2's idempotent-dump property
// made available as a CLI verb): no schema is applied, so comments and
// values pass through reconcile/serialize unchanged except for layout.
type cmdFormat struct {
	outPath      string
	indentSpaces int
}

func (*cmdFormat) help() *commandHelp {
	return &commandHelp{
		usage:   "format DATA_FILE",
		summary: "Reformat a data file, preserving comments",
	}
}

func (cmd *cmdFormat) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.outPath, "output", "o", "-", "output path, or - for stdout")
	flags.IntVar(&cmd.indentSpaces, "indent", 4, "spaces per indent level")
}

func (cmd *cmdFormat) run(_ context.Context, argv []string) int {
	if len(argv) < 1 {
		fmt.Fprintln(os.Stderr, "usage: ftml format [options] DATA_FILE")
		return 1
	}
	src, err := os.ReadFile(argv[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	doc, errs := ftml.Load(src, nil, ftml.WithCheckVersion(false))
	if len(errs) != 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return 1
	}

	out, errs := ftml.Dump(doc, ftml.WithIndentSpaces(cmd.indentSpaces))
	if len(errs) != 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return 1
	}

	if err := writeOutput(cmd.outPath, []byte(out)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
