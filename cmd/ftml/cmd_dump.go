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
	"github.com/DarrenHaba/ftml/schema"
)

// cmdDump loads a data file against a schema with defaults applied, then
// re-serializes the result — the CLI surface for scenario 2's
// "schema + defaults" flow.
type cmdDump struct {
	schemaPath    string
	outPath       string
	applyDefaults bool
}

func (*cmdDump) help() *commandHelp {
	return &commandHelp{
		usage:   "dump DATA_FILE",
		summary: "Load a data file, applying schema defaults, and re-emit it",
	}
}

func (cmd *cmdDump) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.schemaPath, "schema", "s", "", "schema file to validate and default against")
	flags.StringVarP(&cmd.outPath, "output", "o", "-", "output path, or - for stdout")
	flags.BoolVar(&cmd.applyDefaults, "apply-defaults", true, "inject schema defaults for absent fields")
}

func (cmd *cmdDump) run(_ context.Context, argv []string) int {
	if len(argv) < 1 {
		fmt.Fprintln(os.Stderr, "usage: ftml dump [options] DATA_FILE")
		return 1
	}
	src, err := os.ReadFile(argv[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var typ schema.Type
	if cmd.schemaPath != "" {
		typ, err = loadSchemaType(cmd.schemaPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	doc, errs := ftml.Load(src, typ, ftml.WithApplyDefaults(cmd.applyDefaults))
	if len(errs) != 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return 1
	}

	out, errs := ftml.Dump(doc)
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
