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

type cmdValidate struct {
	schemaPath string
	noStrict   bool
	noCheckVer bool
}

func (*cmdValidate) help() *commandHelp {
	return &commandHelp{
		usage:   "validate DATA_FILE",
		summary: "Validate a data file against an optional schema",
	}
}

func (cmd *cmdValidate) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.schemaPath, "schema", "s", "", "schema file to validate against")
	flags.BoolVar(&cmd.noStrict, "no-strict", false, "allow unknown fields in enumerated objects")
	flags.BoolVar(&cmd.noCheckVer, "no-check-version", false, "skip the ftml_version compatibility gate")
}

func (cmd *cmdValidate) run(_ context.Context, argv []string) int {
	if len(argv) < 1 {
		fmt.Fprintln(os.Stderr, "usage: ftml validate [options] DATA_FILE")
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

	opts := []ftml.Option{
		ftml.WithStrict(!cmd.noStrict),
		ftml.WithCheckVersion(!cmd.noCheckVer),
	}
	_, errs := ftml.Load(src, typ, opts...)
	if len(errs) != 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return 1
	}
	return 0
}
