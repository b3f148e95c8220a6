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
	"fmt"
	"os"

	"github.com/DarrenHaba/ftml/schema"
)

// loadSchemaType reads and parses path as a schema document (C4), and
// wraps its root field list as an enumerated *schema.Object so it can be
// passed directly to ftml.Load/Validate as the root type.
func loadSchemaType(path string) (schema.Type, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, errs := schema.Parse(src, schema.Default)
	if len(errs) != 0 {
		return nil, fmt.Errorf("%s: %w", path, errs[0])
	}
	return &schema.Object{Fields: doc.Fields}, nil
}

func writeOutput(outPath string, data []byte) error {
	if outPath == "" || outPath == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}
