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

package ftml_test

import (
	"testing"

	"github.com/DarrenHaba/ftml/ftml"
)

type recordingSink struct {
	calls int
	last  string
}

func (s *recordingSink) Warnf(_ ftml.Position, format string, args ...any) {
	s.calls++
	s.last = format
}

func TestDiagnosticSinkReceivesEncodingAdvisory(t *testing.T) {
	sink := &recordingSink{}
	src := "ftml_encoding = \"ISO-8859-1\"\nname = \"App\"\n"
	if _, errs := ftml.LoadString(src, nil, ftml.WithDiagnosticSink(sink)); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if sink.calls != 1 {
		t.Fatalf("expected exactly one advisory, got %d", sink.calls)
	}
}

func TestDiagnosticSinkSilentWithoutEncodingKey(t *testing.T) {
	sink := &recordingSink{}
	if _, errs := ftml.LoadString("name = \"App\"\n", nil, ftml.WithDiagnosticSink(sink)); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if sink.calls != 0 {
		t.Fatalf("expected no advisory, got %d", sink.calls)
	}
}
