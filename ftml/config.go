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

package ftml

import (
	"github.com/DarrenHaba/ftml/schema"
)

// Config is the configuration record §6.4 and §5 describe: every field is
// optional and has a documented default, and a Config is immutable once
// built so a single value can be reused across repeated Load/Dump calls.
//
// Grounded on idol/compiler/compiler.go's CompileOptions/CompileOption
// functional-options pair, generalized from schema compilation to data
// load/dump.
type Config struct {
	strict           bool
	preserveComments bool
	applyDefaultsSet bool
	applyDefaults    bool
	checkVersion     bool
	indentSpaces     int
	inlineThreshold  int
	registry         *schema.Registry
	sink             DiagnosticSink
}

// Option configures a Config. The concrete type is unexported, matching
// idol/compiler's CompileOption/compileOption split: callers only ever see
// the interface, never the function type behind it.
type Option interface {
	apply(*Config)
}

type option func(*Config)

func (f option) apply(c *Config) { f(c) }

// WithStrict controls whether unknown fields in enumerated object types are
// rejected (§6.4, default true).
func WithStrict(strict bool) Option {
	return option(func(c *Config) { c.strict = strict })
}

// WithPreserveComments controls whether C3 runs at all (§6.4, default
// true). With false, no comment slots are populated and Dump reconciles
// against a comment-free original.
func WithPreserveComments(preserve bool) Option {
	return option(func(c *Config) { c.preserveComments = preserve })
}

// WithApplyDefaults controls whether Validate injects schema defaults into
// absent fields (§6.4, default true on Load, false on Dump).
func WithApplyDefaults(apply bool) Option {
	return option(func(c *Config) {
		c.applyDefaultsSet = true
		c.applyDefaults = apply
	})
}

// WithCheckVersion controls whether the §6.2 version gate runs before
// parsing (§6.4, default true).
func WithCheckVersion(check bool) Option {
	return option(func(c *Config) { c.checkVersion = check })
}

// WithIndentSpaces sets the serializer's per-level indent width (§6.4,
// default 4).
func WithIndentSpaces(n int) Option {
	return option(func(c *Config) { c.indentSpaces = n })
}

// WithInlineThreshold sets the child count above which a container is
// always rendered multiline (§6.4, default implementation-chosen).
func WithInlineThreshold(n int) Option {
	return option(func(c *Config) { c.inlineThreshold = n })
}

// WithRegistry selects a non-default Type Registry (§5's "Type Registry is
// process-wide state ... treated as read-only thereafter"). Most callers
// never need this; it exists for hosts that register additional scalar
// kinds during their own initialization.
func WithRegistry(reg *schema.Registry) Option {
	return option(func(c *Config) { c.registry = reg })
}

// WithDiagnosticSink installs a sink for non-fatal advisory messages (§9's
// "Global logger is a host concern; the core accepts an optional
// diagnostic sink interface"), such as an `ftml_encoding` advisory (§6.1).
func WithDiagnosticSink(sink DiagnosticSink) Option {
	return option(func(c *Config) { c.sink = sink })
}

// NewConfig builds a Config from opts, applying every §6.4 default first.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		strict:           true,
		preserveComments: true,
		applyDefaults:    true,
		checkVersion:     true,
		indentSpaces:     4,
		inlineThreshold:  4,
		registry:         schema.Default,
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	return c
}

func (c *Config) registryOrDefault() *schema.Registry {
	if c.registry == nil {
		return schema.Default
	}
	return c.registry
}

// DiagnosticSink receives non-fatal advisories during Load/Dump. Host code
// supplies one via WithDiagnosticSink; the core never logs on its own
// (§9).
type DiagnosticSink interface {
	Warnf(pos Position, format string, args ...any)
}
