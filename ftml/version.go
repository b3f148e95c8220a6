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
	"strconv"
	"strings"
)

// ParserVersion is the MAJOR.MINOR this implementation advertises for the
// §6.2 version gate.
const ParserVersion = "1.0"

// stage orders a prerelease tag: a < b < rc < release (an absent suffix).
type stage int

const (
	stageAlpha stage = iota
	stageBeta
	stageRC
	stageRelease
)

// docVersion is a parsed ftml_version value (§6.2: "MAJOR.MINOR optionally
// suffixed by (a|b|rc)N").
type docVersion struct {
	major, minor int
	stage        stage
	stageNum     int
}

// ParseVersion parses raw against §6.2's grammar. It is exported standalone
// (SPEC_FULL.md's "supplemented features") so callers can validate a
// version string without going through Load.
func ParseVersion(raw string) (major, minor int, stageName string, stageNum int, err error) {
	v, perr := parseDocVersion(raw)
	if perr != nil {
		return 0, 0, "", 0, perr
	}
	return v.major, v.minor, v.stage.String(), v.stageNum, nil
}

func (s stage) String() string {
	switch s {
	case stageAlpha:
		return "a"
	case stageBeta:
		return "b"
	case stageRC:
		return "rc"
	default:
		return ""
	}
}

func parseDocVersion(raw string) (docVersion, *VersionError) {
	rest := raw
	dot := strings.IndexByte(rest, '.')
	if dot < 0 {
		return docVersion{}, errVersionInvalidFormat(raw)
	}
	majorStr := rest[:dot]
	rest = rest[dot+1:]

	minorEnd := 0
	for minorEnd < len(rest) && rest[minorEnd] >= '0' && rest[minorEnd] <= '9' {
		minorEnd++
	}
	if minorEnd == 0 {
		return docVersion{}, errVersionInvalidFormat(raw)
	}
	minorStr := rest[:minorEnd]
	rest = rest[minorEnd:]

	major, majErr := strconv.Atoi(majorStr)
	minor, minErr := strconv.Atoi(minorStr)
	if majErr != nil || minErr != nil {
		return docVersion{}, errVersionInvalidFormat(raw)
	}

	v := docVersion{major: major, minor: minor, stage: stageRelease}
	if rest == "" {
		return v, nil
	}

	var tag string
	switch {
	case strings.HasPrefix(rest, "rc"):
		tag, rest = "rc", rest[2:]
		v.stage = stageRC
	case strings.HasPrefix(rest, "a"):
		tag, rest = "a", rest[1:]
		v.stage = stageAlpha
	case strings.HasPrefix(rest, "b"):
		tag, rest = "b", rest[1:]
		v.stage = stageBeta
	default:
		return docVersion{}, errVersionInvalidFormat(raw)
	}
	if rest == "" {
		return docVersion{}, errVersionInvalidFormat(raw)
	}
	num, numErr := strconv.Atoi(rest)
	if numErr != nil || num < 0 {
		return docVersion{}, errVersionInvalidFormat(raw)
	}
	_ = tag
	v.stageNum = num
	return v, nil
}

// checkVersionCompat implements §6.2's three incompatibility tests against
// the parser's own advertised version.
func checkVersionCompat(doc docVersion, parser docVersion) bool {
	if doc.major > parser.major {
		return false
	}
	if doc.major == parser.major && doc.minor > parser.minor {
		return false
	}
	if doc.major == parser.major && doc.minor == parser.minor {
		if doc.stage > parser.stage {
			return false
		}
		if doc.stage == parser.stage && doc.stage != stageRelease && doc.stageNum > parser.stageNum {
			return false
		}
	}
	return true
}
