// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pattern parses route templates ("/users/{id}/orders/{orderID}")
// into a matchable, comparable [Pattern].
package pattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the type capability a path variable is bound to.
type Kind int

const (
	KindString Kind = iota
	KindInt64
	KindUUID
	KindEnum
	KindStream
)

// uuidRegexp matches the canonical hex-dash UUID form.
const uuidRegexp = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

// ParamSpec describes one bound parameter: its position in the
// resource method's parameter list, its type capability, and the
// constraints that narrow its matching regex. It is built from struct
// tags on the resource method's parameter-carrying struct (the
// `binding` tag vocabulary: name, aliases, enum values, bounds).
type ParamSpec struct {
	Index int
	Name  string
	Kind  Kind

	// Min/Max bound an integer's numeric range or a string's length.
	// Nil means unbounded.
	Min, Max *int64

	// Regexp, if set, further constrains a KindString variable beyond
	// its default `[^/]+`.
	Regexp string

	// EnumValues lists the accepted values for a KindEnum variable.
	EnumValues []string

	// CatchAll marks a trailing variable as matching one or more
	// remaining path segments (`/a/b/c`), not just one.
	CatchAll bool

	// NotEmpty requires a CatchAll variable to match at least one
	// segment (the `+` regex variant rather than `*`).
	NotEmpty bool

	// Query marks the parameter as query-only; it cannot appear in a
	// path template.
	Query bool

	// Nilable marks the parameter's Go type as a pointer/interface/
	// slice/map — these cannot be path variables, which are always
	// present when the path matches.
	Nilable bool
}

// part is one literal or variable segment of a compiled Pattern.
type part struct {
	literal  string
	isVar    bool
	spec     ParamSpec
	groupIdx int // capture group index within the compiled regex, -1 if literal
}

// Pattern is a parsed, matchable route template.
type Pattern struct {
	Template string
	parts    []part
	re       *regexp.Regexp

	literalLen   int
	literalCount int
	hasCatchAll  bool
	catchAllLast bool // catch-all is the final segment
}

// Less reports whether p is more specific than other and should sort
// before it: more literal length first, then more literal segments,
// then a pattern without a catch-all before one with, then (among two
// catch-all patterns) the one whose catch-all appears later.
func (p *Pattern) Less(other *Pattern) bool {
	if p.literalLen != other.literalLen {
		return p.literalLen > other.literalLen
	}
	if p.literalCount != other.literalCount {
		return p.literalCount > other.literalCount
	}
	if p.hasCatchAll != other.hasCatchAll {
		return !p.hasCatchAll
	}
	return p.catchAllLast && !other.catchAllLast
}

// Match reports whether path matches p, returning the captured
// variable values keyed by name (CatchAll values are the raw captured
// remainder, split on "/" by the caller).
func (p *Pattern) Match(path string) (map[string]string, bool) {
	m := p.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	out := make(map[string]string, len(p.parts))
	for _, pt := range p.parts {
		if !pt.isVar {
			continue
		}
		out[pt.spec.Name] = m[pt.groupIdx]
	}
	return out, true
}

// Vars returns the ParamSpecs for every variable part, in template
// order.
func (p *Pattern) Vars() []ParamSpec {
	var specs []ParamSpec
	for _, pt := range p.parts {
		if pt.isVar {
			specs = append(specs, pt.spec)
		}
	}
	return specs
}

// Parse compiles template into a [Pattern]. params supplies the
// constraint metadata for each `{name}` hole, matched by name; params
// entries whose Name does not appear in template, or whose Query is
// true, are a [PatternError].
func Parse(template string, params []ParamSpec) (*Pattern, error) {
	byName := make(map[string]ParamSpec, len(params))
	for _, ps := range params {
		if ps.Query {
			return nil, newPatternError(template, fmt.Sprintf("parameter %q is query-only and cannot be bound in a path", ps.Name))
		}
		byName[ps.Name] = ps
	}

	segments := strings.Split(strings.Trim(template, "/"), "/")

	var (
		parts        []part
		reBuilder    strings.Builder
		groupIdx     = 1
		literalLen   int
		literalCount int
		hasCatchAll  bool
		catchAllLast bool
		usedNames    = map[string]bool{}
		prevWasVar   bool
	)

	reBuilder.WriteString("^")

	for i, seg := range segments {
		if seg == "" {
			continue
		}

		name, isVar := varName(seg)
		if !isVar {
			if prevWasVar {
				// a literal segment always separates consecutive path
				// segments, so adjacency only matters within one segment
			}
			reBuilder.WriteString("/")
			reBuilder.WriteString(regexp.QuoteMeta(seg))
			literalLen += len(seg)
			literalCount++
			prevWasVar = false
			continue
		}

		ps, ok := byName[name]
		if !ok {
			return nil, newPatternError(template, fmt.Sprintf("no parameter spec for variable %q", name))
		}
		if ps.Nilable && !ps.CatchAll {
			return nil, newPatternError(template, fmt.Sprintf("parameter %q cannot be nilable in a path", name))
		}
		if prevWasVar {
			return nil, newPatternError(template, "adjacent variables without a literal separator")
		}
		if usedNames[name] {
			return nil, newPatternError(template, fmt.Sprintf("duplicate variable %q", name))
		}
		usedNames[name] = true

		isLast := i == len(segments)-1
		varRe, err := variableRegexp(ps, isLast)
		if err != nil {
			return nil, newPatternError(template, err.Error())
		}

		if !ps.CatchAll {
			reBuilder.WriteString("/")
		}
		reBuilder.WriteString(varRe)

		parts = append(parts, part{isVar: true, spec: ps, groupIdx: groupIdx})
		groupIdx++
		prevWasVar = true

		if ps.CatchAll {
			hasCatchAll = true
			catchAllLast = isLast
		}
	}

	for name := range byName {
		if !usedNames[name] {
			return nil, newPatternError(template, fmt.Sprintf("parameter %q does not appear in the template", name))
		}
	}

	reBuilder.WriteString("$")

	re, err := regexp.Compile(reBuilder.String())
	if err != nil {
		return nil, newPatternError(template, "internal: "+err.Error())
	}

	// Build the literal parts list in template order for introspection;
	// Match only needs parts/re, so literals are not separately tracked
	// beyond the counts above.
	orderedParts := make([]part, 0, len(parts))
	gi := 1
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		name, isVar := varName(seg)
		if !isVar {
			orderedParts = append(orderedParts, part{literal: seg})
			continue
		}
		orderedParts = append(orderedParts, part{isVar: true, spec: byName[name], groupIdx: gi})
		gi++
	}

	return &Pattern{
		Template:     template,
		parts:        orderedParts,
		re:           re,
		literalLen:   literalLen,
		literalCount: literalCount,
		hasCatchAll:  hasCatchAll,
		catchAllLast: catchAllLast,
	}, nil
}

// varName reports whether seg is a `{name}` or `{index}` hole, and its
// name.
func varName(seg string) (string, bool) {
	if len(seg) < 2 || seg[0] != '{' || seg[len(seg)-1] != '}' {
		return "", false
	}
	return seg[1 : len(seg)-1], true
}

// variableRegexp builds the capture-group regex for one variable.
func variableRegexp(ps ParamSpec, isLast bool) (string, error) {
	switch ps.Kind {
	case KindInt64:
		return boundedDigits(ps.Min, ps.Max), nil

	case KindUUID:
		return "(" + uuidRegexp + ")", nil

	case KindEnum:
		if len(ps.EnumValues) == 0 {
			return "", fmt.Errorf("enum parameter %q declares no values", ps.Name)
		}
		return "([^/]+)", nil

	case KindStream:
		if !ps.CatchAll || !isLast {
			return "", fmt.Errorf("stream parameter %q must be a trailing catch-all", ps.Name)
		}
		return catchAllRegexp(ps.NotEmpty), nil

	default: // KindString
		if ps.CatchAll {
			if !isLast {
				return "", fmt.Errorf("catch-all parameter %q must be the final segment", ps.Name)
			}
			return catchAllRegexp(ps.NotEmpty), nil
		}
		inner := `[^/]+`
		if ps.Regexp != "" {
			inner = ps.Regexp
		} else if ps.Max != nil {
			inner = fmt.Sprintf(`[^/]{1,%d}`, *ps.Max)
		}
		return "(" + inner + ")", nil
	}
}

func catchAllRegexp(notEmpty bool) string {
	if notEmpty {
		return `((?:/[^/]+)+)`
	}
	return `((?:/[^/]+)*)`
}

func boundedDigits(minV, maxV *int64) string {
	if minV == nil && maxV == nil {
		return `(\d+)`
	}
	return `(\d+)` // numeric range is checked post-match by the route table, not by the regex
}

// ParseInt64Bounds reports whether v satisfies the Min/Max bounds of
// ps, for use after a KindInt64 capture has been parsed.
func ParseInt64Bounds(ps ParamSpec, v int64) bool {
	if ps.Min != nil && v < *ps.Min {
		return false
	}
	if ps.Max != nil && v > *ps.Max {
		return false
	}
	return true
}

// ParseCatchAll splits a captured catch-all remainder into its
// constituent segments.
func ParseCatchAll(raw string) []string {
	raw = strings.Trim(raw, "/")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "/")
}

// ParseInt64 is a convenience wrapper over strconv used by callers
// binding a KindInt64 capture.
func ParseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
