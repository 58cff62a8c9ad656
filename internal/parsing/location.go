// Package parsing decodes the semi-structured fields of job listings.
package parsing

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/jobmarket/internal/types"
)

// areaKey is the mapping key holding the area hierarchy, broadest first.
const areaKey = "area"

// DecodeArea decodes a location blob and returns its area hierarchy.
//
// The blob is a flow mapping such as {'area': ['UK', 'London']}. Python
// literal dicts and JSON objects are both valid YAML flow mappings, so both
// encodings are accepted. A mapping without an area key yields an empty
// hierarchy. Backslash escapes inside Python single-quoted strings
// ('King\'s Lynn') are honored.
func DecodeArea(blob string) ([]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(singleQuotedToYAML(blob)), &doc); err != nil {
		return nil, &ParseError{Input: blob, Message: "location is not a mapping", Cause: err}
	}

	raw, ok := doc[areaKey]
	if !ok || raw == nil {
		return nil, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, &ParseError{Input: blob, Message: fmt.Sprintf("area is %T, not a sequence", raw)}
	}

	area := make([]string, len(items))
	for i, item := range items {
		if item == nil {
			area[i] = types.UnknownLocation
			continue
		}
		area[i] = fmt.Sprint(item)
	}
	return area, nil
}

// ParseLocation maps a location blob to country, region, county and city.
// Positions missing from the area hierarchy are set to "Unknown"; any decode
// failure yields all four fields "Unknown". It never fails.
func ParseLocation(blob string) types.Location {
	area, err := DecodeArea(blob)
	if err != nil {
		return types.UnknownLoc()
	}
	return LocationFromArea(area)
}

// LocationFromArea assigns area positions 0-3 to country, region, county and city.
// Only positions beyond the end of area become "Unknown"; an empty entry stays empty.
func LocationFromArea(area []string) types.Location {
	loc := types.UnknownLoc()
	fields := []*string{&loc.Country, &loc.Region, &loc.County, &loc.City}
	for i, field := range fields {
		if i < len(area) {
			*field = area[i]
		}
	}
	return loc
}

// singleQuotedToYAML rewrites the escapes of Python single-quoted strings
// into YAML single-quoted form: \' becomes '' and \\ becomes \.
// Double-quoted strings share their escapes with YAML and pass through.
func singleQuotedToYAML(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote == 0:
			if c == '\'' || c == '"' {
				quote = c
			}
			b.WriteByte(c)
		case c == '\\' && i+1 < len(s):
			next := s[i+1]
			i++
			if quote == '"' {
				b.WriteByte(c)
				b.WriteByte(next)
				continue
			}
			switch next {
			case '\'':
				b.WriteString("''")
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(c)
				b.WriteByte(next)
			}
		default:
			if c == quote {
				quote = 0
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}
