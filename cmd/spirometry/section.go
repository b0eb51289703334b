package main

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

const sectionStart = "ESPIROMETRIA FORÇADA"

var (
	sectionEnds    = []string{"HISTÒRIC", "VOLUMS PULMONARS", "DIFUSIÓ"}
	dataParameters = []string{"FVC", "FEV1", "FEV1/FVC", "MEF", "PEF"}

	headerLinePattern = regexp.MustCompile(`(?i)Pre\s+Teòric`)
	parameterPattern  = regexp.MustCompile(`^\s*([A-Z]+[A-Z0-9/]*(?:\([^)]+\))?)`)
	valueSplitPattern = regexp.MustCompile(`\s{2,}`)

	// Header names that the PDF text may split in two tokens.
	knownHeaders = []string{"%Teòric", "PostBD", "Z-Score", "%Canvi"}
	// Headers printed once for the pre and once for the post phase.
	repeatedHeaders = []string{"%Teòric", "Z-Score"}
	// The ratio row only carries these columns.
	ratioHeaders = []string{"Pre", "Teòric", "LIN", "PostBD"}
)

const missingValue = "----"

type headerValue struct {
	Header string
	Value  string
}

// record is one parameter row with its values keyed by column header.
type record struct {
	Parameter string
	Values    []headerValue
}

func (r *record) set(header, value string) {
	for i := range r.Values {
		if r.Values[i].Header == header {
			r.Values[i].Value = value
			return
		}
	}
	r.Values = append(r.Values, headerValue{Header: header, Value: value})
}

// Get returns the value of header.
func (r record) Get(header string) (string, bool) {
	for _, hv := range r.Values {
		if hv.Header == header {
			return hv.Value, true
		}
	}
	return "", false
}

// parseSection reads the forced spirometry table from the page lines.
func parseSection(lines []string, log zerolog.Logger) []record {
	var (
		records []record
		headers []string
		inside  bool
	)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(line, sectionStart) {
			inside = true
			continue
		}
		if !inside {
			continue
		}
		if containsAny(line, sectionEnds) {
			break
		}
		if headerLinePattern.MatchString(line) {
			headers = associateRepeatedHeaders(normalizeHeaders(line))
			continue
		}
		if !containsAny(line, dataParameters) {
			continue
		}

		m := parameterPattern.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		if headers == nil {
			log.Warn().Str("line", line).Msg("Data line before any header line")
			continue
		}
		rec := record{Parameter: line[m[2]:m[3]]}
		columns := headers
		if strings.HasPrefix(rec.Parameter, "FEV1/FVC") {
			columns = ratioHeaders
		}
		for i, value := range splitValues(line[m[1]:]) {
			if i < len(columns) && value != missingValue {
				rec.set(columns[i], value)
			}
		}
		records = append(records, rec)
	}
	return records
}

func splitValues(s string) []string {
	var values []string
	for _, v := range valueSplitPattern.Split(strings.TrimSpace(s), -1) {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// normalizeHeaders tokenizes a header line, joining adjacent tokens that
// form a known header.
func normalizeHeaders(line string) []string {
	tokens := strings.Fields(line)
	headers := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		if i+1 < len(tokens) && slices.Contains(knownHeaders, tokens[i]+tokens[i+1]) {
			headers = append(headers, tokens[i]+tokens[i+1])
			i++
			continue
		}
		headers = append(headers, tokens[i])
	}
	return headers
}

// associateRepeatedHeaders qualifies the first occurrence of a repeated
// header with Pre and the second with the post phase name.
func associateRepeatedHeaders(headers []string) []string {
	post := "Post"
	if slices.Contains(headers, "PostBD") {
		post = "PostBD"
	}
	seen := make(map[string]int)
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		if !slices.Contains(repeatedHeaders, h) {
			out = append(out, h)
			continue
		}
		seen[h]++
		switch seen[h] {
		case 1:
			out = append(out, "Pre."+h)
		case 2:
			out = append(out, post+"."+h)
		default:
			out = append(out, h)
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
