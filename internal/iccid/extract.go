// Package iccid extracts a SIM profile identifier from loosely structured
// requests. Callers arrive from several assistant integrations that place the
// ICCID in different spots (path, query, headers, or one of a few known body
// shapes), so extraction walks an ordered candidate list instead of binding a
// single request schema.
package iccid

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/globalvoice/esim-balance/internal/apierror"
)

// digitRun matches a plausible ICCID embedded in free text.
var digitRun = regexp.MustCompile(`[0-9]{15,22}`)

// Source is the request surface the extractor may look at.
type Source struct {
	PathParam string
	Query     url.Values
	Header    http.Header
	Body      []byte
}

// Extract returns the first candidate whose digit-only form has a length
// within [min, max]. Candidates are tried in priority order: path parameter,
// query, headers, then known body shapes. If no single candidate qualifies,
// all candidates joined together get one last digit-run scan.
func Extract(src Source, min, max int) (string, error) {
	candidates := collect(src)

	for _, cand := range candidates {
		if got := normalize(cand, min, max); got != "" {
			return got, nil
		}
	}

	// Last resort: the identifier may be split across fields.
	if len(candidates) > 0 {
		joined := strings.Join(candidates, " ")
		if run := longestDigitRun(joined); run != "" && len(run) >= min && len(run) <= max {
			return run, nil
		}
	}

	return "", apierror.E(apierror.MissingICCID)
}

// collect builds the ordered, non-empty candidate list.
func collect(src Source) []string {
	var out []string
	add := func(v string) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	add(src.PathParam)

	if src.Query != nil {
		add(src.Query.Get("iccid"))
		add(src.Query.Get("ICCID"))
	}

	if src.Header != nil {
		add(src.Header.Get("x-iccid"))
		add(src.Header.Get("x-iccid-number"))
	}

	for _, v := range bodyCandidates(src.Body) {
		add(v)
	}

	return out
}

// bodyCandidates sniffs the known body shapes. JSON numbers are decoded with
// UseNumber so long identifiers keep their digits.
func bodyCandidates(body []byte) []string {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		// Not JSON: treat the raw body text as one candidate.
		return []string{string(body)}
	}

	switch t := v.(type) {
	case string:
		return []string{t}
	case map[string]any:
		var out []string
		for _, key := range []string{"iccid", "ICCID", "value", "number"} {
			if s := scalar(t[key]); s != "" {
				out = append(out, s)
			}
		}
		for _, nest := range []string{"arguments", "tool_input", "payload"} {
			if m, ok := t[nest].(map[string]any); ok {
				if s := scalar(m["iccid"]); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	case []any:
		if len(t) > 0 {
			if m, ok := t[0].(map[string]any); ok {
				if s := scalar(m["iccid"]); s != "" {
					return []string{s}
				}
			}
		}
	case json.Number:
		return []string{t.String()}
	}

	return nil
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	}
	return ""
}

// normalize strips the candidate to digits, falling back to a digit-run scan
// when the candidate holds no digits at all, and applies the length bound.
func normalize(cand string, min, max int) string {
	digits := stripNonDigits(cand)
	if digits == "" {
		digits = longestDigitRun(cand)
	}
	if len(digits) >= min && len(digits) <= max {
		return digits
	}
	return ""
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func longestDigitRun(s string) string {
	best := ""
	for _, run := range digitRun.FindAllString(s, -1) {
		if len(run) > len(best) {
			best = run
		}
	}
	return best
}
