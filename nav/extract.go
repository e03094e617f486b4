package nav

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/misfondos"
	"github.com/etnz/misfondos/date"
)

// Markers the provider is prompted to wrap its JSON block with. Responses
// that lose them fall back to brace matching.
const (
	jsonStartMarker = "### JSON_START ###"
	jsonEndMarker   = "### JSON_END ###"
)

// Extract splits a raw provider response into literal observations and the
// structured block. The JSON block region is excised before scanning for
// table rows, so block content is never double-counted as literal text.
// A missing or unparseable block yields a nil Block; literal rows are still
// collected from the remaining text.
func Extract(raw string) ([]Observation, *Block) {
	blockText, rest, marked := splitBlock(raw)
	block, rows := parseBlock(blockText)
	if block == nil && rows == nil && !marked {
		// stray braces in prose are not a block; keep the lines between
		// them scannable
		rest = raw
	}
	obs := append(rows, scanLines(rest)...)
	return obs, block
}

// splitBlock locates the JSON block and returns it alongside the response
// text with the block excised. Marker delimiters win over brace matching;
// marked reports which path was taken.
func splitBlock(raw string) (block, rest string, marked bool) {
	if i := strings.Index(raw, jsonStartMarker); i >= 0 {
		start := i + len(jsonStartMarker)
		if j := strings.Index(raw[start:], jsonEndMarker); j >= 0 {
			return raw[start : start+j], raw[:i] + raw[start+j+len(jsonEndMarker):], true
		}
	}
	// fallback: outermost brace pair
	i := strings.Index(raw, "{")
	j := strings.LastIndex(raw, "}")
	if i < 0 || j <= i {
		return "", raw, false
	}
	return raw[i : j+1], raw[:i] + raw[j+1:], false
}

// parseBlock decodes the JSON block into a Block plus the literal history
// rows it carries. Field access is jsonpath-based so minor shape drift in
// the provider output does not break the whole extraction.
func parseBlock(text string) (*Block, []Observation) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, nil
	}

	b := &Block{Currency: "EUR"}
	if v, err := jsonpath.Get("$.current.nav", doc); err == nil {
		if p, ok := looseNumber(v); ok && p > 0 {
			b.Price = p
		}
	}
	if v, err := jsonpath.Get("$.current.date", doc); err == nil {
		if s, ok := v.(string); ok {
			if d, ok := parseDay(s); ok {
				b.Date = d
			}
		}
	}
	if v, err := jsonpath.Get("$.current.currency", doc); err == nil {
		if s, ok := v.(string); ok && s != "" {
			b.Currency = strings.ToUpper(strings.TrimSpace(s))
		}
	}
	if v, err := jsonpath.Get("$.current.is_real_time", doc); err == nil {
		if rt, ok := v.(bool); ok {
			b.RealTime = rt
		}
	}
	if v, err := jsonpath.Get("$.debug_reason", doc); err == nil {
		if s, ok := v.(string); ok {
			b.Debug = s
		}
	}
	if v, err := jsonpath.Get("$.annual_performance", doc); err == nil {
		if m, ok := v.(map[string]any); ok {
			b.Returns = parseReturns(m)
		}
	}

	var rows []Observation
	if v, err := jsonpath.Get("$.history", doc); err == nil {
		if list, ok := v.([]any); ok {
			rows = parseRows(list, b.Currency)
		}
	}
	if b.Price == 0 && len(b.Returns) == 0 {
		b = nil
	}
	return b, rows
}

// parseReturns flattens the annual_performance object into canonical Returns.
// Keys are visited in sorted order so alias collisions resolve the same way
// on every run, and a key that already is the canonical period displaces any
// alias mapping to it.
func parseReturns(m map[string]any) []Return {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	idx := make(map[string]int)
	exact := make(map[string]bool)
	var out []Return
	for _, key := range keys {
		period := canonicalPeriod(key)
		if period == "" {
			continue
		}
		pct, ok := looseNumber(m[key])
		if !ok {
			continue
		}
		i, seen := idx[period]
		switch {
		case !seen:
			idx[period] = len(out)
			exact[period] = key == period
			out = append(out, Return{Period: period, Pct: misfondos.Percent(pct)})
		case key == period && !exact[period]:
			out[i].Pct = misfondos.Percent(pct)
			exact[period] = true
		}
	}
	return out
}

// parseRows turns the block's history array into literal observations.
func parseRows(list []any, currency string) []Observation {
	var out []Observation
	for _, e := range list {
		row, ok := e.(map[string]any)
		if !ok {
			continue
		}
		var price float64
		for _, k := range []string{"nav", "value", "close", "price", "valor"} {
			if v, ok := row[k]; ok {
				if p, ok := looseNumber(v); ok {
					price = p
					break
				}
			}
		}
		ds, _ := row["date"].(string)
		if ds == "" {
			ds, _ = row["fecha"].(string)
		}
		d, ok := parseDay(ds)
		if !ok || price <= 0 {
			continue
		}
		out = append(out, Observation{Date: d, Price: price, Currency: currency})
	}
	return out
}

var (
	ymdRE = regexp.MustCompile(`\b(\d{4})[-/](\d{1,2})[-/](\d{1,2})\b`)
	dmyRE = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`)
	numRE = regexp.MustCompile(`-?\d[\d.,]*`)
)

// scanLines collects date/price observations from free-form table text.
// A line qualifies when it holds a recognizable date and, outside the date
// token, a positive numeric token.
func scanLines(text string) []Observation {
	var out []Observation
	for _, line := range strings.Split(text, "\n") {
		if o, ok := scanLine(line); ok {
			out = append(out, o)
		}
	}
	return out
}

func scanLine(line string) (Observation, bool) {
	d, span, ok := findDay(line)
	if !ok {
		return Observation{}, false
	}
	rest := line[:span[0]] + line[span[1]:]
	price, ok := findPrice(rest)
	if !ok || price <= 0 {
		return Observation{}, false
	}
	cur := "EUR"
	if strings.Contains(strings.ToUpper(line), "USD") {
		cur = "USD"
	}
	return Observation{Date: d, Price: price, Currency: cur}, true
}

// findDay locates the first date token in a line, preferring YYYY-MM-DD over
// DD/MM/YYYY. Tokens that do not denote a real calendar day are rejected.
func findDay(line string) (date.Date, []int, bool) {
	if m := ymdRE.FindStringSubmatchIndex(line); m != nil {
		d, ok := day(line[m[2]:m[3]], line[m[4]:m[5]], line[m[6]:m[7]])
		return d, m[:2], ok
	}
	if m := dmyRE.FindStringSubmatchIndex(line); m != nil {
		d, ok := day(line[m[6]:m[7]], line[m[4]:m[5]], line[m[2]:m[3]])
		return d, m[:2], ok
	}
	return date.Date{}, nil, false
}

func day(ys, ms, ds string) (date.Date, bool) {
	y, _ := strconv.Atoi(ys)
	m, _ := strconv.Atoi(ms)
	dd, _ := strconv.Atoi(ds)
	d := date.New(y, time.Month(m), dd)
	// reject tokens like 31/02/2025 that only parse by normalization
	if d.Year() != y || int(d.Month()) != m || d.Day() != dd {
		return date.Date{}, false
	}
	return d, true
}

// parseDay parses a standalone date string in either ISO or European order.
func parseDay(s string) (date.Date, bool) {
	d, _, ok := findDay(s)
	return d, ok
}

// findPrice extracts the first numeric token and normalizes it.
func findPrice(s string) (float64, bool) {
	tok := numRE.FindString(s)
	if tok == "" {
		return 0, false
	}
	return parseNumeric(tok)
}

var keepNumRE = regexp.MustCompile(`[^0-9.,\-]`)

// parseNumeric converts a numeric string that may use European separators
// ("1.234,56") or US separators ("1,234.56") to a float. When both '.' and
// ',' appear, the later one is the decimal separator. A lone ',' is a
// decimal comma. If the cleaned value still carries more than one '.', all
// dots are treated as thousands separators and stripped.
func parseNumeric(v string) (float64, bool) {
	s := keepNumRE.ReplaceAllString(strings.TrimSpace(v), "")
	if s == "" {
		return 0, false
	}
	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}
	if strings.Count(s, ".") > 1 {
		s = strings.ReplaceAll(s, ".", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// looseNumber coerces a decoded JSON value (number or numeric string) to a
// float64.
func looseNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		return parseNumeric(x)
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
