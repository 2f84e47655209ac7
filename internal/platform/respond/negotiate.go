package respond

import (
	"strconv"
	"strings"
)

type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept splits an Accept header into media ranges. Malformed or
// out-of-range q values count as 1.0; a bare type means type/*.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		params := strings.Split(part, ";")
		mt := strings.ToLower(strings.TrimSpace(params[0]))
		typ, subtype, ok := strings.Cut(mt, "/")
		if !ok {
			subtype = "*"
		}
		mr := mediaRange{typ: typ, subtype: subtype, q: 1.0}
		for _, p := range params[1:] {
			key, value, found := strings.Cut(strings.TrimSpace(p), "=")
			if !found || strings.ToLower(strings.TrimSpace(key)) != "q" {
				continue
			}
			q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err == nil && q >= 0 && q <= 1 {
				mr.q = q
			}
		}
		ranges = append(ranges, mr)
	}
	return ranges
}

// selectFormat reports whether the client prefers CBOR over JSON. Wildcards
// count towards JSON, and ties go to JSON.
func selectFormat(accept string) bool {
	var cborQ, jsonQ float64
	for _, mr := range parseAccept(accept) {
		switch {
		case mr.typ == "*" && mr.subtype == "*",
			mr.typ == "application" && mr.subtype == "*":
			jsonQ = max(jsonQ, mr.q)
		case mr.typ != "application":
			continue
		case mr.subtype == "cbor" || strings.HasSuffix(mr.subtype, "+cbor"):
			cborQ = max(cborQ, mr.q)
		case mr.subtype == "json" || strings.HasSuffix(mr.subtype, "+json"):
			jsonQ = max(jsonQ, mr.q)
		}
	}
	return cborQ > 0 && cborQ > jsonQ
}
