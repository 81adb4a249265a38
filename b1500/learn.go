package b1500

import (
	"fmt"
	"strconv"
	"strings"
)

// LearnedEntry is one "TAG field,field,..." element of a learned-settings
// (*LRN?) response line.
type LearnedEntry struct {
	Tag    string
	Fields []string
}

// ChannelValue is a decoded (channel, value) pair of a learned-settings entry.
type ChannelValue[T any] struct {
	Channel ChNr
	Value   T
}

// ParseLearnedSettings splits a learned-settings response into its entries,
// in input order.
//
// Entries are separated by ';'. A trailing ';' and a trailing CR/LF are
// tolerated, the tag may be directly followed by the first field, and an
// entry may have no fields at all (e.g. "CL").
func ParseLearnedSettings(line string) ([]LearnedEntry, error) {
	l := newLexer(line)

	var entries []LearnedEntry
	var cur *LearnedEntry
	needField := false

	flush := func() {
		if cur != nil {
			entries = append(entries, *cur)
			cur = nil
		}
	}

	for {
		t := l.nextToken()
		switch t.typ {
		case tokenTypeError:
			return nil, parseErrorf(line, t.pos, "%s", t.val)

		case tokenTypeEOF:
			if needField {
				return nil, parseErrorf(line, t.pos, "missing field after ','")
			}
			flush()
			return entries, nil

		case tokenTypeTag:
			flush()
			cur = &LearnedEntry{Tag: t.val}
			needField = false

		case tokenTypeNumber:
			if cur == nil || (!needField && len(cur.Fields) > 0) {
				return nil, parseErrorf(line, t.pos, "unexpected number %q", t.val)
			}
			cur.Fields = append(cur.Fields, t.val)
			needField = false

		case tokenTypeComma:
			if cur == nil || needField || len(cur.Fields) == 0 {
				return nil, parseErrorf(line, t.pos, "unexpected ','")
			}
			needField = true

		case tokenTypeSemicolon:
			if needField {
				return nil, parseErrorf(line, t.pos, "missing field after ','")
			}
			flush()
		}
	}
}

// ParseChannelValuePairs extracts the (channel, value) pairs of every entry
// tagged tag, e.g. "RI 1,11;RI 2,18" for tag "RI", in input order.
//
// decode maps the raw integer code to its semantic value. Entries with other
// tags are skipped. A line without a matching entry yields an empty result,
// not an error.
func ParseChannelValuePairs[T any](line, tag string, decode func(code int) (T, error)) ([]ChannelValue[T], error) {
	entries, err := ParseLearnedSettings(line)
	if err != nil {
		return nil, err
	}

	pairs := make([]ChannelValue[T], 0, len(entries))
	for _, e := range entries {
		if e.Tag != tag {
			continue
		}
		if len(e.Fields) != 2 {
			return nil, fmt.Errorf("b1500: %s entry has %d fields, expecting 2: %w", tag, len(e.Fields), ErrParse)
		}

		ch, err := strconv.Atoi(e.Fields[0])
		if err != nil {
			return nil, fmt.Errorf("b1500: %s channel %q is not an integer: %w", tag, e.Fields[0], ErrParse)
		}
		code, err := strconv.Atoi(e.Fields[1])
		if err != nil {
			return nil, fmt.Errorf("b1500: %s value %q is not an integer: %w", tag, e.Fields[1], ErrParse)
		}
		v, err := decode(code)
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, ChannelValue[T]{Channel: ChNr(ch), Value: v})
	}

	return pairs, nil
}

// ParseCurrentMeasurementRanges decodes the RI entries of a
// *LRN? 32 response.
func ParseCurrentMeasurementRanges(line string) ([]ChannelValue[IMeasRange], error) {
	return ParseChannelValuePairs(line, "RI", DecodeIMeasRange)
}

// ParseMeasurementOperationModes decodes the CMM entries of a
// *LRN? 46 response.
func ParseMeasurementOperationModes(line string) ([]ChannelValue[OperationMode], error) {
	return ParseChannelValuePairs(line, "CMM", DecodeOperationMode)
}

// ParseSweepDelays decodes the WT entry of a *LRN? 33 response, e.g.
// "WT1,2,3,4,5;".
func ParseSweepDelays(line string) (SweepDelays, error) {
	entries, err := ParseLearnedSettings(line)
	if err != nil {
		return SweepDelays{}, err
	}

	for _, e := range entries {
		if e.Tag != "WT" {
			continue
		}
		if len(e.Fields) != 5 {
			return SweepDelays{}, fmt.Errorf("b1500: WT entry has %d fields, expecting 5: %w", len(e.Fields), ErrParse)
		}

		var vals [5]float64
		for i, f := range e.Fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return SweepDelays{}, fmt.Errorf("b1500: WT field %q: %w", f, ErrParse)
			}
			vals[i] = v
		}

		return SweepDelays{
			Hold:         vals[0],
			Delay:        vals[1],
			StepDelay:    vals[2],
			TriggerDelay: vals[3],
			MeasureDelay: vals[4],
		}, nil
	}

	return SweepDelays{}, fmt.Errorf("b1500: sweep delays (WT) not found in %q: %w", line, ErrParse)
}

// ParseError decodes an ERRX? reply such as `0,"No Error."`.
// Code 0 means the error queue is empty.
func ParseError(line string) (code int, message string, err error) {
	line = strings.TrimRight(line, "\r\n")

	rawCode, rawMsg, found := strings.Cut(line, ",")
	if !found {
		return 0, "", fmt.Errorf("b1500: error reply %q has no message: %w", line, ErrParse)
	}

	code, err = strconv.Atoi(strings.TrimSpace(rawCode))
	if err != nil {
		return 0, "", fmt.Errorf("b1500: error code %q is not an integer: %w", rawCode, ErrParse)
	}

	rawMsg = strings.TrimSpace(rawMsg)
	if len(rawMsg) < 2 || rawMsg[0] != '"' || rawMsg[len(rawMsg)-1] != '"' {
		return 0, "", fmt.Errorf("b1500: error message %q is not quoted: %w", rawMsg, ErrParse)
	}

	return code, rawMsg[1 : len(rawMsg)-1], nil
}

func parseErrorf(line string, pos int, format string, args ...any) error {
	return fmt.Errorf("b1500: %s at offset %d of %q: %w", fmt.Sprintf(format, args...), pos, line, ErrParse)
}
