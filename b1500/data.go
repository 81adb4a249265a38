package b1500

import (
	"fmt"
	"math"

	"github.com/alecthomas/participle/v2"
	plexer "github.com/alecthomas/participle/v2/lexer"
)

// InvalidDataValue is the dummy value the instrument returns for an element
// without valid data. Parsed elements carry math.NaN() instead.
const InvalidDataValue = 199.999e99

// SpotMeasurement is one decoded FMT1 data element.
type SpotMeasurement struct {
	Status  MeasurementStatus
	Channel ChannelName
	Type    DataType
	Value   float64
}

// Valid reports whether the element holds a measured value.
func (m SpotMeasurement) Valid() bool {
	return !math.IsNaN(m.Value) && m.Type != DataInvalid
}

// dataLexer tokenizes FMT1 output, e.g. "NAI+000.005E-06,NBV+1.000E+00".
var dataLexer = plexer.MustSimple([]plexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Header", Pattern: `[A-Za-z]{3}`},
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Separator", Pattern: `[,;]`},
})

type dataLine struct {
	Elements []*dataElement `parser:"@@+"`
}

type dataElement struct {
	Pos       plexer.Position
	Header    string  `parser:"@Header"`
	Value     float64 `parser:"@Number"`
	Separator string  `parser:"@Separator?"`
}

var dataParser = participle.MustBuild[dataLine](
	participle.Lexer(dataLexer),
	participle.Elide("Whitespace"),
)

// ParseSpotMeasurement decodes the response of a spot measurement (TI, TV),
// a single FMT1 element such as "NAI+000.005E-06". A trailing ';' or CR/LF
// is tolerated.
func ParseSpotMeasurement(line string) (SpotMeasurement, error) {
	elems, err := ParseDataElements(line)
	if err != nil {
		return SpotMeasurement{}, err
	}
	if len(elems) != 1 {
		return SpotMeasurement{}, fmt.Errorf("b1500: spot response %q has %d data elements: %w", line, len(elems), ErrParse)
	}

	return elems[0], nil
}

// ParseDataElements decodes a line of comma separated FMT1 elements, as
// returned by sampling and sweep measurements, in output order. A trailing
// separator is tolerated.
func ParseDataElements(line string) ([]SpotMeasurement, error) {
	parsed, err := dataParser.ParseString("", line)
	if err != nil {
		return nil, fmt.Errorf("b1500: malformed data %q: %s: %w", line, err.Error(), ErrParse)
	}

	elems := make([]SpotMeasurement, 0, len(parsed.Elements))
	for i, e := range parsed.Elements {
		if e.Separator == "" && i < len(parsed.Elements)-1 {
			return nil, fmt.Errorf("b1500: missing separator after element at %s: %w", e.Pos, ErrParse)
		}
		m, err := e.measurement()
		if err != nil {
			return nil, err
		}
		elems = append(elems, m)
	}

	return elems, nil
}

func (e *dataElement) measurement() (SpotMeasurement, error) {
	m := SpotMeasurement{
		Status:  MeasurementStatus(e.Header[0]),
		Channel: ChannelName(e.Header[1]),
		Type:    DataType(e.Header[2]),
		Value:   e.Value,
	}

	switch {
	case !m.Status.valid():
		return m, fmt.Errorf("b1500: unknown status %q at %s: %w", e.Header[0], e.Pos, ErrParse)
	case !m.Channel.valid():
		return m, fmt.Errorf("b1500: unknown channel %q at %s: %w", e.Header[1], e.Pos, ErrParse)
	case !m.Type.valid():
		return m, fmt.Errorf("b1500: unknown data type %q at %s: %w", e.Header[2], e.Pos, ErrParse)
	}

	if m.Value == InvalidDataValue {
		m.Value = math.NaN()
	}

	return m, nil
}
