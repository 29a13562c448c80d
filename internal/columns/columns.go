// SPDX-License-Identifier: MIT

// Package columns reads and writes whitespace separated scattering data:
// one "Q I [dI]" row per line, '#' comments and text headers allowed.
package columns

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrNoData is returned when no numeric row was found.
	ErrNoData = errors.New("columns: no data rows")
	// ErrMalformed is returned for a numeric row that cannot be parsed.
	ErrMalformed = errors.New("columns: malformed row")
)

// Data is a loaded curve.
type Data struct {
	Q, I, DI []float64
	// AssumedErrors is set when dI was missing and statistical errors were assumed.
	AssumedErrors bool
}

func fields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool { return unicode.IsSpace(r) || r == ',' || r == ';' })
}

// Read parses two or three numeric columns. Lines that are blank, start with
// '#', or whose first field is not a number are skipped.
//
// For two-column rows dI is assumed as s·√|I| + m, where s = 0.05·√|I₀| and
// m = 0.01·|I₀| are fixed by the first such row.
func Read(r io.Reader) (Data, error) {
	var (
		d          Data
		scale, mn  float64
		haveScale  bool
		lineNumber int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNumber++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		toks := fields(line)
		if len(toks) == 0 {
			continue
		}
		q, err := strconv.ParseFloat(toks[0], 64)
		if err != nil {
			continue
		}
		if len(toks) < 2 {
			return Data{}, fmt.Errorf("%w: line %d: need at least Q and I", ErrMalformed, lineNumber)
		}
		i, err := strconv.ParseFloat(toks[1], 64)
		if err != nil {
			return Data{}, fmt.Errorf("%w: line %d: %w", ErrMalformed, lineNumber, err)
		}
		var di float64
		if len(toks) > 2 {
			if di, err = strconv.ParseFloat(toks[2], 64); err != nil {
				return Data{}, fmt.Errorf("%w: line %d: %w", ErrMalformed, lineNumber, err)
			}
		} else {
			if !haveScale {
				scale = 0.05 * math.Sqrt(math.Abs(i))
				mn = 0.01 * math.Abs(i)
				haveScale = true
			}
			di = scale*math.Sqrt(math.Abs(i)) + mn
			d.AssumedErrors = true
		}
		d.Q = append(d.Q, q)
		d.I = append(d.I, i)
		d.DI = append(d.DI, di)
	}
	if err := sc.Err(); err != nil {
		return Data{}, fmt.Errorf("columns: %w", err)
	}
	if len(d.Q) == 0 {
		return Data{}, ErrNoData
	}

	return d, nil
}

// ReadFile opens and parses path.
func ReadFile(path string) (Data, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided data path is intentional
	if err != nil {
		return Data{}, fmt.Errorf("columns: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Write emits one "Q I dI" row per point after optional '#' comment lines.
func Write(w io.Writer, d Data, comments ...string) error {
	if len(d.Q) != len(d.I) || len(d.Q) != len(d.DI) {
		return fmt.Errorf("%w: len(Q)=%d len(I)=%d len(dI)=%d", ErrMalformed, len(d.Q), len(d.I), len(d.DI))
	}
	bw := bufio.NewWriter(w)
	for _, c := range comments {
		fmt.Fprintf(bw, "# %s\n", c)
	}
	for k := range d.Q {
		fmt.Fprintf(bw, "%g %g %g\n", d.Q[k], d.I[k], d.DI[k])
	}

	return bw.Flush()
}
