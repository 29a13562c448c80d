// SPDX-License-Identifier: MIT
package prfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/katalvlaran/prinv/invert"
	"github.com/katalvlaran/prinv/matrix"
)

// DefaultPoints is the number of P(r) rows written.
const DefaultPoints = 100

// TableHeader introduces the P(r) rows.
const TableHeader = "<r>  <Pr>  <dPr>"

const noBound = "None"

var (
	// ErrCorrupt reports a state file that cannot be parsed.
	ErrCorrupt = errors.New("prfile: corrupted state file")
	// ErrNoResult reports an attempt to write a nil or incomplete Result.
	ErrNoResult = errors.New("prfile: nothing to write")
)

type writeConfig struct {
	points int
}

// WriteOption configures Write.
type WriteOption func(*writeConfig)

// WithPoints sets the number of P(r) rows (>= 1).
func WithPoints(n int) WriteOption {
	return func(c *writeConfig) {
		if n > 0 {
			c.points = n
		}
	}
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func bound(v float64) string {
	if v <= 0 {
		return noBound
	}

	return num(v)
}

// Write serializes res to w.
//
// Errors:
//   - ErrNoResult when res is nil or its coefficients and covariance disagree.
//   - Any error from evaluating P(r) or writing to w.
func Write(w io.Writer, res *invert.Result, opts ...WriteOption) error {
	cfg := writeConfig{points: DefaultPoints}
	for _, opt := range opts {
		opt(&cfg)
	}
	if res == nil || res.Covariance == nil || len(res.Coefficients) != res.NFunc || res.Covariance.Rows() != res.NFunc {
		return ErrNoResult
	}

	bw := bufio.NewWriter(w)
	hasBck := 0
	if res.EstimatedBackground {
		hasBck = 1
	}
	header := [][2]string{
		{"d_max", num(res.DMax)},
		{"nfunc", strconv.Itoa(res.NFunc)},
		{"alpha", num(res.Alpha)},
		{"chi2", num(res.Chi2)},
		{"elapsed", num(res.Elapsed.Seconds())},
		{"qmin", bound(res.QMin)},
		{"qmax", bound(res.QMax)},
		{"slit_height", num(res.SlitHeight)},
		{"slit_width", num(res.SlitWidth)},
		{"background", num(res.Background)},
		{"has_bck", strconv.Itoa(hasBck)},
		{"alpha_estimate", num(res.SuggestedAlpha)},
		{"data_hash", fmt.Sprintf("%016x", res.DataHash)},
	}
	for _, kv := range header {
		fmt.Fprintf(bw, "#%s=%s\n", kv[0], kv[1])
	}
	for i, c := range res.Coefficients {
		v, err := res.Covariance.At(i, i)
		if err != nil {
			return fmt.Errorf("prfile: covariance: %w", err)
		}
		fmt.Fprintf(bw, "#C_%d=%s+-%s\n", i, num(c), num(v))
	}

	fmt.Fprintln(bw, TableHeader)
	step := res.DMax / float64(cfg.points)
	for k := 0; k < cfg.points; k++ {
		r := float64(k) * step
		p, dp, err := res.PRErr(r)
		if err != nil {
			return fmt.Errorf("prfile: P(%g): %w", r, err)
		}
		fmt.Fprintf(bw, "%g  %g  %g\n", r, p, dp)
	}

	return bw.Flush()
}

// WriteFile writes res to path, replacing any existing file.
func WriteFile(path string, res *invert.Result, opts ...WriteOption) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("prfile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("prfile: %w", cerr)
		}
	}()

	return Write(f, res, opts...)
}

// Read parses a state file. The P(r) table is ignored; the returned Result
// carries the header fields, the coefficients and a diagonal covariance.
//
// Errors:
//   - ErrCorrupt for malformed values, a coefficient index outside [0, nfunc),
//     a coefficient before nfunc, or a missing d_max/nfunc.
func Read(r io.Reader) (*invert.Result, error) {
	res := &invert.Result{}
	var (
		haveDmax bool
		diag     []float64
		seen     []bool
	)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(text, "#") {
			continue
		}
		key, val, ok := strings.Cut(text[1:], "=")
		if !ok {
			continue
		}
		var err error
		switch key {
		case "d_max":
			res.DMax, err = parseFloat(val)
			haveDmax = err == nil
		case "nfunc":
			res.NFunc, err = strconv.Atoi(val)
			if err == nil && res.NFunc < 1 {
				err = fmt.Errorf("nfunc=%d", res.NFunc)
			}
			if err == nil {
				res.Coefficients = make([]float64, res.NFunc)
				diag = make([]float64, res.NFunc)
				seen = make([]bool, res.NFunc)
			}
		case "alpha":
			res.Alpha, err = parseFloat(val)
		case "chi2":
			res.Chi2, err = parseFloat(val)
		case "elapsed":
			var s float64
			s, err = parseFloat(val)
			res.Elapsed = time.Duration(s * float64(time.Second))
		case "qmin":
			res.QMin, err = parseBound(val)
		case "qmax":
			res.QMax, err = parseBound(val)
		case "slit_height":
			res.SlitHeight, err = parseFloat(val)
		case "slit_width":
			res.SlitWidth, err = parseFloat(val)
		case "background":
			res.Background, err = parseFloat(val)
		case "has_bck":
			var b int
			b, err = strconv.Atoi(val)
			res.EstimatedBackground = b == 1
		case "alpha_estimate":
			res.SuggestedAlpha, err = parseFloat(val)
		case "data_hash":
			res.DataHash, err = strconv.ParseUint(val, 16, 64)
		default:
			if strings.HasPrefix(key, "C_") {
				err = parseCoefficient(key, val, res.Coefficients, diag, seen)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d (%q): %w", ErrCorrupt, line, text, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("prfile: %w", err)
	}
	if !haveDmax || res.NFunc == 0 {
		return nil, fmt.Errorf("%w: missing d_max or nfunc", ErrCorrupt)
	}

	cov, err := matrix.NewDense(res.NFunc, res.NFunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	for i, v := range diag {
		if err = cov.Set(i, i, v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	}
	res.Covariance = cov

	return res, nil
}

// ReadFile opens and parses path.
func ReadFile(path string) (*invert.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("prfile: %w", err)
	}
	defer f.Close()

	return Read(f)
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}

	return v, nil
}

func parseBound(s string) (float64, error) {
	if strings.TrimSpace(s) == noBound {
		return 0, nil
	}

	return parseFloat(s)
}

// parseCoefficient handles "C_<i>" = "<value>+-<variance>".
func parseCoefficient(key, val string, c, diag []float64, seen []bool) error {
	i, err := strconv.Atoi(strings.TrimPrefix(key, "C_"))
	if err != nil {
		return err
	}
	if i < 0 || i >= len(c) {
		return fmt.Errorf("coefficient %d outside [0, %d)", i, len(c))
	}
	vs, vars, ok := strings.Cut(val, "+-")
	if !ok {
		return fmt.Errorf("missing '+-' in %q", val)
	}
	if c[i], err = parseFloat(vs); err != nil {
		return err
	}
	if diag[i], err = parseFloat(vars); err != nil {
		return err
	}
	if seen[i] {
		return fmt.Errorf("coefficient %d repeated", i)
	}
	seen[i] = true

	return nil
}
