package timescale

import (
	"bufio"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ashwinpai/goephemeris/xerr"
)

// leapEntry is one row of the DELTET/DELTA_AT table: a cumulative leap
// second count that takes effect at the given UTC epoch (seconds past
// J2000.0).
type leapEntry struct {
	deltaAT  float64
	epochSec float64
}

// LSK holds the parsed contents of a NAIF Leapseconds Kernel: the sorted
// leap-second history plus the four constants needed for the TT<->TDB
// one-term approximation. An LSK is immutable after Parse/Load and is
// safe to share across goroutines.
type LSK struct {
	leapSeconds []leapEntry // sorted by epochSec ascending
	deltaTA     float64     // DELTET/DELTA_T_A, exact TT-TAI offset in seconds
	k           float64     // DELTET/K
	eb          float64     // DELTET/EB
	m0          float64     // DELTET/M, first component
	m1          float64     // DELTET/M, second component
}

var fortranExponent = regexp.MustCompile(`[Dd]`)

func parseFortranFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = fortranExponent.ReplaceAllString(s, "E")
	return strconv.ParseFloat(s, 64)
}

// anchorPattern matches a DELTA_AT anchor token like "@1972-JAN-1".
var anchorPattern = regexp.MustCompile(`^@(-?\d+)-([A-Za-z]{3})-(\d+)$`)

// Load reads and parses an LSK text file.
func Load(path string) (*LSK, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerr.Wrapf(xerr.KernelLoad, err, "reading LSK file %q", path)
	}
	return Parse(string(data))
}

// Parse parses LSK text content (PCK-style \begindata/\begintext keyword
// assignments).
func Parse(content string) (*LSK, error) {
	vars, err := parseKeywordBlock(content)
	if err != nil {
		return nil, err
	}

	lsk := &LSK{}

	deltaTA, ok := vars["DELTET/DELTA_T_A"]
	if !ok || len(deltaTA) != 1 {
		return nil, xerr.New(xerr.KernelLoad, "LSK missing DELTET/DELTA_T_A")
	}
	if lsk.deltaTA, err = parseFortranFloat(deltaTA[0]); err != nil {
		return nil, xerr.Wrap(xerr.KernelLoad, err, "parsing DELTET/DELTA_T_A")
	}

	k, ok := vars["DELTET/K"]
	if !ok || len(k) != 1 {
		return nil, xerr.New(xerr.KernelLoad, "LSK missing DELTET/K")
	}
	if lsk.k, err = parseFortranFloat(k[0]); err != nil {
		return nil, xerr.Wrap(xerr.KernelLoad, err, "parsing DELTET/K")
	}

	eb, ok := vars["DELTET/EB"]
	if !ok || len(eb) != 1 {
		return nil, xerr.New(xerr.KernelLoad, "LSK missing DELTET/EB")
	}
	if lsk.eb, err = parseFortranFloat(eb[0]); err != nil {
		return nil, xerr.Wrap(xerr.KernelLoad, err, "parsing DELTET/EB")
	}

	m, ok := vars["DELTET/M"]
	if !ok || len(m) != 2 {
		return nil, xerr.New(xerr.KernelLoad, "LSK missing or malformed DELTET/M")
	}
	if lsk.m0, err = parseFortranFloat(m[0]); err != nil {
		return nil, xerr.Wrap(xerr.KernelLoad, err, "parsing DELTET/M[0]")
	}
	if lsk.m1, err = parseFortranFloat(m[1]); err != nil {
		return nil, xerr.Wrap(xerr.KernelLoad, err, "parsing DELTET/M[1]")
	}

	at, ok := vars["DELTET/DELTA_AT"]
	if !ok || len(at)%2 != 0 || len(at) == 0 {
		return nil, xerr.New(xerr.KernelLoad, "LSK missing or malformed DELTET/DELTA_AT")
	}
	for i := 0; i < len(at); i += 2 {
		deltaAT, err := parseFortranFloat(at[i])
		if err != nil {
			return nil, xerr.Wrap(xerr.KernelLoad, err, "parsing DELTA_AT value")
		}
		anchor := at[i+1]
		m := anchorPattern.FindStringSubmatch(anchor)
		if m == nil {
			return nil, xerr.Newf(xerr.KernelLoad, "malformed DELTA_AT anchor %q", anchor)
		}
		year, _ := strconv.Atoi(m[1])
		month, ok := monthFromAbbrev(strings.ToUpper(m[2]))
		if !ok {
			return nil, xerr.Newf(xerr.KernelLoad, "unknown month abbreviation %q", m[2])
		}
		day, _ := strconv.Atoi(m[3])

		jd := CalendarToJD(year, month, float64(day))
		lsk.leapSeconds = append(lsk.leapSeconds, leapEntry{
			deltaAT:  deltaAT,
			epochSec: JDToSeconds(jd),
		})
	}

	sort.Slice(lsk.leapSeconds, func(i, j int) bool {
		return lsk.leapSeconds[i].epochSec < lsk.leapSeconds[j].epochSec
	})

	return lsk, nil
}

// parseKeywordBlock extracts `KEYWORD = value` or `KEYWORD = ( v1 v2 ... )`
// assignments from the \begindata section(s) of a PCK-style text kernel.
// Values are returned as raw whitespace/comma-separated tokens; numeric
// parsing is left to the caller.
func parseKeywordBlock(content string) (map[string][]string, error) {
	vars := make(map[string][]string)

	inData := false
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pendingKey string
	var pendingTokens []string
	inParen := false

	flush := func() {
		if pendingKey != "" {
			vars[pendingKey] = append(vars[pendingKey], pendingTokens...)
		}
		pendingKey = ""
		pendingTokens = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "\\begindata"):
			inData = true
			continue
		case strings.HasPrefix(line, "\\begintext"):
			inData = false
			flush()
			continue
		}
		if !inData || line == "" {
			continue
		}

		if !inParen {
			flush()
			eq := strings.Index(line, "=")
			if eq < 0 {
				continue
			}
			pendingKey = strings.TrimSpace(line[:eq])
			rest := strings.TrimSpace(line[eq+1:])
			rest, inParen = stripParens(rest)
			pendingTokens = tokenize(rest)
			if !inParen {
				flush()
			}
			continue
		}

		rest, closed := stripParens(line)
		pendingTokens = append(pendingTokens, tokenize(rest)...)
		if closed {
			inParen = false
			flush()
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, xerr.Wrap(xerr.KernelLoad, err, "scanning LSK text")
	}
	return vars, nil
}

// stripParens removes a leading '(' and/or trailing ')' from s, reporting
// whether the value is still open (an opening paren seen with no matching
// close yet on this line).
func stripParens(s string) (string, bool) {
	open := strings.HasPrefix(s, "(")
	if open {
		s = strings.TrimPrefix(s, "(")
	}
	closed := strings.HasSuffix(strings.TrimSpace(s), ")")
	if closed {
		s = strings.TrimSuffix(strings.TrimSpace(s), ")")
	}
	// open && !closed means the list continues on following lines.
	return s, open && !closed
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// deltaAT is the unguarded table lookup: the cumulative leap-second count
// in effect at the given UTC epoch (seconds past J2000.0), or 0 if utcSec
// precedes the first tabulated jump. It exists so TDBToUTCSeconds's
// iteration can probe candidate UTC values without erroring mid-refinement;
// the exported DeltaAT applies the pre-1972 boundary check spec.md §4.5/§7
// require of a UTC entry point.
func (l *LSK) deltaAT(utcSec float64) float64 {
	table := l.leapSeconds
	if len(table) == 0 {
		return 0
	}
	// Find the last entry with epochSec <= utcSec via binary search.
	i := sort.Search(len(table), func(i int) bool {
		return table[i].epochSec > utcSec
	})
	if i == 0 {
		return 0
	}
	return table[i-1].deltaAT
}

// checkPost1972 fails with TimeConversion if utcSec precedes the first
// tabulated DELTA_AT jump (or the table is empty): ΔAT, and hence any
// UTC<->TAI/TT/TDB conversion that depends on it, is undefined before the
// leap-second era begins.
func (l *LSK) checkPost1972(utcSec float64) error {
	if len(l.leapSeconds) == 0 || utcSec < l.leapSeconds[0].epochSec {
		return xerr.Newf(xerr.TimeConversion, "UTC epoch %.6f sec past J2000 precedes the first tabulated leap second (pre-1972)", utcSec)
	}
	return nil
}

// DeltaAT returns the cumulative leap-second count in effect at the given
// UTC epoch, expressed in seconds past J2000.0. Fails with TimeConversion
// for epochs before the first tabulated jump (or an empty table) — ΔAT is
// not defined there, so it is surfaced rather than silently treated as 0.
func (l *LSK) DeltaAT(utcSec float64) (float64, error) {
	if err := l.checkPost1972(utcSec); err != nil {
		return 0, err
	}
	return l.deltaAT(utcSec), nil
}
