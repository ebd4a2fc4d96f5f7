package render

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Match is one tie point correspondence between the two images of a pair.
// Coordinates are pixels, origin at the top left corner.
type Match struct {
	X0, Y0 float64
	X1, Y1 float64
}

// ParseHomol reads a MicMac ExpTxt match record: one correspondence per line,
// at least four whitespace separated floats x0 y0 x1 y1. Extra columns and
// blank lines are ignored.
func ParseHomol(path string) ([]Match, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open match record %s", path)
	}
	defer file.Close()

	var matches []Match
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 4 {
			return nil, errors.Errorf("match record %s: line %d has %d columns, want at least 4", path, lineNo, len(fields))
		}

		var vals [4]float64
		for i := range vals {
			vals[i], err = strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "match record %s: line %d", path, lineNo)
			}
		}
		matches = append(matches, Match{X0: vals[0], Y0: vals[1], X1: vals[2], Y1: vals[3]})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "unable to read match record %s", path)
	}

	return matches, nil
}
