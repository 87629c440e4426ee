// Package smaps decodes the Linux per-process memory mapping reports
// exposed under /proc/<pid>/smaps (and the shorter /proc/<pid>/maps)
// into one record per virtual memory mapping.
package smaps

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vietanhduong/procsmaps/proc"
)

var (
	// ErrBadHeader reports a line that does not match the mapping
	// header grammar at a position where a header is required.
	ErrBadHeader = errors.New("malformed mapping header")
	// ErrBadValue reports a detail line whose value is not numeric
	// after normalizing the kB suffix.
	ErrBadValue = errors.New("malformed detail value")
)

// Parse decodes a complete smaps report. The first line must be a
// mapping header; every run of lines up to the next header forms that
// mapping's detail block. Parse is all or nothing: it returns every
// mapping in input order, or fails as a whole with no partial result.
func Parse(text string) ([]*SMap, error) {
	var ret []*SMap
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); {
		mapping, err := ParseMapping(lines[i])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		i++

		start := i
		for i < len(lines) {
			if _, err := ParseMapping(lines[i]); err == nil {
				break
			}
			i++
		}

		smap, err := parseDetails(mapping, lines[start:i])
		if err != nil {
			return nil, fmt.Errorf("mapping %x-%x: %w", mapping.StartAddr, mapping.EndAddr, err)
		}
		ret = append(ret, smap)
	}
	return ret, nil
}

// FromPID parses the smaps report of a running process.
func FromPID(pid int) ([]*SMap, error) {
	return fromFile(proc.PidPath(pid, "smaps"))
}

// FromPath parses a maps-format file named "maps" below dir. Useful
// for reports copied out of /proc, e.g. for post-mortem inspection.
func FromPath(dir string) ([]*SMap, error) {
	return fromFile(filepath.Join(dir, "maps"))
}

func fromFile(path string) ([]*SMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	return Parse(string(data))
}
