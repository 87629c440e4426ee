package smaps

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/grafana/regexp"
)

// Device identifies the block device backing a file mapping.
// Anonymous mappings report 0:0.
type Device struct {
	Major uint64
	Minor uint64
}

func (d Device) String() string { return fmt.Sprintf("%02x:%02x", d.Major, d.Minor) }

// Mapping is one decoded header line of a maps/smaps report: the
// address range, its permissions and the backing file, if any.
type Mapping struct {
	StartAddr  uint64
	EndAddr    uint64
	Perms      Permissions
	FileOffset uint64
	Dev        Device
	Inode      uint64
	// Pathname is empty for anonymous mappings. File-backed mappings
	// carry the file path, pseudo mappings a bracketed name such as
	// [heap] or [stack].
	Pathname string
}

// headerRegex is built once on first use and shared read-only across
// callers, so concurrent parses are safe.
var headerRegex = sync.OnceValue(func() *regexp.Regexp {
	const hex = "[0-9a-f]+"
	return regexp.MustCompile(
		`^(` + hex + `)-(` + hex + `)\s+([rwxsp-]+)\s+(` + hex + `)\s+(` + hex + `):(` + hex + `)\s+(\d+)(?:\s+(.*))?$`)
})

// ParseMapping decodes a single header line. Each line is parsed
// independently; no state is carried between calls.
func ParseMapping(line string) (*Mapping, error) {
	caps := headerRegex().FindStringSubmatch(strings.TrimSpace(line))
	if caps == nil {
		return nil, fmt.Errorf("%w: %q", ErrBadHeader, line)
	}

	var m Mapping
	var err error
	if m.StartAddr, err = strconv.ParseUint(caps[1], 16, 64); err != nil {
		return nil, fmt.Errorf("%w: start address: %v", ErrBadHeader, err)
	}
	if m.EndAddr, err = strconv.ParseUint(caps[2], 16, 64); err != nil {
		return nil, fmt.Errorf("%w: end address: %v", ErrBadHeader, err)
	}
	m.Perms = parsePermissions(caps[3])
	if m.FileOffset, err = strconv.ParseUint(caps[4], 16, 64); err != nil {
		return nil, fmt.Errorf("%w: file offset: %v", ErrBadHeader, err)
	}
	if m.Dev.Major, err = strconv.ParseUint(caps[5], 16, 64); err != nil {
		return nil, fmt.Errorf("%w: device major: %v", ErrBadHeader, err)
	}
	if m.Dev.Minor, err = strconv.ParseUint(caps[6], 16, 64); err != nil {
		return nil, fmt.Errorf("%w: device minor: %v", ErrBadHeader, err)
	}
	if m.Inode, err = strconv.ParseUint(caps[7], 10, 64); err != nil {
		return nil, fmt.Errorf("%w: inode: %v", ErrBadHeader, err)
	}
	m.Pathname = caps[8]
	return &m, nil
}

// Length is the size of the mapped range in bytes. Start and end come
// straight from the kernel and are not validated against each other.
func (m *Mapping) Length() uint64 { return m.EndAddr - m.StartAddr }

func (m *Mapping) IsAnonymous() bool { return m.Pathname == "" }

func (m *Mapping) String() string {
	if m == nil {
		return ""
	}

	return fmt.Sprintf("%s 0x%016x-0x%016x %s 0x%x %s %d",
		m.Pathname,
		m.StartAddr,
		m.EndAddr,
		m.Perms,
		m.FileOffset,
		m.Dev,
		m.Inode)
}
