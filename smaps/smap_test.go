package smaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMapping(t *testing.T) *Mapping {
	t.Helper()
	m, err := ParseMapping("00e24000-011f7000 rw-p 00000000 00:00 0 [heap]")
	require.NoError(t, err)
	return m
}

func TestParseDetails(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		check func(t *testing.T, s *SMap)
	}{
		{
			name:  "kB values are normalized to bytes",
			lines: []string{"Size:               2996 kB", "Rss:                2796 kB"},
			check: func(t *testing.T, s *SMap) {
				assert.Equal(t, uint64(2996*1024), s.Size)
				assert.Equal(t, uint64(2796*1024), s.Rss)
			},
		},
		{
			name:  "unsuffixed values are taken literally",
			lines: []string{"THPeligible:           1", "ProtectionKey:         3"},
			check: func(t *testing.T, s *SMap) {
				assert.Equal(t, uint64(1), s.THPEligible)
				assert.Equal(t, uint64(3), s.ProtectionKey)
			},
		},
		{
			name:  "unknown keys are ignored",
			lines: []string{"SomeFutureCounter:  123 kB", "Size: 4 kB"},
			check: func(t *testing.T, s *SMap) {
				assert.Equal(t, uint64(4*1024), s.Size)
			},
		},
		{
			name:  "line without a key value split is skipped",
			lines: []string{"this line has no delimiter", "Weird: 1:2", "Swap: 8 kB"},
			check: func(t *testing.T, s *SMap) {
				assert.Equal(t, uint64(8*1024), s.Swap)
			},
		},
		{
			name:  "vmflags are routed to the flag decoder",
			lines: []string{"VmFlags: rd wr mr mw me ac sd "},
			check: func(t *testing.T, s *SMap) {
				assert.True(t, s.VMFlags.Has(FlagReadable))
				assert.True(t, s.VMFlags.Has(FlagSoftDirty))
				assert.False(t, s.VMFlags.Has(FlagExecutable))
			},
		},
		{
			name:  "empty vmflags line",
			lines: []string{"VmFlags: "},
			check: func(t *testing.T, s *SMap) {
				assert.Equal(t, FlagSet(0), s.VMFlags)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDetails(testMapping(t), tt.lines)
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestParseDetailsBadValue(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{name: "non numeric value", lines: []string{"Rss: lots kB"}},
		{name: "trailing garbage", lines: []string{"Rss: 12MB"}},
		{name: "empty value", lines: []string{"Rss:"}},
		{name: "bare kB suffix", lines: []string{"Rss: kB"}},
		{name: "digit tail but unparseable", lines: []string{"Rss: 1a2 kB"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDetails(testMapping(t), tt.lines)
			require.ErrorIs(t, err, ErrBadValue)
			assert.Nil(t, got)
		})
	}
}
