package smaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVMFlags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Flag
	}{
		{
			name: "empty line",
			in:   "",
			want: nil,
		},
		{
			name: "unknown tokens are ignored",
			in:   "a b c d",
			want: nil,
		},
		{
			name: "subset of flags",
			in:   "rd de uw",
			want: []Flag{FlagReadable, FlagNoExpand, FlagUffdWriteProtect},
		},
		{
			name: "order does not matter",
			in:   "uw rd de",
			want: []Flag{FlagReadable, FlagNoExpand, FlagUffdWriteProtect},
		},
		{
			name: "duplicates collapse",
			in:   "rd rd rd de",
			want: []Flag{FlagReadable, FlagNoExpand},
		},
		{
			name: "leading space produces an empty token",
			in:   " rd wr mr mw me ac sd ",
			want: []Flag{FlagReadable, FlagWritable, FlagMayRead, FlagMayWrite, FlagMayExecute, FlagAccount, FlagSoftDirty},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseVMFlags(tt.in)
			assert.Equal(t, tt.want, got.Flags())
			for _, f := range tt.want {
				assert.True(t, got.Has(f), "missing flag %s", f)
			}
		})
	}
}

func TestParseVMFlagsPermutationsEqual(t *testing.T) {
	want := parseVMFlags("rd de uw")
	for _, in := range []string{"uw rd de", "de uw rd", "rd uw de zz", "uw de rd rd"} {
		assert.Equal(t, want, parseVMFlags(in), "input %q", in)
	}
}

func TestFlagMnemonics(t *testing.T) {
	// Every mnemonic must round-trip through the lookup table.
	require.Len(t, flagByMnemonic, int(numFlags))
	for f := Flag(0); f < numFlags; f++ {
		require.Len(t, f.String(), 2)
		assert.Equal(t, f, flagByMnemonic[f.String()])
	}
}

func TestFlagSetString(t *testing.T) {
	assert.Equal(t, "", FlagSet(0).String())
	assert.Equal(t, "rd de uw", parseVMFlags("uw de rd").String())
}
