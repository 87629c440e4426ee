package smaps

import "strings"

// Flag identifies one VM flag from the VmFlags line of an smaps
// report. The kernel encodes each as a fixed two-letter mnemonic.
type Flag uint8

const (
	FlagReadable         Flag = iota // rd
	FlagWritable                     // wr
	FlagExecutable                   // ex
	FlagShared                       // sh
	FlagMayRead                      // mr
	FlagMayWrite                     // mw
	FlagMayExecute                   // me
	FlagMayShare                     // ms
	FlagGrowsDown                    // gd
	FlagPurePFN                      // pf
	FlagDenyWrite                    // dw
	FlagLocked                       // lo
	FlagIO                           // io
	FlagSeqRead                      // sr
	FlagRandRead                     // rr
	FlagNoCopyOnFork                 // dc
	FlagNoExpand                     // de
	FlagAccount                      // ac
	FlagNoReserve                    // nr
	FlagHugeTLB                      // ht
	FlagSyncFault                    // sf
	FlagNonLinear                    // nl
	FlagArchSpecific                 // ar
	FlagWipeOnFork                   // wf
	FlagNoCoreDump                   // dd
	FlagSoftDirty                    // sd
	FlagMixedMap                     // mm
	FlagHugePage                     // hg
	FlagNoHugePage                   // nh
	FlagMergeable                    // mg
	FlagUffdMissing                  // um
	FlagUffdWriteProtect             // uw

	numFlags
)

// mnemonics is indexed by Flag and must stay in declaration order.
var mnemonics = [numFlags]string{
	"rd", "wr", "ex", "sh", "mr", "mw", "me", "ms",
	"gd", "pf", "dw", "lo", "io", "sr", "rr", "dc",
	"de", "ac", "nr", "ht", "sf", "nl", "ar", "wf",
	"dd", "sd", "mm", "hg", "nh", "mg", "um", "uw",
}

var flagByMnemonic = func() map[string]Flag {
	m := make(map[string]Flag, numFlags)
	for f := Flag(0); f < numFlags; f++ {
		m[mnemonics[f]] = f
	}
	return m
}()

func (f Flag) String() string {
	if f >= numFlags {
		return "??"
	}
	return mnemonics[f]
}

// FlagSet is a bit-set of VM flags, one bit per Flag.
type FlagSet uint32

func (s FlagSet) Has(f Flag) bool { return s&(1<<f) != 0 }

func (s *FlagSet) set(f Flag) { *s |= 1 << f }

// Flags returns the flags present in the set, in kernel order.
func (s FlagSet) Flags() []Flag {
	var ret []Flag
	for f := Flag(0); f < numFlags; f++ {
		if s.Has(f) {
			ret = append(ret, f)
		}
	}
	return ret
}

func (s FlagSet) String() string {
	var sb strings.Builder
	for i, f := range s.Flags() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f.String())
	}
	return sb.String()
}

// parseVMFlags decodes the remainder of a VmFlags line. Tokens that
// match no known mnemonic are ignored; newer kernels add flags without
// notice. Order and duplicates do not affect the result.
func parseVMFlags(s string) FlagSet {
	var set FlagSet
	for _, tok := range strings.Split(s, " ") {
		if f, ok := flagByMnemonic[tok]; ok {
			set.set(f)
		}
	}
	return set
}
