package smaps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// SMap is one complete record of an smaps report: a mapping header
// plus the accounting counters of its detail block. Counters the
// kernel reports in kB are normalized to bytes; THPEligible and
// ProtectionKey are raw values. A counter is zero unless its key
// appeared in the input.
type SMap struct {
	Mapping Mapping

	Size           uint64
	KernelPageSize uint64
	MMUPageSize    uint64
	Rss            uint64
	Pss            uint64
	PssDirty       uint64
	SharedClean    uint64
	SharedDirty    uint64
	PrivateClean   uint64
	PrivateDirty   uint64
	Referenced     uint64
	Anonymous      uint64
	KSM            uint64
	LazyFree       uint64
	AnonHugePages  uint64
	ShmemHugePages uint64
	ShmemPmdMapped uint64
	FilePmdMapped  uint64
	SharedHugetlb  uint64
	PrivateHugetlb uint64
	Swap           uint64
	SwapPss        uint64
	Locked         uint64
	THPEligible    uint64
	ProtectionKey  uint64

	VMFlags FlagSet
}

const vmflagsKey = "VmFlags"

// parseDetails folds the detail lines following a header into an SMap.
//
// Failure policy, deliberately asymmetric: a line that does not split
// into exactly key and value is logged and skipped (kernels have
// printed odd lines before), but a line that splits cleanly and then
// carries a non-numeric value fails the whole record.
func parseDetails(mapping *Mapping, lines []string) (*SMap, error) {
	res := &SMap{Mapping: *mapping}
	for _, line := range lines {
		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			glog.Warningf("Skipping unparseable smaps line %q", line)
			continue
		}

		key := parts[0]
		if key == vmflagsKey {
			res.VMFlags = parseVMFlags(strings.TrimPrefix(line, vmflagsKey+":"))
			continue
		}

		value := strings.TrimSpace(parts[1])
		multiplier := uint64(1)
		if strings.HasSuffix(value, "kB") {
			multiplier = 1024
			value = strings.TrimSpace(strings.TrimSuffix(value, "kB"))
		}
		if value == "" || !isDigit(value[len(value)-1]) {
			return nil, fmt.Errorf("%w: %q", ErrBadValue, line)
		}

		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrBadValue, line, err)
		}
		n *= multiplier

		// Unknown keys fall through: there is no authoritative list
		// and it changes between kernel versions.
		switch key {
		case "Size":
			res.Size = n
		case "KernelPageSize":
			res.KernelPageSize = n
		case "MMUPageSize":
			res.MMUPageSize = n
		case "Rss":
			res.Rss = n
		case "Pss":
			res.Pss = n
		case "Pss_Dirty":
			res.PssDirty = n
		case "Shared_Clean":
			res.SharedClean = n
		case "Shared_Dirty":
			res.SharedDirty = n
		case "Private_Clean":
			res.PrivateClean = n
		case "Private_Dirty":
			res.PrivateDirty = n
		case "Referenced":
			res.Referenced = n
		case "Anonymous":
			res.Anonymous = n
		case "KSM":
			res.KSM = n
		case "LazyFree":
			res.LazyFree = n
		case "AnonHugePages":
			res.AnonHugePages = n
		case "ShmemHugePages":
			res.ShmemHugePages = n
		case "ShmemPmdMapped":
			res.ShmemPmdMapped = n
		case "FilePmdMapped":
			res.FilePmdMapped = n
		case "Shared_Hugetlb":
			res.SharedHugetlb = n
		case "Private_Hugetlb":
			res.PrivateHugetlb = n
		case "Swap":
			res.Swap = n
		case "SwapPss":
			res.SwapPss = n
		case "Locked":
			res.Locked = n
		case "THPeligible":
			res.THPEligible = n
		case "ProtectionKey":
			res.ProtectionKey = n
		}
	}
	return res, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (s *SMap) String() string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%s size=%d rss=%d pss=%d", s.Mapping.String(), s.Size, s.Rss, s.Pss)
}
