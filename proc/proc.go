package proc

import (
	"flag"
	"path"
	"strconv"

	"golang.org/x/sys/unix"
)

var (
	procPath = flag.String("proc-path", "/proc", "Path to proc directory")
	hostPath = flag.String("host-path", "/", "The host directory. Useful in container.")
)

func ProcPath(paths ...string) string {
	p := append([]string{*procPath}, paths...)
	return path.Join(p...)
}

func HostProcPath(paths ...string) string {
	if *hostPath == "" || *hostPath == "/" {
		return ProcPath(paths...)
	}
	p := append([]string{*hostPath, *procPath}, paths...)
	return path.Join(p...)
}

// PidPath builds a path below the proc entry of the given pid,
// e.g. PidPath(42, "smaps") -> /proc/42/smaps.
func PidPath(pid int, paths ...string) string {
	return HostProcPath(append([]string{strconv.Itoa(pid)}, paths...)...)
}

// Readable reports whether the current process is allowed to read p.
func Readable(p string) bool {
	return unix.Access(p, unix.R_OK) == nil
}

// Alive reports whether pid still has a proc entry.
func Alive(pid int) bool {
	return unix.Access(PidPath(pid), unix.F_OK) == nil
}
