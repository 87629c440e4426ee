package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/vietanhduong/procsmaps/proc"
	"github.com/vietanhduong/procsmaps/smaps"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func main() {
	var pid int
	var dir string
	var groupByPath bool
	flag.IntVar(&pid, "pid", -1, "Target process id")
	flag.StringVar(&dir, "path", "", "Directory containing a maps file. Takes precedence over -pid.")
	flag.BoolVar(&groupByPath, "group-by-path", false, "Aggregate RSS per backing path")
	flag.Parse()

	var records []*smaps.SMap
	var err error
	switch {
	case dir != "":
		records, err = smaps.FromPath(dir)
	case pid != -1:
		if !proc.Alive(pid) {
			glog.Errorf("No such process: %d", pid)
			os.Exit(1)
		}
		records, err = smaps.FromPID(pid)
	default:
		glog.Errorf("No pid or path is specified")
		os.Exit(1)
	}
	if err != nil {
		glog.Errorf("Failed to parse smaps: %v", err)
		os.Exit(1)
	}

	glog.Infof("Parsed %d mappings", len(records))
	if groupByPath {
		printGrouped(records)
		return
	}
	printMappings(records)
}

func printMappings(records []*smaps.SMap) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Address", "Perms", "Size", "RSS", "PSS", "Path"})
	for _, r := range records {
		table.Append([]string{
			fmt.Sprintf("%012x-%012x", r.Mapping.StartAddr, r.Mapping.EndAddr),
			r.Mapping.Perms.String(),
			humanize.IBytes(r.Size),
			humanize.IBytes(r.Rss),
			humanize.IBytes(r.Pss),
			r.Mapping.Pathname,
		})
	}
	table.SetFooter([]string{"", "Total",
		humanize.IBytes(lo.SumBy(records, func(r *smaps.SMap) uint64 { return r.Size })),
		humanize.IBytes(lo.SumBy(records, func(r *smaps.SMap) uint64 { return r.Rss })),
		humanize.IBytes(lo.SumBy(records, func(r *smaps.SMap) uint64 { return r.Pss })),
		""})
	table.Render()
}

func printGrouped(records []*smaps.SMap) {
	rss := make(map[string]uint64)
	for _, r := range records {
		name := r.Mapping.Pathname
		if name == "" {
			name = "[anon]"
		}
		rss[name] += r.Rss
	}

	keys := maps.Keys(rss)
	slices.SortFunc(keys, func(a, b string) int {
		switch {
		case rss[a] > rss[b]:
			return -1
		case rss[a] < rss[b]:
			return 1
		}
		return strings.Compare(a, b)
	})

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Path", "RSS"})
	for _, k := range keys {
		table.Append([]string{k, humanize.IBytes(rss[k])})
	}
	table.Render()
}
