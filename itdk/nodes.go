// Package itdk streams CAIDA ITDK dataset files (.nodes, .links,
// .nodes.geo) into the forms the path engine consumes. The files are
// multi-gigabyte, so every loader is a single pass over a buffered
// scanner and reports progress while it runs.
package itdk

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/greenroute/hopper/core"
)

// scanBufSize accommodates ITDK lines with many interfaces per node.
const scanBufSize = 1 << 20

// progressEvery matches the dataset scale: ~1e6 records per tick.
const progressEvery = 1_000_000

// Nodes maps an ITDK node id token ("N123") to the known interface
// addresses of that router.
type Nodes map[string][]uint32

// LoadNodes parses a .nodes file. Each entry reads
//
//	node N<id>: <ip> <ip> ...
//
// Comment lines start with '#'. Malformed lines and unparsable
// addresses are counted and skipped, never fatal.
func LoadNodes(log *slog.Logger, path string) (Nodes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open nodes file: %w", err)
	}
	defer f.Close()

	log.Info("loading ITDK nodes", "file", path)
	nodes := make(Nodes)
	var lineCount, badLines, badAddrs int64

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), scanBufSize)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "node N") {
			badLines++
			log.Warn("cannot process nodes line", "line", line)
			continue
		}
		head, rest, ok := strings.Cut(line, ":")
		if !ok {
			badLines++
			log.Warn("cannot process nodes line", "line", line)
			continue
		}
		id := strings.Fields(head)[1]
		fields := strings.Fields(rest)
		addrs := make([]uint32, 0, len(fields))
		for _, ip := range fields {
			n, err := core.ParseAddr(ip)
			if err != nil {
				badAddrs++
				continue
			}
			addrs = append(addrs, n)
		}
		nodes[id] = addrs

		lineCount++
		if lineCount%progressEvery == 0 {
			log.Debug("loading ITDK nodes", "count", humanize.Comma(lineCount))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read nodes file: %w", err)
	}

	log.Info("loaded ITDK nodes",
		"nodes", humanize.Comma(int64(len(nodes))),
		"badLines", badLines, "badAddrs", badAddrs)
	return nodes, nil
}

// AddrsOf flattens the interface addresses of the given node ids,
// e.g. to turn node-id query input into source/destination sets.
func (n Nodes) AddrsOf(ids []string) []uint32 {
	var addrs []uint32
	for _, id := range ids {
		addrs = append(addrs, n[id]...)
	}
	return addrs
}
