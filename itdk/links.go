package itdk

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/greenroute/hopper/core"
)

// linkPattern matches a .links entry:
//
//	link L<id>: N1:1.2.3.4 N2 N3:5.6.7.8 ...
//
// Members are node ids with an optional known interface suffix.
var linkPattern = regexp.MustCompile(`^link L\d+: +([N\d.: ]+)`)

// LoadLinks streams a .links file into g. Each link names two or more
// nodes on a shared medium; the loader resolves every member to its
// known interface addresses via nodes, then expands each pairwise
// combination into one undirected edge. Links that resolve to fewer
// than two known interfaces carry no topology and are dropped.
//
// There are no IP-level links from the known-interface suffix alone,
// so resolution always goes through the node id; this also keeps the
// graph consistent with the geo filter, which operates on node ids.
func LoadLinks(log *slog.Logger, path string, nodes Nodes, g *core.Graph) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open links file: %w", err)
	}
	defer f.Close()

	log.Info("building graph from ITDK links", "file", path)
	var linkCount, skipped, badLines int64

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), scanBufSize)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		m := linkPattern.FindStringSubmatch(line)
		if m == nil {
			badLines++
			log.Warn("cannot process links line", "line", line)
			continue
		}

		var ifaces []uint32
		for _, member := range strings.Fields(m[1]) {
			id, _, _ := strings.Cut(member, ":")
			for _, addr := range nodes[id] {
				if !slices.Contains(ifaces, addr) {
					ifaces = append(ifaces, addr)
				}
			}
		}
		if len(ifaces) <= 1 {
			skipped++
			continue
		}
		for i := 0; i < len(ifaces); i++ {
			for j := i + 1; j < len(ifaces); j++ {
				g.AddEdge(ifaces[i], ifaces[j])
			}
		}

		linkCount++
		if linkCount%progressEvery == 0 {
			log.Debug("building graph from ITDK links",
				"links", humanize.Comma(linkCount),
				"edges", humanize.Comma(int64(g.Edges())))
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("read links file: %w", err)
	}

	log.Info("built graph from ITDK links",
		"links", humanize.Comma(linkCount),
		"skipped", humanize.Comma(skipped),
		"badLines", badLines,
		"nodes", humanize.Comma(int64(g.Len())),
		"edges", humanize.Comma(int64(g.Edges())))
	return linkCount, nil
}
