package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/greenroute/hopper/core"
	"github.com/greenroute/hopper/itdk"
	"github.com/greenroute/hopper/resolve"
	"github.com/greenroute/hopper/state"
	"github.com/spf13/cobra"
)

// unreachableMarker is printed for a source with no path, traceroute
// style, so downstream line counts stay aligned with the source list.
const unreachableMarker = "*"

var (
	srcCloud, dstCloud     string
	srcRegions, dstRegions []string
	srcIPs, dstIPs         []string
	srcNodes, dstNodes     []string
	routeOut               string
)

// group is one named set of query endpoints, e.g. "aws:us-west-1".
type group struct {
	name  string
	addrs []uint32
}

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Compute shortest paths between source and destination host sets",
	Long: `Builds the router graph from the configured ITDK dataset, resolves the
source and destination selections to interface addresses, and runs one
shortest-path query per source against the whole destination set. Paths are
written one per line as hop sequences of dotted-decimal addresses; sources
with no path yield "` + unreachableMarker + `".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if srcCloud == "" && len(srcIPs) == 0 && len(srcNodes) == 0 {
			return fmt.Errorf("must provide one of --src-cloud, --src-ips or --src-nodes")
		}
		if dstCloud == "" && len(dstIPs) == 0 && len(dstNodes) == 0 {
			return fmt.Errorf("must provide one of --dst-cloud, --dst-ips or --dst-nodes")
		}
		if srcCloud != "" && len(srcRegions) == 0 {
			return fmt.Errorf("--src-cloud requires --src-regions")
		}
		if dstCloud != "" && len(dstRegions) == 0 {
			return fmt.Errorf("--dst-cloud requires --dst-regions")
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		env, err := loadEnv(verbose)
		if err != nil {
			return err
		}

		nodes, err := loadNodes(env)
		if err != nil {
			return err
		}
		g, err := buildGraph(env, nodes)
		if err != nil {
			return err
		}

		srcGroups, err := loadGroups(env, nodes, srcCloud, srcRegions, srcIPs, srcNodes)
		if err != nil {
			return err
		}
		dstGroups, err := loadGroups(env, nodes, dstCloud, dstRegions, dstIPs, dstNodes)
		if err != nil {
			return err
		}

		out := os.Stdout
		if routeOut != "" {
			f, err := os.Create(routeOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		w := bufio.NewWriter(out)
		defer w.Flush()

		for _, src := range srcGroups {
			for _, dst := range dstGroups {
				// same-region routes are trivial, skip them
				if src.name != "" && src.name == dst.name {
					continue
				}
				if err := runBatch(env, g, src, dst, w); err != nil {
					return err
				}
			}
		}
		return nil
	},
}

func runBatch(env *state.Env, g *core.Graph, src, dst group, w *bufio.Writer) error {
	env.Log.Info("finding paths",
		"from", src.name, "to", dst.name,
		"sources", len(src.addrs), "destinations", len(dst.addrs))

	paths, stats, err := g.ShortestPaths(src.addrs, core.NewNodeSet(dst.addrs...), core.BatchOptions{
		Workers:       env.Workers,
		ProgressEvery: env.ProgressEvery,
		Log:           env.Log,
	})
	if err != nil {
		return fmt.Errorf("batch %s -> %s: %w", src.name, dst.name, err)
	}

	fmt.Fprintf(w, "# %s -> %s\n", src.name, dst.name)
	for _, p := range paths {
		if p == nil {
			fmt.Fprintln(w, unreachableMarker)
			continue
		}
		hops := make([]string, len(p))
		for i, n := range p {
			hops[i] = core.FormatAddr(n)
		}
		fmt.Fprintln(w, strings.Join(hops, " "))
	}

	env.Log.Info("shortest path search completed",
		"from", src.name, "to", dst.name,
		"completed", stats.Completed,
		"reachable", stats.Reachable,
		"bounded", stats.Bounded)
	return nil
}

// loadGroups resolves one side of the query to named address groups:
// one group per cloud region, or a single anonymous group for raw IPs
// or ITDK node ids.
func loadGroups(env *state.Env, nodes itdk.Nodes, cloud string, regions, ips, nodeIDs []string) ([]group, error) {
	switch {
	case cloud != "":
		table, err := regionTable(env, cloud)
		if err != nil {
			return nil, err
		}
		matches := table.MatchNodes(env.Log, nodes)
		groups := make([]group, 0, len(regions))
		for _, region := range regions {
			key := resolve.RegionKey{Provider: cloud, Region: region}
			addrs := matches.Addrs(key)
			if len(addrs) == 0 {
				return nil, fmt.Errorf("no ITDK interfaces matched %s", key)
			}
			env.Log.Info("resolved region", "region", key.String(), "interfaces", len(addrs))
			groups = append(groups, group{name: key.String(), addrs: addrs})
		}
		return groups, nil
	case len(ips) > 0:
		addrs, err := parseAddrs(ips)
		if err != nil {
			return nil, err
		}
		return []group{{addrs: addrs}}, nil
	default:
		addrs := nodes.AddrsOf(nodeIDs)
		if len(addrs) == 0 {
			return nil, fmt.Errorf("node ids %v have no known interfaces", nodeIDs)
		}
		return []group{{addrs: addrs}}, nil
	}
}

func init() {
	rootCmd.AddCommand(routeCmd)

	routeCmd.Flags().StringVar(&srcCloud, "src-cloud", "", "source cloud provider (aws or gcloud)")
	routeCmd.Flags().StringVar(&dstCloud, "dst-cloud", "", "destination cloud provider (aws or gcloud)")
	routeCmd.Flags().StringSliceVar(&srcRegions, "src-regions", nil, "source regions")
	routeCmd.Flags().StringSliceVar(&dstRegions, "dst-regions", nil, "destination regions")
	routeCmd.Flags().StringSliceVar(&srcIPs, "src-ips", nil, "source IP addresses")
	routeCmd.Flags().StringSliceVar(&dstIPs, "dst-ips", nil, "destination IP addresses")
	routeCmd.Flags().StringSliceVar(&srcNodes, "src-nodes", nil, "source ITDK node ids")
	routeCmd.Flags().StringSliceVar(&dstNodes, "dst-nodes", nil, "destination ITDK node ids")
	routeCmd.Flags().StringVarP(&routeOut, "out", "o", "", "write paths to this file instead of stdout")
	routeCmd.Flags().BoolP("verbose", "v", false, "Verbose output")
}
