package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/greenroute/hopper/core"
	"github.com/greenroute/hopper/resolve"
	"github.com/spf13/cobra"
)

var (
	matchCloud  string
	matchRegion string
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "List ITDK interfaces that fall inside a cloud provider's ranges",
	Long: `Matches every known ITDK interface address against the provider's
published IP ranges and prints one line per hit: region, node id, matched
prefix and interface address.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		env, err := loadEnv(verbose)
		if err != nil {
			return err
		}

		nodes, err := loadNodes(env)
		if err != nil {
			return err
		}

		path, err := rangesFile(env, matchCloud)
		if err != nil {
			return err
		}
		ranges, err := resolve.LoadRanges(matchCloud, path, matchRegion)
		if err != nil {
			return err
		}
		matches := resolve.NewTable(ranges).MatchNodes(env.Log, nodes)

		w := bufio.NewWriter(os.Stdout)
		defer w.Flush()
		for _, key := range matches.Keys() {
			for _, m := range matches[key] {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", key, m.Node, m.Prefix, core.FormatAddr(m.Addr))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVar(&matchCloud, "cloud", "", "cloud provider to match (aws or gcloud)")
	matchCmd.Flags().StringVar(&matchRegion, "region", "", "only match this region")
	matchCmd.Flags().BoolP("verbose", "v", false, "Verbose output")
	_ = matchCmd.MarkFlagRequired("cloud")
}
