package cmd

import (
	"fmt"
	"strconv"

	"github.com/greenroute/hopper/core"
	"github.com/spf13/cobra"
)

var ipCmd = &cobra.Command{
	Use:   "ip <address|integer> ...",
	Short: "Convert between dotted-decimal addresses and 32-bit node keys",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			if n, err := strconv.ParseUint(arg, 10, 32); err == nil {
				fmt.Println(core.FormatAddr(uint32(n)))
				continue
			}
			n, err := core.ParseAddr(arg)
			if err != nil {
				return err
			}
			fmt.Println(n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ipCmd)
}
