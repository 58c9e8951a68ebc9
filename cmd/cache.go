package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the in-memory caches",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [resource]",
	Short: "Drop cached items so the next read refetches",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			res, err := reg.Get(args[0])
			if err != nil {
				return err
			}
			res.ClearCache()
			fmt.Printf("Cleared %s cache\n", args[0])
			return nil
		}
		reg.ClearAll()
		fmt.Println("Cleared all caches")
		return nil
	},
}

var cacheRefreshCmd = &cobra.Command{
	Use:   "refresh [resource]",
	Short: "Force a refetch, bypassing the staleness window",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names := reg.Names()
		if len(args) == 1 {
			names = args[:1]
		}
		for _, name := range names {
			res, err := reg.Get(name)
			if err != nil {
				return err
			}
			res.ClearCache()
			if err := res.Fetch(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Refreshed %s (%d items)\n", name, len(res.Items()))
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd, cacheRefreshCmd)
	rootCmd.AddCommand(cacheCmd)
}
