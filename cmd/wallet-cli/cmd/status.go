package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wallet-client/internal/client"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "查询节点状态与网络配置",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cli := newNodeClient()
		status, err := cli.FetchPeerStatus(ctx)
		if err != nil {
			fmt.Printf("查询节点状态失败: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("高度: %d  同步中: %v\n", status.Height, status.Syncing)

		cfg, err := client.FetchNetworkConfig(ctx, flagServer, flagAPIVersion, 0)
		if err != nil {
			fmt.Printf("查询网络配置失败: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("网络: %s (%s)  nethash: %s\n", cfg.Token, cfg.Symbol, cfg.Nethash)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
