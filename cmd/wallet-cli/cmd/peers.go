package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wallet-client/internal/client"
)

var peersCmd = &cobra.Command{
	Use:   "peers",
	Short: "查询节点的 peer 列表",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		list, err := client.FetchPeerList(ctx, flagServer, flagAPIVersion, 0)
		if err != nil {
			fmt.Printf("查询 peer 列表失败: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("共 %d 个节点\n", len(list))
		for _, p := range list {
			fmt.Printf("%-21s v%-8s 高度 %-10d 延迟 %dms\n",
				fmt.Sprintf("%s:%d", p.IP, p.Port), p.Version, p.Height, p.Latency)
		}
	},
}

func init() {
	rootCmd.AddCommand(peersCmd)
}
