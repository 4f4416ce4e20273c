package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var delegatesCmd = &cobra.Command{
	Use:   "delegates",
	Short: "查询受托人列表",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cli := newNodeClient()
		page, err := cli.FetchDelegates(ctx)
		if err != nil {
			fmt.Printf("查询受托人失败: %v\n", err)
			os.Exit(1)
		}
		if page.SoftFailed {
			fmt.Println("节点拒绝了请求 (旧版节点的软失败), 结果为空")
			return
		}

		fmt.Printf("共 %d 位\n", page.TotalCount)
		for _, d := range page.Delegates {
			fmt.Printf("#%-4d %-20s 票数 %-16d 出块 %d / 漏块 %d\n",
				d.Rank, d.Username, d.Votes, d.Blocks.Produced, d.Blocks.Missed)
		}
	},
}

func init() {
	rootCmd.AddCommand(delegatesCmd)
}
