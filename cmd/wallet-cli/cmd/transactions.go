package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wallet-client/internal/client"
)

var transactionsCmd = &cobra.Command{
	Use:   "transactions <address>",
	Short: "查询地址的交易历史",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cli := newNodeClient()
		result, err := cli.FetchTransactions(ctx, args[0], client.TransactionOptions{
			Page:  page,
			Limit: limit,
		})
		if err != nil {
			fmt.Printf("查询交易失败: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("共 %d 笔\n", result.TotalCount)
		for _, tx := range result.Transactions {
			direction := "收"
			if tx.IsSender {
				direction = "发"
			}
			fmt.Printf("[%s] %s  %d (+fee %d)  %s -> %s\n",
				direction,
				tx.Timestamp.Format(time.RFC3339),
				tx.Amount, tx.Fee,
				tx.Sender, tx.Recipient,
			)
		}
	},
}

func init() {
	rootCmd.AddCommand(transactionsCmd)
	transactionsCmd.Flags().Int("page", 0, "页码")
	transactionsCmd.Flags().Int("limit", 50, "每页条数")
}
