package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wallet-client/pkg/address"
)

var walletCmd = &cobra.Command{
	Use:   "wallet <address>",
	Short: "查询钱包信息与当前投票",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		addr := args[0]
		if err := address.Validate(addr, address.MainnetVersion); err != nil {
			fmt.Printf("地址不合法: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cli := newNodeClient()
		w, err := cli.FetchWallet(ctx, addr)
		if err != nil {
			fmt.Printf("查询钱包失败: %v\n", err)
			os.Exit(1)
		}
		if w == nil {
			fmt.Println("钱包不存在 (链上无记录)")
			os.Exit(1)
		}
		printJSON(w)

		vote, err := cli.FetchWalletVote(ctx, addr)
		if err != nil {
			fmt.Printf("查询投票失败: %v\n", err)
			os.Exit(1)
		}
		if vote.Voted {
			fmt.Printf("当前投给: %s\n", vote.PublicKey)
		} else {
			fmt.Println("当前未投票")
		}
	},
}

func init() {
	rootCmd.AddCommand(walletCmd)
}
