package cmd

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wallet-client/internal/client"
	"wallet-client/pkg/address"
)

var transferCmd = &cobra.Command{
	Use:   "transfer <recipient> <amount>",
	Short: "构建并签名一笔转账交易",
	Long: `构建转账交易, 用口令 (或 WIF) 离线签名。
默认只打印已签名交易; 加 --broadcast 直接提交到节点。`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		recipient := args[0]
		if err := address.Validate(recipient, address.MainnetVersion); err != nil {
			fmt.Printf("收款地址不合法: %v\n", err)
			os.Exit(1)
		}
		var amount int64
		if _, err := fmt.Sscan(args[1], &amount); err != nil || amount <= 0 {
			fmt.Println("金额必须是正整数 (最小币单位)")
			os.Exit(1)
		}

		vendorField, _ := cmd.Flags().GetString("vendor-field")
		fee, _ := cmd.Flags().GetInt64("fee")
		wif, _ := cmd.Flags().GetString("wif")
		secondPass, _ := cmd.Flags().GetString("second-passphrase")
		broadcast, _ := cmd.Flags().GetBool("broadcast")

		// WIF 未给出时交互式读口令, 不回显
		passphrase := ""
		if wif == "" {
			fmt.Print("请输入口令: ")
			raw, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				fmt.Println("\n读取口令失败:", err)
				os.Exit(1)
			}
			fmt.Println()
			passphrase = string(raw)
		}

		cli := newNodeClient()
		tx, err := cli.BuildTransfer(client.TransferInput{
			Amount:      amount,
			RecipientID: recipient,
			VendorField: vendorField,
			SignOptions: signOptions(passphrase, wif, secondPass, fee),
		})
		if err != nil {
			fmt.Printf("构建交易失败: %v\n", err)
			os.Exit(1)
		}
		printJSON(tx)

		if broadcast {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			raw, err := cli.BroadcastTransactions(ctx, tx)
			if err != nil {
				fmt.Printf("❌ 广播失败: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("✅ 已广播, 节点应答:")
			fmt.Println(string(raw))
		}
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)
	transferCmd.Flags().String("vendor-field", "", "交易备注")
	transferCmd.Flags().Int64("fee", 0, "手续费 (0 用默认值)")
	transferCmd.Flags().String("wif", "", "用 WIF 代替口令签名")
	transferCmd.Flags().String("second-passphrase", "", "二签口令 (已开启二签的钱包)")
	transferCmd.Flags().Bool("broadcast", false, "签名后直接广播")
}
