package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wallet-client/internal/client"
)

var voteCmd = &cobra.Command{
	Use:   "vote <+/-publicKey>",
	Short: "构建并签名一笔投票交易",
	Long: `投票给受托人 (+publicKey) 或撤票 (-publicKey)。
默认只打印已签名交易; 加 --broadcast 直接提交到节点。`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vote := args[0]
		if !strings.HasPrefix(vote, "+") && !strings.HasPrefix(vote, "-") {
			fmt.Println("投票必须以 + (投票) 或 - (撤票) 开头")
			os.Exit(1)
		}
		// 压缩公钥是 33 字节
		if raw := common.FromHex(vote[1:]); len(raw) != 33 {
			fmt.Println("受托人公钥不合法 (应为 33 字节压缩公钥的 hex)")
			os.Exit(1)
		}

		fee, _ := cmd.Flags().GetInt64("fee")
		wif, _ := cmd.Flags().GetString("wif")
		secondPass, _ := cmd.Flags().GetString("second-passphrase")
		broadcast, _ := cmd.Flags().GetBool("broadcast")

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
		tx, err := cli.BuildVote(client.VoteInput{
			Votes:       []string{vote},
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
	rootCmd.AddCommand(voteCmd)
	voteCmd.Flags().Int64("fee", 0, "手续费 (0 用默认值)")
	voteCmd.Flags().String("wif", "", "用 WIF 代替口令签名")
	voteCmd.Flags().String("second-passphrase", "", "二签口令")
	voteCmd.Flags().Bool("broadcast", false, "签名后直接广播")
}
