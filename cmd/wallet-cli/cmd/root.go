package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"wallet-client/internal/client"
	"wallet-client/internal/txbuilder"

	"github.com/spf13/cobra"
)

var (
	flagServer     string
	flagAPIVersion int
)

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "wallet-cli",
	Short: "链节点钱包命令行工具",
	Long: `一个用 Go 语言编写的链节点客户端工具。
支持查询钱包/受托人/交易、构建并签名转账与投票交易, 以及节点发现。
v1 和 v2 节点的响应都会被整形成统一形态。`,
}

// Execute 将所有子命令添加到根命令并设置标志
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "http://127.0.0.1:4003", "节点地址")
	rootCmd.PersistentFlags().IntVar(&flagAPIVersion, "api-version", 2, "节点 API 版本 (1 或 2)")
}

// newNodeClient 按全局标志构建一次性的节点客户端
func newNodeClient() *client.Client {
	conn := client.NewConnection(flagServer, flagAPIVersion)
	return client.New(conn, nil, nil)
}

// signOptions 把签名相关的命令行参数收拢成一个结构
func signOptions(passphrase, wif, secondPassphrase string, fee int64) txbuilder.SignOptions {
	return txbuilder.SignOptions{
		Passphrase:       passphrase,
		WIF:              wif,
		SecondPassphrase: secondPassphrase,
		Fee:              fee,
	}
}

// printJSON 统一的结果输出
func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("序列化结果失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
