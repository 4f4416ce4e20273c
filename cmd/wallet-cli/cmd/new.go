package cmd

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/spf13/cobra"

	"wallet-client/internal/txbuilder"
	"wallet-client/pkg/address"
	"wallet-client/pkg/bip39"
)

// newCmd 代表 new 命令
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "创建一个新的钱包",
	Long:  `生成一个新的随机 BIP-39 助记词作为口令，并显示派生的公钥、WIF 和钱包地址。`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("正在生成新钱包...")
		fmt.Println("---------------------------------------------------")

		// 1. 生成助记词作为口令
		mnemonicService := bip39.NewMnemonicService()
		passphrase, err := mnemonicService.GenerateMnemonic(128) // 12 words
		if err != nil {
			fmt.Printf("生成助记词失败: %v\n", err)
			return
		}
		if !mnemonicService.ValidateMnemonic(passphrase) {
			fmt.Println("生成的助记词未通过校验, 请重试")
			return
		}
		fmt.Printf("口令 (Passphrase): \n%s\n", passphrase)
		fmt.Println("---------------------------------------------------")

		// 2. 口令 -> 私钥 -> 公钥
		priv := txbuilder.KeyFromPassphrase(passphrase)
		pub := priv.PubKey()
		fmt.Printf("公钥 (Compressed): %x\n", pub.SerializeCompressed())

		// 3. WIF 编码 (口令丢失时的备份登录方式)
		wif, err := btcutil.NewWIF(priv, &chaincfg.MainNetParams, true)
		if err != nil {
			fmt.Printf("WIF 编码失败: %v\n", err)
			return
		}
		fmt.Printf("WIF: %s\n", wif.String())

		// 4. 钱包地址
		addr := address.FromPublicKey(pub, address.MainnetVersion)
		fmt.Printf("地址: %s\n", addr)
		fmt.Println("---------------------------------------------------")
		fmt.Println("请妥善保管您的口令！任何拥有口令的人都可以控制该钱包的所有资产。")
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
