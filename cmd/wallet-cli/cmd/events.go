package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wallet-client/internal/service/mq"
	"wallet-client/pkg/database"
)

// eventsCmd 订阅服务端中继出来的事件流 (调试用)
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "实时打印事件流 (Redis Streams)",
	Long:  `订阅 wallet-server 中继到 Redis Streams 的事件并打印, Ctrl+C 退出。`,
	Run: func(cmd *cobra.Command, args []string) {
		redisAddr, _ := cmd.Flags().GetString("redis")
		topic, _ := cmd.Flags().GetString("topic")
		group, _ := cmd.Flags().GetString("group")

		rdb, err := database.ConnectRedis(redisAddr, "", 0)
		if err != nil {
			fmt.Printf("Redis 连接失败: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-quit
			cancel()
		}()

		consumer := mq.NewRedisConsumer(rdb, group, "cli-0")
		defer consumer.Close()

		fmt.Printf("正在监听 %s (group %s), Ctrl+C 退出...\n", topic, group)
		err = consumer.Subscribe(ctx, topic, func(msg *mq.Message) error {
			fmt.Printf("[%s] %s\n", msg.ID, string(msg.Payload))
			return nil
		})
		if err != nil {
			fmt.Printf("订阅失败: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().String("redis", "localhost:6379", "Redis 地址")
	eventsCmd.Flags().String("topic", "wallet:events:client", "事件主题")
	eventsCmd.Flags().String("group", "wallet_cli", "消费者组")
}
