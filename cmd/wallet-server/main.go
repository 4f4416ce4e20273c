package main

import (
	"context"
	"fmt"
	"time"

	"wallet-client/internal/client"
	"wallet-client/internal/event"
	"wallet-client/internal/handler"
	"wallet-client/internal/model"
	"wallet-client/internal/peers"
	"wallet-client/internal/server"
	"wallet-client/internal/service"
	"wallet-client/internal/service/mq"
	"wallet-client/internal/state"
	"wallet-client/internal/txbuilder"
	"wallet-client/internal/watcher"
	"wallet-client/pkg/cache"
	"wallet-client/pkg/config"
	"wallet-client/pkg/database"
	"wallet-client/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 0. 初始化 Config
	config.Init()

	// 1. 初始化 Logger
	logger.Init(config.Global.App.Env)
	defer logger.Sync()

	// 2. 连接数据库 (可选, 作为状态存档)
	var db *gorm.DB
	if config.Global.DB.Enabled {
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Shanghai",
			config.Global.DB.Host,
			config.Global.DB.User,
			config.Global.DB.Password,
			config.Global.DB.Name,
			config.Global.DB.Port,
		)
		var err error
		db, err = database.ConnectPostgres(dsn)
		if err != nil {
			logger.Fatal("数据库连接失败", zap.Error(err))
		}

		if config.Global.App.Env == "development" {
			logger.Info("开发环境: 尝试自动迁移 Schema (GORM AutoMigrate)...")
			if err := db.AutoMigrate(model.AllModels()...); err != nil {
				logger.Fatal("数据库自动迁移失败", zap.Error(err))
			}
		} else {
			logger.Info("生产环境: 跳过 AutoMigrate，请使用 migrate 工具管理 Schema")
		}
	}

	// 3. 连接 Redis (可选, 缓存 L2 / 事件中继)
	var rdb *redis.Client
	if config.Global.Redis.Enabled {
		var err error
		rdb, err = database.ConnectRedis(config.Global.Redis.Addr, config.Global.Redis.Password, config.Global.Redis.DB)
		if err != nil {
			logger.Fatal("Redis 连接失败", zap.Error(err))
		}
	}

	// 4. 初始化状态容器
	store := state.NewMemoryStore()
	if db != nil {
		if err := state.LoadFromDB(db, store); err != nil {
			logger.Fatal("装载持久化状态失败", zap.Error(err))
		}
	}
	// 没有持久化档案时按配置兜底出一个默认网络 + 默认档案
	if _, ok := store.SessionNetwork(); !ok {
		network := &state.Network{
			ID:         "default",
			Name:       "default",
			Server:     config.Global.Node.Host,
			ApiVersion: config.Global.Node.ApiVersion,
			Epoch:      txbuilder.Epoch,
		}
		store.AddNetwork(network)
		store.SetSessionNetwork(network)
		store.SetActiveProfile(&state.Profile{ID: "default", Name: "default", NetworkID: network.ID})
	}

	// 5. 初始化节点客户端
	conn := client.NewConnection(config.Global.Node.Host, config.Global.Node.ApiVersion)
	discovery := peers.NewDiscovery(config.Global.Peers.Seeds, config.Global.Node.ProbeTimeout)
	cli := client.New(conn, store, discovery)

	// 6. 事件总线 + 档案监听 (档案切换 -> 重绑定 -> 广播 ClientChanged)
	bus := event.NewMemoryBus()
	profileWatcher := watcher.New(store, store, conn, bus)
	profileWatcher.Start()
	defer profileWatcher.Stop()

	// 7. 节点池持久化: 每次重绑定后把当前池写回存档
	if db != nil {
		bus.Subscribe(event.ClientChanged, func() {
			n, ok := store.SessionNetwork()
			if !ok {
				return
			}
			if err := state.SavePeers(db, n.ID, store.Peers(n.ID)); err != nil {
				logger.Warn("节点池写回数据库失败", zap.Error(err))
			}
		})
	}

	// 8. 节点管理 + 周期性恢复
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager := peers.NewManager(store, cli, bus, config.Global.Node.ProbeTimeout)
	go manager.RunLoop(ctx, config.Global.Peers.RefreshInterval)

	// 9. 事件外发中继 (可选)
	if config.Global.Event.Relay {
		var producer mq.Producer
		if config.Global.Event.MQType == "kafka" {
			logger.Info("使用 Kafka 作为消息队列...")
			producer = mq.NewKafkaProducer(config.Global.Kafka.Brokers, config.Global.Event.Topic)
		} else if rdb != nil {
			logger.Info("使用 Redis Streams 作为消息队列...")
			producer = mq.NewRedisProducer(rdb)
		}
		if producer != nil {
			relayService := service.NewRelayService(bus, producer, config.Global.Event.Topic)
			relayService.Start(ctx)
			defer relayService.Stop()
		} else {
			logger.Warn("事件中继已开启但没有可用的 MQ, 跳过")
		}
	}

	// 10. 查询缓存 (Redis 可用时走多级)
	var queryCache cache.Cache = cache.NewMemoryCache(time.Minute, 5*time.Minute)
	if rdb != nil {
		queryCache = cache.NewMultiLevelCache(queryCache, cache.NewRedisCache(rdb))
	}

	// 11. HTTP Router
	nodeHandler := handler.NewNodeHandler(cli, manager, queryCache)
	r := server.NewHTTPRouter(nodeHandler)

	// 12. 启动应用 (阻塞)
	app := server.New(server.Config{HttpPort: config.Global.App.HttpPort}, r)
	app.Run()

	// 13. 退出后资源清理
	if db != nil {
		logger.Info("正在关闭数据库连接...")
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if rdb != nil {
		rdb.Close()
	}
	logger.Info("系统已退出")
}
