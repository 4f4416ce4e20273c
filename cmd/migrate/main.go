package main

import (
	"flag"
	"fmt"
	"log"

	"wallet-client/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// 管理网络注册表 / 档案 / 节点池三张表的 Schema。
// 开发环境下 wallet-server 会 AutoMigrate, 生产环境用这个工具。
func main() {
	var command string
	var source string
	flag.StringVar(&command, "cmd", "up", "Command to run: up, down")
	flag.StringVar(&source, "source", "file://migrations", "Migration source")
	flag.Parse()

	// 加载配置
	config.Init()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		config.Global.DB.User,
		config.Global.DB.Password,
		config.Global.DB.Host,
		config.Global.DB.Port,
		config.Global.DB.Name,
	)

	m, err := migrate.New(source, dsn)
	if err != nil {
		log.Fatalf("Migration init failed: %v", err)
	}

	switch command {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("Migration up failed: %v", err)
		}
		log.Println("Migration up done")
	case "down":
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("Migration down failed: %v", err)
		}
		log.Println("Migration down done")
	default:
		log.Fatalf("Unknown command: %s", command)
	}
}
