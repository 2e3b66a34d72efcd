package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/talkincode/shopcore/config"
	"github.com/talkincode/shopcore/internal/adminapi"
	"github.com/talkincode/shopcore/internal/app"
	"github.com/talkincode/shopcore/internal/webserver"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	conffile = flag.String("c", "shopcore.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema")
	showver  = flag.Bool("v", false, "print version")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showver {
		fmt.Println("shopcore", version)
		return
	}

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := webserver.New(cfg)
	adminapi.Register(server, adminapi.NewHandler(application))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(ctx)
	})

	if err := g.Wait(); err != nil {
		zap.S().Fatalf("server exited: %v", err)
	}
}
