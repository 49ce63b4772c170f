package main

import (
	"context"
	"log"
	"os"

	"github.com/appstash/appstash/internal/cli"
	"github.com/appstash/appstash/internal/config"
	"github.com/appstash/appstash/internal/flagx"
	"github.com/appstash/appstash/internal/logging"
)

func main() {

	cfg := config.LoadConfig()
	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, logging.NewDefault(), os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	args := flagx.Positional(os.Args[1:], config.ValueFlags)
	if err := app.Run(ctx, args); err != nil {
		log.Fatalf("%v", err)
	}
}
