package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/nursenotes/internal/buildinfo"
	"github.com/dmitrijs2005/nursenotes/internal/offline"
	"github.com/dmitrijs2005/nursenotes/internal/offline/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := offline.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

}
