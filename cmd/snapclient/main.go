package main

import (
	"fmt"
	"log"

	"github.com/aussiebroadwan/snaptranslate/internal/client/app"
	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
)

func main() {
	figure.NewFigure("SnapTranslate", "cybermedium", true).Print()
	fmt.Println()

	// A .env next to the binary is optional; real environment variables win.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using environment variables")
	}

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
