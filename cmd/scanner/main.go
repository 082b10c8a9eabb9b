package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Crit("failed to load .env", "err", err)
	}

	app := NewCli()
	if err := app.Run(os.Args); err != nil {
		log.Crit("Application failed", "err", err)
	}
}
