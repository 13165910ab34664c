package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/kpotier/molrdf/pkg/cfg"
)

func main() {
	log := log.New(os.Stdout, "", log.LstdFlags)

	if len(os.Args) != 2 {
		log.Fatal("one argument is needed: path of the configuration file")
	}

	c, err := cfg.New(os.Args[1])
	if err != nil {
		log.Fatal(fmt.Errorf("New: %w", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if failed := c.Start(ctx, log); failed > 0 {
		stop()
		log.Fatalf("%d calculation(s) failed", failed)
	}
}
