package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/hardfault/lulu/vm"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: lulu [flags] image-file ...")
	flag.PrintDefaults()
}

func main() {
	verbose := flag.Bool("v", false, "trace each instruction")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	console := vm.NewConsole()
	machine := vm.New(console.Keys(), console.Output())
	machine.Verbose = *verbose

	for _, path := range flag.Args() {
		if err := machine.LoadImageFile(path); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if err := console.EnableRawMode(); err != nil {
		log.Fatalf("raw mode: %v", err)
	}
	defer console.Restore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go console.Poll(ctx)

	done := make(chan struct{})
	go func() {
		machine.Run()
		close(done)
	}()

	select {
	case <-done:
		console.Restore()
		fmt.Println()
	case <-ctx.Done():
		// interrupted mid-run: fix the terminal before going down
		console.Restore()
		fmt.Println()
		os.Exit(254)
	}
}
