package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/statuscore/livequery/internal/repl"
)

func main() {
	addr := flag.String("addr", "localhost:6557", "livequery server address")
	flag.Parse()

	if err := repl.Start(*addr); err != nil {
		fmt.Fprintf(os.Stderr, "lqcli: %v\n", err)
		os.Exit(1)
	}
}
