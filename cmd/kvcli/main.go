package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/anthanhphan/gosdk/logger"

	"github.com/anthanhphan/go-sharded-kv-client/internal/client"
	"github.com/anthanhphan/go-sharded-kv-client/internal/client/config"
	"github.com/anthanhphan/go-sharded-kv-client/pkg/resp"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "configPath", "", "Path to configuration file")
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-configPath path] COMMAND key [arg ...]\n", os.Args[0])
		os.Exit(2)
	}

	cfg := config.MustLoad(configPath)
	logger.InitLogger(&cfg.Logger)

	cmd, ok := resp.LookupCommand(args[0])
	if !ok {
		log.Fatalf("Unknown command: %s", strings.ToUpper(args[0]))
	}

	kv, err := client.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build client: %v", err)
	}
	defer kv.Close()

	key := args[1]
	cmdArgs := make([][]byte, 0, len(args)-1)
	for _, a := range args[1:] {
		cmdArgs = append(cmdArgs, []byte(a))
	}

	reply, err := kv.Do(context.Background(), key, cmd, cmdArgs...)
	if err != nil {
		log.Fatalf("Command failed: %v", err)
	}
	fmt.Println(reply.String())
}
