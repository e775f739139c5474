package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"
	"go.uber.org/zap"

	"github.com/kittclouds/galaxymap/internal/app"
	"github.com/kittclouds/galaxymap/internal/cli"
	"github.com/kittclouds/galaxymap/internal/config"
	"github.com/kittclouds/galaxymap/internal/logging"
)

func main() {
	configPath := flag.String("config", "galaxymap.yaml", "path to the YAML config file")
	history := flag.String("history", filepath.Join(os.TempDir(), "galaxyctl_history"), "readline history file")
	verbose := flag.Bool("v", false, "log to stdout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := zap.NewNop()
	if *verbose {
		logger, err = logging.New(string(cfg.Environment))
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	}
	defer logger.Sync()

	var fsys hackpadfs.FS
	if cfg.Storage.Backend == config.BackendFS || cfg.Storage.Backend == config.BackendIndexedDB {
		fsys, cfg.Storage.Dir, err = rootedDir(cfg.Storage.Dir)
		if err != nil {
			log.Fatalf("Failed to resolve storage directory: %v", err)
		}
		// Outside a browser the indexeddb backend falls back to the host filesystem.
		cfg.Storage.Backend = config.BackendFS
	}

	session, err := app.Open(cfg, app.Deps{FS: fsys, Log: logger})
	if err != nil {
		log.Fatalf("Failed to open mind map: %v", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Printf("Error saving mind map: %v", err)
		}
		fmt.Println("Goodbye!")
	}()

	fmt.Println("Welcome to galaxymap! Use 'help' for the list of commands.")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     *history,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Fatalf("Failed to initialize readline: %v", err)
	}
	defer rl.Close()

	c := cli.NewCLI(session, rl, rl.Stdout())
	rl.SetPrompt(c.Prompt)

	// Main loop
	for {
		err := c.Run()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				fmt.Println("Use 'exit' or 'quit' to exit the program.")
				continue
			} else if errors.Is(err, io.EOF) {
				break
			}
			fmt.Println("Error:", err)
		}

		rl.SetPrompt(c.Prompt)
	}
}

// rootedDir maps a host directory onto the root of a host filesystem.
func rootedDir(dir string) (hackpadfs.FS, string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", err
	}
	fsys := osfs.NewFS()
	rel, err := fsys.FromOSPath(abs)
	if err != nil {
		return nil, "", err
	}
	return fsys, rel, nil
}
