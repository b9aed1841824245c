package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/flappy/internal/account"
	"github.com/tomz197/flappy/internal/audio"
	"github.com/tomz197/flappy/internal/config"
	"github.com/tomz197/flappy/internal/loop/client"
	loopconfig "github.com/tomz197/flappy/internal/loop/config"
	"github.com/tomz197/flappy/internal/loop/server"
	"github.com/tomz197/flappy/internal/score"
)

const defaultAppName = "flappy"

func main() {
	logger, closeLog, err := newLogger(config.GetEnv("FLAPPY_LOG", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	tuning, err := loopconfig.LoadTuning(config.GetEnv("FLAPPY_CONFIG", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid game config: %v\n", err)
		os.Exit(1)
	}

	var store score.Store
	appName := config.GetEnv("FLAPPY_DATA", defaultAppName)
	if gs, err := score.OpenGdataStore(appName); err != nil {
		logger.Warn("scores will not be kept after exit", "err", err)
		store = score.NewMemoryStore()
	} else {
		store = gs
	}

	cues := audio.Nop()
	var sp *audio.Speaker
	if config.GetEnvBool("FLAPPY_SOUND", true) {
		sp = audio.NewSpeaker()
		if err := sp.Init(); err != nil {
			logger.Warn("no audio device, using terminal bell", "err", err)
			sp = nil
			cues = audio.BellSet(os.Stdout)
		} else {
			cues = sp.Cues()
		}
	}
	if v, err := strconv.ParseFloat(config.GetEnv("FLAPPY_VOLUME", "0.3"), 64); err == nil {
		cues.SetVolume(v)
	}

	board := score.NewBoard(store, logger)
	gameServer := server.NewServer(board, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go gameServer.Run(ctx)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	c := client.NewClient(gameServer, reader, os.Stdout, client.ClientOptions{
		Username: os.Getenv("USER"),
		Gate:     account.NewGate(store, logger),
		Cues:     cues,
		Tuning:   &tuning,
		Logger:   logger,
	})
	runErr := c.Run()

	if sp != nil {
		sp.Close()
	}
	gameServer.Shutdown(time.Second)

	if runErr != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", runErr)
		os.Exit(1)
	}
}

// newLogger logs to path, or nowhere when path is empty. The terminal is
// in raw mode while the game runs, so logs cannot go to stderr.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "flappy",
	})
	return logger, func() { _ = f.Close() }, nil
}
