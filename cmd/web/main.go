package main

import (
	_ "embed"
	"encoding/json"
	"html/template"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/tomz197/flappy/internal/config"
	loopconfig "github.com/tomz197/flappy/internal/loop/config"
	"github.com/tomz197/flappy/internal/score"
)

const (
	defaultHost    = "0.0.0.0"
	defaultPort    = "8080"
	defaultAppName = "flappy"
)

//go:embed index.html
var htmlPage string

var page = template.Must(template.New("index").Parse(htmlPage))

// pageData fills index.html.
type pageData struct {
	SSHHost string
	Scores  []scoreRow
}

type scoreRow struct {
	Rank  string
	Name  string
	Score int
}

func main() {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	appName := config.GetEnv("FLAPPY_DATA", defaultAppName)

	store, err := score.OpenGdataStore(appName)
	if err != nil {
		log.Fatal("failed to open score storage", "err", err)
	}
	board := score.NewBoard(store, log.Default())

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		data := pageData{
			SSHHost: sshHost,
			Scores:  scoreRows(board.Top(loopconfig.LeaderboardDisplaySize)),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, data); err != nil {
			log.Error("render page", "err", err)
		}
	})
	mux.HandleFunc("/scores", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		entries := board.Top(loopconfig.LeaderboardDisplaySize)
		if entries == nil {
			entries = []score.Entry{}
		}
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			log.Error("encode scores", "err", err)
		}
	})

	addr := net.JoinHostPort(host, port)
	log.Info("Starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("server error", "err", err)
		os.Exit(1)
	}
}

var medals = []string{"🥇", "🥈", "🥉"}

func scoreRows(entries []score.Entry) []scoreRow {
	rows := make([]scoreRow, len(entries))
	for i, e := range entries {
		rank := strconv.Itoa(i + 1)
		if i < len(medals) {
			rank = medals[i]
		}
		rows[i] = scoreRow{Rank: rank, Name: e.Name, Score: e.Score}
	}
	return rows
}
