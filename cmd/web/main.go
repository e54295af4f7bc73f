package main

import (
	_ "embed"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/tomz197/roots/internal/config"
	loopconfig "github.com/tomz197/roots/internal/loop/config"
	"github.com/tomz197/roots/internal/records"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	logger := config.NewLogger(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	store, err := records.Open(config.GetEnv("ROOTS_DATA_APP", "backtotheroots"))
	if err != nil {
		logger.Warn("leaderboard storage unavailable", "err", err)
	}

	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	router := newRouter(page, store, logger)

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newRouter serves the landing page and the leaderboard API.
func newRouter(page string, store *records.Store, logger *log.Logger) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/leaderboard", func(w http.ResponseWriter, _ *http.Request) {
		// The SSH server writes runs; reload to pick them up
		if err := store.Load(); err != nil {
			logger.Error("failed to reload leaderboard", "err", err)
		}
		runs := store.Top(loopconfig.LeaderboardSize)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(runs); err != nil {
			logger.Error("failed to encode leaderboard", "err", err)
		}
	}).Methods(http.MethodGet)

	return r
}
