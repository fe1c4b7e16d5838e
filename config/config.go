package config

import (
	"flag"
	"net"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DBUrl            string
	UploadDir        string
	AutosaveInterval time.Duration
	Debug            bool
}

func ParseFlags() (cfg Config, err error) {
	// optional .env next to the binary, flags win
	_ = godotenv.Load()

	var host string
	flag.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", 80, "listen port number (default 80)")
	flag.StringVar(&cfg.DBUrl, "db-url", "formflow.sqlite", "path to SQLite3 DB file (default formflow.sqlite)")
	flag.StringVar(&cfg.UploadDir, "upload-dir", "uploads", "directory for uploaded files (default uploads)")
	var autosave uint
	flag.UintVar(&autosave, "autosave-interval", 30, "builder auto-save inactivity window in seconds, 0 disables (default 30)")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.AutosaveInterval = time.Duration(autosave) * time.Second

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
