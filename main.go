package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/logging"
	"github.com/deemkeen/noticeboard/db"
	"github.com/deemkeen/noticeboard/middleware"
	"github.com/deemkeen/noticeboard/ui"
	"github.com/deemkeen/noticeboard/util"
	"github.com/deemkeen/noticeboard/web"
	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

const localLogFile = "noticeboard.log"

func main() {
	flags := pflag.NewFlagSet(util.Name, pflag.ContinueOnError)
	version := flags.BoolP("version", "v", false, "print version and exit")
	local := flags.Bool("local", false, "run the panel in this terminal instead of serving it")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *version {
		fmt.Printf("%s v%s\n", util.Name, util.GetVersion())
		return
	}

	conf, err := util.ReadConf()
	if err != nil {
		log.Fatalln("Error reading config:", err)
	}
	util.SetupLogging(conf)
	log.Printf("Starting %s with configuration:\n%s", util.GetNameAndVersion(), util.PrettyPrint(conf))

	store := db.GetDB()
	if conf.Conf.SeedFile != "" {
		if err := store.LoadSeedFile(conf.Conf.SeedFile); err != nil {
			log.Fatalf("Could not load seed file %s: %v", conf.Conf.SeedFile, err)
		}
	}

	if *local {
		runLocal(conf)
		return
	}

	sshServer, err := newSSHServer(conf)
	if err != nil {
		log.Fatalln("Could not start SSH server:", err)
	}

	var httpServer *http.Server
	if !conf.Conf.SshOnly {
		gin.SetMode(gin.ReleaseMode)
		router, err := web.Router(conf, store)
		if err != nil {
			log.Fatalln("Could not set up web routes:", err)
		}
		httpServer = &http.Server{
			Addr:              net.JoinHostPort(conf.Conf.Host, strconv.Itoa(conf.Conf.HttpPort)),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("Starting SSH server on %s:%d", conf.Conf.Host, conf.Conf.SshPort)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalln("SSH server failed:", err)
		}
	}()

	if httpServer != nil {
		log.Printf("Starting HTTP server on %s", httpServer.Addr)
		go func() {
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalln("HTTP server failed:", err)
			}
		}()
	}

	<-done
	log.Println("Stopping servers")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if httpServer != nil {
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Println("Could not stop HTTP server:", err)
		}
	}
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Println("Could not stop SSH server:", err)
	}
	if err := store.Close(); err != nil {
		log.Println("Could not close store:", err)
	}
}

// runLocal shows the panel on this terminal. Log lines would tear the
// alt screen, so they go to a file unless journald takes them.
func runLocal(conf *util.AppConfig) {
	configDir, err := util.GetConfigDir()
	if err != nil {
		log.Fatalln("Could not resolve config dir:", err)
	}
	f, err := redirectLocalLogs(conf, configDir)
	if err != nil {
		log.Fatalln("Could not open log file:", err)
	}
	if f != nil {
		defer f.Close()
	}

	p := tea.NewProgram(ui.NewModel(conf, 0, 0), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalln("Error running panel:", err)
	}
}

// redirectLocalLogs points the std logger at <dir>/noticeboard.log.
// Returns nil when journald already owns the output.
func redirectLocalLogs(conf *util.AppConfig, dir string) (*os.File, error) {
	if conf.Conf.WithJournald {
		return nil, nil
	}
	return tea.LogToFile(filepath.Join(dir, localLogFile), util.Name)
}

func newSSHServer(conf *util.AppConfig) (*ssh.Server, error) {
	configDir, err := util.GetConfigDir()
	if err != nil {
		return nil, err
	}
	keyDir := filepath.Join(configDir, ".ssh")
	if err := os.MkdirAll(keyDir, 0700); err != nil {
		return nil, fmt.Errorf("create host key dir: %w", err)
	}

	return wish.NewServer(
		wish.WithAddress(net.JoinHostPort(conf.Conf.Host, strconv.Itoa(conf.Conf.SshPort))),
		wish.WithHostKeyPath(filepath.Join(keyDir, "noticeboardkey")),
		// the board is public; keys only identify visitors in the logs
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		}),
		wish.WithMiddleware(
			middleware.MainTui(conf),
			middleware.VisitorMiddleware(),
			logging.Middleware(),
		),
	)
}
