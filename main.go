package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/alexflint/go-arg"

	"github.com/ytget/ytdlp-manager/internal/binary"
	"github.com/ytget/ytdlp-manager/internal/commands"
	"github.com/ytget/ytdlp-manager/internal/config"
	"github.com/ytget/ytdlp-manager/internal/download"
	"github.com/ytget/ytdlp-manager/internal/logger"
	"github.com/ytget/ytdlp-manager/internal/platform"
	"github.com/ytget/ytdlp-manager/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.ytdlp-manager"
	AppName = "yt-dlp Manager"

	ShutdownTimeout = 15 * time.Second
)

func main() {
	if err := config.LoadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	opts, err := config.ParseOptions(os.Args[1:])
	if errors.Is(err, arg.ErrHelp) {
		config.WriteHelp(os.Stdout)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ytdlp-manager: %v\n", err)
		os.Exit(2)
	}

	log := logger.New(logger.Options{Dir: opts.LogDir, Debug: opts.Debug})
	defer log.Close()
	log.Infof("%s v%s starting, logging to %s", AppName, version, log.Path())

	myApp := app.NewWithID(AppID)
	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	store := config.NewStore(myApp)
	settings := store.Load()
	if err := platform.CreateDirectoryIfNotExists(settings.DownloadPath); err != nil {
		log.Warnf("Failed to ensure downloads dir: %v", err)
	}

	binaries := binary.NewCache(opts.BinDir)
	log.Debugf("Managed binaries directory: %s", binaries.BinDir())
	downloadSvc := download.NewService(download.Config{
		MaxConcurrent: settings.MaxConcurrent,
		DepMode:       settings.DepMode,
		KillTimeout:   opts.KillTimeout,
		Runner:        download.NewExecRunner(),
		Locator:       binaries,
		Logger:        log.SugaredLogger,
	})

	expander := platform.NewPlaylistExpander()
	expander.SetTimeout(opts.PlaylistTimeout)

	handler := commands.NewHandler(commands.Deps{
		Store:    store,
		Manager:  downloadSvc,
		Binaries: binaries,
		Picker:   platform.NewFynePicker(myWindow),
		Logs:     log,
		Playlist: expander,
		Logger:   log.SugaredLogger,
	})

	ui.NewRootUI(myWindow, handler, downloadSvc.Subscribe, log.SugaredLogger)
	go queueStartupURLs(handler, opts.URLs, log)

	myWindow.ShowAndRun()

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := downloadSvc.Shutdown(ctx); err != nil {
		log.Errorf("Shutdown did not complete cleanly: %v", err)
	}
	log.Info("Stopped")
}

// queueStartupURLs submits URLs given on the command line
func queueStartupURLs(handler *commands.Handler, urls []string, log *logger.Logger) {
	ctx := context.Background()
	for _, url := range urls {
		if platform.IsPlaylistURL(url) {
			ids, err := handler.StartPlaylist(ctx, url)
			if err != nil {
				log.Warnf("Failed to queue playlist: %v", err)
				continue
			}
			log.Infof("Queued %d playlist entries", len(ids))
			continue
		}

		if _, err := handler.StartDownload(ctx, url); err != nil {
			log.Warnf("Failed to queue download: %v", err)
		}
	}
}
