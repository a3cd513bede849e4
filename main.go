package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/tradefeed/app"
	"github.com/CrestNiraj12/tradefeed/core/access"
	"github.com/CrestNiraj12/tradefeed/core/likes"
	"github.com/CrestNiraj12/tradefeed/core/ranking"
	"github.com/CrestNiraj12/tradefeed/core/timeline"
	"github.com/CrestNiraj12/tradefeed/domain"
	"github.com/CrestNiraj12/tradefeed/infra/api"
	"github.com/CrestNiraj12/tradefeed/infra/auth"
	"github.com/CrestNiraj12/tradefeed/infra/config"
	"github.com/CrestNiraj12/tradefeed/infra/logging"
	"github.com/CrestNiraj12/tradefeed/infra/metrics"
	"github.com/CrestNiraj12/tradefeed/infra/pager"
	"github.com/CrestNiraj12/tradefeed/tui"
	"github.com/CrestNiraj12/tradefeed/tui/feed"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: tradefeed [--version|-version|-v] [--help|-h]\n\n" +
		"Configuration is read from the environment (TRADEFEED_*), an optional\n" +
		".env file and the YAML file named by TRADEFEED_CONFIG."
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// tokenProvider reads the token file when one exists and browses anonymously
// otherwise. Locked posts stay locked for anonymous viewers.
func tokenProvider(path string, log *logging.Logger) auth.TokenProvider {
	if _, err := os.Stat(path); err == nil {
		return auth.NewFileTokenProvider(path)
	}
	log.Warn.Printf("no token at %s; browsing anonymously", path)
	return auth.StaticTokenProvider("")
}

func serveMetrics(addr string, collector *metrics.Collector, log *logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error.Printf("metrics listener: %v", err)
		}
	}()
	return srv
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("TradeFeed %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, logCloser, err := logging.OpenFile(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	collector := metrics.NewCollector()
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, collector, log)
		defer srv.Close()
	}

	// 2. Build infrastructure.
	tp := tokenProvider(cfg.TokenPath, log)
	client := api.NewClient(cfg.APIURL, tp)

	// 3. Build the engine.
	scorer := ranking.NewScorer(ranking.WithLogger(log.Warn), ranking.WithRecorder(collector))
	store := likes.New(api.NewLikeService(client), likes.WithRecorder(collector), likes.WithLogger(log.Warn))
	defer store.Close()
	ctrl := timeline.New()

	var sources []app.SignalSource
	if cfg.Stream {
		stream, err := api.NewStream(cfg.APIURL, tp, api.WithStreamLogger(log.Warn), api.WithSignalRecorder(collector))
		if err != nil {
			fmt.Fprintf(os.Stderr, "stream: %v\n", err)
			os.Exit(1)
		}
		sources = append(sources, stream)
	}
	if cfg.SimulateSignals > 0 {
		sources = append(sources, api.Ticker{Interval: cfg.SimulateSignals, Recorder: collector})
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for _, src := range sources {
		go func() {
			if err := src.Run(ctx, ctrl); err != nil {
				log.Error.Printf("signal source stopped: %v", err)
			}
		}()
	}

	uiState, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		log.Warn.Printf("ignoring ui state: %v", err)
	}

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Feed: feed.Deps{
			Posts:    api.NewPostService(client),
			Likes:    store,
			Timeline: ctrl,
			Scorer:   scorer,
			Viewer:   access.Viewer{ID: cfg.ViewerID},
			PageSize: cfg.PageSize,
			Tab:      uiState.Tab,
			Mode:     domain.ParseSortMode(uiState.Mode),
		},
		Pager:     pager.NewEnvPager(),
		StatePath: cfg.UIStatePath,
		Log:       log.Warn,
	})

	// 5. Run.
	log.Info.Printf("tradefeed %s starting against %s", version, cfg.APIURL)
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tradefeed: %v\n", err)
		os.Exit(1)
	}
}
