package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/cipherlab/internal/artifacts"
	"github.com/PolarWolf314/cipherlab/internal/configs"
	logger "github.com/PolarWolf314/cipherlab/internal/logging"
	"github.com/PolarWolf314/cipherlab/internal/metrics"
	"github.com/PolarWolf314/cipherlab/internal/server"
	"github.com/PolarWolf314/cipherlab/internal/ui"
)

const artifactGCInterval = 5 * time.Minute

var (
	serveAddr     string
	serveNoBanner bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides the config file)")
	serveCmd.Flags().BoolVar(&serveNoBanner, "no-banner", false, "skip the startup banner")
}

func resetServeCommandState() {
	serveAddr = ""
	serveNoBanner = false
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the challenge HTTP server",
	Long: `Serves /download, /fetch, /get_text, /check1 and /check2 for participants,
plus /healthz and /metrics for operators.

Examples:
  cipherlab serve
  cipherlab serve --addr 127.0.0.1:9000
  CIPHERLAB_KEY_MODE=split cipherlab serve`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting serve command")
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			settings.Server.Addr = serveAddr
		}

		runner, err := newRunner(settings)
		if err != nil {
			return err
		}

		if c, err := runner.Corpus.Load(); err != nil {
			Logger.WarnfAlways("Corpus not loaded yet, requests will fail until it is readable: %v", err)
		} else {
			stats := c.Stats()
			Logger.Infof("Loaded %d excerpts and %d passwords", stats.Excerpts, stats.Passwords)
			if stats.Excerpts == 0 || stats.Passwords == 0 {
				Logger.WarnfAlways("Corpus has an empty list (excerpts=%d, passwords=%d)", stats.Excerpts, stats.Passwords)
			}
		}

		store, err := openArtifactStore(settings)
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
			runner.Artifacts = store
		}

		idleTTL, err := settings.RateLimitIdleTTL()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if store != nil {
			store.StartGC(ctx, artifactGCInterval)
		}

		srv := server.New(server.Options{
			Addr:      settings.Server.Addr,
			Runner:    runner,
			AccessLog: logger.NewAccessLogger(os.Stderr, debug),
			Metrics:   metrics.New(),
			RateLimit: server.RateLimit{
				Enabled: settings.RateLimit.Enabled,
				RPS:     settings.RateLimit.RPS,
				Burst:   settings.RateLimit.Burst,
				IdleTTL: idleTTL,
			},
		})

		out := cmd.OutOrStdout()
		if !serveNoBanner {
			figure.NewColorFigure("cipherlab", "alligator2", "green", true).Print()
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, ui.Succeeded("Listening on "+ui.Highlight.Sprint(srv.Addr())))
		fmt.Fprintln(out, ui.Info.Sprint("→")+" key mode "+ui.Muted.Sprint(runner.KeyMode)+
			", artifacts "+ui.Muted.Sprint(artifactMode(settings)))

		if err := srv.Run(ctx); err != nil {
			return Logger.ErrorfAndReturn("server stopped: %v", err)
		}
		Logger.Infof("Server shut down cleanly")
		return nil
	},
}

// openArtifactStore returns nil when persistence is disabled.
func openArtifactStore(settings *configs.Settings) (*artifacts.Store, error) {
	if !settings.ArtifactsEnabled() {
		Logger.Debugf("Artifact persistence disabled")
		return nil, nil
	}
	ttl, err := settings.ArtifactTTL()
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Opening artifact store dir=%q in_memory=%t ttl=%s", settings.Artifacts.Dir, settings.Artifacts.InMemory, ttl)
	return artifacts.Open(artifacts.Options{
		Dir:      settings.Artifacts.Dir,
		InMemory: settings.Artifacts.InMemory,
		TTL:      ttl,
	})
}

func artifactMode(settings *configs.Settings) string {
	switch {
	case settings.Artifacts.InMemory:
		return "in memory, ttl " + settings.Artifacts.TTL
	case settings.Artifacts.Dir != "":
		return settings.Artifacts.Dir + ", ttl " + settings.Artifacts.TTL
	default:
		return "off"
	}
}
