package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nicobailon/twinpane/internal/config"
	"github.com/nicobailon/twinpane/internal/listing"
	"github.com/nicobailon/twinpane/internal/location"
	"github.com/nicobailon/twinpane/internal/pane"
	"github.com/nicobailon/twinpane/internal/tui"
	"github.com/nicobailon/twinpane/pkg/version"
)

var (
	configPath string
	apiURL     string
	logFile    string
	logLevel   string

	leftFlag  string
	rightFlag string
	pathFlag  string
	urlFlag   string
	depthFlag int

	lsDepth int
	lsExt   []string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "twinpane",
	Short:         "Dual-pane file explorer for a remote listing service",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Version = version.Version

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/twinpane/config.yaml)")
	pf.StringVar(&apiURL, "api-url", "", "listing service base URL")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.Flags().StringVar(&leftFlag, "left", "", "left pane root")
	rootCmd.Flags().StringVar(&rightFlag, "right", "", "right pane root")
	rootCmd.Flags().StringVar(&pathFlag, "path", "", "root for both panes")
	rootCmd.Flags().StringVar(&urlFlag, "url", "", "start from a location such as '?leftPath=/a&rightPath=/b'")
	rootCmd.Flags().IntVar(&depthFlag, "depth", 0, "initial listing depth")

	lsCmd.Flags().IntVarP(&lsDepth, "depth", "d", 0, "listing depth (default from config)")
	lsCmd.Flags().StringSliceVarP(&lsExt, "ext", "e", nil, "extension filter, e.g. md+py or --ext md --ext py")

	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(mvCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = strings.TrimRight(apiURL, "/")
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

type services struct {
	cfg    *config.Config
	client *listing.Client
	logger *slog.Logger
	closer io.Closer
}

func loadServices(cmd *cobra.Command) (*services, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, closer, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	client := listing.NewClient(cfg.APIURL, &http.Client{})
	return &services{cfg: cfg, client: client, logger: logger, closer: closer}, nil
}

func (s *services) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.RequestTimeout > 0 {
		return context.WithTimeout(parent, s.cfg.RequestTimeout)
	}
	return context.WithCancel(parent)
}

func runRoot(cmd *cobra.Command, args []string) error {
	svc, err := loadServices(cmd)
	if err != nil {
		return err
	}
	defer svc.closer.Close()

	if cmd.Flags().Changed("depth") {
		svc.cfg.Depth = max(depthFlag, pane.MinDepth)
	}

	storePath := svc.cfg.LocationFile
	if storePath == "" {
		storePath = location.DefaultPath()
	}
	store, err := location.Load(storePath, svc.cfg.HistoryMax)
	if err != nil {
		svc.logger.Warn("location store unreadable, starting fresh", "path", storePath, "err", err)
		store = location.NewMemoryAt(storePath, svc.cfg.HistoryMax)
	}

	start, err := location.StartQuery(urlFlag, pathFlag, leftFlag, rightFlag)
	if err != nil {
		return err
	}
	if start != "" {
		store.Push(start)
	}

	app := tui.New(tui.Deps{
		Cfg:      svc.cfg,
		Backend:  svc.client,
		Location: store,
		Logger:   svc.logger,
	})
	return app.Run()
}

var lsCmd = &cobra.Command{
	Use:   "ls PATH...",
	Short: "Print backend listings for one or more paths",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer svc.closer.Close()

		depth := svc.cfg.Depth
		if cmd.Flags().Changed("depth") {
			depth = max(lsDepth, pane.MinDepth)
		}
		ext := pane.JoinExtensions(splitExtensions(lsExt)...)

		ctx, cancel := svc.requestContext(cmd.Context())
		defer cancel()

		results := make([][]listing.Item, len(args))
		g, gctx := errgroup.WithContext(ctx)
		for i, path := range args {
			g.Go(func() error {
				items, err := svc.client.List(gctx, path, depth, ext)
				if err != nil {
					svc.logger.Error("listing failed", "path", path, "err", err)
					return fmt.Errorf("%s: %s", path, listing.Message(err))
				}
				results[i] = items
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, path := range args {
			printListing(out, path, results[i])
		}
		return nil
	},
}

func splitExtensions(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Split(v, "+")...)
	}
	return out
}

func printListing(w io.Writer, path string, items []listing.Item) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, path)
	dirs, files := listing.Separate(items)
	for _, it := range append(dirs, files...) {
		indent := strings.Repeat("  ", max(it.Depth-1, 0))
		if it.IsDir {
			fmt.Fprintf(w, " d %10s  %s%s/\n", childrenLabel(it), indent, it.DisplayName())
			continue
		}
		fmt.Fprintf(w, " - %10s  %s%s\n", sizeLabel(it), indent, it.DisplayName())
	}
	fmt.Fprintf(w, " %d folders, %d files\n", len(dirs), len(files))
}

func childrenLabel(it listing.Item) string {
	if it.ChildrenCount == nil {
		return ""
	}
	return humanize.Comma(int64(it.Children())) + " items"
}

func sizeLabel(it listing.Item) string {
	if it.Size == nil {
		return ""
	}
	return humanize.IBytes(uint64(max(*it.Size, 0)))
}

var mvCmd = &cobra.Command{
	Use:   "mv SOURCE DESTINATION",
	Short: "Ask the backend to move SOURCE into DESTINATION",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadServices(cmd)
		if err != nil {
			return err
		}
		defer svc.closer.Close()

		ctx, cancel := svc.requestContext(cmd.Context())
		defer cancel()

		source, destination := args[0], args[1]
		if err := svc.client.Move(ctx, source, destination); err != nil {
			svc.logger.Error("move failed", "source", source, "destination", destination, "err", err)
			return fmt.Errorf("move failed: %s", listing.Message(err))
		}
		svc.logger.Info("moved item", "source", source, "destination", destination)
		fmt.Fprintf(cmd.OutOrStdout(), "Moved %s -> %s\n", source, destination)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Version)
	},
}
