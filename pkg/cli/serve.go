package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jjs98/easy-server-mock/pkg/engine"
	"github.com/jjs98/easy-server-mock/pkg/logging"
	"github.com/jjs98/easy-server-mock/pkg/portability"
)

var (
	servePort       int
	serveHost       string
	serveCollection string
	serveFormat     string
	serveLogLevel   string
	serveLogFormat  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a mock server in the foreground",
	Long: `Run a mock server in the foreground until interrupted.

Endpoints can be preloaded from a collection file exported by the
portability package (or written by hand) in JSON or YAML.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(logging.Config{
			Level:  logging.ParseLevel(serveLogLevel),
			Format: logging.ParseFormat(serveLogFormat),
		})

		srv := engine.New(servePort,
			engine.WithLogger(log),
			engine.WithListenAddress(serveHost),
		)

		if serveCollection != "" {
			collection, err := loadCollection(serveCollection, serveFormat)
			if err != nil {
				return err
			}
			n, err := portability.Import(srv, collection)
			if err != nil {
				return fmt.Errorf("importing %s: %w", serveCollection, err)
			}
			log.Info("collection imported", "file", serveCollection, "endpoints", n)
		}

		if err := srv.Start(); err != nil {
			return fmt.Errorf("starting mock server on port %d: %w", srv.Port(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Mock server listening on %s\n", srv.URL())

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		return srv.Stop()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", engine.DefaultPort, "Port to listen on")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host/interface to bind (default all interfaces)")
	serveCmd.Flags().StringVarP(&serveCollection, "collection", "c", "", "Endpoint collection file to preload")
	serveCmd.Flags().StringVar(&serveFormat, "format", "", "Collection format: json or yaml (default from file extension)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&serveLogFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.AddCommand(serveCmd)
}

// loadCollection reads and parses a collection file. An empty formatFlag
// infers the format from the file extension.
func loadCollection(path, formatFlag string) (*portability.Collection, error) {
	format, err := resolveFormat(path, formatFlag)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading collection: %w", err)
	}

	collection, err := portability.Unmarshal(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return collection, nil
}

func resolveFormat(path, formatFlag string) (portability.Format, error) {
	if formatFlag != "" {
		return portability.ParseFormat(formatFlag)
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return portability.FormatYAML, nil
	default:
		return portability.FormatJSON, nil
	}
}
