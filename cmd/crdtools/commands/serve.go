package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crdtools/crdtools/convert"
	"github.com/crdtools/crdtools/webhook"
)

// ServeFlags contains flags for the serve command
type ServeFlags struct {
	Addr     string
	Path     string
	CertFile string
	KeyFile  string
}

// SetupServeFlags creates and configures a FlagSet for the serve command.
func SetupServeFlags() (*flag.FlagSet, *ServeFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags := &ServeFlags{}

	fs.StringVar(&flags.Addr, "addr", ":8443", "listen address")
	fs.StringVar(&flags.Path, "path", "/convert", "webhook route")
	fs.StringVar(&flags.CertFile, "cert", "", "TLS certificate file (serve plain HTTP when omitted)")
	fs.StringVar(&flags.KeyFile, "key", "", "TLS private key file")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: crdtools serve [flags] <file>\n\n")
		Writef(fs.Output(), "Serve conversion for the schema over the ConversionReview webhook protocol.\n")
		Writef(fs.Output(), "Also exposes /metrics (Prometheus) and /healthz.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  crdtools serve person.yaml\n")
		Writef(fs.Output(), "  crdtools serve --addr :8443 --cert tls.crt --key tls.key person.yaml\n")
	}

	return fs, flags
}

// HandleServe executes the serve command
func HandleServe(args []string) error {
	fs, flags := SetupServeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("serve command requires exactly one schema file path")
	}
	if (flags.CertFile == "") != (flags.KeyFile == "") {
		return fmt.Errorf("serve command requires both --cert and --key for TLS")
	}

	parsed, err := loadValidSchema(fs.Arg(0))
	if err != nil {
		return err
	}

	pipeline, err := convert.NewPipeline(parsed.Registry, parsed.Definition.Items)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	service := webhook.NewService(pipeline, parsed.Definition.Group, parsed.Definition.Kind,
		webhook.WithLogger(logger))

	mux := http.NewServeMux()
	mux.Handle(flags.Path, webhook.NewHandler(service))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:              flags.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("webhook server listening",
			"addr", flags.Addr,
			"path", flags.Path,
			"kind", parsed.Definition.Kind,
			"group", parsed.Definition.Group,
			"tls", flags.CertFile != "")
		if flags.CertFile != "" {
			errCh <- server.ListenAndServeTLS(flags.CertFile, flags.KeyFile)
		} else {
			errCh <- server.ListenAndServe()
		}
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
