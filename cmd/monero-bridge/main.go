// monero-bridge exposes the wallet export table to WebAssembly guests,
// JavaScript and HTTP.
//
// Usage:
//
//	monero-bridge -list                        Print the export manifest
//	monero-bridge -schema                      Print the manifest JSON schema
//	monero-bridge -script app.js [-entry main] Run a script against the exports
//	monero-bridge -wasm guest.wasm -entry run  Run a guest export
//	monero-bridge -serve                       Serve the HTTP surface
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	monero "github.com/0-don/monero-ts"
	"github.com/0-don/monero-ts/application/config"
	"github.com/0-don/monero-ts/application/schema"
	"github.com/0-don/monero-ts/application/utils"
	"github.com/0-don/monero-ts/application/wallet"
	"github.com/0-don/monero-ts/host"
	"github.com/0-don/monero-ts/hostfuncs"
	jsadapter "github.com/0-don/monero-ts/infrastructure/goja"
	"github.com/0-don/monero-ts/infrastructure/httpapi"
	"github.com/0-don/monero-ts/internal/metrics"
	"github.com/0-don/monero-ts/log"
)

type flags struct {
	config  string
	envFile string
	list    bool
	schema  bool
	script  string
	wasm    string
	entry   string
	serve   bool
}

func main() {
	var f flags
	flag.StringVar(&f.config, "config", "", "YAML config file")
	flag.StringVar(&f.envFile, "env", ".env", "dotenv file")
	flag.BoolVar(&f.list, "list", false, "print the export manifest and exit")
	flag.BoolVar(&f.schema, "schema", false, "print the manifest JSON schema and exit")
	flag.StringVar(&f.script, "script", "", "JavaScript file to run")
	flag.StringVar(&f.wasm, "wasm", "", "WebAssembly guest to run")
	flag.StringVar(&f.entry, "entry", "", "function to call after loading a script or guest")
	flag.BoolVar(&f.serve, "serve", false, "serve the HTTP surface")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	if f.schema {
		out, err := schema.ManifestSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	cfg, err := config.Load(config.Options{File: f.config, EnvFile: f.envFile})
	if err != nil {
		return err
	}
	log.Init(cfg.Log.Level, cfg.Log.Format)

	svc := wallet.NewService(wallet.WithNetwork(cfg.NetworkType()))
	m := metrics.New()
	m.TrackOpenWallets(svc.Len)

	mod := monero.New(svc, utils.NewService(), monero.WithMiddleware(m.Middleware()))
	if err := mod.Init(); err != nil {
		return fmt.Errorf("export registration failed: %w", err)
	}
	reg, err := mod.Registry()
	if err != nil {
		return err
	}

	switch {
	case f.list:
		return printManifest(reg, cfg.HostModule)
	case f.script != "":
		return runScript(ctx, reg, cfg, f.script, f.entry)
	case f.wasm != "":
		return runGuest(ctx, reg, cfg, f.wasm, f.entry)
	case f.serve:
		return serve(ctx, mod, m, cfg)
	default:
		flag.Usage()
		return errors.New("no action given")
	}
}

func printManifest(reg *hostfuncs.Registry, module string) error {
	out, err := json.MarshalIndent(reg.Manifest(module), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runScript(ctx context.Context, reg *hostfuncs.Registry, cfg *config.Config, path, entry string) error {
	src, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ScriptTimeout)
	defer cancel()

	runner := jsadapter.NewRunner(reg, jsadapter.WithNamespace(cfg.JSNamespace))
	result, err := runner.Run(ctx, string(src), entry)
	if err != nil {
		return err
	}
	if result != nil {
		fmt.Println(result)
	}
	return nil
}

func runGuest(ctx context.Context, reg *hostfuncs.Registry, cfg *config.Config, path, entry string) error {
	if entry == "" {
		return errors.New("-wasm requires -entry")
	}
	wasmBytes, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read guest: %w", err)
	}

	exec, err := host.NewExecutor(ctx, reg,
		host.WithModuleName(cfg.HostModule),
		host.WithMaxRequestSize(cfg.MaxRequestSize),
	)
	if err != nil {
		return err
	}
	defer exec.Close(ctx)

	g, err := exec.LoadGuest(ctx, filepath.Base(path), wasmBytes)
	if err != nil {
		return err
	}
	defer g.Close(ctx)

	results, err := g.Call(ctx, entry)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Println(r)
	}
	return nil
}

func serve(ctx context.Context, mod *monero.Module, m *metrics.Metrics, cfg *config.Config) error {
	api := httpapi.NewServer(mod,
		httpapi.WithMetrics(m),
		httpapi.WithHostModule(cfg.HostModule),
		httpapi.WithMaxRequestSize(int64(cfg.MaxRequestSize)),
	)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.HTTP.Info().Str("addr", cfg.ListenAddr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
