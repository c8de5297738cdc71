package main

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pavelanni/sahayak/internal/handler"
	appI18n "github.com/pavelanni/sahayak/internal/i18n"
	"github.com/pavelanni/sahayak/internal/llm"
	"github.com/pavelanni/sahayak/internal/pipeline"
	"github.com/pavelanni/sahayak/internal/store"
)

const version = "1.0.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sahayak",
		Short: "AI teaching assistant for multi-grade classrooms",
	}

	generate := generateCmd()
	root.AddCommand(generate, serveCmd())

	// Make "generate" the default when no subcommand is given.
	root.RunE = generate.RunE

	// Register generate flags on root so bare `sahayak --data ...` still works.
	root.Flags().AddFlagSet(generate.Flags())

	return root
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a student analytics report bundle",
		RunE:  runGenerate,
	}
	f := cmd.Flags()
	f.StringP("data", "f", "", "Path to student records JSON (empty = built-in demo class)")
	f.StringP("output", "o", "reports", "Directory for generated artifacts")
	f.String("zip", "", "Also bundle the artifacts into this zip file")
	addCommonFlags(f)
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP report server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	addCommonFlags(f)
	return cmd
}

func addCommonFlags(f *pflag.FlagSet) {
	f.String("llm-engine", "gemini", "Reasoning engine (gemini, openai)")
	f.String("llm-url", "", "OpenAI-compatible API base URL (openai engine only)")
	f.String("llm-key", "", "API key for the reasoning engine")
	f.String("llm-model", "gemini-2.0-flash", "Model name")
	f.StringP("lang", "l", "en", "Report language (en, hi)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("SAHAYAK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("sahayak")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/sahayak")
	v.AddConfigPath("/etc/sahayak")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func buildRequester(v *viper.Viper) (*llm.Requester, error) {
	engine, err := llm.NewEngine(
		v.GetString("llm-engine"),
		v.GetString("llm-url"),
		v.GetString("llm-key"),
		v.GetString("llm-model"),
	)
	if err != nil {
		return nil, fmt.Errorf("create reasoning engine: %w", err)
	}
	return llm.NewRequester(engine), nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	requester, err := buildRequester(v)
	if err != nil {
		return err
	}

	var s *store.Store
	if path := v.GetString("data"); path != "" {
		s, err = store.NewFromFile(path)
		if err != nil {
			return fmt.Errorf("load student data: %w", err)
		}
	} else {
		slog.Info("no data file given, using built-in demo class")
		s = store.NewDemo()
	}

	dir := v.GetString("output")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ctx := appI18n.WithLocalizer(context.Background(), appI18n.NewLocalizer(lang))
	bundle, err := pipeline.New(requester, dir).Run(ctx, s.Records())
	if err != nil {
		return err
	}

	if zipPath := v.GetString("zip"); zipPath != "" {
		if err := zipFiles(zipPath, bundle.Files()); err != nil {
			return fmt.Errorf("bundle zip: %w", err)
		}
		slog.Info("wrote report zip", "path", zipPath)
	}

	fmt.Printf("Report bundle written to %s (%d students)\n", dir, len(bundle.Reports))
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	requester, err := buildRequester(v)
	if err != nil {
		return err
	}

	h := handler.New(requester, version)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(lang))
	h.Routes(r)

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"engine", v.GetString("llm-engine"),
		"model", v.GetString("llm-model"),
		"lang", lang,
	)
	return http.ListenAndServe(addr, r)
}

func zipFiles(zipPath string, files []string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		entry, err := zw.Create(filepath.Base(path))
		if err != nil {
			f.Close()
			return fmt.Errorf("zip entry %s: %w", path, err)
		}
		if _, err := io.Copy(entry, f); err != nil {
			f.Close()
			return fmt.Errorf("zip copy %s: %w", path, err)
		}
		f.Close()
	}
	return zw.Close()
}
