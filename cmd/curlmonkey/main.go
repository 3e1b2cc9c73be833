package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/curlmonkey/internal/collections"
	"github.com/unkn0wn-root/curlmonkey/internal/config"
	"github.com/unkn0wn-root/curlmonkey/internal/history"
	"github.com/unkn0wn-root/curlmonkey/internal/httpclient"
	"github.com/unkn0wn-root/curlmonkey/internal/model"
	"github.com/unkn0wn-root/curlmonkey/internal/theme"
	"github.com/unkn0wn-root/curlmonkey/internal/ui"
	"github.com/unkn0wn-root/curlmonkey/internal/vars"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	var (
		envName     string
		envFile     string
		timeout     time.Duration
		insecure    bool
		proxyURL    string
		showVersion bool
	)

	flag.StringVar(&envName, "env", "", "Environment name to use")
	flag.StringVar(&envFile, "env-file", "", "Path to a .env file to import into the environment")
	flag.DurationVar(&timeout, "timeout", 0, "Request timeout, overrides the saved setting")
	flag.BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")
	flag.StringVar(&proxyURL, "proxy", "", "HTTP proxy URL, overrides the saved setting")
	flag.BoolVar(&showVersion, "version", false, "Show curlmonkey version")
	flag.Parse()

	if showVersion {
		fmt.Printf("curlmonkey %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	logger, closeLog, err := openLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	settings, handle, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: load settings: %v\n", err)
		os.Exit(1)
	}
	if timeout > 0 {
		settings.DefaultTimeout = int(timeout / time.Second)
	}
	if insecure {
		settings.SSLVerify = false
	}
	if proxyURL != "" {
		settings.HTTPProxy = proxyURL
		settings.HTTPSProxy = proxyURL
	}

	histStore := history.NewStore(config.HistoryPath(), history.DefaultMaxEntries)
	collStore := collections.NewStore(config.CollectionsPath())
	envStore := vars.NewStore(config.EnvironmentsPath())
	if err := envStore.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "error: load environments: %v\n", err)
		os.Exit(1)
	}

	activeEnv := settings.DefaultEnvironment
	if envName != "" {
		activeEnv = envName
	}
	if activeEnv == "" {
		activeEnv = model.DefaultEnvironmentName
	}

	if envFile != "" {
		if err := importEnvFile(envStore, activeEnv, envFile); err != nil {
			fmt.Fprintf(os.Stderr, "error: import %s: %v\n", envFile, err)
			os.Exit(1)
		}
	}

	client := httpclient.NewClient(logger)

	modelUI := ui.New(ui.Config{
		Client:         client,
		Theme:          theme.Dark(),
		Settings:       settings,
		SettingsHandle: handle,
		History:        histStore,
		Collections:    collStore,
		Environments:   envStore,
		Environment:    activeEnv,
		Version:        version,
		Logger:         logger,
	})

	program := tea.NewProgram(modelUI, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func openLogger() (*log.Logger, func(), error) {
	path := config.LogPath()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	logger := log.New(f, "", log.LstdFlags)
	return logger, func() { _ = f.Close() }, nil
}

func importEnvFile(store *vars.Store, envName, path string) error {
	values, err := vars.LoadDotEnv(path)
	if err != nil {
		return err
	}
	env, ok := store.Get(envName)
	if !ok {
		env = model.Environment{Name: envName, Variables: map[string]string{}}
	}
	if env.Variables == nil {
		env.Variables = map[string]string{}
	}
	for k, v := range values {
		env.Variables[k] = v
	}
	return store.Put(env)
}
