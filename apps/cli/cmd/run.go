package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/reqx/packages/core/config"
	"github.com/abdul-hamid-achik/reqx/packages/core/runner"
	"github.com/abdul-hamid-achik/reqx/packages/history"
	"github.com/abdul-hamid-achik/reqx/packages/http"
	"github.com/abdul-hamid-achik/reqx/packages/output"
)

var runCmd = &cobra.Command{
	Use:   "run <file|directory>",
	Short: "Run requests from reqx files",
	Long: `Run the HTTP requests defined in .reqx files.

Examples:
  reqx run api.reqx
  reqx run api.reqx -v
  reqx run api.reqx --dry-run
  reqx run api.reqx -r 2
  reqx run api.reqx -m GET
  reqx run ./requests/ --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	verboseFlag  bool
	dryRunFlag   bool
	requestFlag  int
	methodFlag   string
	envFileFlag  string
	configFlag   string
	timeoutFlag  string
	noColorFlag  bool
	insecureFlag bool
	proxyFlag    string
	rateFlag     float64
	watchFlag    bool
	historyFlag  bool
)

func init() {
	runCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show request headers, bodies and response detail")
	runCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Resolve and show requests without sending them")
	runCmd.Flags().IntVarP(&requestFlag, "request", "r", 0, "Run only the request at this 1-based index")
	runCmd.Flags().StringVarP(&methodFlag, "method", "m", "", "Run only requests with this HTTP method")
	runCmd.Flags().StringVar(&envFileFlag, "env-file", getEnvString("REQX_ENV_FILE", ""), "Path to .env file for variable interpolation (env: REQX_ENV_FILE)")
	runCmd.Flags().StringVar(&configFlag, "config", getEnvString("REQX_CONFIG", ""), "Path to config file (env: REQX_CONFIG)")
	runCmd.Flags().StringVar(&timeoutFlag, "timeout", getEnvString("REQX_TIMEOUT", ""), "Request timeout (e.g., 30s, 1m) (env: REQX_TIMEOUT)")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("REQX_NO_COLOR", false), "Disable colored output (env: REQX_NO_COLOR)")
	runCmd.Flags().BoolVarP(&insecureFlag, "insecure", "k", getEnvBool("REQX_INSECURE", false), "Disable SSL certificate validation (env: REQX_INSECURE)")
	runCmd.Flags().StringVar(&proxyFlag, "proxy", getEnvString("REQX_PROXY", ""), "Proxy URL for HTTP requests (env: REQX_PROXY)")
	runCmd.Flags().Float64Var(&rateFlag, "rate", 0, "Maximum requests per second (0 = unlimited)")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch files for changes and re-run")
	runCmd.Flags().BoolVar(&historyFlag, "history", getEnvBool("REQX_HISTORY", false), "Record runs to the local history database (env: REQX_HISTORY)")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func runCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .reqx files found")
	}

	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	timeout := time.Duration(fileConfig.Timeout) * time.Millisecond
	if timeoutFlag != "" {
		timeout, err = time.ParseDuration(timeoutFlag)
		if err != nil {
			return fmt.Errorf("invalid timeout value %q: %w (use format like 30s, 1m, 500ms)", timeoutFlag, err)
		}
	}

	proxy := fileConfig.Proxy
	if proxyFlag != "" {
		proxy = proxyFlag
	}

	validateSSL := fileConfig.GetValidateSSL()
	if insecureFlag {
		validateSSL = false
	}

	clientOpts := []http.ClientOption{
		http.WithTimeout(timeout),
		http.WithFollowRedirects(fileConfig.GetFollowRedirects()),
		http.WithMaxRedirects(fileConfig.MaxRedirects),
		http.WithValidateSSL(validateSSL),
	}
	if proxy != "" {
		clientOpts = append(clientOpts, http.WithProxy(proxy))
	}
	for k, v := range fileConfig.Headers {
		clientOpts = append(clientOpts, http.WithDefaultHeader(k, v))
	}
	client := http.NewClient(clientOpts...)

	envFile := fileConfig.EnvFile
	if envFileFlag != "" {
		envFile = envFileFlag
	}

	rate := fileConfig.Rate
	if rateFlag > 0 {
		rate = rateFlag
	}

	runnerCfg := &runner.Config{
		DryRun:       dryRunFlag,
		MethodFilter: methodFlag,
		EnvFile:      envFile,
		Rate:         rate,
	}
	if cmd.Flags().Changed("request") {
		// An explicit -r 0 (or negative) is a range error, not "run all".
		runnerCfg.RequestIndex = &requestFlag
	}

	console := output.NewConsole(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithVerbose(verboseFlag || fileConfig.GetVerbose()),
		output.WithNoColor(noColorFlag || fileConfig.GetNoColor()),
	)

	var store *history.Store
	if historyFlag || fileConfig.GetHistory() {
		path := fileConfig.HistoryPath
		if path == "" {
			path, err = history.DefaultPath()
			if err != nil {
				return err
			}
		}
		store, err = history.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	r := runner.NewRunner(client, runnerCfg, runner.WithObserver(console))

	runAll := func() error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		for _, file := range files {
			report, err := r.RunFile(ctx, file)
			if report != nil && store != nil && len(report.Results) > 0 {
				runID, recErr := store.Record(ctx, report)
				if recErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: recording history: %v\n", recErr)
				} else if verboseFlag {
					fmt.Fprintf(cmd.OutOrStdout(), "Recorded run %s\n", runID[:8])
				}
			}
			if err != nil {
				return err
			}
			if verboseFlag && report != nil {
				console.Summary(report)
			}
		}
		return nil
	}

	if err := runAll(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		if !watchFlag {
			os.Exit(ExitRunError)
		}
	}

	if !watchFlag {
		return nil
	}

	return watchAndRerun(cmd, args, files, runAll)
}

// watchAndRerun re-runs the files whenever one of them changes on disk.
func watchAndRerun(cmd *cobra.Command, args, files []string, runAll func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watchedDirs := make(map[string]bool)
	for _, file := range files {
		dir := filepath.Dir(file)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed to watch %s: %v\n", dir, err)
			}
			watchedDirs[dir] = true
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			_ = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() && !watchedDirs[path] {
					_ = watcher.Add(path)
					watchedDirs[path] = true
				}
				return nil
			})
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Write) && isReqxFile(event.Name) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
					fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\nRe-running...\n\n", event.Name)
					if err := runAll(); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watcher error: %v\n", err)
		}
	}
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && isReqxFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else {
			if isReqxFile(arg) {
				files = append(files, arg)
			}
		}
	}

	return files, nil
}

func isReqxFile(path string) bool {
	return filepath.Ext(path) == ".reqx"
}
