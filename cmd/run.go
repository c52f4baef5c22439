package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/candidate-matcher/internal/highlight"
	"github.com/spigell/candidate-matcher/internal/logger"
	"github.com/spigell/candidate-matcher/internal/matching"
	"github.com/spigell/candidate-matcher/internal/ranking"
	"github.com/spigell/candidate-matcher/internal/secrets"
	"github.com/spigell/candidate-matcher/internal/session"
	"github.com/spigell/candidate-matcher/internal/view"
)

const (
	PromptNewSearch   = "New search"
	PromptDumpToFile  = "Dump candidates to file"
	PromptExit        = "Exit"
	jobDescriptionTip = "Enter Job Description (max 3500 chars)"
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Score candidates for a job description and browse the matches",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("query", "q", "", "job description to submit first")
	runCmd.Flags().String("query-file", "", "read the job description from a file")
	runCmd.Flags().Bool("once", false, "submit once, print every candidate with details and exit")
	runCmd.Flags().Bool("no-color", false, "disable colored output")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the candidate-matcher", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if strings.TrimSpace(config.Service.URL) == "" {
		logger.Fatal("scoring service url is required",
			zap.String("hint", "set MATCHER_SERVICE_URL environment variable or the 'service.url' key in the configuration file"),
		)
	}

	token, err := resolveToken(config)
	if err != nil {
		logger.Fatal("loading scoring service token", zap.Error(err),
			zap.String("hint", "set MATCHER_TOKEN_FILE environment variable or the 'service.token-file' key in the configuration file"),
		)
	}

	client := matching.New(config.Service.URL, token, logger).WithTimeout(config.Service.Timeout)
	if config.Service.UserAgent != "" {
		client.UserAgent = config.Service.UserAgent
	}

	highlighter := highlight.New(config.Highlight.Skills)
	logger.Debug("priority skills", zap.Strings("keywords", highlighter.Keywords()))

	controller := session.New(client, highlighter, logger)

	noColor, _ := cmd.Flags().GetBool("no-color")
	renderer := view.New(os.Stdout, !noColor)

	query, err := initialQuery(cmd)
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	if query != "" {
		if err := controller.UpdateQuery(query); err != nil {
			logger.Fatal("job description rejected", zap.Error(err), zap.Int("length", utf8.RuneCountInString(query)))
		}
	}

	if once, _ := cmd.Flags().GetBool("once"); once {
		if query == "" {
			logger.Fatal("job description is required with --once", zap.String("hint", "use --query or --query-file"))
		}
		controller.Submit(ctx)
		renderer.ExpandAll = true
		renderer.Render(controller.Snapshot())
		return
	}

	if err := interactive(ctx, controller, renderer, logger); err != nil && !errors.Is(err, errExit) {
		logger.Fatal("exiting", zap.Error(err))
	}
}

func initialQuery(cmd *cobra.Command) (string, error) {
	query, _ := cmd.Flags().GetString("query")
	file, _ := cmd.Flags().GetString("query-file")

	if file == "" {
		return strings.TrimSpace(query), nil
	}

	if query != "" {
		return "", errors.New("--query and --query-file are mutually exclusive")
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", file, err)
	}

	return strings.TrimSpace(string(data)), nil
}

// interactive asks for a job description, submits it and lets the user
// browse the candidates until exit.
func interactive(ctx context.Context, controller *session.Controller, renderer *view.Renderer, logger *zap.Logger) error {
	needQuery := controller.Snapshot().Query == ""

	for {
		if needQuery {
			if err := askQuery(controller); err != nil {
				return exitOnInterrupt(err)
			}
		}

		outcome := controller.Submit(ctx)
		logger.Debug("submission finished", zap.Stringer("outcome", outcome))
		renderer.Render(controller.Snapshot())

		if err := browse(controller, renderer, logger); err != nil {
			return err
		}
		needQuery = true
	}
}

func askQuery(controller *session.Controller) error {
	prompt := promptui.Prompt{
		Label:   jobDescriptionTip,
		Default: controller.Snapshot().Query,
		Validate: func(input string) error {
			if utf8.RuneCountInString(input) > session.MaxQueryLength {
				return session.ErrQueryTooLong
			}
			return nil
		},
	}

	text, err := prompt.Run()
	if err != nil {
		return err
	}

	return controller.UpdateQuery(strings.TrimSpace(text))
}

// browse shows the candidate list until the user asks for a new search.
func browse(controller *session.Controller, renderer *view.Renderer, logger *zap.Logger) error {
	for {
		state := controller.Snapshot()
		entries := state.Presentation().Entries

		items := make([]string, 0, len(entries)+3)
		for _, entry := range entries {
			items = append(items, view.ItemLabel(entry))
		}
		if state.Results.Len() > 0 {
			items = append(items, PromptDumpToFile)
		}
		items = append(items, PromptNewSearch, PromptExit)

		selectPrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: items,
			Size:  10,
		}

		idx, selected, err := selectPrompt.Run()
		if err != nil {
			return exitOnInterrupt(err)
		}

		if idx < len(entries) {
			if err := controller.ToggleDetail(ranking.Rank(idx)); err != nil {
				logger.Warn("toggling candidate details", zap.Error(err))
			}
			renderer.Render(controller.Snapshot())
			continue
		}

		switch selected {
		case PromptDumpToFile:
			filename, err := state.Results.DumpToTmpFile()
			if err != nil {
				return fmt.Errorf("dump candidates to file: %w", err)
			}
			logger.Info("dumping candidates to file",
				zap.String("filename", filename),
				zap.Strings("candidates", state.Results.Names()),
			)
		case PromptNewSearch:
			return nil
		case PromptExit:
			logger.Info("exiting", zap.String("reason", "got exit from prompt"))
			return errExit
		default:
			return fmt.Errorf("invalid action: %s", selected)
		}
	}
}

func exitOnInterrupt(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return errExit
	}
	return err
}

func resolveToken(config *Config) (string, error) {
	if config == nil || config.Service == nil {
		return "", errors.New("config is required")
	}

	tokenFile := strings.TrimSpace(config.Service.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("service.token-file"))
	}

	return secrets.Load(secrets.Source{
		Name:     "scoring service token",
		File:     tokenFile,
		Env:      "MATCHER_TOKEN",
		Optional: true,
	})
}
