package cmd

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/candidate-matcher/internal/highlight"
)

const (
	app = "candidate-matcher"

	defaultServiceURL = "http://localhost:5000/"
	defaultTimeout    = 30 * time.Second
)

type Config struct {
	Service   *ServiceConfig   `mapstructure:"service"`
	Highlight *HighlightConfig `mapstructure:"highlight"`
}

type ServiceConfig struct {
	URL       string        `mapstructure:"url"`
	TokenFile string        `mapstructure:"token-file"`
	UserAgent string        `mapstructure:"user-agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type HighlightConfig struct {
	Skills []string `mapstructure:"skills"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "candidate-matcher is a simple cli for scoring candidates against a job description and browsing the matches",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("service.url", "MATCHER_SERVICE_URL"); err != nil {
		log.Fatalf("binding MATCHER_SERVICE_URL environment variable: %v", err)
	}
	if err := viper.BindEnv("service.token-file", "MATCHER_TOKEN_FILE"); err != nil {
		log.Fatalf("binding MATCHER_TOKEN_FILE environment variable: %v", err)
	}

	viper.SetDefault("service.url", defaultServiceURL)
	viper.SetDefault("service.timeout", defaultTimeout.String())
	viper.SetDefault("highlight.skills", highlight.DefaultKeywords)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is candidate-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now.
	if runCmd.CalledAs() == "" {
		return
	}

	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Without an explicit config file defaults and environment are enough.
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Service == nil {
		config.Service = &ServiceConfig{URL: defaultServiceURL, Timeout: defaultTimeout}
	}
	if config.Highlight == nil {
		config.Highlight = &HighlightConfig{Skills: highlight.DefaultKeywords}
	}

	return config, nil
}
