// Package cli implements the parallel-self CLI commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kaenlabs/parallel-self-simulator/internal/generator"
	"github.com/kaenlabs/parallel-self-simulator/internal/store"
)

var cfgFile string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "parallel-self",
	Short: "Deterministic parallel-life simulator",
	Long: "Simulates one day at a time of a character's parallel life. Every event is derived\n" +
		"from the character's traits, so the same traits always live the same life.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: ./parallel-self.yaml or ~/.parallel-self/parallel-self.yaml)")
	flags.StringP("db", "d", "", "Database path (default: $PARALLEL_SELF_DB or ~/.parallel-self/parallel-self.db)")
	flags.StringP("format", "f", "json", "Output format: json or text")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")

	viper.BindPFlag("db", flags.Lookup("db"))
	viper.BindPFlag("format", flags.Lookup("format"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("parallel-self")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.parallel-self")
	}
	viper.SetEnvPrefix("PARALLEL_SELF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(viper.GetString("log_level")),
	})))
	return nil
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn
	}
	return l
}

func getDBPath() string {
	if p := viper.GetString("db"); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".parallel-self", "parallel-self.db")
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func newGenerator(s generator.Store) *generator.Generator {
	return generator.New(s, generator.WithLogger(slog.Default()))
}

func textOutput() bool {
	return viper.GetString("format") == "text"
}

// output prints v as indented JSON, or through text when --format text is set
// and a text renderer exists.
func output(cmd *cobra.Command, v interface{}, text func(w io.Writer)) {
	w := cmd.OutOrStdout()
	if textOutput() && text != nil {
		text(w)
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
