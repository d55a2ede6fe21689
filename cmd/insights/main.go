// Package main provides the insights CLI: offline access to the local
// heuristics, matching and chat export tooling.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/imadgeboyega/kiekky-insights/internal/analysis"
	"github.com/imadgeboyega/kiekky-insights/internal/chat"
	"github.com/imadgeboyega/kiekky-insights/internal/common/random"
	"github.com/imadgeboyega/kiekky-insights/internal/common/utils"
	"github.com/imadgeboyega/kiekky-insights/internal/config"
	"github.com/imadgeboyega/kiekky-insights/internal/matching"
)

var (
	analyzeElapsed  float64
	analyzeResponse float64
	analyzeSeed     int64

	matchSubject    string
	matchPrefs      string
	matchCandidates string
	matchSeed       int64
	matchInsights   bool

	tokenSecret string
	tokenExpiry time.Duration
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "insights",
		Short:        "Typing, sentiment and compatibility heuristics",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newSentimentCmd())
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <text>",
		Short: "Analyze a message with the local heuristics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			result := analysis.AnalyzeLocally(text, analyzeElapsed, analyzeResponse, random.New(analyzeSeed), time.Now())
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().Float64Var(&analyzeElapsed, "elapsed", 0, "seconds spent typing")
	cmd.Flags().Float64Var(&analyzeResponse, "response", 0, "seconds before the reply started")
	cmd.Flags().Int64Var(&analyzeSeed, "seed", 0, "random seed (0 seeds from the clock)")
	return cmd
}

func newSentimentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sentiment <text>",
		Short: "Print the sentiment label of a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), analysis.ClassifySentiment(strings.Join(args, " ")))
			return err
		},
	}
}

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank candidate profiles locally",
		RunE:  runMatchCmd,
	}

	cmd.Flags().StringVar(&matchSubject, "subject", "", "JSON file with the subject profile")
	cmd.Flags().StringVar(&matchPrefs, "prefs", "", "JSON file with matching preferences")
	cmd.Flags().StringVar(&matchCandidates, "candidates", "", "JSON file with candidate profiles")
	cmd.Flags().Int64Var(&matchSeed, "seed", 0, "random seed (0 seeds from the clock)")
	cmd.Flags().BoolVar(&matchInsights, "insights", false, "print insights instead of the ranking")
	cmd.MarkFlagRequired("candidates")
	return cmd
}

func runMatchCmd(cmd *cobra.Command, _ []string) error {
	var subject matching.Subject
	if err := readJSONFile(matchSubject, &subject); err != nil {
		return err
	}

	var prefs matching.Preferences
	if err := readJSONFile(matchPrefs, &prefs); err != nil {
		return err
	}

	var candidates []matching.Profile
	if err := readJSONFile(matchCandidates, &candidates); err != nil {
		return err
	}

	ranked := matching.NewScorer(random.New(matchSeed)).Rank(subject, matching.FilterByPreferences(candidates, prefs))
	if matchInsights {
		return writeJSON(cmd.OutOrStdout(), matching.DefaultInsights(ranked))
	}
	return writeJSON(cmd.OutOrStdout(), ranked)
}

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue an access token for the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := tokenSecret
			if secret == "" {
				secret = config.Load().JWTSecret
			}
			token, err := utils.GenerateJWT(args[0], secret, tokenExpiry)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&tokenSecret, "secret", "", "signing secret (default: JWT_SECRET)")
	cmd.Flags().DurationVar(&tokenExpiry, "expiry", 24*time.Hour, "token lifetime")
	return cmd
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file" + chat.ExportExt + ">",
		Short: "Print an exported chat session as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open export: %w", err)
			}
			defer f.Close()

			session, err := chat.DecodeSession(f)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), session)
		},
	}
}

// readJSONFile decodes path into v. An empty path leaves v untouched.
func readJSONFile(path string, v interface{}) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
