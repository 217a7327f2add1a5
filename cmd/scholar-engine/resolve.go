// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-engine/internal/resolve"
	"github.com/pdiddy/scholar-engine/internal/secrets"
	"github.com/pdiddy/scholar-engine/internal/sources"
	"github.com/pdiddy/scholar-engine/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <author name>",
	Short: "Resolve an author identity across bibliographic sources",
	Long: `Resolve queries Semantic Scholar, OpenAlex, DBLP, Europe PMC, and PubMed
concurrently for the named author, reconciles the candidate records each
source returns, and prints one merged profile with a confidence score.

Optional hints (--institution, --field, --email) disambiguate common names.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := types.SearchQuery{Name: args[0]}
		query.Institution, _ = cmd.Flags().GetString("institution")
		query.FieldOfStudy, _ = cmd.Flags().GetString("field")
		query.Email, _ = cmd.Flags().GetString("email")

		cfg := resolveConfig()
		if cmd.Flags().Changed("timeout") {
			if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
				cfg.Deadline = timeout
			}
		}

		client := &http.Client{Timeout: cfg.Timeout}
		adapters := sources.Enabled(cfg, client)

		res, err := resolve.Resolve(cmd.Context(), query, adapters, cfg, os.Stderr)
		switch {
		case errors.Is(err, resolve.ErrNoMatch):
			return fmt.Errorf("no author information found for %q", query.Name)
		case errors.Is(err, resolve.ErrAllSourcesFailed):
			return fmt.Errorf("resolution unavailable: %w", err)
		case err != nil:
			return err
		}

		if save, _ := cmd.Flags().GetString("save"); save != "" {
			if err := resolve.WriteProfileFile(save, res); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Saved resolution to %s\n", save)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return resolve.FormatJSON(res, os.Stdout)
		}
		resolve.FormatText(res, os.Stdout)
		return nil
	},
}

// resolveConfig assembles the resolve configuration from defaults, the
// config file, environment variables, and loaded secrets, in that order.
func resolveConfig() types.ResolveConfig {
	cfg := types.DefaultResolveConfig()

	if v := viper.GetDuration("http.timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v := viper.GetString("http.user_agent"); v != "" {
		cfg.UserAgent = v
	}
	if v := viper.GetDuration("resolve.deadline"); v > 0 {
		cfg.Deadline = v
	}
	if v := viper.GetInt("resolve.max_candidates"); v > 0 {
		cfg.MaxCandidates = v
	}
	for key, enabled := range map[string]*bool{
		"resolve.enable_semantic_scholar": &cfg.EnableSemanticScholar,
		"resolve.enable_openalex":         &cfg.EnableOpenAlex,
		"resolve.enable_dblp":             &cfg.EnableDBLP,
		"resolve.enable_europepmc":        &cfg.EnableEuropePMC,
		"resolve.enable_pubmed":           &cfg.EnablePubMed,
	} {
		if viper.IsSet(key) {
			*enabled = viper.GetBool(key)
		}
	}

	cfg.SemanticScholarAPIKey = secretDefault(secrets.KeySemanticScholar, viper.GetString("resolve.semantic_scholar_api_key"))
	cfg.NCBIAPIKey = secretDefault(secrets.KeyNCBI, viper.GetString("resolve.ncbi_api_key"))
	cfg.OpenAlexEmail = secretDefault(secrets.KeyOpenAlexEmail, viper.GetString("resolve.openalex_email"))
	return cfg
}

func init() {
	resolveCmd.Flags().String("institution", "", "institution hint for disambiguation")
	resolveCmd.Flags().String("field", "", "field-of-study hint for disambiguation")
	resolveCmd.Flags().String("email", "", "email hint for disambiguation")
	resolveCmd.Flags().Duration("timeout", 15*time.Second, "overall deadline for the source fan-out")
	resolveCmd.Flags().Bool("json", false, "output the profile as JSON")
	resolveCmd.Flags().String("save", "", "save the resolution to a YAML file")

	rootCmd.AddCommand(resolveCmd)
}
