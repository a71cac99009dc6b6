// deweyctl is the operator CLI for the dashboard: it applies migrations,
// runs the startup seed, and bulk-creates catalog option variants against a
// store admin API.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrnasser/dewey.beer/internal/config"
	"github.com/mrnasser/dewey.beer/internal/db"
	"github.com/mrnasser/dewey.beer/internal/migrations"
	"github.com/mrnasser/dewey.beer/internal/options"
	"github.com/mrnasser/dewey.beer/internal/seed"
)

func main() {
	root := &cobra.Command{
		Use:          "deweyctl",
		Short:        "Operator tooling for the dewey.beer dashboard",
		SilenceUsage: true,
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(optionsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	var (
		dir    string
		status bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			database, err := db.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			if status {
				return migrations.Status(database, dir)
			}

			if err := migrations.Up(database, dir); err != nil {
				return err
			}
			cmd.Println("migrations applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "migrations", "migrations directory")
	cmd.Flags().BoolVar(&status, "status", false, "show migration status instead of applying")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Run the idempotent startup seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			database, err := db.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			stats, err := seed.Run(database, seed.Config{
				AdminEmail:    cfg.AdminEmail,
				AdminPassword: cfg.AdminPassword,
			})
			if err != nil {
				return err
			}
			cmd.Printf("seed complete: %d inserts\n", stats.Inserts)
			return nil
		},
	}
}

// optionsFile is the on-disk shape of a bulk option definition.
type optionsFile struct {
	Product string        `yaml:"product"`
	Sets    []options.Set `yaml:"sets"`
}

func optionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Catalog option tooling",
	}
	cmd.AddCommand(optionsPushCmd())
	return cmd
}

func optionsPushCmd() *cobra.Command {
	var (
		file   string
		url    string
		token  string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Expand an option matrix and create every variant remotely",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read options file: %w", err)
			}

			var def optionsFile
			if err := yaml.Unmarshal(raw, &def); err != nil {
				return fmt.Errorf("parse options file: %w", err)
			}
			if def.Product == "" {
				return fmt.Errorf("options file must name a product")
			}

			variants := options.Expand(def.Sets)
			cmd.Printf("%s: %d variants from %d option sets\n", def.Product, len(variants), len(def.Sets))

			if dryRun {
				for _, v := range variants {
					cmd.Println("  " + formatVariant(v))
				}
				return nil
			}

			if url == "" {
				return fmt.Errorf("--url is required unless --dry-run is set")
			}

			report, err := options.NewPusher(url, token).PushAll(cmd.Context(), def.Product, variants)
			cmd.Printf("created %d, failed %d\n", report.Created, report.Failed)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "options.yaml", "option matrix definition file")
	cmd.Flags().StringVar(&url, "url", "", "admin API endpoint to create variants against")
	cmd.Flags().StringVar(&token, "token", "", "bearer token for the admin API")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the expanded matrix without creating anything")
	return cmd
}

func formatVariant(v options.Variant) string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for i, k := range keys {
		if i > 0 {
			out += " / "
		}
		out += fmt.Sprintf("%s=%s", k, v[k])
	}
	return out
}
