package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Simplici0/bizness/internal/config"
	"github.com/Simplici0/bizness/internal/db"
	"github.com/Simplici0/bizness/internal/logging"
	"github.com/Simplici0/bizness/internal/migrations"
	"github.com/Simplici0/bizness/internal/pricing"
	"github.com/Simplici0/bizness/internal/seed"
)

func newRootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bizness",
		Short:         "Pricing and bookkeeping tools for small businesses",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)

	cmd.AddCommand(newCalcCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())

	return cmd
}

type calcOptions struct {
	materials []string
	labor     string
	overhead  string
	quantity  string
	margin    float64
	asJSON    bool
}

func newCalcCmd() *cobra.Command {
	opts := calcOptions{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate HPP and selling price for one production batch",
		Example: `  bizness calc -m "Coffee Beans=150000" -m "Milk=75000" --labor 50000 --overhead 20000 -q 10
  bizness calc -m "Flour=28000" --margin 45 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.materials, "material", "m", nil, `material line as "name=price" or "name:unit=price"; repeatable`)
	cmd.Flags().StringVar(&opts.labor, "labor", "", "labor cost of the batch")
	cmd.Flags().StringVar(&opts.overhead, "overhead", "", "overhead cost of the batch")
	cmd.Flags().StringVarP(&opts.quantity, "quantity", "q", "1", "units produced by the batch")
	cmd.Flags().Float64Var(&opts.margin, "margin", pricing.DefaultMarginPercent,
		fmt.Sprintf("target margin percent, clamped to [%d, %d]", pricing.MinMarginPercent, pricing.MaxMarginPercent))
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")

	return cmd
}

func runCalc(out io.Writer, opts calcOptions) error {
	session := pricing.NewSession()
	first := session.Materials()[0]

	for i, raw := range opts.materials {
		line, err := parseMaterial(raw)
		if err != nil {
			return err
		}
		if i == 0 {
			line.ID = first.ID
			if err := session.UpdateMaterial(line); err != nil {
				return err
			}
			continue
		}
		session.AddMaterial(line.Name, line.Unit, line.Price)
	}

	session.LaborCost = opts.labor
	session.OverheadCost = opts.overhead
	session.Quantity = opts.quantity
	session.TargetMarginPercent = pricing.ClampMargin(opts.margin)

	result := session.Result()

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, m := range session.Materials() {
		name := m.Name
		if m.Unit != "" {
			name += " (" + m.Unit + ")"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", name, pricing.FormatRupiah(pricing.SanitizeText(m.Price)))
	}
	fmt.Fprintf(tw, "Total materials\t%s\n", pricing.FormatRupiah(result.TotalMaterialsCost))
	fmt.Fprintf(tw, "Total production cost\t%s\n", pricing.FormatRupiah(result.TotalProductionCost))
	fmt.Fprintf(tw, "Quantity\t%.0f\n", result.Quantity)
	fmt.Fprintf(tw, "HPP per unit\t%s\n", pricing.FormatRupiah(result.HPPPerUnit))
	fmt.Fprintf(tw, "Target margin\t%s\n", pricing.FormatPercent(session.TargetMarginPercent))
	fmt.Fprintf(tw, "Selling price\t%s\n", pricing.FormatRupiah(result.SellingPrice))
	fmt.Fprintf(tw, "Profit per unit\t%s\n", pricing.FormatRupiah(result.ProfitPerUnit))
	fmt.Fprintf(tw, "Markup\t%s\n", pricing.FormatPercent(result.MarkupPercent))
	return tw.Flush()
}

// parseMaterial reads "name=price" or "name:unit=price". The price is kept
// as typed; the engine sanitizes it.
func parseMaterial(raw string) (pricing.MaterialLine, error) {
	label, price, ok := strings.Cut(raw, "=")
	if !ok {
		return pricing.MaterialLine{}, fmt.Errorf("material %q: expected name=price", raw)
	}
	name, unit, _ := strings.Cut(label, ":")
	return pricing.MaterialLine{
		Name:  strings.TrimSpace(name),
		Unit:  strings.TrimSpace(unit),
		Price: strings.TrimSpace(price),
	}, nil
}

func newMigrateCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig(dbPath)
			ctx := logging.New(cfg.LogLevel, true).WithContext(cmd.Context())

			database, err := db.Open(ctx, cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close()

			applied, err := migrations.Up(ctx, database)
			if err != nil {
				return err
			}
			version, err := migrations.Version(ctx, database)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s), schema version %d\n", applied, version)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default DB_PATH)")
	return cmd
}

func newSeedCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Migrate the database and insert the admin and demo accounts",
		Long: `Seed creates the admin account from ADMIN_EMAIL and ADMIN_PASSWORD and,
when DEMO_PASSWORD is set, the demo account with its sample businesses.
Running it again changes nothing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig(dbPath)
			ctx := logging.New(cfg.LogLevel, true).WithContext(cmd.Context())

			database, err := db.Open(ctx, cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close()

			if _, err := migrations.Up(ctx, database); err != nil {
				return err
			}
			stats, err := seed.Run(ctx, database, seed.Config{
				AdminEmail:    cfg.AdminEmail,
				AdminPassword: cfg.AdminPassword,
				DemoPassword:  cfg.DemoPassword,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seed completed: %d inserted, %d updated\n", stats.Inserts, stats.Updates)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default DB_PATH)")
	return cmd
}

func loadConfig(dbPath string) config.Config {
	cfg := config.Load()
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg
}
