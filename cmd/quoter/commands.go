package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/revendamais/plan-quoter/internal/config"
	"github.com/revendamais/plan-quoter/internal/tui"
	"github.com/revendamais/plan-quoter/pkg/catalog"
	"github.com/revendamais/plan-quoter/pkg/money"
	"github.com/revendamais/plan-quoter/pkg/nats"
	"github.com/revendamais/plan-quoter/pkg/quote"
	"github.com/urfave/cli/v2"
)

func natsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "nats-servers",
			Usage:   "Comma-separated NATS server URLs",
			EnvVars: []string{"NATS_SERVERS"},
		},
		&cli.StringFlag{
			Name:    "nats-seed",
			Usage:   "NKey user seed used to authenticate with NATS",
			EnvVars: []string{"NATS_CLIENT_PRIVATE_KEY"},
		},
		&cli.StringFlag{
			Name:    "nats-prefix",
			Usage:   "Subject prefix for quote events",
			EnvVars: []string{"NATS_STREAM_PREFIX"},
		},
	}
}

// loadCatalog resolves the global --catalog flag.
func loadCatalog(c *cli.Context) (*catalog.Catalog, error) {
	source := c.String("catalog")
	loader := config.NewLoader(hclog.Default().Named("catalog"))

	if config.IsRemote(source) && !c.Bool("json") {
		return tui.RunWithSpinner("Fetching price list...", func() (*catalog.Catalog, error) {
			return loader.Load(c.Context, source)
		})
	}
	return loader.Load(c.Context, source)
}

// connectNATS returns nil when no servers are configured.
func connectNATS(c *cli.Context, logger hclog.Logger) (*nats.Client, error) {
	servers := c.String("nats-servers")
	if servers == "" {
		return nil, nil
	}
	return nats.NewClient(servers, c.String("nats-seed"), c.String("nats-prefix"), logger)
}

// selectionFlags holds the raw quote command input.
type selectionFlags struct {
	Plan         string
	Services     []string
	Website      string
	WaiveWebsite bool
	Crm          string
	Extras       []string
}

// parseExtras parses repeated id=qty values.
func parseExtras(values []string) (map[string]int, error) {
	out := make(map[string]int, len(values))
	for _, v := range values {
		id, qty, ok := strings.Cut(v, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid extra %q: expected id=quantity", v)
		}
		n, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil {
			return nil, fmt.Errorf("invalid quantity for %q: %w", id, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid quantity for %q: %w", id, quote.ErrNegativeQuantity)
		}
		out[id] = n
	}
	return out, nil
}

// buildSelection turns flags into a selection. Identifiers are checked when
// the quote is computed.
func buildSelection(cat *catalog.Catalog, f selectionFlags) (quote.Selection, error) {
	sel := quote.NewSelection(cat)

	if f.Plan != "" {
		sel = sel.SelectPlan(f.Plan)
	}
	for _, id := range f.Services {
		if !sel.HasService(id) {
			sel = sel.ToggleService(id)
		}
	}
	if f.WaiveWebsite && f.Website == "" {
		return quote.Selection{}, errors.New("--waive-website requires --website")
	}
	sel = sel.SetWebsite(f.Website).SetWebsiteWaived(f.WaiveWebsite)
	sel = sel.SetCrmOption(f.Crm)

	extras, err := parseExtras(f.Extras)
	if err != nil {
		return quote.Selection{}, err
	}
	for id, n := range extras {
		sel = sel.SetQuantity(id, n)
	}

	return sel, nil
}

// quoteOutput is the JSON document printed by quote --json.
type quoteOutput struct {
	Catalog  string       `json:"catalog"`
	Version  string       `json:"version,omitempty"`
	Currency string       `json:"currency"`
	Quote    *quote.Quote `json:"quote"`
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printQuote(cat *catalog.Catalog, q *quote.Quote) {
	f := cat.Formatter()
	fmt.Println(tui.RenderTitle(cat.Name()) + "  " + tui.RenderMuted(cat.Version()))
	fmt.Printf("%s (%d vehicles)\n\n", q.Plan.Name, q.Plan.Vehicles)
	fmt.Print(tui.RenderLines(q, f))
	fmt.Println()
	fmt.Print(tui.RenderSummary(q, f))
}

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "Compute a quote for a plan and add-ons",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "plan", Usage: "Plan identifier (first plan when empty)"},
			&cli.BoolFlag{Name: "choose-plan", Usage: "Pick the plan from a menu"},
			&cli.StringSliceFlag{Name: "service", Usage: "Additional service identifier (repeatable)"},
			&cli.StringFlag{Name: "website", Usage: "Website option identifier"},
			&cli.BoolFlag{Name: "waive-website", Usage: "Waive the website setup fee"},
			&cli.StringFlag{Name: "crm", Usage: "CRM option identifier"},
			&cli.StringSliceFlag{Name: "extra", Usage: "Additional product as id=quantity (repeatable)"},
			&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
			&cli.BoolFlag{Name: "publish", Usage: "Publish the quote to NATS"},
		}, natsFlags()...),
		Action: func(c *cli.Context) error {
			logger := hclog.Default()

			cat, err := loadCatalog(c)
			if err != nil {
				return err
			}

			flags := selectionFlags{
				Plan:         c.String("plan"),
				Services:     c.StringSlice("service"),
				Website:      c.String("website"),
				WaiveWebsite: c.Bool("waive-website"),
				Crm:          c.String("crm"),
				Extras:       c.StringSlice("extra"),
			}

			if c.Bool("choose-plan") {
				plans := cat.Plans()
				choices := make([]string, len(plans))
				for i, p := range plans {
					choices[i] = fmt.Sprintf("%s (%d vehicles)", p.Name, p.Vehicles)
				}
				idx, err := tui.RunSelect("Choose a plan", choices, 0)
				if err != nil {
					return err
				}
				if idx < 0 {
					return errors.New("no plan selected")
				}
				flags.Plan = plans[idx].ID
			}

			sel, err := buildSelection(cat, flags)
			if err != nil {
				return err
			}

			q, err := quote.Compute(cat, sel)
			if err != nil {
				return fmt.Errorf("failed to compute quote: %w", err)
			}
			logger.Debug("quote computed", "plan", q.Plan.ID, "monthly", q.MonthlyRecurring, "annual", q.AnnualRecurring)

			if c.Bool("publish") {
				client, err := connectNATS(c, logger)
				if err != nil {
					return err
				}
				if client == nil {
					return errors.New("--publish requires --nats-servers")
				}
				defer client.Close()

				if err := client.PublishQuote(nats.NewQuoteComputedPayload(cat, sel, q)); err != nil {
					return err
				}
				logger.Info("quote published", "subject", client.Subject())
			}

			if c.Bool("json") {
				return printJSON(quoteOutput{
					Catalog:  cat.Name(),
					Version:  cat.Version(),
					Currency: cat.Currency(),
					Quote:    q,
				})
			}

			printQuote(cat, q)
			return nil
		},
	}
}

// catalogOutput is the JSON document printed by catalog --json.
type catalogOutput struct {
	Name        string                      `json:"name"`
	Version     string                      `json:"version,omitempty"`
	Currency    string                      `json:"currency"`
	Locale      string                      `json:"locale"`
	AdhesionFee money.Money                 `json:"adhesionFee"`
	Plans       []catalog.Plan              `json:"plans"`
	Services    []catalog.Service           `json:"services"`
	Websites    []catalog.WebsiteOption     `json:"websites"`
	CrmOptions  []catalog.CrmOption         `json:"crmOptions"`
	Products    []catalog.AdditionalProduct `json:"products"`
}

func newCatalogOutput(cat *catalog.Catalog) catalogOutput {
	return catalogOutput{
		Name:        cat.Name(),
		Version:     cat.Version(),
		Currency:    cat.Currency(),
		Locale:      cat.Locale(),
		AdhesionFee: cat.AdhesionFee(),
		Plans:       cat.Plans(),
		Services:    cat.Services(),
		Websites:    cat.Websites(),
		CrmOptions:  cat.CrmOptions(),
		Products:    cat.Products(),
	}
}

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "List the price list",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
		},
		Action: func(c *cli.Context) error {
			cat, err := loadCatalog(c)
			if err != nil {
				return err
			}

			if c.Bool("json") {
				return printJSON(newCatalogOutput(cat))
			}

			f := cat.Formatter()
			fmt.Printf("%s %s\n", cat.Name(), cat.Version())
			fmt.Println(strings.Repeat("-", 60))
			fmt.Printf("Adhesion fee: %s\n", f.Format(cat.AdhesionFee()))

			fmt.Println("\nPlans:")
			for _, p := range cat.Plans() {
				fmt.Printf("  %-8s %-32s %4d vehicles  %s  annual %s\n",
					p.ID, p.Name, p.Vehicles, f.Format(p.MonthlyPrice), f.Format(p.AnnualPrice))
			}

			fmt.Println("\nServices:")
			for _, s := range cat.Services() {
				fmt.Printf("  %-12s %-32s %s  annual %s\n", s.ID, s.Name, f.Format(s.MonthlyPrice), f.Format(s.AnnualRate()))
			}

			fmt.Println("\nWebsites:")
			for _, w := range cat.Websites() {
				fmt.Printf("  %-12s %-32s %s\n", w.ID, w.Name, f.Format(w.Price))
			}

			fmt.Println("\nCRM:")
			for _, o := range cat.CrmOptions() {
				fmt.Printf("  %-12s %-36s %s  setup %s\n", o.ID, o.Name, f.Format(o.MonthlyPrice), f.Format(o.SetupFee))
			}

			fmt.Println("\nExtras:")
			for _, p := range cat.Products() {
				fmt.Printf("  %-14s %-36s %s\n", p.ID, p.Name, f.Format(p.UnitPrice))
			}

			return nil
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate a price list file",
		ArgsUsage: "[file]",
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				path = c.String("catalog")
			}
			if path == "" {
				return errors.New("no price list file given")
			}
			if config.IsRemote(path) {
				return errors.New("validate works on local files only")
			}

			cfg, err := config.ParseFile(path)
			if err == nil {
				err = config.Validate(cfg)
			}
			if err != nil {
				fmt.Fprint(os.Stderr, config.FormatError(err, path))
				return cli.Exit("", 1)
			}

			cat, err := config.Build(cfg)
			if err != nil {
				fmt.Fprint(os.Stderr, config.FormatError(err, path))
				return cli.Exit("", 1)
			}

			fmt.Println(tui.RenderSuccess(fmt.Sprintf("Price list is valid: %s (%d plans, %d services, %d websites, %d CRM options, %d extras)",
				cat.Name(), len(cat.Plans()), len(cat.Services()), len(cat.Websites()), len(cat.CrmOptions()), len(cat.Products()))))
			return nil
		},
	}
}

func interactiveCommand() *cli.Command {
	return &cli.Command{
		Name:    "interactive",
		Aliases: []string{"ui"},
		Usage:   "Open the interactive quote calculator",
		Flags:   natsFlags(),
		Action: func(c *cli.Context) error {
			logger := hclog.Default()

			cat, err := loadCatalog(c)
			if err != nil {
				return err
			}

			var opts []tui.CalculatorOption
			client, err := connectNATS(c, logger)
			if err != nil {
				logger.Warn("Failed to initialize NATS client, continuing without publishing", "error", err)
			} else if client != nil {
				defer client.Close()
				opts = append(opts, tui.WithPublisher(func(sel quote.Selection, q *quote.Quote) error {
					return client.PublishQuote(nats.NewQuoteComputedPayload(cat, sel, q))
				}))
			}

			sel, err := tui.RunCalculator(cat, opts...)
			if err != nil {
				return err
			}

			// Leave the final quote on screen once the alt screen closes
			q, err := quote.Compute(cat, sel)
			if err != nil {
				return nil
			}
			printQuote(cat, q)
			return nil
		},
	}
}
