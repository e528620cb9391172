package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/keesa/smsparse/internal/cli"
	"github.com/keesa/smsparse/internal/config"
	"github.com/keesa/smsparse/internal/model"
	"github.com/keesa/smsparse/internal/storage"
)

func merchantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merchants",
		Short: "Manage the merchant catalog",
		Long: `The merchant catalog is the source the similarity index is built from.
Import it from CSV or manage entries one at a time, then run
"smsparse index build" to produce fresh artifacts.`,
	}

	cmd.AddCommand(merchantsImportCmd())
	cmd.AddCommand(merchantsListCmd())
	cmd.AddCommand(merchantsAddCmd())

	return cmd
}

func merchantsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv-file>",
		Short: "Import merchants from a CSV file",
		Long: `Import merchant names from a CSV file. A "merchant_name" header column
is used when present; otherwise the first column is taken. Existing
entries with the same normalized name are updated, not duplicated.`,
		Args: cobra.ExactArgs(1),
		RunE: runMerchantsImport,
	}
}

func runMerchantsImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	names, err := readMerchantCSV(args[0])
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no merchant names found in %s", args[0])
	}

	db, err := openCatalog(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	bar := progressbar.NewOptions(len(names),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing merchants..."),
	)

	for _, name := range names {
		if saveErr := db.SaveMerchant(ctx, &model.Merchant{
			Name:        name,
			DisplayName: name,
			Source:      model.SourceImport,
		}); saveErr != nil {
			return fmt.Errorf("failed to import %q: %w", name, saveErr)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Fprintln(cmd.ErrOrStderr())

	count, err := db.CountMerchants(ctx)
	if err != nil {
		return err
	}
	cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf("Imported %d merchants (catalog now holds %d)", len(names), count)))
	return nil
}

// readMerchantCSV extracts merchant names from a CSV file, honoring a
// merchant_name column when a header row names one.
func readMerchantCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	column := 0
	first, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	var names []string
	header := false
	for i, field := range first {
		if strings.EqualFold(strings.TrimSpace(field), "merchant_name") {
			column = i
			header = true
			break
		}
	}
	if !header && len(first) > 0 {
		if name := strings.TrimSpace(first[0]); name != "" {
			names = append(names, name)
		}
	}

	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", readErr)
		}
		if column >= len(record) {
			continue
		}
		if name := strings.TrimSpace(record[column]); name != "" {
			names = append(names, name)
		}
	}

	return names, nil
}

func merchantsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog merchants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := openCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			merchants, err := db.ListMerchants(ctx)
			if err != nil {
				return err
			}
			if len(merchants) == 0 {
				cmd.Println(cli.SubtleStyle.Render("Catalog is empty. Import merchants with: smsparse merchants import <csv>"))
				return nil
			}

			cmd.Println(cli.TitleStyle.Render(fmt.Sprintf("Merchant catalog (%d entries)", len(merchants))))
			for _, m := range merchants {
				cmd.Printf("%s %s\n", m.Name, cli.SubtleStyle.Render(string(m.Source)))
			}
			return nil
		},
	}
}

func merchantsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a single merchant to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := openCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := db.SaveMerchant(ctx, &model.Merchant{
				Name:        args[0],
				DisplayName: args[0],
				Source:      model.SourceManual,
			}); err != nil {
				return err
			}

			cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf("Added %q to the catalog", args[0])))
			return nil
		},
	}
}

// openCatalog opens the merchant database and brings the schema current.
func openCatalog(ctx context.Context) (*storage.SQLiteStorage, error) {
	db, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}
