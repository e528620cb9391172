package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/keesa/smsparse/internal/artifact"
	"github.com/keesa/smsparse/internal/classify"
	"github.com/keesa/smsparse/internal/cli"
	"github.com/keesa/smsparse/internal/config"
	"github.com/keesa/smsparse/internal/index"
	"github.com/keesa/smsparse/internal/vectorize"
)

func indexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the similarity index",
	}
	cmd.AddCommand(indexBuildCmd())
	return cmd
}

func indexBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the vectorizer, index and catalog artifacts",
		Long: `Fit the TF-IDF vectorizer on the merchant catalog, embed every
merchant, and write the vectorizer, similarity index and catalog
artifacts as one matched set stamped with a single build ID.

The classifier artifact is produced by the offline training pipeline and
is not touched here; if its feature dimension no longer matches the new
vectorizer, retrain it before serving.`,
		RunE: runIndexBuild,
	}
}

func runIndexBuild(cmd *cobra.Command, _ []string) error {
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
		return fmt.Errorf("merchant catalog is empty; import merchants before building an index")
	}

	names := make([]string, len(merchants))
	for i, m := range merchants {
		names[i] = m.Name
	}

	buildID := time.Now().UTC().Format("20060102T150405Z")
	slog.Info("building index", "build_id", buildID, "merchants", len(names))

	vec, err := vectorize.Fit(names, buildID)
	if err != nil {
		return fmt.Errorf("failed to fit vectorizer: %w", err)
	}

	idx, err := index.NewFlat(vec.Dimension(), buildID)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(names),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Embedding merchants..."),
	)
	for _, name := range names {
		v, transformErr := vec.Transform(name)
		if transformErr != nil {
			return fmt.Errorf("failed to embed %q: %w", name, transformErr)
		}
		if addErr := idx.Add(v); addErr != nil {
			return fmt.Errorf("failed to index %q: %w", name, addErr)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Fprintln(cmd.ErrOrStderr())

	dir := config.ArtifactsDir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	if err := vec.Save(filepath.Join(dir, artifact.VectorizerFile)); err != nil {
		return err
	}
	if err := idx.Save(filepath.Join(dir, artifact.IndexFile)); err != nil {
		return err
	}
	if err := index.NewCatalog(names, buildID).Save(filepath.Join(dir, artifact.CatalogFile)); err != nil {
		return err
	}

	if err := db.RecordIndexBuild(ctx, buildID, len(names), vec.Dimension()); err != nil {
		return err
	}

	warnStaleClassifier(cmd, dir, vec.Dimension())

	cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf(
		"Built index %s: %d merchants, dimension %d", buildID, len(names), vec.Dimension())))
	return nil
}

// warnStaleClassifier flags a classifier artifact whose feature dimension
// no longer matches the freshly built vectorizer.
func warnStaleClassifier(cmd *cobra.Command, dir string, dim int) {
	clf, err := classify.LoadLinear(filepath.Join(dir, artifact.ClassifierFile))
	if err != nil {
		cmd.Println(cli.WarningStyle.Render(
			"No usable classifier artifact found; requests will fail until one is installed"))
		return
	}
	if clf.Dimension() != dim {
		cmd.Println(cli.WarningStyle.Render(fmt.Sprintf(
			"Classifier expects dimension %d but the new vectorizer produces %d; retrain before serving",
			clf.Dimension(), dim)))
	}
}
