package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keesa/smsparse/internal/artifact"
	"github.com/keesa/smsparse/internal/cli"
	"github.com/keesa/smsparse/internal/common"
	"github.com/keesa/smsparse/internal/config"
	"github.com/keesa/smsparse/internal/engine"
	"github.com/keesa/smsparse/internal/model"
)

func inferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "infer <message>",
		Short: "Classify a single message",
		Long: `Run one message through the inference pipeline and print the result.

Examples:
  smsparse infer "Rs. 500.00 debited from your account at Amazon"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runInfer,
	}
}

func runInfer(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")
	logger := slog.Default()

	provider := artifact.NewProvider(artifact.Load(config.ArtifactsDir(), logger))
	eng := engine.New(provider, config.Threshold(), logger)

	result, err := eng.Infer(cmd.Context(), message)
	if err != nil {
		if errors.Is(err, common.ErrArtifactUnavailable) {
			return common.NewUserError(
				"artifacts not loaded; run 'smsparse index build' and install a classifier", err)
		}
		return err
	}

	amount := cli.SubtleStyle.Render("—")
	if result.Amount != nil {
		amount = result.Amount.StringFixed(2)
	}

	merchant := result.Merchant
	if merchant == model.UnknownMerchant {
		merchant = cli.WarningStyle.Render(merchant)
	} else {
		merchant = cli.SuccessStyle.Render(merchant)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.TitleStyle.Render("Inference result"))
	fmt.Fprintf(out, "%s %s\n", cli.LabelStyle.Render("Type"), string(result.TransactionType))
	fmt.Fprintf(out, "%s %s\n", cli.LabelStyle.Render("Merchant"), merchant)
	fmt.Fprintf(out, "%s %s\n", cli.LabelStyle.Render("Amount"), amount)
	fmt.Fprintf(out, "%s %s\n", cli.LabelStyle.Render("Reference"), cli.SubtleStyle.Render(result.ReferenceNumber))

	return nil
}
