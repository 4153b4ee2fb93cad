package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/VivekRai08/Jain-Foam-website/internal/catalogclient"
	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
	"github.com/VivekRai08/Jain-Foam-website/pkg/logger"
)

const defaultBaseURL = "http://localhost:5000"

type options struct {
	baseURL  string
	timeout  time.Duration
	logLevel string

	logger *slog.Logger
	client *catalogclient.Client
	retry  catalogclient.RetryPolicy
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{retry: catalogclient.DefaultRetryPolicy()}

	baseURL := os.Getenv("CATALOG_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Browse the furnishing catalog and submit inquiries",
		SilenceUsage:  true,
		PersistentPreRun: func(*cobra.Command, []string) {
			opts.logger = logger.NewWithWriter("catalogctl", opts.logLevel, stderr)
			opts.client = catalogclient.New(opts.baseURL, opts.timeout)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", baseURL, "site API base URL (env CATALOG_BASE_URL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "per-request timeout")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level for diagnostics on stderr")

	root.AddCommand(newProductsCmd(opts), newCategoriesCmd(opts), newContactCmd(opts))
	return root
}

func newProductsCmd(opts *options) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products, retrying failed fetches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader := catalogclient.NewProductLoader(opts.client, opts.retry, opts.logger)
			loader.OnChange(func(s catalogclient.Snapshot) {
				opts.logger.Debug("product loader state", slog.String("state", string(s.State)))
			})

			if err := loader.Load(cmd.Context()); err != nil {
				return fmt.Errorf("load products: %w", err)
			}

			products := catalogclient.FilterByCategory(loader.Snapshot().Products, category)
			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No products found in this category.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tIMAGE")
			for _, p := range products {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, p.ImageURL)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", domain.CategoryAll, "only show products in this category")
	return cmd
}

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := opts.client.ListCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("list categories: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tNAME\tDESCRIPTION")
			for _, c := range categories {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Slug, c.Name, c.Description)
			}
			return tw.Flush()
		},
	}
}

func newContactCmd(opts *options) *cobra.Command {
	var input domain.ContactInquiryInput

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Submit a contact inquiry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			res, err := opts.client.SubmitInquiry(ctx, input)
			if err != nil {
				return fmt.Errorf("submit inquiry: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			fmt.Fprintf(cmd.OutOrStdout(), "Inquiry ID: %s\n", res.InquiryID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&input.Name, "name", "", "your name")
	f.StringVar(&input.Email, "email", "", "email address")
	f.StringVar(&input.Phone, "phone", "", "phone number")
	f.StringVar(&input.Service, "service", "", "service of interest ("+strings.Join(domain.Services(), ", ")+")")
	f.StringVar(&input.Message, "message", "", "message")
	return cmd
}
