package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/synapseiq/site/catalog"
	"github.com/synapseiq/site/config"
	"github.com/synapseiq/site/feed"
	"github.com/synapseiq/site/logger"
	"github.com/synapseiq/site/sampledata"
	"github.com/synapseiq/site/testimonial"
)

// listSampleCount is how many sample testimonials list shows when the API
// cannot be read.
const listSampleCount = 6

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		q        catalog.Query
		fallback string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all testimonials page by page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := q.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			rt, err := newRuntime(ctx, opts)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("fallback") {
				fallback = rt.app.Cfg.List.Fallback
			}
			policy, err := feed.ParseFallback(fallback)
			if err != nil {
				return err
			}

			return rt.app.RunTask(ctx, func(ctx context.Context) error {
				out := cmd.OutOrStdout()
				page, err := rt.source.Fetch(ctx, testimonial.Query{Limit: config.MaxPageSize})
				if err != nil {
					if policy != feed.FallbackSample {
						return err
					}
					rt.app.Logger.Warn("testimonials unavailable, listing sample data", logger.Fields(logger.FieldError, err.Error()))
					printCatalog(out, catalog.View(sampledata.Featured(listSampleCount), q))
					fmt.Fprintln(out, "showing sample testimonials")
					return nil
				}
				printCatalog(out, catalog.View(page.Records, q))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&fallback, "fallback", "", "on fetch failure: none or sample (default from list.fallback)")
	cmd.Flags().StringVar(&q.Search, "search", "", "filter by name, company or content")
	cmd.Flags().BoolVar(&q.FeaturedOnly, "featured", false, "only featured testimonials")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&q.PerPage, "per-page", catalog.DefaultPerPage, "testimonials per page")
	return cmd
}

func printCatalog(out io.Writer, res catalog.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tRATING\tFEATURED\tDATE")
	for _, r := range res.Items {
		featured := ""
		if r.Featured {
			featured = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n", r.ID, r.Name, r.Company, r.Rating, featured, r.Date)
	}
	_ = w.Flush()
	fmt.Fprintf(out, "page %d of %d, %d testimonials\n", res.Page, res.TotalPages, res.TotalItems)
}
