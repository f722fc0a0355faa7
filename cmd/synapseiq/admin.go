package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/synapseiq/site/config"
	apperrors "github.com/synapseiq/site/errors"
	"github.com/synapseiq/site/testimonial"
)

// recordFlags binds the writable testimonial fields to a command.
type recordFlags struct {
	r testimonial.Record
}

func (f *recordFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.r.Name, "name", "", "client name")
	fs.StringVar(&f.r.Company, "company", "", "client company")
	fs.StringVar(&f.r.Position, "position", "", "client position")
	fs.IntVar(&f.r.Rating, "rating", 5, "rating from 1 to 5")
	fs.StringVar(&f.r.Content, "content", "", "testimonial text")
	fs.BoolVar(&f.r.Featured, "featured", false, "show in the carousel")
}

// applyChanged copies the flags the user set onto r.
func (f *recordFlags) applyChanged(fs *pflag.FlagSet, r *testimonial.Record) {
	fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "name":
			r.Name = f.r.Name
		case "company":
			r.Company = f.r.Company
		case "position":
			r.Position = f.r.Position
		case "rating":
			r.Rating = f.r.Rating
		case "content":
			r.Content = f.r.Content
		case "featured":
			r.Featured = f.r.Featured
		}
	})
}

func newCreateCmd(opts *rootOptions) *cobra.Command {
	var f recordFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a testimonial",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := f.r.ValidateDraft(); err != nil {
				return err
			}
			return withAdmin(cmd, opts, func(ctx context.Context, rt *runtime, admin *testimonial.Admin) error {
				created, err := admin.Create(ctx, f.r)
				if err != nil {
					return err
				}
				printRecord(cmd.OutOrStdout(), "created", created)
				return nil
			})
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var f recordFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a testimonial",
		Long:  "Change fields of a testimonial. Fields without a flag keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withAdmin(cmd, opts, func(ctx context.Context, rt *runtime, admin *testimonial.Admin) error {
				current, err := findRecord(ctx, rt, id)
				if err != nil {
					return err
				}
				f.applyChanged(cmd.Flags(), &current)
				updated, err := admin.Update(ctx, current)
				if err != nil {
					return err
				}
				printRecord(cmd.OutOrStdout(), "updated", updated)
				return nil
			})
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a testimonial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withAdmin(cmd, opts, func(ctx context.Context, _ *runtime, admin *testimonial.Admin) error {
				if err := admin.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted testimonial %d\n", id)
				return nil
			})
		},
	}
}

func newFeatureCmd(opts *rootOptions) *cobra.Command {
	var off bool
	cmd := &cobra.Command{
		Use:   "feature <id>",
		Short: "Show a testimonial in the carousel, or hide it with --off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withAdmin(cmd, opts, func(ctx context.Context, _ *runtime, admin *testimonial.Admin) error {
				r, err := admin.SetFeatured(ctx, id, !off)
				if err != nil {
					return err
				}
				verb := "featured"
				if !r.Featured {
					verb = "unfeatured"
				}
				printRecord(cmd.OutOrStdout(), verb, r)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "remove the featured flag instead")
	return cmd
}

func withAdmin(cmd *cobra.Command, opts *rootOptions, fn func(context.Context, *runtime, *testimonial.Admin) error) error {
	ctx := cmd.Context()
	rt, err := newRuntime(ctx, opts)
	if err != nil {
		return err
	}
	return rt.app.RunTask(ctx, func(ctx context.Context) error {
		admin, err := rt.admin()
		if err != nil {
			return err
		}
		return fn(ctx, rt, admin)
	})
}

// findRecord reads the full collection and returns record id.
func findRecord(ctx context.Context, rt *runtime, id int) (testimonial.Record, error) {
	page, err := rt.source.Fetch(ctx, testimonial.Query{Limit: config.MaxPageSize})
	if err != nil {
		return testimonial.Record{}, err
	}
	for _, r := range page.Records {
		if r.ID == id {
			return r, nil
		}
	}
	return testimonial.Record{}, apperrors.NotFound("testimonial", strconv.Itoa(id))
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, apperrors.InvalidFormat("id", "positive integer")
	}
	return id, nil
}

func printRecord(out io.Writer, verb string, r testimonial.Record) {
	fmt.Fprintf(out, "%s testimonial %d: %s", verb, r.ID, r.Name)
	if r.Company != "" {
		fmt.Fprintf(out, " (%s)", r.Company)
	}
	fmt.Fprintf(out, ", rating %d", r.Rating)
	if r.Featured {
		fmt.Fprint(out, ", featured")
	}
	fmt.Fprintln(out)
}
