package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/synapseiq/site/feed"
	"github.com/synapseiq/site/testimonial"
)

const carouselHelp = "commands: n next, p previous, j <i> jump, m load more, r retry, q quit"

func newCarouselCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "carousel",
		Short: "Browse featured testimonials",
		Long: `Load the featured testimonials and browse them one at a time.

Commands are read line by line from stdin:
  n       next testimonial (wraps around)
  p       previous testimonial (wraps around)
  j <i>   jump to testimonial i (1-based)
  m       load the next page
  r       retry the last failed load
  q       quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := newRuntime(ctx, opts)
			if err != nil {
				return err
			}
			cfg := rt.app.Cfg

			fallback, err := feed.ParseFallback(cfg.Feed.Fallback)
			if err != nil {
				return err
			}
			f := feed.New(rt.source, feed.Options{
				InitialPageSize: cfg.Feed.InitialPageSize,
				PageSize:        cfg.Feed.PageSize,
				Fallback:        fallback,
				Logger:          rt.app.Logger,
			})
			if err := rt.app.RegisterComponent(f); err != nil {
				return err
			}

			return rt.app.RunTask(ctx, func(ctx context.Context) error {
				return runCarousel(ctx, f, cmd.InOrStdin(), cmd.OutOrStdout(), cfg.API.BaseURL)
			})
		},
	}
}

type carousel struct {
	feed    *feed.Feed
	out     io.Writer
	apiBase string
}

// runCarousel renders the current testimonial and applies commands from in
// until q, end of input or cancellation.
func runCarousel(ctx context.Context, f *feed.Feed, in io.Reader, out io.Writer, apiBase string) error {
	c := &carousel{feed: f, out: out, apiBase: apiBase}
	c.render()

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		quit, err := c.handle(ctx, sc.Text())
		if quit {
			return nil
		}
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("error: "+err.Error()))
			continue
		}
		c.render()
	}
}

func (c *carousel) handle(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	switch fields[0] {
	case "n":
		c.feed.Next()
	case "p":
		c.feed.Previous()
	case "j":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: j <i>")
		}
		i, err := strconv.Atoi(fields[1])
		if err != nil {
			return false, fmt.Errorf("not a number: %q", fields[1])
		}
		return false, c.feed.JumpTo(i - 1)
	case "m":
		// Failures are kept in the feed state and rendered below.
		_ = c.feed.LoadMore(ctx)
	case "r":
		_ = c.feed.Retry(ctx)
	case "q":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q, %s", fields[0], carouselHelp)
	}
	return false, nil
}

func (c *carousel) render() {
	snap := c.feed.Snapshot()
	var b strings.Builder

	if snap.Current == nil {
		b.WriteString(mutedStyle.Render("no testimonials to show") + "\n")
	} else {
		r := snap.Current
		fmt.Fprintf(&b, "[%d/%d] %s %s\n", snap.CurrentIndex+1, len(snap.Items), titleStyle.Render(r.Name), ratingStyle.Render(stars(r.Rating)))
		if byline := byline(*r); byline != "" {
			b.WriteString(mutedStyle.Render(byline) + "\n")
		}
		b.WriteString(quoteStyle.Render(strconv.Quote(r.Content)) + "\n")
		b.WriteString(mutedStyle.Render("image: "+testimonial.NewImageSource(r.Image, c.apiBase).URL()) + "\n")
	}

	if snap.FallbackActive {
		b.WriteString(mutedStyle.Render("showing sample testimonials") + "\n")
	}
	if snap.Err != nil {
		b.WriteString(errorStyle.Render("error: "+snap.Err.Error()) + " (r to retry)\n")
	}
	status := fmt.Sprintf("state: %s, loaded %d of %d", snap.State, len(snap.Items), snap.TotalCount)
	if snap.HasMore {
		status += ", more available (m)"
	}
	b.WriteString(mutedStyle.Render(status) + "\n")

	fmt.Fprint(c.out, b.String())
}

func byline(r testimonial.Record) string {
	switch {
	case r.Position != "" && r.Company != "":
		return r.Position + " at " + r.Company
	case r.Position != "":
		return r.Position
	default:
		return r.Company
	}
}

func stars(rating int) string {
	rating = min(max(rating, 0), 5)
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
