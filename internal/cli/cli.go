// Package cli implements the foodreview terminal client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"hostel-food-backend/internal/browse"
	"hostel-food-backend/internal/client"
	"hostel-food-backend/internal/display"
	"hostel-food-backend/internal/model"
	"hostel-food-backend/internal/notify"
	"hostel-food-backend/internal/rating"
	"hostel-food-backend/internal/review"
	"hostel-food-backend/internal/submission"
)

// ServerEnv names the environment variable holding the service URL.
const ServerEnv = "FOODREVIEW_SERVER"

const usage = `usage: foodreview <command> [flags]

commands:
  add     submit a review
  list    print reviews, optionally filtered by hostel name (-q)
  browse  load reviews once, then filter by each line read from stdin
`

// Store is the remote store the commands drive.
type Store interface {
	submission.Inserter
	browse.Selector
}

// App holds the streams and collaborators of one invocation.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	// NewStore overrides the HTTP client, for tests.
	NewStore func(server string) Store
}

type common struct {
	server  string
	timeout time.Duration
	verbose bool
}

func (a *App) commonFlags(fs *flag.FlagSet) *common {
	c := &common{}
	server := a.Getenv(ServerEnv)
	if server == "" {
		server = client.DefaultServer
	}
	fs.StringVar(&c.server, "server", server, "review service base URL (env "+ServerEnv+")")
	fs.DurationVar(&c.timeout, "timeout", 10*time.Second, "request timeout")
	fs.BoolVar(&c.verbose, "v", false, "log diagnostics to stderr")
	return c
}

func (a *App) store(c *common) Store {
	if a.NewStore != nil {
		return a.NewStore(c.server)
	}
	return client.New(c.server, c.timeout)
}

func (a *App) logger(c *common) zerolog.Logger {
	if !c.verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: a.Stderr, NoColor: true}).
		With().Timestamp().Str("component", "foodreview").Logger()
}

// Run executes args (without the program name) and returns the exit status.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.Stderr, usage)
		return 2
	}
	switch args[0] {
	case "add":
		return a.runAdd(ctx, args[1:])
	case "list":
		return a.runList(ctx, args[1:])
	case "browse":
		return a.runBrowse(ctx, args[1:])
	case "-h", "-help", "--help", "help":
		fmt.Fprint(a.Stdout, usage)
		return 0
	}
	fmt.Fprintf(a.Stderr, "unknown command %q\n\n%s", args[0], usage)
	return 2
}

func (a *App) runAdd(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	c := a.commonFlags(fs)
	var (
		name       = fs.String("name", "", "your name (required)")
		hostel     = fs.String("hostel", "", "hostel name (required)")
		hostelType = fs.String("type", "", "hostel type: Boys, Girls or Co-Ed (required)")
		city       = fs.String("city", "", "city")
		meal       = fs.String("meal", "", "meal: Breakfast, Lunch, Dinner or Snacks (required)")
		dish       = fs.String("dish", "", "dish name")
		overall    = fs.Int("overall", 0, "overall rating, 1-5 stars (required)")
		taste      = fs.Int("taste", review.DefaultSubRating, "taste rating 1-5")
		hygiene    = fs.Int("hygiene", review.DefaultSubRating, "hygiene rating 1-5")
		quantity   = fs.Int("quantity", review.DefaultSubRating, "quantity rating 1-5")
		text       = fs.String("text", "", "review text, up to 500 characters")
		recommend  = fs.Bool("recommend", false, "recommend this meal")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := a.logger(c)
	st := a.store(c)
	notifier := notify.Multi{notify.NewConsole(a.Stdout), notify.NewLog(logger)}

	navigate := func(ctx context.Context, created model.Review) {
		fmt.Fprintln(a.Stdout)
		a.showList(ctx, st, logger, "")
	}
	form := submission.New(st, notifier, navigate,
		submission.WithLogger(logger),
		submission.WithObserver(func(from, to submission.State) {
			logger.Debug().Stringer("from", from).Stringer("to", to).Msg("form state")
		}))

	err := form.Update(func(d *review.Draft) {
		d.ReviewerName = *name
		d.HostelName = *hostel
		d.HostelType = model.HostelType(*hostelType)
		d.City = *city
		d.MealType = model.MealType(*meal)
		d.DishName = *dish
		d.IsRecommended = *recommend
		d.SetReviewText(*text)

		rating.NewStars(d.OverallRating, func(v int) { d.OverallRating = v }).Select(*overall)
		rating.NewSlider("Taste", d.TasteRating, func(v int) { d.TasteRating = v }).Set(*taste)
		rating.NewSlider("Hygiene", d.HygieneRating, func(v int) { d.HygieneRating = v }).Set(*hygiene)
		rating.NewSlider("Quantity", d.QuantityRating, func(v int) { d.QuantityRating = v }).Set(*quantity)
	})
	if err != nil {
		fmt.Fprintln(a.Stderr, err)
		return 1
	}

	a.showDraft(form.Draft())
	if err := form.Submit(ctx); err != nil {
		return 1
	}
	return 0
}

func (a *App) showDraft(d review.Draft) {
	fmt.Fprintf(a.Stdout, "Overall  %s\n", rating.NewStars(d.OverallRating, nil).Render())
	for _, s := range []rating.Slider{
		rating.NewSlider("Taste", d.TasteRating, nil),
		rating.NewSlider("Hygiene", d.HygieneRating, nil),
		rating.NewSlider("Quantity", d.QuantityRating, nil),
	} {
		fmt.Fprintln(a.Stdout, s.Render())
	}
	if d.ReviewText != "" {
		fmt.Fprintln(a.Stdout, d.TextCounter())
	}
}

func (a *App) runList(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	c := a.commonFlags(fs)
	query := fs.String("q", "", "only show hostels whose name contains this text")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	a.showList(ctx, a.store(c), a.logger(c), *query)
	return 0
}

func (a *App) showList(ctx context.Context, st browse.Selector, logger zerolog.Logger, query string) {
	page := browse.NewPage(st, logger)
	page.Activate(ctx)
	page.SetQuery(query)
	a.render(page)
}

func (a *App) render(page *browse.Page) {
	fmt.Fprintln(a.Stdout, page.CountLabel())
	visible := page.Visible()
	if len(visible) == 0 {
		fmt.Fprintln(a.Stdout, page.EmptyMessage())
		return
	}
	fmt.Fprintln(a.Stdout)
	if err := display.RenderAll(a.Stdout, visible); err != nil {
		fmt.Fprintln(a.Stderr, err)
	}
}

func (a *App) runBrowse(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	c := a.commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	page := browse.NewPage(a.store(c), a.logger(c))
	fmt.Fprintln(a.Stdout, "Loading reviews...")
	page.Activate(ctx)
	a.render(page)

	scanner := bufio.NewScanner(a.Stdin)
	for {
		fmt.Fprint(a.Stdout, "\nSearch by hostel name> ")
		if !scanner.Scan() {
			break
		}
		page.SetQuery(scanner.Text())
		a.render(page)
	}
	fmt.Fprintln(a.Stdout)
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintln(a.Stderr, err)
		return 1
	}
	return 0
}
