// busctl is a terminal front-end for the bus booking API. It browses routes,
// prints seat maps, books seats and downloads e-tickets. The access token is kept
// in a local file between invocations.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"busbooking/internal/apiclient"
	"busbooking/internal/availability"
	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/services"
	"busbooking/internal/session"
	"busbooking/internal/utils"

	"github.com/spf13/pflag"
)

// cliSession is the fixed id under which the FileStore keeps the token.
const cliSession = "busctl"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	routes   services.RouteService
	bookings services.BookingService
	docs     services.DocsService
	auth     services.AuthService
	out      io.Writer
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(out)
		return nil
	}
	command, rest := args[0], args[1:]

	env := intconfig.LoadEnv()
	flagSet := pflag.NewFlagSet("busctl "+command, pflag.ContinueOnError)
	apiURL := flagSet.String("api", env.APIBaseURL, "booking API base URL")
	tokenFile := flagSet.String("token-file", defaultTokenFile(), "where the access token is stored")
	timeout := flagSet.Duration("timeout", env.APITimeout, "per-request timeout")
	verbose := flagSet.BoolP("verbose", "v", false, "log requests to stderr")

	source := flagSet.String("source", "", "filter by source (routes)")
	destination := flagSet.String("destination", "", "filter by destination (routes)")
	date := flagSet.String("date", "", "filter by travel date YYYY-MM-DD (routes)")
	selectSeat := flagSet.Int("select", 0, "highlight a seat (seats)")
	username := flagSet.String("username", "", "account username (login)")
	password := flagSet.String("password", "", "account password (login)")
	outFile := flagSet.String("out", "", "output file (ticket)")

	if err := flagSet.Parse(rest); err != nil {
		return err
	}

	level := "error"
	if *verbose {
		level = "debug"
	}
	utils.InitLogger(level, "text", os.Stderr)

	client := apiclient.New(*apiURL, *timeout)
	engine := availability.Engine{DefaultSeats: env.DefaultTotalSeats}
	bookings := services.BookingService{API: client, Engine: engine}
	a := app{
		routes:   services.RouteService{API: client, Engine: engine},
		bookings: bookings,
		docs:     services.DocsService{Bookings: bookings},
		auth:     services.AuthService{API: client, Store: session.NewFileStore(*tokenFile), TTL: env.SessionTTL},
		out:      out,
	}
	ctx = utils.WithRequestID(ctx, session.NewID())
	pos := flagSet.Args()

	switch command {
	case "routes":
		d, err := utils.ParseDate(*date)
		if err != nil {
			return fmt.Errorf("--date must be YYYY-MM-DD")
		}
		return a.listRoutes(ctx, domain.Criteria{Source: *source, Destination: *destination, Date: d})
	case "seats":
		id, err := positionalID(pos, 0, "ROUTE_ID")
		if err != nil {
			return err
		}
		return a.seatMap(ctx, id, *selectSeat)
	case "login":
		return a.login(ctx, *username, *password)
	case "signup":
		if len(pos) != 4 {
			return fmt.Errorf("usage: busctl signup NAME EMAIL PASSWORD CONFIRM_PASSWORD")
		}
		return a.signup(ctx, domain.SignupRequest{Name: pos[0], Email: pos[1], Password: pos[2], ConfirmPassword: pos[3]})
	case "book":
		id, err := positionalID(pos, 0, "ROUTE_ID")
		if err != nil {
			return err
		}
		seat, err := positionalID(pos, 1, "SEAT")
		if err != nil {
			return err
		}
		return a.book(ctx, id, int(seat))
	case "history":
		return a.history(ctx)
	case "ticket":
		id, err := positionalID(pos, 0, "BOOKING_ID")
		if err != nil {
			return err
		}
		return a.ticket(ctx, id, *outFile)
	case "logout":
		if err := a.auth.Logout(ctx, cliSession); err != nil {
			return err
		}
		fmt.Fprintln(out, "Logged out.")
		return nil
	default:
		printUsage(out)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a app) listRoutes(ctx context.Context, criteria domain.Criteria) error {
	res, err := a.routes.Browse(ctx, criteria)
	if err != nil {
		return err
	}
	renderBrowse(a.out, res)
	return nil
}

func (a app) seatMap(ctx context.Context, id domain.ID, selected int) error {
	token, _ := a.auth.Token(ctx, cliSession)
	view, err := a.routes.SeatMap(ctx, token, id, selected)
	if domain.IsUnauthorized(err) {
		_ = a.auth.Logout(ctx, cliSession)
		view, err = a.routes.SeatMap(ctx, "", id, selected)
	}
	if err != nil {
		return err
	}
	renderSeatMap(a.out, view)
	return nil
}

func (a app) login(ctx context.Context, username, password string) error {
	if _, err := a.auth.Login(ctx, username, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Login successful!")
	return nil
}

func (a app) signup(ctx context.Context, req domain.SignupRequest) error {
	if err := a.auth.Signup(ctx, req); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signup successful! Please login.")
	return nil
}

func (a app) book(ctx context.Context, routeID domain.ID, seat int) error {
	token, err := a.auth.Token(ctx, cliSession)
	if err != nil {
		return err
	}
	res, err := a.bookings.Book(ctx, token, routeID, seat)
	if err != nil {
		return a.clearOnUnauthorized(ctx, err)
	}
	fmt.Fprintln(a.out, res.Message)
	fmt.Fprintf(a.out, "%d of %d seats left\n", res.Availability.AvailableCount, res.Availability.TotalSeats)
	return nil
}

func (a app) history(ctx context.Context) error {
	token, err := a.auth.Token(ctx, cliSession)
	if err != nil {
		return err
	}
	views, err := a.bookings.History(ctx, token)
	if err != nil {
		return a.clearOnUnauthorized(ctx, err)
	}
	renderHistory(a.out, views)
	return nil
}

func (a app) ticket(ctx context.Context, bookingID domain.ID, out string) error {
	token, err := a.auth.Token(ctx, cliSession)
	if err != nil {
		return err
	}
	pdf, filename, err := a.docs.GenerateETicket(ctx, token, bookingID)
	if err != nil {
		return a.clearOnUnauthorized(ctx, err)
	}
	if out == "" {
		out = filename
	}
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return fmt.Errorf("write e-ticket: %w", err)
	}
	fmt.Fprintf(a.out, "E-ticket saved to %s\n", out)
	return nil
}

func (a app) clearOnUnauthorized(ctx context.Context, err error) error {
	if domain.IsUnauthorized(err) {
		_ = a.auth.Logout(ctx, cliSession)
		return fmt.Errorf("%w (run busctl login again)", err)
	}
	return err
}

func positionalID(args []string, i int, name string) (domain.ID, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("missing %s", name)
	}
	n, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return domain.ID(n), nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".busctl-token"
	}
	return filepath.Join(home, ".busctl", "token")
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `busctl: browse routes and book bus seats from the terminal.

Usage:
  busctl routes [--source S] [--destination D] [--date YYYY-MM-DD]
  busctl seats ROUTE_ID [--select N]
  busctl signup NAME EMAIL PASSWORD CONFIRM_PASSWORD
  busctl login --username U --password P
  busctl book ROUTE_ID SEAT
  busctl history
  busctl ticket BOOKING_ID [--out FILE]
  busctl logout

Global flags:
  --api URL          booking API base URL (default $API_BASE_URL)
  --token-file PATH  token location (default $HOME/.busctl/token)
  --timeout DUR      per-request timeout
  -v, --verbose      log requests to stderr
`)
}

