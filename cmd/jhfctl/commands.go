package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mejbaurrahman/JHF/internal/client"
	"github.com/spf13/pflag"
)

var errUsage = errors.New("usage")

type command struct {
	name string
	help string
	run  func(ctx context.Context, e *env, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"login", "log in: login --phone <phone> --password <password>", cmdLogin},
		{"logout", "forget the stored session", cmdLogout},
		{"whoami", "show the logged-in user", cmdWhoami},
		{"events", "list events (--upcoming for upcoming only)", cmdEvents},
		{"event", "show one event: event <slug>", cmdEvent},
		{"donations", "list my donations", cmdDonations},
		{"donate", "record a donation: donate --amount N --method bkash [...]", cmdDonate},
		{"fees", "list my membership fees", cmdFees},
		{"notifications", "list my notifications", cmdNotifications},
		{"read", "mark a notification read: read <id>", cmdRead},
		{"committee", "list committee members", cmdCommittee},
		{"site", "show a site content section: site <section>", cmdSite},
		{"summary", "show the finance summary (admin)", cmdSummary},
		{"dashboard", "show my dashboard", cmdDashboard},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func flagSet(e *env, name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(e.errOut)
	return fs
}

func oneArg(args []string, what string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", fmt.Errorf("%w: expected %s", errUsage, what)
	}
	return args[0], nil
}

func cmdLogin(ctx context.Context, e *env, args []string) error {
	fs := flagSet(e, "login")
	phone := fs.String("phone", "", "mobile number")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *phone == "" || *password == "" {
		return fmt.Errorf("%w: --phone and --password are required", errUsage)
	}
	u, err := e.ds.Login(ctx, *phone, *password)
	if err != nil {
		return err
	}
	mode := ""
	if e.session.Offline() {
		mode = " (offline demo)"
	}
	fmt.Fprintf(e.out, "logged in as %s [%s]%s\n", u.Name, u.Role, mode)
	return nil
}

func cmdLogout(_ context.Context, e *env, _ []string) error {
	if err := e.session.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(e.out, "logged out")
	return nil
}

func cmdWhoami(ctx context.Context, e *env, _ []string) error {
	u, err := e.ds.Me(ctx)
	if err != nil {
		return err
	}
	return printJSON(e.out, u)
}

func cmdEvents(ctx context.Context, e *env, args []string) error {
	fs := flagSet(e, "events")
	upcoming := fs.Bool("upcoming", false, "only upcoming events")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	var (
		list []client.Event
		err  error
	)
	if *upcoming {
		list, err = e.ds.UpcomingEvents(ctx)
	} else {
		list, err = e.ds.Events(ctx)
	}
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tTITLE\tTYPE\tSTATUS\tSTART")
	for _, ev := range list {
		start := "-"
		if ev.StartDate != nil {
			start = ev.StartDate.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", ev.Slug, ev.Title, ev.Type, ev.Status, start)
	}
	return tw.Flush()
}

func cmdEvent(ctx context.Context, e *env, args []string) error {
	slug, err := oneArg(args, "an event slug")
	if err != nil {
		return err
	}
	ev, err := e.ds.Event(ctx, slug)
	if err != nil {
		return err
	}
	return printJSON(e.out, ev)
}

func cmdDonations(ctx context.Context, e *env, _ []string) error {
	list, err := e.ds.MyDonations(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tAMOUNT\tMETHOD\tSTATUS\tEVENT")
	for _, d := range list {
		event := "-"
		if d.Event != nil {
			event = d.Event.Title
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\t%s\n", d.DonationDate.Format("2006-01-02"), d.Amount, d.PaymentMethod, d.Status, event)
	}
	return tw.Flush()
}

func cmdDonate(ctx context.Context, e *env, args []string) error {
	fs := flagSet(e, "donate")
	var in client.DonationInput
	fs.Float64Var(&in.Amount, "amount", 0, "amount in BDT")
	fs.StringVar(&in.PaymentMethod, "method", "", "bkash, nagad, cash or bank")
	fs.StringVar(&in.TransactionID, "trx", "", "transaction id")
	fs.StringVar(&in.DonorName, "name", "", "donor name")
	fs.StringVar(&in.DonorPhone, "phone", "", "donor phone")
	fs.StringVar(&in.EventID, "event", "", "event id")
	fs.BoolVar(&in.IsAnonymous, "anonymous", false, "hide the donor name")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if in.Amount <= 0 || in.PaymentMethod == "" {
		return fmt.Errorf("%w: --amount and --method are required", errUsage)
	}
	d, err := e.ds.Donate(ctx, in)
	if err != nil {
		return err
	}
	return printJSON(e.out, d)
}

func cmdFees(ctx context.Context, e *env, _ []string) error {
	list, err := e.ds.MyFees(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PERIOD\tAMOUNT\tMETHOD\tSTATUS")
	for _, f := range list {
		fmt.Fprintf(tw, "%04d-%02d\t%.2f\t%s\t%s\n", f.Year, f.Month, f.Amount, f.PaymentMethod, f.Status)
	}
	return tw.Flush()
}

func cmdNotifications(ctx context.Context, e *env, _ []string) error {
	list, err := e.ds.Notifications(ctx)
	if err != nil {
		return err
	}
	for _, n := range list {
		mark := " "
		if !n.IsRead {
			mark = "*"
		}
		fmt.Fprintf(e.out, "%s %s [%s] %s\n", mark, n.ID, n.Type, n.Message)
	}
	return nil
}

func cmdRead(ctx context.Context, e *env, args []string) error {
	id, err := oneArg(args, "a notification id")
	if err != nil {
		return err
	}
	if err := e.ds.MarkRead(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(e.out, "marked read")
	return nil
}

func cmdCommittee(ctx context.Context, e *env, _ []string) error {
	list, err := e.ds.Committee(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	for _, m := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", m.Order, m.RoleKey, m.Name)
	}
	return tw.Flush()
}

func cmdSite(ctx context.Context, e *env, args []string) error {
	section, err := oneArg(args, "a section name")
	if err != nil {
		return err
	}
	sec, err := e.ds.Site(ctx, section)
	if err != nil {
		return err
	}
	return printJSON(e.out, sec)
}

func cmdSummary(ctx context.Context, e *env, _ []string) error {
	sum, err := e.ds.FinanceSummary(ctx)
	if err != nil {
		return err
	}
	return printJSON(e.out, sum)
}

func cmdDashboard(ctx context.Context, e *env, _ []string) error {
	u, err := e.ds.Me(ctx)
	if err != nil {
		return err
	}
	d := client.LoadDashboard(ctx, e.ds, u)

	fmt.Fprintf(e.out, "%s [%s] via %s\n\n", u.Name, u.Role, d.Source)
	tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "upcoming events\t%d\n", len(d.Upcoming))
	fmt.Fprintf(tw, "my donations\t%d\n", len(d.Donations))
	fmt.Fprintf(tw, "my fees\t%d\n", len(d.Fees))
	fmt.Fprintf(tw, "unread notifications\t%d\n", d.Unread)
	if d.Finance != nil {
		fmt.Fprintf(tw, "net balance\t%.2f\n", d.Finance.NetBalance)
		fmt.Fprintf(tw, "pending donations\t%d\n", d.Finance.PendingDonationCount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for widget, werr := range d.Errors {
		fmt.Fprintf(e.errOut, "%s: %s\n", widget, describe(werr))
	}
	return nil
}
