// Package repl implements the interactive command loop that drives the
// storage service from a terminal.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/tarsobcaldas/storage-control/internal/model"
	"github.com/tarsobcaldas/storage-control/internal/service/storage"
)

const dateLayout = "2006-01-02"

var (
	promptColor  = color.New(color.FgCyan, color.Bold)
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
	headerColor  = color.New(color.FgGreen, color.Bold)
)

type REPL struct {
	svc *storage.Service
	in  io.Reader
	out io.Writer
}

func New(svc *storage.Service, in io.Reader, out io.Writer) *REPL {
	return &REPL{svc: svc, in: in, out: out}
}

// Run reads commands until EOF, an exit command, or context cancellation.
func (r *REPL) Run(ctx context.Context) error {
	const op = "repl.Run"

	fmt.Fprintln(r.out, "storage control. Type 'help' for commands.")

	scanner := bufio.NewScanner(r.in)
	for {
		promptColor.Fprint(r.out, "storage> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return nil
		}

		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}
		if err := r.dispatch(ctx, args); err != nil {
			errorColor.Fprintf(r.out, "error: %v\n", err)
		}
	}
}

func (r *REPL) dispatch(ctx context.Context, args []string) error {
	switch args[0] {
	case "help":
		r.printHelp()
		return nil
	case "product":
		return r.product(ctx, args[1:])
	case "search":
		return r.search(args[1:])
	case "filter":
		return r.filter(args[1:])
	case "restock":
		return r.restock(ctx, args[1:])
	case "take":
		return r.take(ctx, args[1:])
	case "empty":
		return r.empty(ctx, args[1:])
	case "items":
		return r.items(args[1:])
	case "expired":
		return r.expired(args[1:])
	case "expiring":
		return r.expiring(args[1:])
	case "capacity":
		fmt.Fprintf(r.out, "capacity: %d zones\n", r.svc.Capacity())
		return nil
	case "space":
		fmt.Fprintf(r.out, "available: %d of %d zones\n", r.svc.AvailableSpace(), r.svc.Capacity())
		return nil
	case "strategy":
		return r.strategy(ctx, args[1:])
	case "save":
		return r.save(ctx, args[1:])
	case "load":
		return r.load(ctx, args[1:])
	default:
		return fmt.Errorf("%w: unknown command %q, try 'help'", model.ErrInvalidArgument, args[0])
	}
}

func (r *REPL) product(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: usage: product add|remove|price|list", model.ErrInvalidArgument)
	}
	switch args[0] {
	case "add":
		if len(args) < 3 {
			return fmt.Errorf("%w: usage: product add <name> <price> [quality]", model.ErrInvalidArgument)
		}
		price, err := parsePrice(args[2])
		if err != nil {
			return err
		}
		quality, err := parseQuality(args[3:])
		if err != nil {
			return err
		}
		product, err := r.svc.CreateProduct(ctx, args[1], price, quality)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "listed %q (%s) at %s\n",
			product.Name, product.Quality, model.FormatPrice(product.PriceCents))
		return nil
	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("%w: usage: product remove <name>", model.ErrInvalidArgument)
		}
		if err := r.svc.DeleteProduct(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "delisted %q\n", args[1])
		return nil
	case "price":
		if len(args) != 3 {
			return fmt.Errorf("%w: usage: product price <name> <price>", model.ErrInvalidArgument)
		}
		price, err := parsePrice(args[2])
		if err != nil {
			return err
		}
		if err := r.svc.ChangePrice(ctx, args[1], price); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "%q now costs %s\n", args[1], model.FormatPrice(price))
		return nil
	case "list":
		r.printProducts(r.svc.Products())
		return nil
	default:
		return fmt.Errorf("%w: unknown subcommand %q", model.ErrInvalidArgument, args[0])
	}
}

func (r *REPL) search(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: usage: search <words>", model.ErrInvalidArgument)
	}
	r.printProducts(r.svc.SearchProducts(strings.Join(args, " ")))
	return nil
}

func (r *REPL) filter(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: filter quality|max-price|min-price <value>", model.ErrInvalidArgument)
	}
	switch args[0] {
	case "quality":
		quality, err := parseQualityKind(args[1])
		if err != nil {
			return err
		}
		r.printProducts(r.svc.ProductsByQuality(quality))
		return nil
	case "max-price":
		price, err := parsePrice(args[1])
		if err != nil {
			return err
		}
		r.printProducts(r.svc.ProductsByMaxPrice(price))
		return nil
	case "min-price":
		price, err := parsePrice(args[1])
		if err != nil {
			return err
		}
		r.printProducts(r.svc.ProductsByMinPrice(price))
		return nil
	default:
		return fmt.Errorf("%w: unknown filter %q", model.ErrInvalidArgument, args[0])
	}
}

func (r *REPL) restock(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: usage: restock <name> <qty> [expiry YYYY-MM-DD]", model.ErrInvalidArgument)
	}
	qty, err := parseQuantity(args[1])
	if err != nil {
		return err
	}
	var expiry *time.Time
	if len(args) == 3 {
		d, err := time.Parse(dateLayout, args[2])
		if err != nil {
			return fmt.Errorf("%w: bad expiry date %q, want YYYY-MM-DD", model.ErrInvalidArgument, args[2])
		}
		expiry = &d
	}

	placed, err := r.svc.Restock(ctx, args[0], qty, expiry)
	if err != nil {
		if placed > 0 {
			warningColor.Fprintf(r.out, "placed %d of %d before stopping\n", placed, qty)
		}
		return err
	}
	fmt.Fprintf(r.out, "placed %d units of %q\n", placed, args[0])
	return nil
}

func (r *REPL) take(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: take <name> <qty>", model.ErrInvalidArgument)
	}
	qty, err := parseQuantity(args[1])
	if err != nil {
		return err
	}
	taken, err := r.svc.RemoveStock(ctx, args[0], qty)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "took %d units of %q:\n", len(taken), args[0])
	r.printItems(taken)
	return nil
}

func (r *REPL) empty(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: empty <name>", model.ErrInvalidArgument)
	}
	removed, err := r.svc.EmptyStock(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "removed all %d units of %q\n", removed, args[0])
	return nil
}

func (r *REPL) items(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: items <name>", model.ErrInvalidArgument)
	}
	items, err := r.svc.Items(args[0])
	if err != nil {
		return err
	}
	headerColor.Fprintf(r.out, "%d units of %q\n", len(items), args[0])
	r.printItems(items)
	return nil
}

func (r *REPL) expired(args []string) error {
	var items []*model.Item
	switch len(args) {
	case 0:
		items = r.svc.ExpiredItems()
	case 1:
		var err error
		if items, err = r.svc.ExpiredItemsFor(args[0]); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: usage: expired [name]", model.ErrInvalidArgument)
	}
	headerColor.Fprintf(r.out, "%d expired units\n", len(items))
	r.printItems(items)
	return nil
}

func (r *REPL) expiring(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: usage: expiring <days> [name]", model.ErrInvalidArgument)
	}
	days, err := strconv.Atoi(args[0])
	if err != nil || days <= 0 {
		return fmt.Errorf("%w: bad day count %q", model.ErrInvalidArgument, args[0])
	}
	window := time.Duration(days) * 24 * time.Hour

	var items []*model.Item
	if len(args) == 2 {
		if items, err = r.svc.ExpiringItemsFor(args[1], window); err != nil {
			return err
		}
	} else {
		items = r.svc.ExpiringItems(window)
	}
	headerColor.Fprintf(r.out, "%d units expiring within %d days\n", len(items), days)
	r.printItems(items)
	return nil
}

func (r *REPL) strategy(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		fmt.Fprintf(r.out, "strategy: %s\n", r.svc.Strategy())
		return nil
	case 1:
		if err := r.svc.SetStrategy(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "strategy set to %s\n", args[0])
		return nil
	default:
		return fmt.Errorf("%w: usage: strategy [contiguous|round-robin|closest-to-start]", model.ErrInvalidArgument)
	}
}

func (r *REPL) save(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: save <name>", model.ErrInvalidArgument)
	}
	if err := r.svc.Save(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "saved snapshot %q\n", args[0])
	return nil
}

func (r *REPL) load(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: load <name>", model.ErrInvalidArgument)
	}
	if err := r.svc.Load(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "loaded snapshot %q\n", args[0])
	return nil
}

func (r *REPL) printProducts(products []*model.Product) {
	if len(products) == 0 {
		fmt.Fprintln(r.out, "no products")
		return
	}
	for _, p := range products {
		fmt.Fprintf(r.out, "  %-20s %10s  qty %-5d %s\n",
			p.Name, model.FormatPrice(p.PriceCents), p.Quantity, p.Quality)
	}
}

func (r *REPL) printItems(items []*model.Item) {
	for _, item := range items {
		if item.ExpiryDate != nil {
			fmt.Fprintf(r.out, "  %s expires %s\n", item.Placement, item.ExpiryDate.Format(dateLayout))
			continue
		}
		fmt.Fprintf(r.out, "  %s\n", item.Placement)
	}
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.out, `commands:
  product add <name> <price> [fragile <maxLevel> | oversized <zones> | oversized-fragile <zones> <maxLevel>]
  product remove <name>
  product price <name> <price>
  product list
  search <words>
  filter quality|max-price|min-price <value>
  restock <name> <qty> [expiry YYYY-MM-DD]
  take <name> <qty>
  empty <name>
  items <name>
  expired [name]
  expiring <days> [name]
  capacity
  space
  strategy [contiguous|round-robin|closest-to-start]
  save <name>
  load <name>
  exit
`)
}

// parsePrice accepts "10", "10.5" and "10.50" and returns cents.
func parsePrice(s string) (int64, error) {
	whole, frac, found := strings.Cut(s, ".")
	cents, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || cents < 0 {
		return 0, fmt.Errorf("%w: bad price %q", model.ErrInvalidArgument, s)
	}
	cents *= 100
	if found {
		if len(frac) == 1 {
			frac += "0"
		}
		if len(frac) != 2 {
			return 0, fmt.Errorf("%w: bad price %q", model.ErrInvalidArgument, s)
		}
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: bad price %q", model.ErrInvalidArgument, s)
		}
		cents += f
	}
	return cents, nil
}

func parseQuantity(s string) (int, error) {
	qty, err := strconv.Atoi(s)
	if err != nil || qty <= 0 {
		return 0, fmt.Errorf("%w: bad quantity %q", model.ErrInvalidArgument, s)
	}
	return qty, nil
}

func parseQualityKind(s string) (model.QualityKind, error) {
	switch s {
	case "normal":
		return model.QualityNormal, nil
	case "fragile":
		return model.QualityFragile, nil
	case "oversized":
		return model.QualityOversized, nil
	case "oversized-fragile":
		return model.QualityOversizedFragile, nil
	default:
		return 0, fmt.Errorf("%w: unknown quality %q", model.ErrInvalidArgument, s)
	}
}

func parseQuality(args []string) (model.Quality, error) {
	if len(args) == 0 {
		return model.Normal(), nil
	}
	switch args[0] {
	case "normal":
		return model.Normal(), nil
	case "fragile":
		if len(args) != 2 {
			return model.Quality{}, fmt.Errorf("%w: usage: fragile <maxLevel>", model.ErrInvalidArgument)
		}
		maxLevel, err := strconv.Atoi(args[1])
		if err != nil || maxLevel < 1 {
			return model.Quality{}, fmt.Errorf("%w: bad max level %q", model.ErrInvalidArgument, args[1])
		}
		return model.Fragile(maxLevel), nil
	case "oversized":
		if len(args) != 2 {
			return model.Quality{}, fmt.Errorf("%w: usage: oversized <zones>", model.ErrInvalidArgument)
		}
		zones, err := strconv.Atoi(args[1])
		if err != nil || zones < 2 {
			return model.Quality{}, fmt.Errorf("%w: bad zone count %q", model.ErrInvalidArgument, args[1])
		}
		return model.Oversized(zones), nil
	case "oversized-fragile":
		if len(args) != 3 {
			return model.Quality{}, fmt.Errorf("%w: usage: oversized-fragile <zones> <maxLevel>", model.ErrInvalidArgument)
		}
		zones, err := strconv.Atoi(args[1])
		if err != nil || zones < 2 {
			return model.Quality{}, fmt.Errorf("%w: bad zone count %q", model.ErrInvalidArgument, args[1])
		}
		maxLevel, err := strconv.Atoi(args[2])
		if err != nil || maxLevel < 1 {
			return model.Quality{}, fmt.Errorf("%w: bad max level %q", model.ErrInvalidArgument, args[2])
		}
		return model.OversizedFragile(zones, maxLevel), nil
	default:
		return model.Quality{}, fmt.Errorf("%w: unknown quality %q", model.ErrInvalidArgument, args[0])
	}
}
