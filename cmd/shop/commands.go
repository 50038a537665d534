package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"storefront-server/cart"
	"storefront-server/config"
	"storefront-server/models"
	"storefront-server/utils"
)

// newRootCmd builds the command tree. The caller closes the returned app
// after Execute, whether or not the command failed.
func newRootCmd(cfg *config.Config) (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:          "shop",
		Short:        "Browse the storefront and manage your cart from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.baseURL, "url", cfg.StorefrontURL, "storefront base URL")
	root.PersistentFlags().StringVar(&a.cartDB, "cart-db", cfg.CartDB, "local cart database file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log requests and storage warnings")

	root.AddCommand(
		productsCmd(a),
		showCmd(a),
		selectCmd(a),
		addCmd(a),
		cartCmd(a),
		editCmd(a),
		qtyCmd(a),
		removeCmd(a),
		clearCmd(a),
		checkoutCmd(a),
		postsCmd(a),
		rateCmd(a),
	)
	return root, a
}

var formFlagNames = []string{"size", "name", "note", "color"}

func formFlags(cmd *cobra.Command, form *cart.Form) {
	cmd.Flags().StringVar(&form.Size, "size", "", "size value")
	cmd.Flags().StringVar(&form.DogName, "name", "", `personalization name ("none" to skip)`)
	cmd.Flags().StringVar(&form.Note, "note", "", "note for the maker")
	cmd.Flags().StringVar(&form.Color, "color", "", "color value")
}

func formChanged(cmd *cobra.Command) bool {
	for _, name := range formFlagNames {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func productsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, p := range a.session.Products {
				fmt.Fprintf(out, "%-20s %-30s %8s", p.ID, p.Name, cart.Dollars(p.Price))
				if p.RatingCount > 0 {
					fmt.Fprintf(out, "  ★ %.1f (%d)", p.RatingAverage, p.RatingCount)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|slug>",
		Short: "Show a product with its options and your current selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.product(args[0])
			if err != nil {
				return err
			}
			sel, err := a.session.Display(p.ID)
			if err != nil {
				return err
			}
			printProduct(cmd.OutOrStdout(), p, sel)
			return nil
		},
	}
}

func printProduct(out io.Writer, p *models.Product, sel models.Selection) {
	opts := p.Opts()
	fmt.Fprintf(out, "%s  %s\n", p.Name, cart.Dollars(p.Price))
	if desc := utils.StripHTML(p.Description); desc != "" {
		fmt.Fprintln(out, desc)
	}
	fmt.Fprintf(out, "Image: %s\n", cart.DisplayImage(p, sel.Color))
	if gallery := cart.GalleryImages(p, sel.Color); len(gallery) > 1 {
		fmt.Fprintf(out, "Gallery: %s\n", strings.Join(gallery, ", "))
	}

	if opts.HasColors() {
		var colors []string
		for _, c := range opts.Colors {
			label := cart.ColorLabel(opts, c.Value)
			if c.Value == sel.Color {
				label = "[" + label + "]"
			}
			colors = append(colors, fmt.Sprintf("%s=%s", c.Value, label))
		}
		fmt.Fprintf(out, "Colors: %s\n", strings.Join(colors, "  "))
	}
	if opts.HasSizes() {
		var sizes []string
		for _, s := range opts.Sizes {
			sizes = append(sizes, fmt.Sprintf("%s=%s", s.Value, s.DisplayLabel()))
		}
		req := ""
		if opts.SizesRequired {
			req = " (required)"
		}
		fmt.Fprintf(out, "%s%s: %s\n", opts.SizeHeading(), req, strings.Join(sizes, "  "))
	}
	if opts.DogName {
		if opts.NameRequired() {
			fmt.Fprintln(out, `Personalization: required (type "none" to skip)`)
		} else {
			fmt.Fprintln(out, "Personalization: optional")
		}
	}
	if opts.Note {
		fmt.Fprintln(out, "Note: accepted")
	}
}

func selectCmd(a *app) *cobra.Command {
	var form cart.Form
	cmd := &cobra.Command{
		Use:   "select <id>",
		Short: "Remember options for a product without adding it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.product(args[0])
			if err != nil {
				return err
			}
			sel, err := a.session.SaveSelection(p.ID, form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved selection for %s: %s\n", p.Name, cart.LineDetails(p, sel.Line(p.ID, 1)))
			return nil
		},
	}
	formFlags(cmd, &form)
	return cmd
}

func addCmd(a *app) *cobra.Command {
	var (
		form  cart.Form
		quick bool
	)
	cmd := &cobra.Command{
		Use:   "add <id|slug>",
		Short: "Add a product to the cart",
		Long: "Add a product to the cart. With --quick the remembered selection is used " +
			"(set it with `shop select`); option flags given with --quick update it first.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.product(args[0])
			if err != nil {
				return err
			}

			var index int
			switch {
			case quick && formChanged(cmd):
				index, err = a.session.QuickViewAdd(p.ID, form)
			case quick:
				index, err = a.session.QuickAdd(p.ID)
			default:
				index, err = a.session.PageAdd(p.ID, form)
			}
			if err != nil {
				return optionFailure(err)
			}

			line, _ := a.session.Cart.Line(index)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (x%d). Cart: %d item(s)\n", p.Name, line.Quantity, a.session.Cart.Count())
			return nil
		},
	}
	formFlags(cmd, &form)
	cmd.Flags().BoolVar(&quick, "quick", false, "use the remembered selection")
	return cmd
}

// optionFailure names the flag the shopper has to fix.
func optionFailure(err error) error {
	var oe *cart.OptionError
	if !errors.As(err, &oe) {
		return err
	}
	flag := "--size"
	if oe.Field == cart.FieldDogName {
		flag = "--name"
	}
	return fmt.Errorf("%v (%s)", oe.Err, flag)
}

func cartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			lines := a.session.Cart.Lines()
			if len(lines) == 0 {
				fmt.Fprintln(out, "Your cart is empty.")
				return nil
			}
			for i, li := range lines {
				p, ok := a.session.Lookup(li.ProductID)
				if !ok {
					fmt.Fprintf(out, "%2d. (unavailable product %s) x%d\n", i+1, li.ProductID, li.Quantity)
					continue
				}
				fmt.Fprintf(out, "%2d. %s x%d  %s\n    %s\n", i+1, p.Name, li.Quantity,
					cart.Dollars(p.Price*float64(li.Quantity)), cart.LineDetails(p, li))
			}
			fmt.Fprintf(out, "Items: %d  Total: %s\n", a.session.Cart.Count(), cart.Dollars(a.session.Total()))
			return nil
		},
	}
}

// lineArg parses a 1-based line number.
func lineArg(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid line number %q", s)
	}
	return n - 1, nil
}

func editCmd(a *app) *cobra.Command {
	var form cart.Form
	cmd := &cobra.Command{
		Use:   "edit <line>",
		Short: "Change the options of a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := lineArg(args[0])
			if err != nil {
				return err
			}
			current, err := a.session.BeginEdit(index)
			if err != nil {
				return err
			}

			// the editor opens pre-filled; unset flags keep the line's values
			if !cmd.Flags().Changed("size") {
				form.Size = current.Size
			}
			if !cmd.Flags().Changed("name") {
				form.DogName = current.DogName
			}
			if !cmd.Flags().Changed("note") {
				form.Note = current.Note
			}
			if err := a.session.UpdateLine(index, form); err != nil {
				return optionFailure(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated line %d\n", index+1)
			return nil
		},
	}
	formFlags(cmd, &form)
	return cmd
}

func qtyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "qty <line> <delta>",
		Short: "Change a line's quantity; reaching zero removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := lineArg(args[0])
			if err != nil {
				return err
			}
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid delta %q", args[1])
			}
			if err := a.session.Cart.ChangeQuantity(index, delta); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cart: %d item(s)\n", a.session.Cart.Count())
			return nil
		},
	}
}

func removeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <line>",
		Short: "Remove a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := lineArg(args[0])
			if err != nil {
				return err
			}
			if err := a.session.Cart.RemoveLine(index); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cart: %d item(s)\n", a.session.Cart.Count())
			return nil
		},
	}
}

func clearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Cart.Clear()
			fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared.")
			return nil
		},
	}
}

func checkoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Start a hosted checkout for the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := a.client.Checkout(cmd.Context(), a.session.Cart.Lines())
			if err != nil {
				return fmt.Errorf("checkout failed: %w", err)
			}
			a.session.Cart.Clear()
			fmt.Fprintf(cmd.OutOrStdout(), "Complete your order at:\n%s\n", url)
			return nil
		},
	}
}

func postsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "Show the latest posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			posts := a.client.Posts(cmd.Context())
			if len(posts) == 0 {
				fmt.Fprintln(out, "No posts yet.")
				return nil
			}
			for _, p := range posts {
				fmt.Fprintf(out, "%s  %s\n", p.Date, p.Title)
				if p.Excerpt != "" {
					fmt.Fprintf(out, "    %s\n", p.Excerpt)
				}
			}
			return nil
		},
	}
}

func rateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <id> <1-5>",
		Short: "Rate a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.product(args[0])
			if err != nil {
				return err
			}
			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid rating %q", args[1])
			}
			updated, err := a.client.Rate(cmd.Context(), p.ID, rating)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Thanks! %s is now rated %.1f from %d rating(s).\n",
				updated.Name, updated.RatingAverage, updated.RatingCount)
			return nil
		},
	}
}
