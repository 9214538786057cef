package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	appcart "github.com/brewleaf/client/internal/application/cart"
	appcatalog "github.com/brewleaf/client/internal/application/catalog"
	appidentity "github.com/brewleaf/client/internal/application/identity"
	apporder "github.com/brewleaf/client/internal/application/order"
	domorder "github.com/brewleaf/client/internal/domain/order"
	"github.com/brewleaf/client/internal/infrastructure/api"
	"github.com/brewleaf/client/internal/infrastructure/config"
	"github.com/brewleaf/client/internal/infrastructure/logger"
	"github.com/brewleaf/client/internal/infrastructure/payment"
	"github.com/brewleaf/client/internal/infrastructure/store"
	"github.com/brewleaf/client/internal/interfaces/term"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if logLevel == "" {
		logLevel = cfg.Log.Level
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	// Wire infrastructure
	apiConfig := api.NewConfig(cfg.API.BaseURL)
	apiConfig.Timeout = cfg.API.Timeout
	client, err := api.NewClient(apiConfig, log)
	if err != nil {
		log.Fatal("Failed to create API client", zap.Error(err))
	}

	fs := afero.NewOsFs()
	sessions := store.NewSessionStore(fs, cfg.Storage.Dir)
	guestCart := store.NewGuestCartStore(fs, cfg.Storage.Dir)
	stripe := payment.NewStripeAdapter(log)

	// Wire application services
	catalogSvc := appcatalog.NewService(client, log)
	cartSvc := appcart.NewService(sessions, client, guestCart, log)
	identitySvc := appidentity.NewService(client, sessions, log)
	historySvc := apporder.NewHistoryService(sessions, client, log)
	checkoutSvc := apporder.NewCheckoutService(sessions, client, stripe, log)

	app := &cli{
		catalog:   catalogSvc,
		cart:      cartSvc,
		identity:  identitySvc,
		history:   historySvc,
		checkout:  checkoutSvc,
		guestCart: guestCart,
		stdin:     bufio.NewReader(os.Stdin),
	}

	ctx := context.Background()
	if err := app.run(ctx, command, args[1:]); err != nil {
		// Backend and validation messages are already user-facing
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cli struct {
	catalog   *appcatalog.Service
	cart      *appcart.Service
	identity  *appidentity.Service
	history   *apporder.HistoryService
	checkout  *apporder.CheckoutService
	guestCart appcart.GuestCart
	stdin     *bufio.Reader
}

func (a *cli) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "menu":
		return a.runMenu(ctx)
	case "mood":
		if len(args) < 1 {
			return fmt.Errorf("mood required. Usage: brewleaf mood <mood>")
		}
		return a.runMood(ctx, args[0])
	case "cart":
		return a.runCart(ctx)
	case "add":
		if len(args) < 1 {
			return fmt.Errorf("product id required. Usage: brewleaf add <productID>")
		}
		return a.runAdd(ctx, args[0])
	case "remove":
		if len(args) < 1 {
			return fmt.Errorf("product id required. Usage: brewleaf remove <productID>")
		}
		return a.runRemove(ctx, args[0])
	case "clear":
		return a.runClear(ctx)
	case "login":
		if len(args) < 2 {
			return fmt.Errorf("usage: brewleaf login <email> <password>")
		}
		return a.runLogin(ctx, args[0], args[1])
	case "register":
		if len(args) < 4 {
			return fmt.Errorf("usage: brewleaf register <name> <email> <password> <confirmPassword>")
		}
		return a.runRegister(ctx, args[0], args[1], args[2], args[3])
	case "logout":
		return a.runLogout()
	case "orders":
		return a.runOrders(ctx)
	case "checkout":
		if len(args) < 2 {
			return fmt.Errorf("usage: brewleaf checkout <location> <cod|card> [paymentMethodID]")
		}
		paymentMethodID := ""
		if len(args) > 2 {
			paymentMethodID = args[2]
		}
		return a.runCheckout(ctx, args[0], args[1], paymentMethodID)
	case "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// printNavbar paints the greeting and cart badge ahead of page-like output.
// A cart that cannot be loaded shows as empty rather than failing the page.
func (a *cli) printNavbar(ctx context.Context) {
	session, err := a.identity.Current()
	if err != nil {
		session = nil
	}

	count := 0
	if c, err := a.cart.Load(ctx); err == nil {
		count = c.ItemCount()
	}
	fmt.Print(term.Navbar(session, count))
}

func (a *cli) runMenu(ctx context.Context) error {
	a.printNavbar(ctx)

	products, err := a.catalog.Menu(ctx)
	if err != nil {
		fmt.Println(term.MenuFailureMessage)
		return err
	}
	fmt.Print(term.Products(products))
	return nil
}

func (a *cli) runMood(ctx context.Context, mood string) error {
	a.printNavbar(ctx)
	fmt.Println(term.MoodTitle(mood))

	products, err := a.catalog.Mood(ctx, mood)
	if err != nil {
		fmt.Println(term.MoodFailureMessage)
		return err
	}
	fmt.Print(term.Products(products))
	return nil
}

func (a *cli) runCart(ctx context.Context) error {
	a.printNavbar(ctx)

	c, err := a.cart.Load(ctx)
	if err != nil {
		return err
	}
	fmt.Print(term.Cart(c))
	return nil
}

func (a *cli) runAdd(ctx context.Context, productID string) error {
	product, err := a.catalog.Find(ctx, productID)
	if err != nil {
		return err
	}

	c, err := a.cart.Add(ctx, *product)
	if err != nil {
		return err
	}
	fmt.Print(term.Notification(product.Name))
	fmt.Print(term.Cart(c))
	return nil
}

func (a *cli) runRemove(ctx context.Context, productID string) error {
	c, err := a.cart.Remove(ctx, productID)
	if err != nil {
		return err
	}
	fmt.Print(term.Cart(c))
	return nil
}

func (a *cli) runClear(ctx context.Context) error {
	c, cleared, err := a.cart.Clear(ctx, func() bool {
		fmt.Print("Clear the entire cart? [y/N]: ")
		line, err := a.stdin.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})
	if err != nil {
		return err
	}
	if !cleared {
		fmt.Println("Cart left unchanged.")
	}
	fmt.Print(term.Cart(c))
	return nil
}

func (a *cli) runLogin(ctx context.Context, email, password string) error {
	session, err := a.identity.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome, %s\n", session.Name)

	// Guest-cart lines do not move to the account cart on login
	if guest, err := a.guestCart.Get(); err == nil && !guest.IsEmpty() {
		fmt.Println("Note: items added while browsing as a guest stay in the local cart.")
	}
	return nil
}

func (a *cli) runRegister(ctx context.Context, name, email, password, confirmPassword string) error {
	session, err := a.identity.Register(ctx, name, email, password, confirmPassword)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome, %s\n", session.Name)
	return nil
}

func (a *cli) runLogout() error {
	if err := a.identity.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func (a *cli) runOrders(ctx context.Context) error {
	a.printNavbar(ctx)

	orders, err := a.history.MyOrders(ctx)
	if err != nil {
		return err
	}
	fmt.Print(term.Orders(orders))
	return nil
}

func (a *cli) runCheckout(ctx context.Context, location, method, paymentMethodID string) error {
	paymentMethod, err := parsePaymentMethod(method)
	if err != nil {
		return err
	}

	receipt, err := a.checkout.PlaceOrder(ctx, location, paymentMethod, paymentMethodID)
	if err != nil {
		return err
	}

	fmt.Println(receipt.Message)
	fmt.Printf("Order ID: %s\n", receipt.Order.ID)
	fmt.Printf("Total: ₹%s\n", receipt.Order.TotalPrice.StringFixed(2))
	return nil
}

func parsePaymentMethod(method string) (domorder.PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "cod", "cash", "cash on delivery":
		return domorder.PaymentCashOnDelivery, nil
	case "card":
		return domorder.PaymentCard, nil
	default:
		return "", fmt.Errorf("unknown payment method %q (use cod or card)", method)
	}
}

func printUsage() {
	fmt.Println("Brew Leaf terminal client")
	fmt.Println()
	fmt.Println("Usage: brewleaf [flags] <command> [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  menu                                              Show the full menu")
	fmt.Println("  mood <mood>                                       Show recommendations for a mood")
	fmt.Println("  cart                                              Show the cart")
	fmt.Println("  add <productID>                                   Add one unit of a product to the cart")
	fmt.Println("  remove <productID>                                Remove a product from the cart")
	fmt.Println("  clear                                             Empty the cart (asks for confirmation)")
	fmt.Println("  login <email> <password>                          Log in")
	fmt.Println("  register <name> <email> <password> <confirm>      Create an account")
	fmt.Println("  logout                                            Log out")
	fmt.Println("  orders                                            Show order history")
	fmt.Println("  checkout <location> <cod|card> [paymentMethodID]  Place an order")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -log-level string   Log level (debug, info, warn, error)")
}
