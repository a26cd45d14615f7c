// Command shop is a terminal storefront: it talks to the Urban Loft API and
// keeps the login session on disk, so closing the terminal does not log the
// shopper out.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/urban-loft/urban_loft/internal/catalog"
	"github.com/urban-loft/urban_loft/internal/session"
	"github.com/urban-loft/urban_loft/internal/shopclient"
)

const usage = `usage: shop <command> [flags]

commands:
  register   create an account
  login      log in and store the session
  logout     clear the stored session
  whoami     show the locally stored session
  me         fetch the profile from the server (requires login)
  products   list products
  featured   list featured products
  product    show one product by id
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	store := session.Open(sessionPath())
	client := shopclient.New(apiURL(), store)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "register":
		err = runRegister(ctx, client, os.Args[2:])
	case "login":
		err = runLogin(ctx, client, os.Args[2:])
	case "logout":
		err = client.Logout()
		if err == nil {
			fmt.Println("logged out")
		}
	case "whoami":
		runWhoami(store)
	case "me":
		err = runMe(ctx, client)
	case "products":
		err = runProducts(ctx, client, os.Args[2:])
	case "featured":
		err = runFeatured(ctx, client, os.Args[2:])
	case "product":
		err = runProduct(ctx, client, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "shop: %v\n", err)
		os.Exit(1)
	}
}

func runRegister(ctx context.Context, client *shopclient.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	in := shopclient.RegisterInput{}
	fs.StringVar(&in.FirstName, "first-name", "", "first name")
	fs.StringVar(&in.LastName, "last-name", "", "last name")
	fs.StringVar(&in.Email, "email", "", "email address")
	fs.StringVar(&in.Password, "password", "", "password")
	fs.StringVar(&in.AddressLine1, "address1", "", "address line 1")
	fs.StringVar(&in.AddressLine2, "address2", "", "address line 2")
	fs.StringVar(&in.City, "city", "", "city")
	fs.StringVar(&in.State, "state", "", "state")
	fs.StringVar(&in.PostalCode, "postal-code", "", "postal code")
	fs.StringVar(&in.Country, "country", "", "country")
	fs.Parse(args)

	if err := client.Register(ctx, in); err != nil {
		return err
	}
	fmt.Println("registered, you can now log in")
	return nil
}

func runLogin(ctx context.Context, client *shopclient.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	u, err := client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", u.FirstName, u.Email)
	return nil
}

func runWhoami(store *session.Store) {
	u, ok := store.User()
	if !store.Authenticated() || !ok {
		fmt.Println("not logged in")
		return
	}
	fmt.Printf("%s %s <%s>\n", u.FirstName, u.LastName, u.Email)
}

func runMe(ctx context.Context, client *shopclient.Client) error {
	u, err := client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s <%s> (id %s)\n", u.FirstName, u.LastName, u.Email, u.UserID)
	return nil
}

func runProducts(ctx context.Context, client *shopclient.Client, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	limit := fs.Int("limit", 20, "page size")
	offset := fs.Int("offset", 0, "page offset")
	fs.Parse(args)

	products, err := client.Products(ctx, *limit, *offset)
	if err != nil {
		return err
	}
	printProducts(products)
	return nil
}

func runFeatured(ctx context.Context, client *shopclient.Client, args []string) error {
	fs := flag.NewFlagSet("featured", flag.ExitOnError)
	limit := fs.Int("limit", 8, "page size")
	fs.Parse(args)

	products, err := client.Featured(ctx, *limit)
	if err != nil {
		return err
	}
	printProducts(products)
	return nil
}

func runProduct(ctx context.Context, client *shopclient.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: shop product <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}

	p, err := client.Product(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("#%d %s $%.2f\n", p.ID, p.Name, p.Price)
	if p.Description != "" {
		fmt.Println(p.Description)
	}
	fmt.Printf("in stock: %d\n", p.StockLevel)
	return nil
}

func printProducts(products []catalog.Product) {
	if len(products) == 0 {
		fmt.Println("no products")
		return
	}
	for _, p := range products {
		stock := "in stock"
		if p.StockLevel <= 0 {
			stock = "out of stock"
		}
		fmt.Printf("#%-4d %-30s $%8.2f  %s\n", p.ID, p.Name, p.Price, stock)
	}
}

func apiURL() string {
	if v := os.Getenv("SHOP_API_URL"); v != "" {
		return v
	}
	return "http://localhost:5000"
}

func sessionPath() string {
	if v := os.Getenv("SHOP_SESSION_FILE"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".urbanloft", "session.json")
}
