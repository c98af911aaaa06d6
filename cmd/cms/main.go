// cms es el cliente de terminal del catálogo: abre sesión con las credenciales demo,
// la guarda en un archivo JSON y muestra el catálogo y sus estadísticas.
//
// Uso:
//
//	cms [-store ruta] [-latency 800ms] login <email> <password>
//	cms logout
//	cms whoami
//	cms products [-search texto] [-category Grains] [-status low-stock]
//	cms stats
//
// La sesión sobrevive entre ejecuciones; el catálogo vuelve a la semilla en cada una.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/jhoicas/commodities-cms/internal/application/catalog"
	"github.com/jhoicas/commodities-cms/internal/application/session"
	"github.com/jhoicas/commodities-cms/internal/domain"
	"github.com/jhoicas/commodities-cms/internal/infrastructure/directory"
	"github.com/jhoicas/commodities-cms/internal/infrastructure/filestore"
	"github.com/jhoicas/commodities-cms/pkg/money"
)

var (
	errUsage       = errors.New("uso: cms [-store ruta] login|logout|whoami|products|stats")
	errNotLoggedIn = errors.New("no hay sesión activa: ejecute cms login <email> <password>")
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cms", "session.json")
	}
	return filepath.Join(home, ".cms", "session.json")
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("cms", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	storePath := global.String("store", defaultStorePath(), "archivo de sesión")
	latency := global.Duration("latency", session.DefaultLatency, "demora simulada del login")
	if err := global.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	rest := global.Args()
	if len(rest) == 0 {
		return errUsage
	}

	dir, err := directory.NewDemoDirectory()
	if err != nil {
		return err
	}
	holder := session.NewHolder(dir, filestore.New(*storePath), session.Config{Latency: *latency})
	if _, _, err := holder.Restore(ctx); err != nil {
		return fmt.Errorf("restaurar sesión: %w", err)
	}
	engine := catalog.NewEngine(catalog.SeedProducts())

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "login":
		return login(ctx, holder, cmdArgs, out)
	case "logout":
		if err := holder.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Sesión cerrada")
		return nil
	case "whoami":
		id, ok := holder.Current()
		if !ok {
			return errNotLoggedIn
		}
		fmt.Fprintf(out, "%s <%s> rol=%s\n", id.Name, id.Email, id.Role)
		return nil
	case "products":
		if !holder.IsAuthenticated() {
			return errNotLoggedIn
		}
		return products(engine, cmdArgs, out)
	case "stats":
		if !holder.IsAuthenticated() {
			return errNotLoggedIn
		}
		if !holder.IsManager() {
			return fmt.Errorf("estadísticas: %w", domain.ErrForbidden)
		}
		return stats(engine, out)
	default:
		return fmt.Errorf("comando desconocido %q: %w", cmd, errUsage)
	}
}

func login(ctx context.Context, holder *session.Holder, args []string, out io.Writer) error {
	if len(args) != 2 {
		return errors.New("uso: cms login <email> <password>")
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	id, err := holder.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Bienvenido, %s (%s)\n", id.Name, id.Role)
	return nil
}

func products(engine *catalog.Engine, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var q catalog.Query
	fs.StringVar(&q.Search, "search", "", "texto en nombre o categoría")
	fs.StringVar(&q.Category, "category", catalog.All, "categoría exacta")
	fs.StringVar(&q.Status, "status", catalog.All, "in-stock, low-stock u out-of-stock")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("products: %w", err)
	}

	items := engine.Filter(q)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tCATEGORÍA\tCANTIDAD\tPRECIO\tVALOR\tESTADO")
	for _, p := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s %s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Category, money.Quantity(p.Quantity), p.Unit,
			money.Format(p.Price), money.Format(p.Value()), p.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d productos\n", len(items))
	return nil
}

func stats(engine *catalog.Engine, out io.Writer) error {
	ov := engine.Overview(catalog.DefaultTopProducts)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Productos\t%d\n", ov.Stats.TotalProducts)
	fmt.Fprintf(w, "Valor total\t%s\n", money.Format(ov.Stats.TotalValue))
	fmt.Fprintf(w, "Stock bajo\t%d\n", ov.Stats.LowStock)
	fmt.Fprintf(w, "Sin stock\t%d\n", ov.Stats.OutOfStock)
	fmt.Fprintf(w, "Categorías\t%d\n", ov.Stats.Categories)
	fmt.Fprintln(w, "\t")
	fmt.Fprintln(w, "Top por valor\t")
	for i, p := range ov.Top {
		fmt.Fprintf(w, "%d. %s\t%s\n", i+1, p.Name, money.Format(p.Value()))
	}
	return w.Flush()
}
