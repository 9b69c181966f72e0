// Command panel es la consola de operación del negocio sobre la API:
// sesión persistente, listados con búsqueda y página, bajas y borrador de venta.
//
//	panel login -u admin -p secreto
//	panel listar productos -q bujia -pagina 2
//	panel baja marcas 4 -version 3
//	panel venta agregar 12 2 35.50
//	panel venta enviar
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autopartes-api/pkg/client"
	"github.com/jhoicas/autopartes-api/pkg/config"
	"github.com/jhoicas/autopartes-api/pkg/listview"
	"github.com/jhoicas/autopartes-api/pkg/logger"
	"github.com/jhoicas/autopartes-api/pkg/permission"
	"github.com/jhoicas/autopartes-api/pkg/session"
)

type row = map[string]any

// panel dependencias de los comandos.
type panel struct {
	api      *client.Client
	store    *session.Store
	out      io.Writer
	pageSize int
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	api := client.New(cfg.Session.APIURL)
	store := session.NewStore(session.NewFileStorage(cfg.Session.StoragePath), api, log.Component("session"))
	api.SetTokenSource(store)
	api.SetUnauthorizedHook(store.Invalidate)
	if _, err := store.Hydrate(); err != nil {
		log.Fatal().Err(err).Msg("hidratar sesión")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := &panel{api: api, store: store, out: os.Stdout, pageSize: cfg.Session.PageSize}
	err = p.run(ctx, os.Args[1:])
	store.Wait()
	if err != nil {
		for _, m := range client.Messages(err) {
			fmt.Fprintln(os.Stderr, "error:", m)
		}
		os.Exit(1)
	}
}

func (p *panel) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		p.usage()
		return nil
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return p.login(ctx, rest)
	case "logout":
		p.store.Logout(ctx)
		fmt.Fprintln(p.out, "sesión cerrada")
		return nil
	case "yo":
		return p.whoami()
	case "perfil":
		return p.profile(ctx, rest)
	case "modulos":
		return p.modules(ctx)
	case "listar":
		return p.list(ctx, rest)
	case "baja":
		return p.remove(ctx, rest)
	case "venta":
		return p.sale(ctx, rest)
	default:
		p.usage()
		return fmt.Errorf("comando desconocido %q", cmd)
	}
}

func (p *panel) usage() {
	fmt.Fprintln(p.out, `uso: panel <comando> [opciones]
  login -u <usuario> -p <clave>
  logout | yo | modulos
  perfil [-telefono T] [-email E] [-direccion D] [-nombre N] [-clave C]
  listar <recurso> [-q texto] [-pagina N]
  baja <recurso> <id> [-version V]
  venta ver | cliente <id> [-credito AAAA-MM-DD] | agregar <producto> <cant> <precio> | quitar <producto> | limpiar | enviar`)
	fmt.Fprintln(p.out, "recursos:", strings.Join(resourceNames(), ", "))
}

func (p *panel) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	user := fs.String("u", "", "usuario")
	pass := fs.String("p", "", "clave")
	if err := fs.Parse(args); err != nil {
		return err
	}
	sess, err := p.store.Login(ctx, *user, *pass)
	if err != nil {
		return err
	}
	id := sess.Identity()
	fmt.Fprintf(p.out, "bienvenido %s (módulos: %s)\n", id.Username, strings.Join(id.Slugs(), ", "))
	return nil
}

func (p *panel) whoami() error {
	sess, err := p.store.Current()
	if err != nil {
		return err
	}
	if !sess.Authenticated() {
		fmt.Fprintln(p.out, "sin sesión")
		return nil
	}
	id := sess.Identity()
	role := "usuario"
	if id.IsAdmin {
		role = "administrador"
	}
	fmt.Fprintf(p.out, "%s (%s), token vence %s\n", id.Username, role, sess.ExpiresAt().Local().Format(time.DateTime))
	for _, m := range id.Modules {
		fmt.Fprintf(p.out, "  - %s (%s)\n", m.Name, m.Slug)
	}
	if prof := sess.Profile(); prof != nil && prof.WorkerID != nil {
		fmt.Fprintf(p.out, "trabajador: %s %s | %s | %s\n", prof.Nombres, prof.Apellidos, prof.Telefono, prof.Email)
	}
	return nil
}

func (p *panel) profile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("perfil", flag.ContinueOnError)
	var patch client.ProfileUpdate
	optional(fs, &patch.Telefono, "telefono", "teléfono")
	optional(fs, &patch.Email, "email", "correo")
	optional(fs, &patch.Direccion, "direccion", "dirección")
	optional(fs, &patch.DisplayName, "nombre", "nombre visible")
	optional(fs, &patch.Password, "clave", "nueva clave")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := p.store.UpdateProfile(ctx, patch); err != nil {
		if errors.Is(err, session.ErrNoChanges) {
			fmt.Fprintln(p.out, "sin cambios")
			return nil
		}
		return err
	}
	fmt.Fprintln(p.out, "perfil actualizado")
	return nil
}

// optional registra un flag que solo se envía si el usuario lo pasa.
func optional(fs *flag.FlagSet, dst **string, name, usage string) {
	fs.Func(name, usage, func(v string) error {
		*dst = &v
		return nil
	})
}

func (p *panel) modules(ctx context.Context) error {
	list, err := p.api.Modules(ctx)
	if err != nil {
		return err
	}
	for _, m := range list {
		fmt.Fprintf(p.out, "%-20s %s\n", m.Slug, m.Name)
	}
	return nil
}

// gate aplica el mismo criterio de permisos que el servidor antes de llamar a la API.
func (p *panel) gate(slug permission.Slug, path string) error {
	d := p.store.Gate(slug, path)
	switch d.Outcome {
	case permission.Allow:
		return nil
	case permission.RedirectToLogin:
		return errors.New("inicie sesión: panel login -u <usuario> -p <clave>")
	default:
		return fmt.Errorf("acceso denegado al módulo %s", permission.DisplayName(slug))
	}
}

func (p *panel) list(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("indique el recurso")
	}
	res, err := lookupResource(args[0])
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("listar", flag.ContinueOnError)
	search := fs.String("q", "", "búsqueda")
	page := fs.Int("pagina", 1, "página")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if err := p.gate(res.slug, "/"+res.name); err != nil {
		return err
	}

	entities := client.NewEntityClient[row](p.api, res.name)
	view := listview.NewView(p.pageSize, res.searchFields)
	if err := view.Refresh(ctx, entities.List); err != nil {
		return err
	}
	view.SetSearch(*search)
	view.SetPage(*page)
	p.printRows(res, view.Rows())
	info := view.Info()
	fmt.Fprintf(p.out, "página %d de %d (%d registros)\n", info.Page, info.TotalPages, info.Total)
	return nil
}

func (p *panel) remove(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("uso: baja <recurso> <id> [-version V]")
	}
	res, err := lookupResource(args[0])
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("id inválido %q", args[1])
	}
	fs := flag.NewFlagSet("baja", flag.ContinueOnError)
	version := fs.Int64("version", 0, "versión leída (baja condicional)")
	if err := fs.Parse(args[2:]); err != nil {
		return err
	}
	if err := p.gate(res.slug, "/"+res.name); err != nil {
		return err
	}

	entities := client.NewEntityClient[row](p.api, res.name)
	view := listview.NewView(p.pageSize, res.searchFields)
	err = view.Mutate(ctx, func(ctx context.Context) error {
		if *version > 0 {
			return entities.DeleteVersion(ctx, id, *version)
		}
		return entities.Delete(ctx, id)
	}, entities.List)
	if client.IsConflict(err) {
		return errors.New("el registro cambió desde que lo leyó; vuelva a listarlo")
	}
	if err != nil {
		return err
	}
	active := 0
	for _, r := range view.Filtered() {
		if r["estado"] == true {
			active++
		}
	}
	fmt.Fprintf(p.out, "%s %d dado de baja; quedan %d activos\n", res.name, id, active)
	return nil
}

func (p *panel) sale(ctx context.Context, args []string) error {
	if err := p.gate(permission.SlugVentas, "/ventas"); err != nil {
		return err
	}
	st := p.store.Storage()
	draft, err := loadDraft(st)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"ver"}
	}
	switch args[0] {
	case "ver":
		p.printDraft(draft)
		return nil
	case "cliente":
		if len(args) < 2 {
			return errors.New("uso: venta cliente <id> [-credito AAAA-MM-DD]")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("cliente inválido %q", args[1])
		}
		fs := flag.NewFlagSet("cliente", flag.ContinueOnError)
		due := fs.String("credito", "", "vencimiento para venta a crédito")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		draft.ClientID, draft.PaymentType, draft.DueDate = id, "CONTADO", ""
		if *due != "" {
			if _, err := time.Parse(time.DateOnly, *due); err != nil {
				return fmt.Errorf("fecha inválida %q", *due)
			}
			draft.PaymentType, draft.DueDate = "CREDITO", *due
		}
	case "agregar":
		if len(args) < 4 {
			return errors.New("uso: venta agregar <producto> <cantidad> <precio>")
		}
		pid, err1 := strconv.ParseInt(args[1], 10, 64)
		qty, err2 := strconv.Atoi(args[2])
		price, err3 := decimal.NewFromString(args[3])
		if err := errors.Join(err1, err2, err3); err != nil {
			return fmt.Errorf("línea inválida: %w", err)
		}
		if err := draft.addLine(pid, qty, price); err != nil {
			return err
		}
	case "quitar":
		if len(args) < 2 {
			return errors.New("uso: venta quitar <producto>")
		}
		pid, _ := strconv.ParseInt(args[1], 10, 64)
		if !draft.removeLine(pid) {
			return fmt.Errorf("el producto %s no está en el borrador", args[1])
		}
	case "limpiar":
		if err := st.Delete(session.KeySaleDraft); err != nil {
			return err
		}
		fmt.Fprintln(p.out, "borrador descartado")
		return nil
	case "enviar":
		req, err := draft.request()
		if err != nil {
			return err
		}
		created, err := client.NewEntityClient[row](p.api, "ventas").Create(ctx, req)
		if err != nil {
			// el borrador se conserva para corregirlo y reintentar
			return err
		}
		if err := st.Delete(session.KeySaleDraft); err != nil {
			return err
		}
		fmt.Fprintf(p.out, "venta %v registrada, total %v\n", created["id"], created["total"])
		return nil
	default:
		return fmt.Errorf("subcomando de venta desconocido %q", args[0])
	}
	if err := saveDraft(st, draft); err != nil {
		return err
	}
	p.printDraft(draft)
	return nil
}

func (p *panel) printDraft(d *saleDraft) {
	fmt.Fprintf(p.out, "cliente: %d  pago: %s %s\n", d.ClientID, d.PaymentType, d.DueDate)
	w := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCTO\tCANT\tPRECIO\tSUBTOTAL")
	for _, l := range d.Lines {
		sub := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", l.ProductID, l.Quantity, l.UnitPrice.StringFixed(2), sub.StringFixed(2))
	}
	fmt.Fprintf(w, "\t\tTOTAL\t%s\n", d.total().StringFixed(2))
	_ = w.Flush()
}

func (p *panel) printRows(res resource, rows []row) {
	w := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(res.columns, "\t")))
	for _, r := range rows {
		cells := make([]string, len(res.columns))
		for i, c := range res.columns {
			cells[i] = cell(r[c])
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	_ = w.Flush()
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case bool:
		if x {
			return "activo"
		}
		return "inactivo"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// resource recurso listable del panel.
type resource struct {
	name    string
	slug    permission.Slug
	columns []string
}

// searchFields todos los valores de texto de la fila.
func (r resource) searchFields(x row) []string {
	out := make([]string, 0, len(r.columns))
	for _, c := range r.columns {
		if s, ok := x[c].(string); ok {
			out = append(out, s)
		}
	}
	return out
}

var resources = map[string]resource{
	"productos":          {"productos", permission.SlugProductos, []string{"id", "codigo", "descripcion", "marca", "stock_actual", "estado"}},
	"categorias":         {"categorias", permission.SlugCategorias, []string{"id", "nombre", "descripcion", "estado"}},
	"subcategorias":      {"subcategorias", permission.SlugCategorias, []string{"id", "nombre", "categoria", "estado"}},
	"marcas":             {"marcas", permission.SlugMarcas, []string{"id", "nombre", "estado"}},
	"proveedores":        {"proveedores", permission.SlugProveedores, []string{"id", "ruc", "razon_social", "telefono", "estado"}},
	"trabajadores":       {"trabajadores", permission.SlugTrabajadores, []string{"id", "dni", "nombres", "apellidos", "cargo", "estado"}},
	"clientes":           {"clientes", permission.SlugClientes, []string{"id", "tipo", "nombre", "documento", "telefono", "estado"}},
	"representantes":     {"representantes", permission.SlugClientes, []string{"id", "dni", "nombres", "apellidos", "estado"}},
	"compras":            {"compras", permission.SlugCompras, []string{"id", "fecha", "proveedor", "tipo_pago", "total", "estado"}},
	"ventas":             {"ventas", permission.SlugVentas, []string{"id", "fecha", "cliente", "tipo_pago", "total", "estado"}},
	"cuentas-por-cobrar": {"cuentas-por-cobrar", permission.SlugCuentasCobrar, []string{"id", "tercero", "monto_total", "saldo_pendiente", "fecha_vencimiento", "situacion"}},
	"cuentas-por-pagar":  {"cuentas-por-pagar", permission.SlugCuentasPagar, []string{"id", "tercero", "monto_total", "saldo_pendiente", "fecha_vencimiento", "situacion"}},
	"usuarios":           {"usuarios", permission.SlugUsuarios, []string{"id", "username", "display_name", "is_admin", "estado"}},
}

func lookupResource(name string) (resource, error) {
	r, ok := resources[strings.ToLower(name)]
	if !ok {
		return resource{}, fmt.Errorf("recurso desconocido %q (use: %s)", name, strings.Join(resourceNames(), ", "))
	}
	return r, nil
}

func resourceNames() []string {
	names := make([]string, 0, len(resources))
	for n := range resources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
