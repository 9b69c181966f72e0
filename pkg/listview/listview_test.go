package listview_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autopartes-api/pkg/listview"
)

type repuesto struct {
	ID          int
	Descripcion string
	Codigo      string
	Estado      bool
}

func repuestos(n int) []repuesto {
	out := make([]repuesto, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, repuesto{ID: i, Descripcion: fmt.Sprintf("Filtro %d", i), Codigo: fmt.Sprintf("F-%03d", i), Estado: true})
	}
	return out
}

func campos(r repuesto) []string { return []string{r.Descripcion, r.Codigo} }

func TestTotalPages(t *testing.T) {
	cases := []struct{ total, size, want int }{
		{0, 10, 0}, {1, 10, 1}, {10, 10, 1}, {11, 10, 2}, {21, 10, 3}, {5, 0, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, listview.TotalPages(c.total, c.size), "total=%d size=%d", c.total, c.size)
	}
}

func TestPaginate_ContenidoDeCadaPagina(t *testing.T) {
	for _, total := range []int{1, 9, 10, 11, 20, 21, 35} {
		items := repuestos(total)
		pages := listview.TotalPages(total, 10)
		for k := 1; k <= pages; k++ {
			rows, info := listview.Paginate(items, k, 10)
			end := k * 10
			if end > total {
				end = total
			}
			assert.Equal(t, items[(k-1)*10:end], rows)
			assert.Equal(t, k, info.Page)
		}
		last, _ := listview.Paginate(items, pages, 10)
		want := total % 10
		if want == 0 {
			want = 10
		}
		assert.Len(t, last, want, "total=%d", total)
	}
}

func TestPaginate_PaginaFueraDeRangoSeAcota(t *testing.T) {
	rows, info := listview.Paginate(repuestos(21), 9, 10)
	assert.Equal(t, 3, info.Page)
	assert.Len(t, rows, 1)

	rows, info = listview.Paginate([]repuesto{}, 3, 10)
	assert.Equal(t, 1, info.Page)
	assert.Empty(t, rows)
}

func TestFilter_SinMayusculasNiTildes(t *testing.T) {
	items := []repuesto{
		{ID: 1, Descripcion: "Pastilla de FRENO delantera", Codigo: "PF-01"},
		{ID: 2, Descripcion: "Bujía iridium", Codigo: "BJ-10"},
		{ID: 3, Descripcion: "Aceite 20W50", Codigo: "AC-20"},
	}
	assert.Equal(t, []int{1}, ids(listview.Filter(items, "freno", campos)))
	assert.Equal(t, []int{2}, ids(listview.Filter(items, "BUJIA", campos)))
	assert.Equal(t, []int{3}, ids(listview.Filter(items, "ac-2", campos)))
	assert.Len(t, listview.Filter(items, "   ", campos), 3)
	assert.Empty(t, listview.Filter(items, "radiador", campos))
}

func TestView_EliminarUltimoDeLaPagina3AcotaA2(t *testing.T) {
	store := repuestos(21)
	list := func(context.Context) ([]repuesto, error) {
		out := make([]repuesto, 0, len(store))
		for _, r := range store {
			if r.Estado {
				out = append(out, r)
			}
		}
		return out, nil
	}
	v := listview.NewView(10, campos)
	require.NoError(t, v.Refresh(context.Background(), list))
	v.SetPage(3)
	require.Equal(t, 3, v.Page())
	require.Len(t, v.Rows(), 1)

	del := func(context.Context) error {
		store[20].Estado = false
		return nil
	}
	require.NoError(t, v.Mutate(context.Background(), del, list))

	assert.Equal(t, 2, v.Page())
	assert.Len(t, v.Rows(), 10)
	assert.Equal(t, 2, v.TotalPages())
}

func TestView_BusquedaAcotaPagina(t *testing.T) {
	v := listview.NewView(10, campos)
	v.SetItems(repuestos(30))
	v.SetPage(3)
	v.SetSearch("F-00") // 9 coincidencias: F-001..F-009
	assert.Equal(t, 1, v.Page())
	assert.Len(t, v.Rows(), 9)
}

func TestView_RefreshConErrorConservaEstado(t *testing.T) {
	v := listview.NewView(10, campos)
	v.SetItems(repuestos(5))
	err := v.Refresh(context.Background(), func(context.Context) ([]repuesto, error) {
		return nil, errors.New("sin red")
	})
	assert.Error(t, err)
	assert.Len(t, v.Rows(), 5)
}

func TestView_EscrituraFallidaNoRefresca(t *testing.T) {
	v := listview.NewView(10, campos)
	v.SetItems(repuestos(3))
	called := false
	err := v.Mutate(context.Background(),
		func(context.Context) error { return errors.New("422") },
		func(context.Context) ([]repuesto, error) { called = true; return nil, nil },
	)
	assert.Error(t, err)
	assert.False(t, called)
	assert.Len(t, v.Rows(), 3)
}

func ids(rs []repuesto) []int {
	out := make([]int, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}
