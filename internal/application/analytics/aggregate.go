package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"

	"github.com/jhoicas/paytrack-api/internal/application/dto"
	"github.com/jhoicas/paytrack-api/internal/domain/entity"
)

// UnknownLabel agrupa las entradas cuya empresa o creador ya no existe.
const UnknownLabel = "unknown"

// monthLayout clave de agrupación mensual (UTC).
const monthLayout = "2006-01"

// Lookup resuelve un id a su nombre visible; ok=false si la referencia está colgante.
type Lookup func(id string) (name string, ok bool)

// MapLookup adapta un mapa id → nombre.
func MapLookup(m map[string]string) Lookup {
	return func(id string) (string, bool) {
		name, ok := m[id]
		return name, ok
	}
}

type group struct {
	count     int
	validated int
	amount    decimal.Decimal
}

func (g *group) add(e *entity.PaymentEntry) {
	g.count++
	if e.IsValidated {
		g.validated++
	}
	g.amount = g.amount.Add(e.Amount)
}

// Aggregate calcula totales y agrupaciones en una sola pasada sobre las entradas.
// Con col == nil los nombres se ordenan por bytes.
func Aggregate(entries []*entity.PaymentEntry, companies, users Lookup, col *collate.Collator) *dto.AnalyticsDTO {
	out := &dto.AnalyticsDTO{
		TotalAmount:     decimal.Zero,
		ValidatedAmount: decimal.Zero,
		PendingAmount:   decimal.Zero,
	}
	byCompany := map[string]*group{}
	byEmployee := map[string]*group{}
	byMonth := map[string]*group{}

	for _, e := range entries {
		out.TotalEntries++
		out.TotalAmount = out.TotalAmount.Add(e.Amount)
		if e.IsValidated {
			out.ValidatedEntries++
			out.ValidatedAmount = out.ValidatedAmount.Add(e.Amount)
		} else {
			out.PendingEntries++
			out.PendingAmount = out.PendingAmount.Add(e.Amount)
		}

		bucket(byCompany, label(companies, e.CompanyID)).add(e)
		bucket(byEmployee, label(users, e.CreatedBy)).add(e)
		bucket(byMonth, e.CreatedAt.UTC().Format(monthLayout)).add(e)
	}

	out.ByCompany = rows(byCompany, byName(col))
	out.ByEmployee = rows(byEmployee, byName(col))
	// "2006-01" ordena lexicográficamente igual que cronológicamente.
	out.ByMonth = rows(byMonth, func(a, b string) bool { return a > b })
	return out
}

func label(lookup Lookup, id string) string {
	if lookup == nil {
		return UnknownLabel
	}
	if name, ok := lookup(id); ok {
		return name
	}
	return UnknownLabel
}

func bucket(m map[string]*group, key string) *group {
	g, ok := m[key]
	if !ok {
		g = &group{amount: decimal.Zero}
		m[key] = g
	}
	return g
}

func byName(col *collate.Collator) func(a, b string) bool {
	return func(a, b string) bool {
		if col != nil {
			if c := col.CompareString(a, b); c != 0 {
				return c < 0
			}
		}
		return a < b
	}
}

func rows(m map[string]*group, less func(a, b string) bool) []dto.AnalyticsGroupDTO {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })

	out := make([]dto.AnalyticsGroupDTO, 0, len(keys))
	for _, k := range keys {
		g := m[k]
		out = append(out, dto.AnalyticsGroupDTO{
			Name:      k,
			Count:     g.count,
			Validated: g.validated,
			Amount:    g.amount,
		})
	}
	return out
}
