package viewmodel

import (
	"regexp"
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/noah-isme/cemetery-console/internal/models"
)

var nicheNumberPattern = regexp.MustCompile(`(?i)Nicho\s+(\d+[A-Za-z]*)`)

const (
	styleOccupied    = "bg-red-300 text-red-900 hover:bg-red-400"
	styleAvailable   = "border-dashed border-gray-400 bg-gray-50 hover:bg-gray-200"
	styleMaintenance = "bg-yellow-300 text-yellow-900 hover:bg-yellow-400"
	styleUnknown     = "bg-gray-300 text-gray-900"

	badgeOccupied  = "bg-red-100 text-red-800"
	badgeAvailable = "bg-green-100 text-green-800"
	badgeOther     = "bg-yellow-100 text-yellow-800"
)

// DisplayState derives the state shown to operators: maintenance wins, otherwise the
// presence of an occupant decides. A failed occupant lookup must be passed as absent.
func DisplayState(raw models.NicheState, occupantPresent bool) models.NicheState {
	if raw == models.NicheMaintenance {
		return models.NicheMaintenance
	}
	if occupantPresent {
		return models.NicheOccupied
	}
	return models.NicheAvailable
}

// NicheStyle maps a state to the grid cell classes. Unknown states get a neutral style.
func NicheStyle(state models.NicheState) string {
	switch state {
	case models.NicheOccupied:
		return styleOccupied
	case models.NicheAvailable:
		return styleAvailable
	case models.NicheMaintenance:
		return styleMaintenance
	default:
		return styleUnknown
	}
}

// NicheBadge maps a state to the detail badge classes.
func NicheBadge(state models.NicheState) string {
	switch state {
	case models.NicheOccupied:
		return badgeOccupied
	case models.NicheAvailable:
		return badgeAvailable
	default:
		return badgeOther
	}
}

// NicheStateLabel is the legend text for a state.
func NicheStateLabel(state models.NicheState) string {
	switch state {
	case models.NicheOccupied:
		return "Ocupado"
	case models.NicheAvailable:
		return "Disponible"
	case models.NicheMaintenance:
		return "En Mantenimiento"
	default:
		return string(state)
	}
}

// NicheNumber extracts the "Nicho <n>" token from a location label, or returns the label.
func NicheNumber(ubicacion string) string {
	if m := nicheNumberPattern.FindStringSubmatch(ubicacion); len(m) == 2 {
		return m[1]
	}
	return ubicacion
}

// SortNiches returns a copy ordered by niche number. Pure integers compare numerically;
// anything else falls back to Spanish collation with numeric ordering. Ties keep input order.
func SortNiches(niches []models.Niche) []models.Niche {
	// collators are not safe for concurrent use
	col := collate.New(language.Spanish, collate.Numeric, collate.IgnoreCase)

	type keyed struct {
		niche  models.Niche
		number string
	}
	items := make([]keyed, len(niches))
	for i, n := range niches {
		items[i] = keyed{niche: n, number: NicheNumber(n.Ubicacion)}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return compareNumbers(col, items[i].number, items[j].number) < 0
	})

	sorted := make([]models.Niche, len(items))
	for i, item := range items {
		sorted[i] = item.niche
	}
	return sorted
}

func compareNumbers(col *collate.Collator, a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	return col.CompareString(a, b)
}

// NicheCell is one square of the niche map.
type NicheCell struct {
	Codigo    string
	Ubicacion string
	Number    string
	State     models.NicheState
	Style     string
	Title     string
}

// NicheCells sorts niches and maps them to grid cells using their stored state.
func NicheCells(niches []models.Niche) []NicheCell {
	sorted := SortNiches(niches)
	cells := make([]NicheCell, 0, len(sorted))
	for _, n := range sorted {
		cells = append(cells, NicheCell{
			Codigo:    n.Codigo,
			Ubicacion: n.Ubicacion,
			Number:    NicheNumber(n.Ubicacion),
			State:     n.Estado,
			Style:     NicheStyle(n.Estado),
			Title:     n.Ubicacion + " - " + string(n.Estado),
		})
	}
	return cells
}
