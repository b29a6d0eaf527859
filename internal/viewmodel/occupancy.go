package viewmodel

import "github.com/noah-isme/cemetery-console/internal/models"

// OccupancyStats summarises niche states.
type OccupancyStats struct {
	Total          int
	Available      int
	Occupied       int
	Maintenance    int
	AvailablePct   int
	OccupiedPct    int
	MaintenancePct int
	Color          string
}

// Occupancy counts niches per stored state.
func Occupancy(niches []models.Niche) OccupancyStats {
	stats := OccupancyStats{Total: len(niches)}
	for _, n := range niches {
		switch n.Estado {
		case models.NicheAvailable:
			stats.Available++
		case models.NicheOccupied:
			stats.Occupied++
		case models.NicheMaintenance:
			stats.Maintenance++
		}
	}
	stats.AvailablePct = Percent(stats.Available, stats.Total)
	stats.OccupiedPct = Percent(stats.Occupied, stats.Total)
	stats.MaintenancePct = Percent(stats.Maintenance, stats.Total)
	stats.Color = OccupancyColor(stats.OccupiedPct)
	return stats
}

// OccupancyColor picks the text class for an occupancy percentage.
func OccupancyColor(pct int) string {
	switch {
	case pct >= 90:
		return "text-red-600"
	case pct >= 70:
		return "text-amber-500"
	default:
		return "text-green-600"
	}
}
