package species

import (
	"strings"

	"github.com/i474232898/plantcare-engine/internal/common"
)

// Fixed allow-lists consulted by the watering adjustment overrides. Matching
// is on normalized scientific name; a genus entry covers every species in it.
var (
	droughtTolerant = []string{
		"aloe",
		"sansevieria",
		"dracaena trifasciata",
		"zamioculcas",
		"echeveria",
		"crassula",
		"opuntia",
		"haworthia",
		"agave",
		"sedum",
		"lavandula",
		"rosmarinus",
		"salvia rosmarinus",
		"thymus",
	}

	moistureLoving = []string{
		"spathiphyllum",
		"nephrolepis",
		"adiantum",
		"calathea",
		"goeppertia",
		"mentha",
		"cyperus",
		"colocasia",
		"acorus",
		"lactuca",
	}
)

// IsDroughtTolerant reports whether name is on the drought-tolerant list.
func IsDroughtTolerant(name string) bool {
	return onList(droughtTolerant, name)
}

// IsMoistureLoving reports whether name is on the moisture-loving list.
func IsMoistureLoving(name string) bool {
	return onList(moistureLoving, name)
}

func onList(list []string, name string) bool {
	n := common.NormalizeName(name)
	if n == "" {
		return false
	}
	for _, entry := range list {
		if n == entry || strings.HasPrefix(n, entry+" ") {
			return true
		}
	}
	return false
}
