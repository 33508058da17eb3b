// Package roles maps monthly focus hours to activity tiers and keeps
// each member's Discord roles reconciled with exactly one tier.
package roles

// Tier is one of the seven mutually exclusive activity levels.
type Tier int

const (
	TierNone Tier = iota
	Tier1
	Tier2
	Tier3
	Tier4
	Tier5
	Tier6
)

func (t Tier) String() string {
	switch t {
	case Tier1:
		return "level one"
	case Tier2:
		return "level two"
	case Tier3:
		return "level three"
	case Tier4:
		return "level four"
	case Tier5:
		return "level five"
	case Tier6:
		return "level six"
	default:
		return "none"
	}
}

// tierFloors are the minimum whole monthly hours for each tier above
// TierNone, lowest first. Intervals are half-open: reaching a floor
// enters the tier, reaching the next floor leaves it.
var tierFloors = []struct {
	hours int64
	tier  Tier
}{
	{3, Tier1},
	{10, Tier2},
	{25, Tier3},
	{60, Tier4},
	{100, Tier5},
	{250, Tier6},
}

// TierForMonthlyHours returns the activity tier for a month-to-date
// hour count.
func TierForMonthlyHours(hours int64) Tier {
	tier := TierNone
	for _, f := range tierFloors {
		if hours >= f.hours {
			tier = f.tier
		}
	}
	return tier
}

// TierForMonthlySeconds converts month-to-date seconds to whole hours
// and returns the matching tier.
func TierForMonthlySeconds(seconds int64) Tier {
	return TierForMonthlyHours(seconds / 3600)
}
