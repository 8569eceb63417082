// Package billing implements the billing-cycle engine: effective-dated rule
// resolution, payment-date and cycle-range calculation, the bounded search
// that locates the cycle containing a transaction, and the integer-exact
// installment split.
//
// Every function here is pure. Missing or incomplete data surfaces as an
// empty result or ok=false, never as an error: the engine runs continuously
// over an incrementally-entered dataset and must stay usable against it.
package billing

import (
	"sort"
	"time"

	"github.com/promise4039/gagebu/internal/model"
)

// VersionsByCard groups rule versions per card, each group sorted by
// ValidFrom ascending. Computations build this once per snapshot so version
// resolution is a binary search.
func VersionsByCard(versions []model.CardVersion) map[string][]model.CardVersion {
	byCard := make(map[string][]model.CardVersion)
	for _, v := range versions {
		byCard[v.CardID] = append(byCard[v.CardID], v)
	}
	for id := range byCard {
		sortVersions(byCard[id])
	}
	return byCard
}

func sortVersions(versions []model.CardVersion) {
	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].ValidFrom.Before(versions[j].ValidFrom)
	})
}

// ResolveVersion selects the rule version applicable at ref: the one with the
// latest ValidFrom at or before ref, falling back to the earliest version
// when every ValidFrom is in the future. ok=false means the card has no
// versions at all and therefore no computable schedule.
//
// versions must be sorted by ValidFrom ascending, as VersionsByCard produces.
func ResolveVersion(versions []model.CardVersion, ref time.Time) (model.CardVersion, bool) {
	if len(versions) == 0 {
		return model.CardVersion{}, false
	}
	// First index whose ValidFrom is after ref; the version before it is
	// the latest one at or before ref.
	i := sort.Search(len(versions), func(i int) bool {
		return versions[i].ValidFrom.After(ref)
	})
	if i == 0 {
		return versions[0], true
	}
	return versions[i-1], true
}
