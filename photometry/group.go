package photometry

import "sort"

// DefaultMinObservations is the fewest observations an observer needs to be
// merged at all.
const DefaultMinObservations = 10

// Group partitions observations by observer, drops observers with fewer than
// minObservations, and ranks the rest by descending size. The largest group
// seeds the composite, so this order is the merge order.
//
// Observers with equal counts are ranked in reverse order of their first
// appearance in obs. Within a group, observations keep their input order.
func Group(obs []Observation, minObservations int) []ObserverGroup {
	groups, _ := groupWithDropped(obs, minObservations)
	return groups
}

// groupWithDropped is Group, also returning the observers that fell below the
// threshold in order of first appearance.
func groupWithDropped(obs []Observation, minObservations int) ([]ObserverGroup, []string) {
	firstSeen := make(map[string]int)
	byObserver := make(map[string][]Observation)
	order := make([]string, 0)

	for _, o := range obs {
		if _, exists := firstSeen[o.Observer]; !exists {
			firstSeen[o.Observer] = len(order)
			order = append(order, o.Observer)
		}
		byObserver[o.Observer] = append(byObserver[o.Observer], o)
	}

	groups := make([]ObserverGroup, 0, len(order))
	dropped := make([]string, 0)
	for _, observer := range order {
		members := byObserver[observer]
		if len(members) < minObservations {
			dropped = append(dropped, observer)
			continue
		}
		groups = append(groups, ObserverGroup{Observer: observer, Observations: members})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Len() != groups[j].Len() {
			return groups[i].Len() > groups[j].Len()
		}
		return firstSeen[groups[i].Observer] > firstSeen[groups[j].Observer]
	})

	return groups, dropped
}
