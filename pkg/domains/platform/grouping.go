package platform

import "github.com/armii/platform-admin/pkg/entities"

// GroupByPlatformName folds pairs into one group per platform name. Used by
// the selection/connection screen.
func GroupByPlatformName(pairs []entities.PlatformAccountPair) []entities.GroupedPlatformData {
	return groupBy(pairs, func(p entities.PlatformAccountPair) string { return p.PlatformName })
}

// GroupByPlatformType folds pairs into one group per platform type. Used by
// the read-only set screen. The group keeps the name of the first pair seen.
func GroupByPlatformType(pairs []entities.PlatformAccountPair) []entities.GroupedPlatformData {
	return groupBy(pairs, func(p entities.PlatformAccountPair) string { return p.PlatformType })
}

// groupBy keeps first-seen key order and drops repeated addresses within a group.
func groupBy(pairs []entities.PlatformAccountPair, key func(entities.PlatformAccountPair) string) []entities.GroupedPlatformData {
	groups := make([]entities.GroupedPlatformData, 0)
	index := make(map[string]int)
	seen := make(map[string]map[string]struct{})

	for _, pair := range pairs {
		k := key(pair)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			seen[k] = make(map[string]struct{})
			groups = append(groups, entities.GroupedPlatformData{
				PlatformType:     pair.PlatformType,
				PlatformName:     pair.PlatformName,
				AccountAddresses: []string{},
			})
		}
		if _, dup := seen[k][pair.AccountAddress]; dup {
			continue
		}
		seen[k][pair.AccountAddress] = struct{}{}
		groups[i].AccountAddresses = append(groups[i].AccountAddresses, pair.AccountAddress)
	}

	return groups
}
