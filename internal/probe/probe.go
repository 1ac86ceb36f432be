package probe

import (
	"context"
	"sort"

	"github.com/lunamoth/resona/internal/api"
	"github.com/lunamoth/resona/internal/logger"
)

// Run probes catalog endpoints through the normal signing and retry
// machinery, bypassing the cache and the typed parsers: the goal is shape
// discovery, not product data. With includeImplemented false only the
// endpoints without a parser are probed.
func Run(ctx context.Context, client *api.Client, includeImplemented bool) []api.ProbeResult {
	var results []api.ProbeResult

	catalog := make([]api.EndpointConfig, 0, len(api.BrowseEndpoints)+len(api.ActionEndpoints))
	catalog = append(catalog, api.BrowseEndpoints...)
	catalog = append(catalog, api.ActionEndpoints...)

	for _, ep := range catalog {
		if ep.Implemented && !includeImplemented {
			continue
		}

		if ctx.Err() != nil {
			break
		}

		logger.Info("probing %s (%s)", ep.ID, ep.Name)

		result := client.Probe(ctx, ep)
		sort.Strings(result.TopLevelKeys)
		sort.Strings(result.RendererKeys)

		results = append(results, result)
	}

	return results
}
