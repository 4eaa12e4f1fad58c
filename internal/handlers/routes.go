package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/tokenlink/tokenlink/internal/ratelimit"
)

// RegisterRoutes registers all redirect routes with per-endpoint rate limit
// configuration. Endpoints without metadata use the default client budget.
func RegisterRoutes(api huma.API, redirects *RedirectHandler, health *HealthHandler) {
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/add-redirect",
		Summary:     "Create redirect",
		Description: "Creates a redirect and returns links embedding its key and signed token.",
		Tags:        []string{"Redirects"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 10},
					{Window: time.Hour, Max: 100},
				},
			},
		},
	}, redirects.AddRedirect)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{key}/{token}",
		Summary:     "Resolve redirect",
		Description: "Verifies the token, cross-checks it against the stored credential, and redirects.",
		Tags:        []string{"Redirects"},
	}, redirects.Resolve)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/{key}",
		Summary:     "Resolve redirect (query token)",
		Description: "Same resolution pipeline with the token supplied as a query parameter.",
		Tags:        []string{"Redirects"},
	}, redirects.ResolveQuery)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/redirects",
		Summary:     "List redirects",
		Tags:        []string{"Admin"},
	}, redirects.ListRedirects)

	huma.Register(api, huma.Operation{
		Method:      http.MethodPut,
		Path:        "/redirects/{key}",
		Summary:     "Update redirect destination",
		Tags:        []string{"Admin"},
	}, redirects.UpdateRedirect)

	huma.Register(api, huma.Operation{
		Method:      http.MethodDelete,
		Path:        "/redirects/{key}",
		Summary:     "Delete redirect",
		Tags:        []string{"Admin"},
	}, redirects.DeleteRedirect)

	huma.Register(api, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/health",
		Summary: "Health check",
		Tags:    []string{"Health"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Disabled: true,
			},
		},
	}, health.Check)
}
