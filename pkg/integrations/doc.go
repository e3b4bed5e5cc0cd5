// Package integrations provides the shared HTTP layer for web service clients.
//
// # Overview
//
// Service clients live in subpackages and embed [Client]:
//
//   - [awis]: Alexa Web Information Service (UrlInfo)
//
// # Client Pattern
//
// Service clients follow a consistent pattern:
//
//	client := awis.NewClient(creds, awis.WithHTTPClient(integrations.NewHTTPClient(5*time.Second)))
//	info, err := client.FetchURLInfo(ctx, "github.com")
//
// The shared [Client] handles:
//   - A single GET per call, with no retry and no cache
//   - Default request headers
//   - Status gating through [StatusError], which matches [ErrNetwork]
//   - HTTP events reported to [observability.HTTPHooks]
//
// Signed query strings use [URLEncode], the strict RFC 3986 encoder,
// rather than [net/url.QueryEscape], which encodes a space as "+".
//
// [awis]: github.com/matzehuels/awis/pkg/integrations/awis
// [observability.HTTPHooks]: github.com/matzehuels/awis/pkg/observability.HTTPHooks
package integrations
