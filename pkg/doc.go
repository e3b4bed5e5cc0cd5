// Package pkg provides the libraries behind the awis command.
//
// # Overview
//
// awis looks up a host in the Alexa Web Information Service (AWIS) through
// its UrlInfo action: traffic rank, inbound link count, usage statistics,
// rank by country and city, related sites and site metadata. The pkg
// directory is organized into these areas:
//
//  1. [integrations/awis] - The UrlInfo client: request signing, response
//     parsing and the fetch facade
//  2. [integrations] - Shared HTTP plumbing for API clients
//  3. [xmldoc] and [tree] - Schema-free XML decoding and safe navigation
//  4. [errors] - Coded errors and input validation
//  5. [observability] - Hook interfaces for HTTP and fetch events
//
// # Architecture
//
// The data flow of a single lookup:
//
//	host + response groups
//	         ↓
//	    [integrations/awis] Signer (canonical query + HMAC-SHA256 signature)
//	         ↓
//	    [integrations] Client (one GET, status gate, body limit)
//	         ↓
//	    [xmldoc] (XML body → generic tree)
//	         ↓
//	    [integrations/awis] fault detection, then Parse via [tree]
//	         ↓
//	    URLInfo
//
// # Quick Start
//
//	import "github.com/matzehuels/awis/pkg/integrations/awis"
//
//	client, err := awis.NewClient(awis.Credentials{
//	    AccessKeyID:     os.Getenv("AWIS_ACCESS_KEY_ID"),
//	    SecretAccessKey: os.Getenv("AWIS_SECRET_ACCESS_KEY"),
//	})
//	if err != nil {
//	    return err
//	}
//	info, err := client.FetchURLInfo(ctx, "github.com", awis.GroupRank)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(*info.Rank)
//
// # Error Handling
//
// Every failure carries an [errors.Code]. A lookup either returns a URLInfo
// or fails with TRANSPORT_FAILURE, SERVICE_FAULT or MALFORMED_RESPONSE.
// Individual fields that cannot be converted do not fail the lookup; they
// are left absent and listed in URLInfo.FieldErrors.
//
// [integrations/awis]: https://pkg.go.dev/github.com/matzehuels/awis/pkg/integrations/awis
// [integrations]: https://pkg.go.dev/github.com/matzehuels/awis/pkg/integrations
// [xmldoc]: https://pkg.go.dev/github.com/matzehuels/awis/pkg/xmldoc
// [tree]: https://pkg.go.dev/github.com/matzehuels/awis/pkg/tree
// [errors]: https://pkg.go.dev/github.com/matzehuels/awis/pkg/errors
// [errors.Code]: https://pkg.go.dev/github.com/matzehuels/awis/pkg/errors#Code
// [observability]: https://pkg.go.dev/github.com/matzehuels/awis/pkg/observability
package pkg
