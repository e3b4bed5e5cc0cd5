// Package awis provides a client for the Alexa Web Information Service
// UrlInfo action.
//
// # Overview
//
// A lookup takes a host and a set of [ResponseGroup] values, signs the
// request with signature version 2 (HMAC-SHA256), sends one GET and turns
// the XML answer into a [URLInfo]:
//
//	client, err := awis.NewClient(awis.Credentials{
//	    AccessKeyID:     os.Getenv("AWIS_ACCESS_KEY_ID"),
//	    SecretAccessKey: os.Getenv("AWIS_SECRET_ACCESS_KEY"),
//	})
//	info, err := client.FetchURLInfo(ctx, "github.com", awis.GroupRank, awis.GroupSiteData)
//
// # Partial documents
//
// The service only returns the subtrees of the groups that were requested.
// Every field of [URLInfo] is therefore optional: pointers stay nil and
// collections stay empty when their subtree is missing. A value that is
// present but cannot be converted is recorded in URLInfo.FieldErrors
// without failing the lookup.
//
// # Errors
//
// Whole-call failures are *errors.Error values from pkg/errors:
//
//   - TRANSPORT_FAILURE: connection errors, timeouts, non-2xx statuses
//   - SERVICE_FAULT: the body carries a [Fault] (AuthFailure, SignatureDoesNotMatch, ...)
//   - MALFORMED_RESPONSE: the body is not XML or nothing in it could be read
//
// Branch on them with errors.Is(err, code) from pkg/errors, or extract the
// [Fault] with the standard errors.As.
package awis
