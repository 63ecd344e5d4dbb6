// Package gatewaysdk provides the request/response types of the edge
// gateway's HTTP API and a small typed client for them.
//
// The gateway's own handlers marshal these exact types, so the SDK and the
// service cannot drift apart silently.
//
// # Usage
//
//	client := gatewaysdk.NewClient("https://gateway.example.com", token)
//
//	session, err := client.MintSession(ctx, refreshToken)
//	signed, err := client.SignedPutURL(ctx, "uploads/a.bin")
//	text, err := client.TextGenerate(ctx, gatewaysdk.TextGenerateRequest{
//		Prompt: "hello",
//	})
//
// All methods return *APIError for non-2xx responses, carrying the
// gateway's stable machine-parseable error code.
package gatewaysdk
