// Package pkg provides the libraries behind the pardot CLI and server.
//
// # Overview
//
// pardot fetches the artifacts a site needs to embed Pardot marketing
// content and keeps them in a cache so that page renders never wait on the
// API. The pkg directory is organized into these areas:
//
//  1. [integrations/pardot] - The caching API client (credentials, fetchers)
//  2. [cache] - TTL key-value backends (memory, file, Redis, MongoDB)
//  3. [embed] - HTML rendering of fetched artifacts
//  4. [config], [settings] - Configuration file and runtime settings
//  5. [errors], [httputil], [observability] - Shared infrastructure
//
// # Data Flow
//
//	pardot.Client.FormEmbedCode(id)
//	         ↓
//	    [cache] hit? → return
//	         ↓ miss
//	    credentials (login, cached 1h)
//	         ↓
//	    API request (one retry after an invalid-key reply)
//	         ↓
//	    extract, write through, return
//	         ↓
//	    [embed] renders the placement
//
// # Quick Start
//
//	backend := cache.NewMemoryCache()
//	client := pardot.NewClient(pardot.Credentials{
//	    Email: "ops@example.com", Password: pw, UserKey: key,
//	}, backend)
//
//	if code, ok := client.FormEmbedCode(ctx, "1234").Get(); ok {
//	    fmt.Println(embed.FormHTML(code, embed.FormOptions{Height: "600"}))
//	}
//
// [integrations/pardot]: github.com/matzehuels/pardot/pkg/integrations/pardot
// [cache]: github.com/matzehuels/pardot/pkg/cache
// [embed]: github.com/matzehuels/pardot/pkg/embed
// [config]: github.com/matzehuels/pardot/pkg/config
// [settings]: github.com/matzehuels/pardot/pkg/settings
// [errors]: github.com/matzehuels/pardot/pkg/errors
// [httputil]: github.com/matzehuels/pardot/pkg/httputil
// [observability]: github.com/matzehuels/pardot/pkg/observability
package pkg
