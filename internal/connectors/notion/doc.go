// Package notion implements the BlockFetcher interface against the Notion
// API. It owns every transport concern the parsing core is insulated from:
// token-bucket rate limiting, retry with backoff on transient failures,
// deduplication of concurrent fetches, and recursive child hydration, so
// the parser always receives a complete block tree.
package notion
