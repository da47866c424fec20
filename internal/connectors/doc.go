// Package connectors provides implementations of the BlockFetcher interface
// for lesson page sources. Each connector knows how to deliver a fully
// hydrated block tree from a specific source (the Notion API, a JSON
// snapshot on disk).
package connectors
