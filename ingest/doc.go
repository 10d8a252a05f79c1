// Package ingest adds documents to the knowledge base.
//
// The pipeline stores documents synchronously so they are immediately
// retrievable by lexical match, and backfills embedding vectors on a
// worker pool so ingestion latency never depends on the embedding service.
package ingest
