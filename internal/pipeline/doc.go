// Package pipeline wires extraction, classification, and summarization
// into the ingestion flow that lands submissions in the item store.
// The Pipeline processes one submission synchronously; the Ingestor
// runs a bounded worker pool over it for asynchronous API submissions.
package pipeline
