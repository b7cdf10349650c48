// Command polymath is the CLI and daemon entry point for the
// polymath's inbox: it captures notes, links, and documents, files
// them with tags and summaries, and turns kept items into actionable
// tasks.
package main
