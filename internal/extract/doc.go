// Package extract turns raw submissions into classifiable text. Plain
// text passes through untouched, URLs are fetched and stripped to
// visible page text, and PDF files are read page by page. Extraction
// never fails the pipeline: when a source cannot be read the result is
// marked degraded and carries placeholder text so downstream stages
// still run.
package extract
