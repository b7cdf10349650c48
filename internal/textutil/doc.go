// Package textutil provides small text normalization helpers shared by
// the extraction and summarization packages.
package textutil
