// Package summarize produces extractive summaries with latent semantic
// analysis. Sentences are scored against the singular value
// decomposition of a stemmed term-sentence matrix and the highest
// scoring sentences form the summary. Inputs that cannot be analysed
// fall back to a truncated prefix of the original text.
package summarize
