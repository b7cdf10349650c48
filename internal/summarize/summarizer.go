package summarize

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/config"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/textutil"
)

// Summarizer condenses text to a fixed number of representative
// sentences.
type Summarizer struct {
	sentenceCount  int
	fallbackLength int
}

// New builds a summarizer from configuration.
func New(cfg config.Summarizer) *Summarizer {
	return &Summarizer{
		sentenceCount:  cfg.SentenceCount,
		fallbackLength: cfg.FallbackLength,
	}
}

// Summarize returns up to the configured number of top-scoring
// sentences joined by single spaces. Text that cannot be analysed (no
// sentences, or a vocabulary of nothing but stopwords) yields the
// truncated prefix instead, so the result is never empty: an empty
// input summarizes to the bare ellipsis marker.
func (s *Summarizer) Summarize(text string) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return s.fallback(text)
	}
	if len(sentences) <= s.sentenceCount {
		return strings.Join(sentences, " ")
	}

	scores, ok := scoreSentences(sentences)
	if !ok {
		return s.fallback(text)
	}

	top := topIndexes(scores, s.sentenceCount)
	picked := make([]string, 0, len(top))
	for _, idx := range top {
		picked = append(picked, sentences[idx])
	}
	return strings.Join(picked, " ")
}

func (s *Summarizer) fallback(text string) string {
	return textutil.Truncate(text, s.fallbackLength)
}

// scoreSentences computes per-sentence salience via the singular value
// decomposition of the term-sentence frequency matrix. A sentence's
// score is the length of its row in V scaled by the singular values
// (Steinberger and Jezek's enhanced LSA ranking).
func scoreSentences(sentences []string) ([]float64, bool) {
	vocab := make(map[string]int)
	tokenized := make([][]string, len(sentences))
	for i, sentence := range sentences {
		terms := tokenize(sentence)
		tokenized[i] = terms
		for _, term := range terms {
			if _, seen := vocab[term]; !seen {
				vocab[term] = len(vocab)
			}
		}
	}
	if len(vocab) == 0 {
		return nil, false
	}

	matrix := mat.NewDense(len(vocab), len(sentences), nil)
	for col, terms := range tokenized {
		for _, term := range terms {
			row := vocab[term]
			matrix.Set(row, col, matrix.At(row, col)+1)
		}
	}

	var svd mat.SVD
	if !svd.Factorize(matrix, mat.SVDThin) {
		return nil, false
	}
	values := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	scores := make([]float64, len(sentences))
	for i := range sentences {
		var sum float64
		for k, sigma := range values {
			component := sigma * v.At(i, k)
			sum += component * component
		}
		scores[i] = math.Sqrt(sum)
	}
	return scores, true
}

// topIndexes returns the indexes of the count highest scores, best
// first. Ties break toward the earlier sentence.
func topIndexes(scores []float64, count int) []int {
	indexes := make([]int, len(scores))
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(a, b int) bool {
		return scores[indexes[a]] > scores[indexes[b]]
	})
	if count > len(indexes) {
		count = len(indexes)
	}
	return indexes[:count]
}
