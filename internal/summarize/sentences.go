package summarize

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// splitSentences breaks text into sentences on terminal punctuation.
// Closing quotes and brackets stay attached to the sentence they end.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		current.Reset()
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// Swallow trailing closers so `He said "stop."` splits cleanly.
		for i+1 < len(runes) && isCloser(runes[i+1]) {
			i++
			current.WriteRune(runes[i])
		}
		if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
			flush()
		}
	}
	flush()
	return sentences
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’':
		return true
	}
	return false
}

// tokenize lowercases a sentence, drops stopwords and punctuation, and
// stems the remaining words.
func tokenize(sentence string) []string {
	fields := strings.FieldsFunc(strings.ToLower(sentence), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		if stopwords[field] {
			continue
		}
		terms = append(terms, english.Stem(field, false))
	}
	return terms
}
