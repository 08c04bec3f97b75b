package score

// Tokens splits text into words, keeping sentence punctuation as its own
// token so that "end." and "end!" differ by one token, not a whole word.
func Tokens(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ';', '!', '?', '.', ',', '"':
			if i > start {
				out = append(out, text[start:i])
			}
			out = append(out, string(text[i]))
			start = i + 1
		case ' ':
			if i > start {
				out = append(out, text[start:i])
			}
			start = i + 1
		}
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// tokensToRunes maps each distinct token to one rune, skipping the
// surrogate block, so the rune diff is a token diff.
func tokensToRunes(a, b []string) ([]rune, []rune) {
	idx := make(map[string]rune, len(a)+len(b))
	next := rune(1)
	enc := func(tokens []string) []rune {
		rs := make([]rune, len(tokens))
		for i, tok := range tokens {
			r, ok := idx[tok]
			if !ok {
				r = next
				idx[tok] = r
				next++
				if next == 0xD800 {
					next = 0xE000
				}
			}
			rs[i] = r
		}
		return rs
	}
	return enc(a), enc(b)
}
