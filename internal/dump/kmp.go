package dump

import "unicode"

// latin1Lower folds each byte as the Latin-1 character it is displayed as.
var latin1Lower = func() (t [256]byte) {
	for i := range t {
		t[i] = byte(i)
		if lower := unicode.ToLower(rune(i)); lower < 0x100 {
			t[i] = byte(lower)
		}
	}
	return t
}()

// failureTable builds the Knuth–Morris–Pratt fallback table for pattern.
// table[0] is -1; table[len(pattern)] holds the fallback to use after a full
// match so overlapping occurrences are found.
func failureTable(pattern []byte, fold bool) []int {
	table := make([]int, len(pattern)+1)
	table[0] = -1
	pos, cnd := 1, 0
	for ; pos < len(pattern); pos++ {
		if foldByte(pattern[pos], fold) == foldByte(pattern[cnd], fold) {
			table[pos] = table[cnd]
		} else {
			table[pos] = cnd
			for cnd >= 0 && foldByte(pattern[pos], fold) != foldByte(pattern[cnd], fold) {
				cnd = table[cnd]
			}
		}
		cnd++
	}
	table[pos] = cnd
	return table
}

// kmpSearch returns the start offset of every occurrence of pattern in text,
// overlapping occurrences included, in ascending order. With fold set,
// Latin-1 letters compare case-insensitively.
func kmpSearch(text, pattern []byte, fold bool) []int {
	if len(pattern) == 0 || len(text) < len(pattern) {
		return nil
	}
	table := failureTable(pattern, fold)
	var out []int
	j, k := 0, 0
	for j < len(text) {
		if foldByte(pattern[k], fold) == foldByte(text[j], fold) {
			j++
			k++
			if k == len(pattern) {
				out = append(out, j-k)
				k = table[k]
			}
			continue
		}
		k = table[k]
		if k < 0 {
			j++
			k++
		}
	}
	return out
}

func foldByte(c byte, fold bool) byte {
	if fold {
		return latin1Lower[c]
	}
	return c
}
