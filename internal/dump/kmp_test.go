package dump

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFailureTable(t *testing.T) {
	table := failureTable([]byte("ABCABD"), false)
	want := []int{-1, 0, 0, -1, 0, 2}
	if diff := cmp.Diff(want, table[:len(want)]); diff != "" {
		t.Fatalf("failure table mismatch (-want +got):\n%s", diff)
	}
}

func TestKMPSearchNoMatch(t *testing.T) {
	if got := kmpSearch([]byte("ABCABCABD"), []byte("ABCABD"), false); len(got) != 0 {
		t.Fatalf("expected no match, got %v", got)
	}
}

func TestKMPSearchFindsOverlapping(t *testing.T) {
	got := kmpSearch([]byte("aaaa"), []byte("aa"), false)
	if diff := cmp.Diff([]int{0, 1, 2}, got); diff != "" {
		t.Fatalf("overlapping matches mismatch (-want +got):\n%s", diff)
	}
}

func TestKMPSearchFold(t *testing.T) {
	text := []byte("Hello hello HELLO")
	if diff := cmp.Diff([]int{0, 6, 12}, kmpSearch(text, []byte("hello"), true)); diff != "" {
		t.Fatalf("folded search mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{6}, kmpSearch(text, []byte("hello"), false)); diff != "" {
		t.Fatalf("exact search mismatch (-want +got):\n%s", diff)
	}
}

func TestKMPSearchFindsEverySubstring(t *testing.T) {
	text := []byte("abracadabra\x00\xffabracadabra-ABRA")
	for start := 0; start < len(text); start++ {
		for end := start + 1; end <= len(text); end++ {
			found := false
			for _, off := range kmpSearch(text, text[start:end], false) {
				if off == start {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("substring [%d:%d] %q not found at its own offset", start, end, text[start:end])
			}
		}
	}
}

func TestKMPSearchFoldsLatin1(t *testing.T) {
	text := []byte{0xc9, 't', 0xe9, 'T', 0xd7, 0xf7}
	if diff := cmp.Diff([]int{0, 2}, kmpSearch(text, []byte{0xe9, 't'}, true)); diff != "" {
		t.Fatalf("folded search mismatch (-want +got):\n%s", diff)
	}
	// × and ÷ are not letters and must not fold onto each other.
	if diff := cmp.Diff([]int{4}, kmpSearch(text, []byte{0xd7}, true)); diff != "" {
		t.Fatalf("× mismatch (-want +got):\n%s", diff)
	}
}
