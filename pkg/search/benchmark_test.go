package search_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/yaklabco/mtfind/pkg/pattern"
	"github.com/yaklabco/mtfind/pkg/search"
)

// benchData builds 1 MiB of lowercase text with the needle planted near the
// end, so searchers scan almost the whole haystack.
func benchData(needle string) []byte {
	rng := rand.New(rand.NewSource(1))

	data := make([]byte, 1<<20)
	for i := range data {
		data[i] = byte('a' + rng.Intn(20))
	}
	copy(data[len(data)-2*len(needle):], needle)
	return data
}

func benchmarkSearcher(b *testing.B, s search.Searcher, data []byte) {
	b.Helper()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		if m := s.Find(data); m.Empty() {
			b.Fatal("needle not found")
		}
	}
}

func BenchmarkNaive(b *testing.B) {
	p, _ := pattern.Parse("voluptate")
	benchmarkSearcher(b, search.NewNaive(p), benchData("voluptate"))
}

func BenchmarkBoyerMoore(b *testing.B) {
	p, _ := pattern.Parse("voluptate")
	benchmarkSearcher(b, search.NewBoyerMoore(p), benchData("voluptate"))
}

func BenchmarkWildcardBoyerMoore(b *testing.B) {
	p, _ := pattern.Parse("volup?ate")
	benchmarkSearcher(b, search.NewWildcardBoyerMoore(p), benchData("voluptate"))
}

func BenchmarkIndex(b *testing.B) {
	p, _ := pattern.Parse("voluptate")
	benchmarkSearcher(b, search.NewIndex(p), benchData("voluptate"))
}

func BenchmarkIndexStdlibBaseline(b *testing.B) {
	data := benchData("voluptate")
	needle := []byte("voluptate")
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		if bytes.Index(data, needle) < 0 {
			b.Fatal("needle not found")
		}
	}
}
