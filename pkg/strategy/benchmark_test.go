package strategy_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/yaklabco/mtfind/pkg/findings"
	"github.com/yaklabco/mtfind/pkg/pattern"
	"github.com/yaklabco/mtfind/pkg/search"
	"github.com/yaklabco/mtfind/pkg/split"
	"github.com/yaklabco/mtfind/pkg/strategy"
	"github.com/yaklabco/mtfind/pkg/tokenize"
)

// benchInput builds ~8 MiB of newline-separated text with the needle on
// every 50th line.
func benchInput(needle string) []byte {
	rng := rand.New(rand.NewSource(3))

	var buf bytes.Buffer
	for buf.Len() < 8<<20 {
		line := make([]byte, 40+rng.Intn(80))
		for i := range line {
			line[i] = byte('a' + rng.Intn(20))
		}
		buf.Write(line)
		if rng.Intn(50) == 0 {
			buf.WriteString(needle)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func discard(int)               {}
func discardF(findings.Finding) {}

func benchmarkStrategy(b *testing.B, workers int, roundRobin bool) {
	b.Helper()

	p, err := pattern.Parse("voluptate")
	if err != nil {
		b.Fatal(err)
	}
	tok := tokenize.New(search.New(p))
	input := benchInput("voluptate")
	b.SetBytes(int64(len(input)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if roundRobin {
			err = strategy.RoundRobin(split.NewRegionSplitter(input, '\n'), tok, workers, discard, discardF)
		} else {
			err = strategy.DivideAndConquer(input, '\n', tok, workers, discard, discardF)
		}
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDivideAndConquer1(b *testing.B)  { benchmarkStrategy(b, 1, false) }
func BenchmarkDivideAndConquer4(b *testing.B)  { benchmarkStrategy(b, 4, false) }
func BenchmarkDivideAndConquer16(b *testing.B) { benchmarkStrategy(b, 16, false) }

func BenchmarkRoundRobin1(b *testing.B)  { benchmarkStrategy(b, 1, true) }
func BenchmarkRoundRobin4(b *testing.B)  { benchmarkStrategy(b, 4, true) }
func BenchmarkRoundRobin16(b *testing.B) { benchmarkStrategy(b, 16, true) }
