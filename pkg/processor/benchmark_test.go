package processor_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/evergreen/pkg/processor"
)

const benchDocument = `# Release notes

Some introductory text with a [link](https://example.com "Example").
It continues on a second line.  

- first item
  - nested item
  - another nested item
- second item
1. ordered
2. ordered again

> quoted text
>> deeper quote

:::note
## Inside a container
![diagram](diagram.png Architecture)
:::note

***
`

func BenchmarkParseSmall(b *testing.B) {
	proc := processor.New(processor.Options{})
	lines := processor.SplitLines(benchDocument)
	b.ResetTimer()
	for range b.N {
		proc.Parse(lines)
	}
}

func BenchmarkParseLarge(b *testing.B) {
	proc := processor.New(processor.Options{})
	lines := processor.SplitLines(strings.Repeat(benchDocument, 200))
	b.ResetTimer()
	for range b.N {
		proc.Parse(lines)
	}
}

func BenchmarkSplitLines(b *testing.B) {
	text := strings.Repeat(benchDocument, 200)
	b.ResetTimer()
	for range b.N {
		processor.SplitLines(text)
	}
}
