package converter_test

import (
	"io"
	"strings"
	"testing"

	"github.com/yaklabco/evergreen/pkg/converter"
	"github.com/yaklabco/evergreen/pkg/processor"
)

func BenchmarkRender(b *testing.B) {
	text := strings.Repeat("# Heading [a](/a)\n- one\n  - two\n> quote\ntext  \n***\n", 200)
	nodes := processor.New(processor.Options{}).ParseText(text)
	conv := converter.New(converter.Options{})
	b.ResetTimer()
	for range b.N {
		if err := conv.Render(io.Discard, nodes); err != nil {
			b.Fatal(err)
		}
	}
}
