package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicer/internal/encoding"
)

func readAll(t *testing.T, input []byte) (string, encoding.Charset) {
	t.Helper()

	r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestNewUTF8Reader(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		want        string
		wantCharset []encoding.Charset // any is accepted, single-byte guesses are heuristic
	}{
		{
			name:        "UTF8Passthrough",
			input:       []byte("name;unit_price\nCafé;12,50\nOperação;3,00\n"),
			want:        "name;unit_price\nCafé;12,50\nOperação;3,00\n",
			wantCharset: []encoding.Charset{encoding.UTF8},
		},
		{
			name: "Windows1252",
			// "Preço;Descrição\n" with ç = 0xE7, ã = 0xE3
			input: []byte{
				'P', 'r', 'e', 0xE7, 'o', ';',
				'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', '\n',
			},
			want:        "Preço;Descrição\n",
			wantCharset: []encoding.Charset{encoding.Windows1252, encoding.ISO88599},
		},
		{
			name:        "UTF8BOMStripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, []byte("name;email\n")...),
			want:        "name;email\n",
			wantCharset: []encoding.Charset{encoding.UTF8BOM},
		},
		{
			name:        "UTF16LE",
			input:       []byte{0xFF, 0xFE, 'n', 0, 'a', 0, 'm', 0, 'e', 0},
			want:        "name",
			wantCharset: []encoding.Charset{encoding.UTF16LE},
		},
		{
			name:        "Empty",
			input:       nil,
			want:        "",
			wantCharset: []encoding.Charset{encoding.UTF8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, charset := readAll(t, tt.input)

			assert.Equal(t, tt.want, got)
			assert.Contains(t, tt.wantCharset, charset)
		})
	}
}

func TestNewUTF8Reader_LargeInput(t *testing.T) {
	line := "Widget;Steel widget;12,50\n"
	input := bytes.Repeat([]byte(line), 1000)

	got, charset := readAll(t, input)

	assert.Equal(t, encoding.UTF8, charset)
	assert.Len(t, got, len(input))
}

func TestDetect_SampleCutMidRune(t *testing.T) {
	// 4095 ASCII bytes followed by the first byte of "ç" in UTF-8.
	sample := append(bytes.Repeat([]byte("a"), 4095), 0xC3)

	assert.Equal(t, encoding.UTF8, encoding.Detect(sample[:4096]))
}
