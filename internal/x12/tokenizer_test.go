package x12

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradewire-labs/edix/internal/core/domain"
)

const sample850 = "ISA*00*          *00*          *ZZ*SENDERID       *ZZ*RECEIVERID     *210101*1253*U*00401*000000001*0*P*>~" +
	"GS*PO*SENDERID*RECEIVERID*20210101*1253*1*X*004010~" +
	"ST*850*0001~" +
	"BEG*00*SA*PO123456**20210101~" +
	"PO1*1*10*EA*25.50**VP*SKU12345*PD*Widget A~" +
	"SE*4*0001~" +
	"GE*1*1~" +
	"IEA*1*000000001~"

func TestTokenize_DetectsDeclaredDelimiters(t *testing.T) {
	segments, delims, err := Tokenize(sample850)
	require.NoError(t, err)

	assert.Equal(t, byte('*'), delims.Element)
	assert.Equal(t, byte('~'), delims.Segment)
	assert.Equal(t, byte('>'), delims.Component)
	require.Len(t, segments, 8)

	assert.Equal(t, "ISA", segments[0].ID)
	assert.Equal(t, "IEA", segments[7].ID)
	assert.Equal(t, 1, segments[0].Position)
	assert.Equal(t, 8, segments[7].Position)
}

func TestTokenize_PreservesEmptyElements(t *testing.T) {
	segments, _, err := Tokenize(sample850)
	require.NoError(t, err)

	po1 := segments[4]
	require.Equal(t, "PO1", po1.ID)
	require.Len(t, po1.Elements, 9)
	assert.Equal(t, "", po1.Element(5), "skipped element stays empty, not dropped")
	assert.Equal(t, "VP", po1.Element(6))
	assert.Equal(t, "SKU12345", po1.Element(7))
}

func TestTokenize_NonStandardSeparators(t *testing.T) {
	// Element separator '|', terminator '!'.
	raw := "ISA|00|          |00|          |ZZ|SENDERID       |ZZ|RECEIVERID     |210101|1253|U|00401|000000001|0|P|>!" +
		"GS|PO|S|R|20210101|1253|1|X|004010!" +
		"ST|850|0001!" +
		"BEG|00|SA|PO9||20210101!" +
		"SE|3|0001!" +
		"GE|1|1!" +
		"IEA|1|000000001!"

	segments, delims, err := Tokenize(raw)
	require.NoError(t, err)

	assert.Equal(t, byte('|'), delims.Element)
	assert.Equal(t, byte('!'), delims.Segment)
	require.Len(t, segments, 7)
	assert.Equal(t, "PO9", segments[3].Element(3))
}

func TestTokenize_NormalizesLineBreaks(t *testing.T) {
	raw := strings.ReplaceAll(sample850, "~", "~\r\n")

	segments, _, err := Tokenize(raw)
	require.NoError(t, err)
	require.Len(t, segments, 8)

	// Line numbers follow the original text layout.
	assert.Equal(t, 1, segments[0].LineNumber)
	assert.Equal(t, 2, segments[1].LineNumber)
	assert.Equal(t, 8, segments[7].LineNumber)
}

func TestTokenize_RoundTrip(t *testing.T) {
	segments, delims, err := Tokenize(sample850)
	require.NoError(t, err)

	assert.Equal(t, sample850, domain.RenderAll(segments, delims))
}

func TestTokenize_RejectsNonISAInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "  \n\t "},
		{"wrong prefix", "GS*PO*S*R~"},
		{"truncated", "IS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Tokenize(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrFormat)

			var fe *domain.FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "missing ISA envelope", fe.Reason)
		})
	}
}

func TestTokenize_ShortISAFallsBackToDefaults(t *testing.T) {
	// Too short to declare a terminator; '*' is still read from offset
	// 3 and '~' is assumed.
	segments, delims, err := Tokenize("ISA*00*X~ST*850*0001~")
	require.NoError(t, err)

	assert.Equal(t, byte('~'), delims.Segment)
	require.Len(t, segments, 2)
	assert.Equal(t, "ST", segments[1].ID)
}
