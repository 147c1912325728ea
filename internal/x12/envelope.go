package x12

import (
	"fmt"
	"strconv"

	"github.com/tradewire-labs/edix/internal/core/domain"
)

// Message codes emitted by the envelope parser.
const (
	CodeControlNumberMismatch  = "CONTROL_NUMBER_MISMATCH"
	CodeEnvelopeCountMismatch  = "ENVELOPE_COUNT_MISMATCH"
	CodeMissingEnvelopeSegment = "MISSING_ENVELOPE_SEGMENT"
)

// ParseEnvelope consumes the tokenized segment sequence, extracts the
// ISA/GS/ST control data and returns the transaction body (segments
// strictly between ST and SE). Envelope segments are located by
// identifier, not fixed position.
//
// Control-number and count mismatches are reported as ERROR-level
// messages but never abort processing: downstream validation and
// mapping still run on the best-effort body.
func ParseEnvelope(segments []domain.Segment, delims domain.Delimiters) (*domain.Envelope, []domain.Segment, []domain.ProcessingMessage) {
	var msgs []domain.ProcessingMessage

	isa := find(segments, isaSegmentID)
	gs := find(segments, gsSegmentID)
	st := find(segments, stSegmentID)
	se := find(segments, seSegmentID)
	ge := find(segments, geSegmentID)
	iea := find(segments, ieaSegmentID)

	env := &domain.Envelope{Delimiters: delims}
	if isa >= 0 {
		s := segments[isa]
		env.SenderQualifier = s.Element(isaIndexSenderIDQualifier)
		env.SenderID = trimPad(s.Element(isaIndexSenderID))
		env.ReceiverQualifier = s.Element(isaIndexReceiverIDQualifier)
		env.ReceiverID = trimPad(s.Element(isaIndexReceiverID))
		env.InterchangeControlNumber = s.Element(isaIndexControlNumber)
		env.InterchangeVersion = s.Element(isaIndexVersion)
		env.Usage = s.Element(isaIndexUsageIndicator)
	}
	if gs >= 0 {
		s := segments[gs]
		env.FunctionalIDCode = s.Element(gsIndexFunctionalIDCode)
		env.GroupControlNumber = s.Element(gsIndexControlNumber)
		env.GroupVersion = s.Element(gsIndexVersion)
	}
	if st >= 0 {
		s := segments[st]
		env.TransactionSetCode = s.Element(stIndexTransactionSetCode)
		env.TransactionControlNumber = s.Element(stIndexControlNumber)
	}

	// Deterministic message order: report missing framing segments in
	// their mandated interchange order.
	framing := []struct {
		id  string
		idx int
	}{
		{gsSegmentID, gs}, {stSegmentID, st}, {seSegmentID, se},
		{geSegmentID, ge}, {ieaSegmentID, iea},
	}
	for _, f := range framing {
		id, idx := f.id, f.idx
		if idx < 0 {
			msgs = append(msgs, envelopeError(CodeMissingEnvelopeSegment, id, 0,
				fmt.Sprintf("envelope segment %s not found", id)))
		}
	}

	msgs = append(msgs, checkControlNumbers(segments, st, se, gs, ge, isa, iea)...)
	msgs = append(msgs, checkCounts(segments, st, se, ge, iea)...)

	return env, transactionBody(segments, st, se, ge, iea), msgs
}

// checkControlNumbers verifies the three open/close control-number
// pairs: ST02/SE02, GS06/GE02 and ISA13/IEA02.
func checkControlNumbers(segments []domain.Segment, st, se, gs, ge, isa, iea int) []domain.ProcessingMessage {
	var msgs []domain.ProcessingMessage

	if st >= 0 && se >= 0 {
		want := segments[st].Element(stIndexControlNumber)
		got := segments[se].Element(seIndexControlNumber)
		if want != got {
			msgs = append(msgs, envelopeError(CodeControlNumberMismatch, seSegmentID, segments[se].LineNumber,
				fmt.Sprintf("SE control number %q does not match ST control number %q", got, want)))
		}
	}
	if gs >= 0 && ge >= 0 {
		want := segments[gs].Element(gsIndexControlNumber)
		got := segments[ge].Element(geIndexControlNumber)
		if want != got {
			msgs = append(msgs, envelopeError(CodeControlNumberMismatch, geSegmentID, segments[ge].LineNumber,
				fmt.Sprintf("GE control number %q does not match GS control number %q", got, want)))
		}
	}
	if isa >= 0 && iea >= 0 {
		want := trimPad(segments[isa].Element(isaIndexControlNumber))
		got := trimPad(segments[iea].Element(ieaIndexControlNumber))
		if want != got {
			msgs = append(msgs, envelopeError(CodeControlNumberMismatch, ieaSegmentID, segments[iea].LineNumber,
				fmt.Sprintf("IEA control number %q does not match ISA control number %q", got, want)))
		}
	}
	return msgs
}

// checkCounts verifies envelope balance: SE01 against the actual
// ST..SE segment count, GE01 against the transaction-set count, and
// IEA01 against the functional-group count.
func checkCounts(segments []domain.Segment, st, se, ge, iea int) []domain.ProcessingMessage {
	var msgs []domain.ProcessingMessage

	if st >= 0 && se >= 0 && se > st {
		actual := se - st + 1
		declared, err := strconv.Atoi(segments[se].Element(seIndexSegmentCount))
		if err != nil || declared != actual {
			msgs = append(msgs, envelopeError(CodeEnvelopeCountMismatch, seSegmentID, segments[se].LineNumber,
				fmt.Sprintf("SE01 declares %s segments, transaction set contains %d",
					segments[se].Element(seIndexSegmentCount), actual)))
		}
	}
	if ge >= 0 {
		actual := count(segments, stSegmentID)
		declared, err := strconv.Atoi(segments[ge].Element(geIndexTransactionCount))
		if err != nil || declared != actual {
			msgs = append(msgs, envelopeError(CodeEnvelopeCountMismatch, geSegmentID, segments[ge].LineNumber,
				fmt.Sprintf("GE01 declares %s transaction sets, group contains %d",
					segments[ge].Element(geIndexTransactionCount), actual)))
		}
	}
	if iea >= 0 {
		actual := count(segments, gsSegmentID)
		declared, err := strconv.Atoi(segments[iea].Element(ieaIndexGroupCount))
		if err != nil || declared != actual {
			msgs = append(msgs, envelopeError(CodeEnvelopeCountMismatch, ieaSegmentID, segments[iea].LineNumber,
				fmt.Sprintf("IEA01 declares %s functional groups, interchange contains %d",
					segments[iea].Element(ieaIndexGroupCount), actual)))
		}
	}
	return msgs
}

// transactionBody returns the segments strictly between ST and SE.
// When either bound is missing the body is reconstructed best-effort
// from whatever framing is present.
func transactionBody(segments []domain.Segment, st, se, ge, iea int) []domain.Segment {
	lo := st + 1
	if st < 0 {
		// No ST: skip whatever opening framing is present.
		for lo < len(segments) && (segments[lo].ID == isaSegmentID || segments[lo].ID == gsSegmentID) {
			lo++
		}
	}
	hi := se
	if se < 0 || se <= st {
		hi = len(segments)
		if ge >= 0 && ge < hi {
			hi = ge
		}
		if iea >= 0 && iea < hi {
			hi = iea
		}
	}
	if lo >= hi {
		return nil
	}
	return segments[lo:hi]
}

func envelopeError(code, field string, line int, text string) domain.ProcessingMessage {
	return domain.ProcessingMessage{
		Severity:   domain.SeverityError,
		Class:      domain.ClassEnvelope,
		Code:       code,
		Text:       text,
		Field:      field,
		LineNumber: line,
	}
}

func find(segments []domain.Segment, id string) int {
	for i, s := range segments {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func count(segments []domain.Segment, id string) int {
	n := 0
	for _, s := range segments {
		if s.ID == id {
			n++
		}
	}
	return n
}

// trimPad strips the space padding X12 applies to fixed-width ISA
// elements.
func trimPad(s string) string {
	end := len(s)
	for end > 0 && s[end-1] == ' ' {
		end--
	}
	start := 0
	for start < end && s[start] == ' ' {
		start++
	}
	return s[start:end]
}
