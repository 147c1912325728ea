// Package validation implements the two validation passes of the
// engine: the format pass (segment presence, ordering, element
// cardinality) and the business-rule pass (cross-field consistency).
// Both passes are pure functions of their inputs and emit messages in
// deterministic order: format before business, segment order preserved
// within each pass.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/tradewire-labs/edix/internal/core/domain"
	"github.com/tradewire-labs/edix/internal/x12"
)

// Message codes emitted by the format pass.
const (
	CodeMissingRequiredSegment = "MISSING_REQUIRED_SEGMENT"
	CodeUnrecognizedSegment    = "UNRECOGNIZED_SEGMENT"
	CodeInvalidSegmentOrder    = "INVALID_SEGMENT_ORDER"
	CodeInvalidClosingSegments = "INVALID_CLOSING_SEGMENTS"
	CodeInsufficientElements   = "INSUFFICIENT_ELEMENTS"
	CodeISAElementTooLong      = "ISA_ELEMENT_TOO_LONG"
)

// Message codes emitted by the business-rule pass.
const (
	CodeInvalidDateFormat     = "INVALID_DATE_FORMAT"
	CodePriceMismatch         = "PRICE_MISMATCH"
	CodeInvalidQuantity       = "INVALID_QUANTITY"
	CodeNoLineItems           = "NO_LINE_ITEMS"
	CodeLineCountMismatch     = "LINE_COUNT_MISMATCH"
	CodeTotalAmountMismatch   = "TOTAL_AMOUNT_MISMATCH"
	CodeMissingPONumber       = "MISSING_PO_NUMBER"
	CodeMissingInvoiceNumber  = "MISSING_INVOICE_NUMBER"
	CodeMissingShipmentID     = "MISSING_SHIPMENT_ID"
	CodeMissingAckGroupHeader = "MISSING_ACK_GROUP_HEADER"
)

// openingOrder and closingOrder are the mandated framing sequences.
var (
	openingOrder = []string{"ISA", "GS", "ST"}
	closingOrder = []string{"SE", "GE", "IEA"}
)

// minimumElements are per-segment element-count floors checked by the
// format pass.
var minimumElements = map[string]int{
	"ISA": 16,
	"ST":  2,
	"BEG": 3,
	"BIG": 2,
	"BSN": 2,
	"AK1": 2,
	"HL":  3,
}

// FormatPass validates segment presence and structure against the
// descriptor's grammar. It operates on the full interchange, envelope
// included.
func FormatPass(segments []domain.Segment, desc domain.MessageTypeDescriptor) []domain.ProcessingMessage {
	var msgs []domain.ProcessingMessage

	present := make(map[string]bool, len(segments))
	for _, s := range segments {
		present[s.ID] = true
	}

	for _, req := range desc.RequiredSegments {
		if !present[req] {
			msgs = append(msgs, formatMsg(domain.SeverityError, CodeMissingRequiredSegment, req, 0,
				fmt.Sprintf("required segment %s is missing", req)))
		}
	}

	// Unknown segments never abort processing; they are flagged so the
	// sender's mapping specs can be reconciled.
	for _, s := range segments {
		if !desc.Recognizes(s.ID) {
			msgs = append(msgs, formatMsg(domain.SeverityWarning, CodeUnrecognizedSegment, s.ID, s.LineNumber,
				fmt.Sprintf("segment %s is not part of the %s grammar", s.ID, desc.Code)))
		}
	}

	msgs = append(msgs, checkFramingOrder(segments)...)
	msgs = append(msgs, checkElementCounts(segments)...)
	return msgs
}

// checkFramingOrder verifies the interchange opens ISA,GS,ST and
// closes SE,GE,IEA.
func checkFramingOrder(segments []domain.Segment) []domain.ProcessingMessage {
	var msgs []domain.ProcessingMessage

	for i, want := range openingOrder {
		if i < len(segments) && segments[i].ID != want {
			msgs = append(msgs, formatMsg(domain.SeverityError, CodeInvalidSegmentOrder, want, segments[i].LineNumber,
				fmt.Sprintf("expected %s at position %d, found %s", want, i+1, segments[i].ID)))
		}
	}

	if len(segments) >= len(closingOrder) {
		tail := segments[len(segments)-len(closingOrder):]
		for i, want := range closingOrder {
			if tail[i].ID != want {
				msgs = append(msgs, formatMsg(domain.SeverityError, CodeInvalidClosingSegments, want, tail[i].LineNumber,
					"interchange must close with SE, GE, IEA"))
				break
			}
		}
	}
	return msgs
}

// checkElementCounts enforces per-segment element minima and the fixed
// ISA element widths.
func checkElementCounts(segments []domain.Segment) []domain.ProcessingMessage {
	var msgs []domain.ProcessingMessage

	for _, s := range segments {
		if min, ok := minimumElements[s.ID]; ok && len(s.Elements) < min {
			msgs = append(msgs, formatMsg(domain.SeverityError, CodeInsufficientElements, s.ID, s.LineNumber,
				fmt.Sprintf("segment %s has %d elements, needs at least %d", s.ID, len(s.Elements), min)))
		}

		if s.ID == "ISA" {
			for i, limit := range x12.ISAElementLengths {
				if v := s.Element(i + 1); len(v) > limit {
					m := formatMsg(domain.SeverityWarning, CodeISAElementTooLong, "ISA", s.LineNumber,
						fmt.Sprintf("ISA%02d exceeds its fixed width of %d", i+1, limit))
					m.ElementIndex = i + 1
					msgs = append(msgs, m)
				}
			}
		}
	}
	return msgs
}

// BusinessPass runs the type-specific cross-field checks. Codes listed
// in rules.DisabledCodes are suppressed; the price tolerance comes from
// rules.PriceEpsilon.
func BusinessPass(segments []domain.Segment, desc domain.MessageTypeDescriptor, rules domain.RuleSet) []domain.ProcessingMessage {
	var msgs []domain.ProcessingMessage

	msgs = append(msgs, checkDates(segments)...)

	switch desc.Code {
	case "850":
		msgs = append(msgs, checkHeaderField(segments, "BEG", 3, CodeMissingPONumber, "purchase order number (BEG03)")...)
		msgs = append(msgs, checkLineItems(segments, "PO1", rules)...)
	case "810":
		msgs = append(msgs, checkHeaderField(segments, "BIG", 2, CodeMissingInvoiceNumber, "invoice number (BIG02)")...)
		msgs = append(msgs, checkLineItems(segments, "IT1", rules)...)
		msgs = append(msgs, checkInvoiceTotal(segments, rules)...)
	case "856":
		msgs = append(msgs, checkHeaderField(segments, "BSN", 2, CodeMissingShipmentID, "shipment identification (BSN02)")...)
	case "997":
		msgs = append(msgs, checkHeaderField(segments, "AK1", 1, CodeMissingAckGroupHeader, "functional identifier code (AK101)")...)
	}

	return filterDisabled(msgs, rules)
}

// dateElements maps segment ids to the X12 positions that must hold a
// CCYYMMDD date when present.
var dateElements = map[string][]int{
	"BEG": {5},
	"BIG": {1},
	"BSN": {3},
	"DTM": {2},
}

func checkDates(segments []domain.Segment) []domain.ProcessingMessage {
	var msgs []domain.ProcessingMessage
	for _, s := range segments {
		positions, ok := dateElements[s.ID]
		if !ok {
			continue
		}
		for _, pos := range positions {
			v := s.Element(pos)
			if v == "" {
				continue
			}
			if _, err := time.Parse("20060102", v); err != nil {
				m := businessMsg(domain.SeverityError, CodeInvalidDateFormat, s.ID, s.LineNumber,
					fmt.Sprintf("%s%02d value %q is not a valid CCYYMMDD date", s.ID, pos, v))
				m.ElementIndex = pos
				msgs = append(msgs, m)
			}
		}
	}
	return msgs
}

// checkHeaderField demands a non-empty element on the type's beginning
// segment. The absence of the segment itself is the format pass's
// concern.
func checkHeaderField(segments []domain.Segment, segID string, pos int, code, what string) []domain.ProcessingMessage {
	for _, s := range segments {
		if s.ID != segID {
			continue
		}
		if s.Element(pos) == "" {
			m := businessMsg(domain.SeverityError, code, segID, s.LineNumber, what+" is required")
			m.ElementIndex = pos
			return []domain.ProcessingMessage{m}
		}
		return nil
	}
	return nil
}

// checkLineItems validates PO1/IT1 loops: positive quantities, and when
// a trailing AMT segment carries the line total, extended price within
// epsilon of quantity x unit price. A CTT trailer's count is checked
// against the actual number of lines.
func checkLineItems(segments []domain.Segment, lineID string, rules domain.RuleSet) []domain.ProcessingMessage {
	var msgs []domain.ProcessingMessage

	lines := 0
	lastQty, lastPrice := 0.0, 0.0
	lastNumeric := false
	for _, s := range segments {
		switch s.ID {
		case lineID:
			lines++
			qty, qerr := strconv.ParseFloat(s.Element(2), 64)
			price, perr := strconv.ParseFloat(s.Element(4), 64)
			lastNumeric = qerr == nil && perr == nil
			lastQty, lastPrice = qty, price

			if qerr == nil && qty <= 0 {
				m := businessMsg(domain.SeverityError, CodeInvalidQuantity, lineID, s.LineNumber,
					fmt.Sprintf("line %s quantity must be greater than 0", s.Element(1)))
				m.ElementIndex = 2
				msgs = append(msgs, m)
			}

		case "AMT":
			// AMT*1*<amount> after a line carries its extended price.
			if !lastNumeric || s.Element(1) != "1" {
				continue
			}
			ext, err := strconv.ParseFloat(s.Element(2), 64)
			if err != nil {
				continue
			}
			if math.Abs(ext-lastQty*lastPrice) > rules.PriceEpsilon {
				m := businessMsg(domain.SeverityWarning, CodePriceMismatch, lineID, s.LineNumber,
					fmt.Sprintf("extended price %.2f does not equal quantity %.2f x unit price %.2f",
						ext, lastQty, lastPrice))
				m.ElementIndex = 2
				msgs = append(msgs, m)
			}

		case "CTT":
			declared, err := strconv.Atoi(s.Element(1))
			if err == nil && declared != lines {
				m := businessMsg(domain.SeverityWarning, CodeLineCountMismatch, "CTT", s.LineNumber,
					fmt.Sprintf("CTT01 declares %d line items, message contains %d", declared, lines))
				m.ElementIndex = 1
				msgs = append(msgs, m)
			}
		}
	}

	if lines == 0 {
		msgs = append(msgs, businessMsg(domain.SeverityError, CodeNoLineItems, lineID, 0,
			"message must contain at least one line item"))
	}
	return msgs
}

// checkInvoiceTotal compares TDS01 (implied two decimals per X12 N2)
// with the sum of line amounts.
func checkInvoiceTotal(segments []domain.Segment, rules domain.RuleSet) []domain.ProcessingMessage {
	var tds *domain.Segment
	sum := 0.0
	for i, s := range segments {
		switch s.ID {
		case "IT1":
			qty, qerr := strconv.ParseFloat(s.Element(2), 64)
			price, perr := strconv.ParseFloat(s.Element(4), 64)
			if qerr == nil && perr == nil {
				sum += qty * price
			}
		case "TDS":
			tds = &segments[i]
		}
	}
	if tds == nil {
		return nil
	}
	cents, err := strconv.ParseFloat(tds.Element(1), 64)
	if err != nil {
		return nil
	}
	total := cents / 100
	if math.Abs(total-sum) > rules.PriceEpsilon {
		m := businessMsg(domain.SeverityWarning, CodeTotalAmountMismatch, "TDS", tds.LineNumber,
			fmt.Sprintf("TDS total %.2f does not equal line item sum %.2f", total, sum))
		m.ElementIndex = 1
		return []domain.ProcessingMessage{m}
	}
	return nil
}

func filterDisabled(msgs []domain.ProcessingMessage, rules domain.RuleSet) []domain.ProcessingMessage {
	if len(rules.DisabledCodes) == 0 {
		return msgs
	}
	kept := msgs[:0]
	for _, m := range msgs {
		if !rules.Disabled(m.Code) {
			kept = append(kept, m)
		}
	}
	return kept
}

func formatMsg(sev domain.Severity, code, field string, line int, text string) domain.ProcessingMessage {
	return domain.ProcessingMessage{
		Severity:   sev,
		Class:      domain.ClassFormat,
		Code:       code,
		Text:       text,
		Field:      field,
		LineNumber: line,
	}
}

func businessMsg(sev domain.Severity, code, field string, line int, text string) domain.ProcessingMessage {
	return domain.ProcessingMessage{
		Severity:   sev,
		Class:      domain.ClassBusiness,
		Code:       code,
		Text:       text,
		Field:      field,
		LineNumber: line,
	}
}
