// Package protocol defines the wire messages exchanged between a
// tetsimu2 client and the hub: a JSON envelope with a single top-level
// tag key naming the message kind, whose value carries a header and a
// body. Client-to-hub messages are decoded with DecodeTetsimu2;
// hub-to-client messages are values of HubMessage, serialized directly
// by encoding/json since each already carries its own tag field.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Tetsimu2MessageHeader accompanies every client-to-hub message.
type Tetsimu2MessageHeader struct {
	MessageId string `json:"message_id"`
}

// AnalyzePcMessageReqBody requests a perfect-clear analysis of a board
// plus a next-piece queue. Field is row-major, bottom-up, 300 cell
// numerics in 0..8.
type AnalyzePcMessageReqBody struct {
	Field     [300]uint8 `json:"field"`
	Nexts     string     `json:"nexts"`
	ClearLine int8       `json:"clear_line"`
	HoldType  uint8      `json:"hold_type"`
	DropType  uint8      `json:"drop_type"`
}

type AnalyzePcMessageReq struct {
	Header Tetsimu2MessageHeader   `json:"header"`
	Body   AnalyzePcMessageReqBody `json:"body"`
}

type InitTutorMessageReqBody struct{}

type InitTutorMessageReq struct {
	Header Tetsimu2MessageHeader    `json:"header"`
	Body   InitTutorMessageReqBody `json:"body"`
}

type TermTutorMessageReqBody struct{}

type TermTutorMessageReq struct {
	Header Tetsimu2MessageHeader   `json:"header"`
	Body   TermTutorMessageReqBody `json:"body"`
}

// NotifyStatusMessageReqBody pushes the client's current board, next
// queue, hold state, and combo/B2B counters. GarbageInfo carries the
// pending-garbage-per-column snapshot recovered from original_source;
// nothing in this port's search-engine adapter consults it yet.
type NotifyStatusMessageReqBody struct {
	Field       [300]uint8 `json:"field"`
	Nexts       string     `json:"nexts"`
	GarbageInfo [13]uint8  `json:"garbage_info"`
	CanHold     bool       `json:"can_hold"`
	HoldType    uint8      `json:"hold_type"`
	Ren         int8       `json:"ren"`
	IsBtb       bool       `json:"is_btb"`
}

type NotifyStatusMessageReq struct {
	Header Tetsimu2MessageHeader      `json:"header"`
	Body   NotifyStatusMessageReqBody `json:"body"`
}

// Tetsimu2Message is the decoded form of one client-to-hub frame: at
// most one of the four fields is non-nil, matching which tag was
// present in the inbound JSON.
type Tetsimu2Message struct {
	Tag          string
	AnalyzePc    *AnalyzePcMessageReq
	InitTutor    *InitTutorMessageReq
	TermTutor    *TermTutorMessageReq
	NotifyStatus *NotifyStatusMessageReq
}

// DecodeTetsimu2 parses a single inbound JSON frame into its tagged
// union. It fails if the frame is not an object with exactly one
// recognized top-level key.
func DecodeTetsimu2(data []byte) (Tetsimu2Message, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Tetsimu2Message{}, fmt.Errorf("protocol: malformed envelope: %w", err)
	}

	if len(envelope) != 1 {
		return Tetsimu2Message{}, fmt.Errorf("protocol: envelope must have exactly one tag, got %d", len(envelope))
	}

	for tag, raw := range envelope {
		switch tag {
		case "AnalyzePc":
			var m AnalyzePcMessageReq
			if err := json.Unmarshal(raw, &m); err != nil {
				return Tetsimu2Message{}, fmt.Errorf("protocol: AnalyzePc: %w", err)
			}
			return Tetsimu2Message{Tag: tag, AnalyzePc: &m}, nil
		case "InitTutor":
			var m InitTutorMessageReq
			if err := json.Unmarshal(raw, &m); err != nil {
				return Tetsimu2Message{}, fmt.Errorf("protocol: InitTutor: %w", err)
			}
			return Tetsimu2Message{Tag: tag, InitTutor: &m}, nil
		case "TermTutor":
			var m TermTutorMessageReq
			if err := json.Unmarshal(raw, &m); err != nil {
				return Tetsimu2Message{}, fmt.Errorf("protocol: TermTutor: %w", err)
			}
			return Tetsimu2Message{Tag: tag, TermTutor: &m}, nil
		case "NotifyStatus":
			var m NotifyStatusMessageReq
			if err := json.Unmarshal(raw, &m); err != nil {
				return Tetsimu2Message{}, fmt.Errorf("protocol: NotifyStatus: %w", err)
			}
			return Tetsimu2Message{Tag: tag, NotifyStatus: &m}, nil
		default:
			return Tetsimu2Message{}, fmt.Errorf("protocol: unknown tag %q", tag)
		}
	}

	panic("unreachable")
}
