package protocol

import (
	"encoding/json"

	"github.com/google/uuid"
)

// HubMessageHeader accompanies unsolicited hub-to-client messages.
type HubMessageHeader struct {
	MessageId string `json:"message_id"`
}

// HubMessageResHeader accompanies hub-to-client responses correlated
// to a prior client request. Result is 0 on success; negative values
// are reserved for future protocol-level failures and are never
// emitted by this hub (see AnalyzePc's body.succeeded for the
// analyzer's own success/failure signal).
type HubMessageResHeader struct {
	MessageId        string `json:"message_id"`
	RequestMessageId string `json:"request_message_id"`
	Result           int32  `json:"result"`
}

func newHubMessageHeader() HubMessageHeader {
	return HubMessageHeader{MessageId: uuid.NewString()}
}

func newHubMessageResHeader(requestMessageId string) HubMessageResHeader {
	return HubMessageResHeader{
		MessageId:        uuid.NewString(),
		RequestMessageId: requestMessageId,
		Result:           0,
	}
}

type VersionMessageBody struct {
	Version string `json:"version"`
}

type VersionMessage struct {
	Header HubMessageHeader   `json:"header"`
	Body   VersionMessageBody `json:"body"`
}

func NewVersionMessage(version string) VersionMessage {
	return VersionMessage{Header: newHubMessageHeader(), Body: VersionMessageBody{Version: version}}
}

type LogMessageBody struct {
	Message string `json:"message"`
}

type LogMessage struct {
	Header HubMessageHeader `json:"header"`
	Body   LogMessageBody   `json:"body"`
}

func NewLogMessage(message string) LogMessage {
	return LogMessage{Header: newHubMessageHeader(), Body: LogMessageBody{Message: message}}
}

type UnhandledMessageBody struct {
	Message string `json:"message"`
}

type UnhandledMessage struct {
	Header HubMessageHeader     `json:"header"`
	Body   UnhandledMessageBody `json:"body"`
}

func NewUnhandledMessage(offending string) UnhandledMessage {
	return UnhandledMessage{Header: newHubMessageHeader(), Body: UnhandledMessageBody{Message: offending}}
}

type InitTutorMessageResBody struct{}

type InitTutorMessageRes struct {
	Header HubMessageResHeader     `json:"header"`
	Body   InitTutorMessageResBody `json:"body"`
}

func NewInitTutorMessageRes(requestMessageId string) InitTutorMessageRes {
	return InitTutorMessageRes{Header: newHubMessageResHeader(requestMessageId)}
}

type TermTutorMessageResBody struct{}

type TermTutorMessageRes struct {
	Header HubMessageResHeader     `json:"header"`
	Body   TermTutorMessageResBody `json:"body"`
}

func NewTermTutorMessageRes(requestMessageId string) TermTutorMessageRes {
	return TermTutorMessageRes{Header: newHubMessageResHeader(requestMessageId)}
}

// Step is the wire form of a recommended placement: the piece kind,
// orientation, and anchor (x, y) at lock time.
type Step struct {
	Type uint8 `json:"type"`
	Dir  uint8 `json:"dir"`
	X    int8  `json:"x"`
	Y    int8  `json:"y"`
}

type StepsMessageBody struct {
	RequestMessageId string `json:"request_message_id"`
	Steps            []Step `json:"steps"`
}

type StepsMessage struct {
	Header HubMessageHeader `json:"header"`
	Body   StepsMessageBody `json:"body"`
}

func NewStepsMessage(requestMessageId string, steps []Step) StepsMessage {
	return StepsMessage{
		Header: newHubMessageHeader(),
		Body:   StepsMessageBody{RequestMessageId: requestMessageId, Steps: steps},
	}
}

// AnalyzePcMessageResBodyItemDetail is one candidate placement
// diagram: a settle-order string plus the resulting 300-cell board.
type AnalyzePcMessageResBodyItemDetail struct {
	Settles string     `json:"settles"`
	Field   [300]uint8 `json:"field"`
}

// AnalyzePcMessageResBodyItem groups candidate diagrams under a
// heading, e.g. "Without line deletion".
type AnalyzePcMessageResBodyItem struct {
	Title  string                              `json:"title"`
	Detail []AnalyzePcMessageResBodyItemDetail `json:"detail"`
}

// AnalyzePcMessageResBody carries the analyzer's outcome. Result is
// always 0 at the header level even on failure (see
// HubMessageResHeader); Succeeded/Message are the true outcome.
type AnalyzePcMessageResBody struct {
	Succeeded    bool                          `json:"succeeded"`
	Message      string                        `json:"message"`
	MinimalItems []AnalyzePcMessageResBodyItem `json:"minimal_items"`
	UniqueItems  []AnalyzePcMessageResBodyItem `json:"unique_items"`
}

type AnalyzePcMessageRes struct {
	Header HubMessageResHeader     `json:"header"`
	Body   AnalyzePcMessageResBody `json:"body"`
}

func NewAnalyzePcMessageRes(requestMessageId string, body AnalyzePcMessageResBody) AnalyzePcMessageRes {
	return AnalyzePcMessageRes{Header: newHubMessageResHeader(requestMessageId), Body: body}
}

// HubMessage wraps one of the above payloads under its tag key so
// that json.Marshal produces the single-tag envelope the client
// expects, e.g. {"Steps": {"header": ..., "body": ...}}.
type HubMessage struct {
	Tag     string
	Payload interface{}
}

func (m HubMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{m.Tag: m.Payload})
}

func Wrap(tag string, payload interface{}) HubMessage {
	return HubMessage{Tag: tag, Payload: payload}
}
