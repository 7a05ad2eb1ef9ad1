package session

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/cuboktahedron/tetsimu2-hub/internal/field"
	"github.com/cuboktahedron/tetsimu2-hub/internal/fumen"
	"github.com/cuboktahedron/tetsimu2-hub/internal/protocol"
	"github.com/cuboktahedron/tetsimu2-hub/internal/tetromino"
)

// mainJar is the solution-finder jar name expected under the
// configured solver root.
const mainJar = "sfinder.jar"

// AnalyzerProcessor is the one-shot AnalyzePc processor: it shells out
// to an external perfect-clear solver and reports back whatever it
// found. It never transitions to any state besides Deny while running;
// the owning Connection resets itself to Idle once Execute returns.
type AnalyzerProcessor struct {
	out        Sender
	log        zerolog.Logger
	solverPath string
}

func NewAnalyzerProcessor(out Sender, log zerolog.Logger, solverPath string) *AnalyzerProcessor {
	return &AnalyzerProcessor{out: out, log: log, solverPath: solverPath}
}

// BeforeExecute always denies: a second request arriving while an
// analysis is in flight must wait for the first to finish, and the
// solver subprocess cannot be steered mid-run.
func (p *AnalyzerProcessor) BeforeExecute(msg protocol.Tetsimu2Message) BeforeExecuteResult {
	return Deny
}

func (p *AnalyzerProcessor) Halt() {
	p.log.Warn().Msg("analyzer halt requested but the solver subprocess cannot be interrupted")
}

func (p *AnalyzerProcessor) Execute(msg protocol.Tetsimu2Message) {
	req := msg.AnalyzePc
	body, err := p.run(req)
	if err != nil {
		body = protocol.AnalyzePcMessageResBody{Succeeded: false, Message: err.Error()}
	}

	out, err := marshalHub(protocol.Wrap("AnalyzePc", protocol.NewAnalyzePcMessageRes(req.Header.MessageId, body)))
	if err != nil {
		p.log.Error().Err(err).Msg("failed to marshal AnalyzePc response")
		return
	}
	if err := p.out.Send(out); err != nil {
		p.log.Warn().Err(err).Msg("failed to send AnalyzePc response")
	}
}

func (p *AnalyzerProcessor) run(req *protocol.AnalyzePcMessageReq) (protocol.AnalyzePcMessageResBody, error) {
	if p.solverPath == "" {
		return protocol.AnalyzePcMessageResBody{}, fmt.Errorf("solution finder settings is not set")
	}
	if _, err := os.Stat(filepath.Join(p.solverPath, mainJar)); err != nil {
		return protocol.AnalyzePcMessageResBody{}, fmt.Errorf("cannot find %s", mainJar)
	}

	f := field.New()
	for i, v := range req.Body.Field {
		if v > uint8(tetromino.CellGarbage) {
			return protocol.AnalyzePcMessageResBody{}, fmt.Errorf("could not convert %d to a field cell", v)
		}
		f.SetCell(i%tetromino.Width, i/tetromino.Width, tetromino.CellValue(v))
	}

	clearLine := int(req.Body.ClearLine)
	if clearLine == 0 {
		auto := decideClearLine(f)
		if auto < 0 {
			return protocol.AnalyzePcMessageResBody{}, fmt.Errorf("empty cell must be multiples of 4")
		}
		clearLine = auto
	}

	dropWord, err := dropTypeWord(req.Body.DropType)
	if err != nil {
		return protocol.AnalyzePcMessageResBody{}, err
	}
	holdWord := "avoid"
	if req.Body.HoldType != 0 {
		holdWord = "use"
	}

	tetfu := fumen.Encode(fumen.Content{Field: f})

	cmd := exec.Command("java", "-jar", mainJar, "path",
		"--tetfu", tetfu,
		"--patterns", req.Body.Nexts,
		"--clear-line", strconv.Itoa(clearLine),
		"--hold", holdWord,
		"--drop", dropWord,
		"--format", "html",
	)
	cmd.Dir = p.solverPath

	stdout, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return protocol.AnalyzePcMessageResBody{}, fmt.Errorf("%s", firstMessageLine(string(exitErr.Stderr)))
		}
		return protocol.AnalyzePcMessageResBody{}, err
	}

	message := foundPathLines(string(stdout))

	minimal, err := parseArtifact(filepath.Join(p.solverPath, "output", "path_minimal.html"))
	if err != nil {
		p.log.Warn().Err(err).Msg("failed to parse path_minimal.html")
	}
	unique, err := parseArtifact(filepath.Join(p.solverPath, "output", "path_unique.html"))
	if err != nil {
		p.log.Warn().Err(err).Msg("failed to parse path_unique.html")
	}

	return protocol.AnalyzePcMessageResBody{
		Succeeded:    true,
		Message:      message,
		MinimalItems: minimal,
		UniqueItems:  unique,
	}, nil
}

// decideClearLine finds the highest non-empty row and counts the
// empty cells at or below it, returning -1 if that count is odd
// (spec.md's auto clear-line rule).
func decideClearLine(f *field.Field) int {
	highest := -1
	for y := tetromino.Height - 1; y >= 0; y-- {
		for x := 0; x < tetromino.Width; x++ {
			if f.GetCell(x, y) != tetromino.CellEmpty {
				highest = y
				break
			}
		}
		if highest >= 0 {
			break
		}
	}

	h := highest + 1
	empty := 0
	for y := 0; y < h; y++ {
		for x := 0; x < tetromino.Width; x++ {
			if f.GetCell(x, y) == tetromino.CellEmpty {
				empty++
			}
		}
	}

	if empty%2 != 0 {
		return -1
	}
	if empty%4 == 0 {
		return h
	}
	return h + 1
}

func dropTypeWord(dropType uint8) (string, error) {
	switch dropType {
	case 0:
		return "softdrop", nil
	case 1:
		return "harddrop", nil
	case 5:
		return "tss", nil
	case 6:
		return "tsd", nil
	case 7:
		return "tst", nil
	default:
		return "", fmt.Errorf("drop_type %d is not supported", dropType)
	}
}

func foundPathLines(stdout string) string {
	var found []string
	scanner := bufio.NewScanner(strings.NewReader(stdout))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "Found path") {
			found = append(found, line)
		}
	}
	return strings.Join(found, "\n")
}

func firstMessageLine(stderr string) string {
	scanner := bufio.NewScanner(strings.NewReader(stderr))
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, "Message: "); idx >= 0 {
			return line[idx+len("Message: "):]
		}
	}
	trimmed := strings.TrimSpace(stderr)
	if trimmed == "" {
		return "solver exited with an error"
	}
	return trimmed
}

// parseArtifact reads one solver HTML artifact and groups its
// candidate diagrams under "Without line deletion" / "With line
// deletion" headings (spec.md §4.10).
func parseArtifact(path string) ([]protocol.AnalyzePcMessageResBodyItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, err
	}

	var items []protocol.AnalyzePcMessageResBodyItem
	for _, group := range []struct {
		selector string
		title    string
	}{
		{"#notdeletedline a", "Without line deletion"},
		{"#deletedline a", "With line deletion"},
	} {
		var detail []protocol.AnalyzePcMessageResBodyItemDetail
		doc.Find(group.selector).Each(func(_ int, sel *goquery.Selection) {
			href, ok := sel.Attr("href")
			if !ok {
				return
			}
			content, err := fumen.Decode(href)
			if err != nil {
				return
			}

			var wire [300]uint8
			for y := 0; y < tetromino.Height; y++ {
				for x := 0; x < tetromino.Width; x++ {
					wire[y*tetromino.Width+x] = uint8(content.Field.GetCell(x, y))
				}
			}

			settles := strings.TrimSpace(sel.Text())
			if fields := strings.Fields(settles); len(fields) > 0 {
				settles = fields[0]
			}

			detail = append(detail, protocol.AnalyzePcMessageResBodyItemDetail{Settles: settles, Field: wire})
		})

		if len(detail) > 0 {
			items = append(items, protocol.AnalyzePcMessageResBodyItem{Title: group.title, Detail: detail})
		}
	}

	return items, nil
}
