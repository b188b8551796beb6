package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// buildPDF writes a minimal PDF with one page per entry. An empty entry
// produces a page with no text, as a scanned page would look to a text reader.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	nObjs := 3 + 2*len(pages)
	offsets := make([]int, nObjs+1)

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	fmt.Fprintf(&b, "2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), len(pages))

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	for i, text := range pages {
		pageObj, contentObj := 4+2*i, 5+2*i

		stream := ""
		if text != "" {
			escaped := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(text)
			stream = "BT\n/F1 12 Tf\n72 720 Td\n(" + escaped + ") Tj\nET"
		}

		offsets[pageObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>\nendobj\n", pageObj, contentObj)

		offsets[contentObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", contentObj, len(stream), stream)
	}

	xrefOffset := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", nObjs+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= nObjs; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", nObjs+1, xrefOffset)

	return []byte(b.String())
}

// buildDOCX zips a word/document.xml whose body holds the given paragraph XML.
func buildDOCX(t *testing.T, bodyXML string) []byte {
	t.Helper()

	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		bodyXML +
		`<w:sectPr/></w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		documentXML:           doc,
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func para(text string) string {
	if text == "" {
		return "<w:p/>"
	}
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

// fakeRunner imitates pdftoppm and tesseract. Pages listed in failPages make
// tesseract exit with an error.
type fakeRunner struct {
	mu        sync.Mutex
	calls     []string
	failPages map[int]bool
	failAll   bool
	// hang makes tesseract wait for its context like a stuck process
	hang bool
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()

	if f.hang && name == "tesseract" {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}

	switch name {
	case "pdftoppm":
		prefix := args[len(args)-1]
		if err := os.WriteFile(prefix+".png", []byte("png"), 0o600); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil
	case "tesseract":
		base := strings.TrimSuffix(filepath.Base(args[0]), ".png")
		page, _ := strconv.Atoi(strings.TrimPrefix(base, "page-"))
		if f.failAll || f.failPages[page] {
			return nil, []byte("Error during processing."), fmt.Errorf("exit status 1")
		}
		return []byte(fmt.Sprintf("scanned text of page %d\n\f", page)), nil, nil
	}
	return nil, nil, fmt.Errorf("unexpected command %s", name)
}

func (f *fakeRunner) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

// recordingOCR counts calls and returns a fixed text.
type recordingOCR struct {
	calls int
	text  string
	err   error
}

func (r *recordingOCR) RecognizePDF(context.Context, []byte) (string, error) {
	r.calls++
	return r.text, r.err
}
