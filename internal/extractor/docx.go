package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const documentXML = "word/document.xml"

// ExtractDOCX returns the text of every top-level body paragraph in document
// order, one per line. Empty paragraphs are kept as empty lines.
func ExtractDOCX(data []byte) (string, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read DOCX as ZIP: %w", err)
	}

	// Find document.xml
	var documentFile *zip.File
	for _, file := range zipReader.File {
		if file.Name == documentXML {
			documentFile = file
			break
		}
	}

	if documentFile == nil {
		return "", fmt.Errorf("document.xml not found in DOCX")
	}

	xmlFile, err := documentFile.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document.xml: %w", err)
	}
	defer xmlFile.Close()

	paragraphs, err := readParagraphs(xmlFile)
	if err != nil {
		return "", fmt.Errorf("failed to parse document.xml: %w", err)
	}

	return strings.Join(paragraphs, "\n"), nil
}

// readParagraphs walks the WordprocessingML token stream. Only w:p elements
// that are direct children of w:body count; table cell paragraphs are skipped.
// Text, tabs and breaks are taken from runs only, so tab stops in paragraph
// properties add nothing. Text boxes are skipped along with their
// mc:Fallback copy.
func readParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		stack      []string
		paragraphs []string
		current    strings.Builder
		inPara     bool
		paraDepth  int
	)

	parent := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if name == "txbxContent" || name == "Fallback" {
				if err := decoder.Skip(); err != nil {
					return nil, err
				}
				continue
			}

			if name == "p" && !inPara && parent() == "body" {
				inPara = true
				paraDepth = len(stack)
				current.Reset()
			} else if inPara && parent() == "r" {
				switch name {
				case "tab":
					current.WriteByte('\t')
				case "br", "cr":
					current.WriteByte('\n')
				}
			}
			stack = append(stack, name)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if inPara && t.Name.Local == "p" && len(stack) == paraDepth {
				paragraphs = append(paragraphs, current.String())
				inPara = false
			}

		case xml.CharData:
			if inPara && len(stack) > 1 && stack[len(stack)-1] == "t" && stack[len(stack)-2] == "r" {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
