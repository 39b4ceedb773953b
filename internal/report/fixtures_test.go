package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildReportPDF creates a valid PDF with computed xref offsets and one
// content stream per page. Lines start at (72, 720) and step down 18pt at
// 12pt Helvetica. When info is non-nil a document information dictionary is
// attached to the trailer.
func buildReportPDF(info map[string]string, pages ...[]string) []byte {
	n := len(pages)
	fontObj := 3 + 2*n
	infoObj := 0
	lastObj := fontObj
	if info != nil {
		infoObj = fontObj + 1
		lastObj = infoObj
	}

	var widths strings.Builder
	for code := 32; code <= 126; code++ {
		if code > 32 {
			widths.WriteByte(' ')
		}
		if code == 32 {
			widths.WriteString("250")
		} else {
			widths.WriteString("500")
		}
	}

	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, lastObj+1)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	fmt.Fprintf(&b, "2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), n)

	for i, lines := range pages {
		pageObj, contObj := 3+2*i, 4+2*i
		stream := reportContentStream(lines)

		offsets[pageObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> >>\nendobj\n",
			pageObj, contObj, fontObj)

		offsets[contObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			contObj, len(stream), stream)
	}

	offsets[fontObj] = b.Len()
	fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /FirstChar 32 /LastChar 126 /Widths [%s] >>\nendobj\n",
		fontObj, widths.String())

	if info != nil {
		offsets[infoObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<<", infoObj)
		for _, key := range []string{"Title", "Author", "Subject", "Producer", "CreationDate"} {
			if value, ok := info[key]; ok {
				fmt.Fprintf(&b, " /%s (%s)", key, escapeReportText(value))
			}
		}
		b.WriteString(" >>\nendobj\n")
	}

	xrefOffset := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", lastObj+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= lastObj; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	b.WriteString("trailer\n<< /Size ")
	fmt.Fprintf(&b, "%d /Root 1 0 R", lastObj+1)
	if info != nil {
		fmt.Fprintf(&b, " /Info %d 0 R", infoObj)
	}
	fmt.Fprintf(&b, " >>\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	return []byte(b.String())
}

func reportContentStream(lines []string) string {
	var s strings.Builder
	s.WriteString("BT\n/F1 12 Tf\n72 720 Td\n")
	for i, line := range lines {
		if i > 0 {
			s.WriteString("0 -18 Td\n")
		}
		s.WriteString("(" + escapeReportText(line) + ") Tj\n")
	}
	s.WriteString("ET")
	return s.String()
}

func escapeReportText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	s = strings.ReplaceAll(s, ")", `\)`)
	return s
}

// writeReportFixture writes a generated PDF into dir and returns its path
func writeReportFixture(t *testing.T, dir, name string, info map[string]string, pages ...[]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buildReportPDF(info, pages...), 0o644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

var statementLines = []string{
	"Customer Information:",
	"Name: John Smith",
	"Account Number: 12345678",
	"Account Details:",
	"Balance: 100",
}
