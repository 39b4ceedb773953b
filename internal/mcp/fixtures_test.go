package mcp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildServerPDF creates a valid one-page PDF with computed xref offsets.
// Lines start at (72, 720) and step down 18pt at 12pt Helvetica.
func buildServerPDF(lines []string) []byte {
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

	var stream strings.Builder
	stream.WriteString("BT\n/F1 12 Tf\n72 720 Td\n")
	for i, line := range lines {
		if i > 0 {
			stream.WriteString("0 -18 Td\n")
		}
		stream.WriteString("(" + escapeServerText(line) + ") Tj\n")
	}
	stream.WriteString("ET")

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")

	offsets[4] = b.Len()
	fmt.Fprintf(&b, "4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
		stream.Len(), stream.String())

	offsets[5] = b.Len()
	fmt.Fprintf(&b, "5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /FirstChar 32 /LastChar 126 /Widths [%s] >>\nendobj\n",
		widths.String())

	xrefOffset := b.Len()
	b.WriteString("xref\n0 6\n")
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	return []byte(b.String())
}

func escapeServerText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	s = strings.ReplaceAll(s, ")", `\)`)
	return s
}

// writeServerFixture writes a generated PDF into dir and returns its path
func writeServerFixture(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buildServerPDF(lines), 0o644); err != nil {
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

const statementSpecYAML = `- field_name: Customer Information
  start_keyword: "Customer Information:"
  end_keyword: "Account Details:"
`

// writeSpecFixture writes a field spec file into dir and returns its path
func writeSpecFixture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "statement_spec.yaml")
	if err := os.WriteFile(path, []byte(statementSpecYAML), 0o644); err != nil {
		t.Fatalf("failed to write spec file: %v", err)
	}
	return path
}
