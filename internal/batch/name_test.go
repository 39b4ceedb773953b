package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommonName(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{
			name:  "shared prefix",
			files: []string{"bank_statement_jan.pdf", "bank_statement_feb.pdf"},
			want:  "bank_statement",
		},
		{
			name:  "single file",
			files: []string{"quarterly_report.pdf"},
			want:  "quarterly_report",
		},
		{
			name:  "no files",
			files: nil,
			want:  "combined_output",
		},
		{
			name:  "nothing in common",
			files: []string{"alpha.pdf", "beta.pdf"},
			want:  "combined_output",
		},
		{
			name:  "shared token rescues empty prefix",
			files: []string{"jan_statement.pdf", "feb_statement.pdf"},
			want:  "statement",
		},
		{
			name:  "short prefix without shared token",
			files: []string{"a1.pdf", "a2.pdf"},
			want:  "combined_output",
		},
		{
			name:  "longest shared token wins",
			files: []string{"x_2024_report.pdf", "y_2024_report.pdf"},
			want:  "report",
		},
		{
			name:  "prefix keeps trailing digit",
			files: []string{"statement-03.pdf", "statement-04.pdf"},
			want:  "statement-0",
		},
		{
			name:  "equal-length tokens break ties lexicographically",
			files: []string{"ab_cd.pdf", "cd_ab.pdf"},
			want:  "ab",
		},
		{
			name:  "full paths use base names only",
			files: []string{"/tmp/reports/acct_jan.pdf", "/data/other/acct_feb.pdf"},
			want:  "acct",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommonName(tt.files))
		})
	}
}
