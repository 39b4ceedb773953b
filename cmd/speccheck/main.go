package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docsift/pdf-report-extractor/internal/extract"
)

var (
	outputFormat = flag.String("format", "text", "Output format: text, json")
	verbose      = flag.Bool("verbose", false, "Show normalization keywords per field")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: spec file path required\n\n")
		printUsage()
		os.Exit(1)
	}

	specPath := flag.Arg(0)
	if _, err := os.Stat(specPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: File not found: %s\n", specPath)
		os.Exit(1)
	}

	result := checkSpecFile(specPath)

	if err := outputResults(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error outputting results: %v\n", err)
		os.Exit(1)
	}

	if !result.Valid {
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Spec Check - validate and describe report field spec files")
	fmt.Println()
	fmt.Println("Loads a YAML or JSON field spec file, applies the same defaults and")
	fmt.Println("validation as the extraction engine, and prints what each field will do.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -format        Output format: text (default), json")
	fmt.Println("  -verbose       Show normalization keywords per field")
	fmt.Println("  -help          Show this help message")
	fmt.Println()
	fmt.Println("FIELD KINDS:")
	fmt.Println("  plain          Stored under its own name")
	fmt.Println("  continuation   Name carries (+1); appended to the named base field")
	fmt.Println("  chart          Name carries (Chart); base text restructured into columns")
	fmt.Println("  table          Labeling flags set; parsed with the positional table parser")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  speccheck fields.yaml")
	fmt.Println("  speccheck -format json fields.yaml")
	fmt.Println("  speccheck -verbose statements/quarterly.json")
	fmt.Println()
	fmt.Println("EXIT STATUS:")
	fmt.Println("  0 when the spec file loads and validates, 1 otherwise")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  speccheck [OPTIONS] <spec_file>")
}

// specCheckResult represents the complete result of a spec file check
type specCheckResult struct {
	FilePath  string        `json:"file_path"`
	Valid     bool          `json:"valid"`
	SpecCount int           `json:"spec_count,omitempty"`
	Specs     []specSummary `json:"specs,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// specSummary is one decoded spec with its defaults applied plus the kind
// and storage name the engine derived from the field name
type specSummary struct {
	Index    int    `json:"index"`
	Kind     string `json:"kind"`
	BaseName string `json:"base_name"`
	extract.FieldSpec
}

func checkSpecFile(specPath string) *specCheckResult {
	absPath, err := filepath.Abs(specPath)
	if err != nil {
		absPath = specPath
	}

	result := &specCheckResult{
		FilePath: absPath,
	}

	specs, err := extract.LoadSpecFile(absPath)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Valid = true
	result.SpecCount = len(specs)
	result.Specs = make([]specSummary, 0, len(specs))
	for i, spec := range specs {
		result.Specs = append(result.Specs, specSummary{
			Index:     i,
			Kind:      spec.Kind().String(),
			BaseName:  spec.BaseName(),
			FieldSpec: spec,
		})
	}

	return result
}

func outputResults(result *specCheckResult) error {
	switch *outputFormat {
	case "json":
		return outputJSON(result)
	case "text":
		return outputText(result)
	default:
		return fmt.Errorf("unsupported output format: %s", *outputFormat)
	}
}

func outputJSON(result *specCheckResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(result *specCheckResult) error {
	if !result.Valid {
		fmt.Printf("❌ Spec check failed: %s\n", result.Error)
		return nil
	}

	fmt.Printf("✅ %d field spec(s) loaded from %s\n", result.SpecCount, result.FilePath)
	fmt.Println()

	for _, spec := range result.Specs {
		printSpec(spec)
	}

	fmt.Printf("Kinds: %s\n", kindSummary(result.Specs))
	return nil
}

func printSpec(s specSummary) {
	fmt.Printf("[%d] %s\n", s.Index+1, s.FieldName)
	fmt.Printf("    Kind: %s\n", s.Kind)

	if s.BaseName != s.FieldName {
		fmt.Printf("    Stored under: %s\n", s.BaseName)
	}

	fmt.Printf("    Page: %d\n", s.PageNum)
	fmt.Printf("    Start: %q (occurrence %d)\n", s.StartKeyword, s.StartKeywordOccurrence)

	if s.EndKeyword != "" {
		fmt.Printf("    End: %q (occurrence %d)\n", s.EndKeyword, s.EndKeywordOccurrence)
	}
	if s.EndBreakLineCount != nil {
		fmt.Printf("    End after: %d line break(s)\n", *s.EndBreakLineCount)
	}

	region := fmt.Sprintf("horiz_margin=%g", s.HorizMargin)
	if s.VerticalMargin != nil {
		region += fmt.Sprintf(" vertical_margin=%g", *s.VerticalMargin)
	}
	if s.LeftMove != 0 {
		region += fmt.Sprintf(" left_move=%g", s.LeftMove)
	}
	fmt.Printf("    Region: %s\n", region)

	if s.Kind == "chart" {
		fmt.Printf("    Chart: top_title=%t left_title=%t priority_side=%s\n",
			s.TopTitle, s.LeftTitle, s.PrioritySide)
	}

	if s.TableTopLabeling || s.TableLeftLabeling {
		fmt.Printf("    Table: structure=%s top_labeling=%t left_labeling=%t min_column_width=%d\n",
			s.TableStructure, s.TableTopLabeling, s.TableLeftLabeling, s.MinColumnWidth)
	}

	if *verbose {
		if len(s.ForcedKeywords) > 0 {
			fmt.Printf("    Forced keywords: %v\n", s.ForcedKeywords)
		}
		if len(s.RemoveColonAfter) > 0 {
			fmt.Printf("    Remove colon after: %v\n", s.RemoveColonAfter)
		}
		if len(s.RemoveBreaksBefore) > 0 {
			fmt.Printf("    Remove breaks before: %v\n", s.RemoveBreaksBefore)
		}
		if len(s.RemoveBreaksAfter) > 0 {
			fmt.Printf("    Remove breaks after: %v\n", s.RemoveBreaksAfter)
		}
	}

	fmt.Println()
}

// kindSummary counts the decoded kinds in display order
func kindSummary(specs []specSummary) string {
	counts := make(map[string]int)
	for _, s := range specs {
		counts[s.Kind]++
	}

	parts := make([]string, 0, 4)
	for _, kind := range []string{"plain", "continuation", "chart", "table"} {
		if counts[kind] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[kind], kind))
		}
	}
	return strings.Join(parts, ", ")
}

func init() {
	// Custom flag usage
	flag.Usage = func() {
		printHelp()
	}
}
