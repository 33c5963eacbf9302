package cmd

import (
	"fmt"
	"strings"

	"github.com/s0up4200/edinet/edinet"
)

// FormatOptions controls how much of each document is printed
type FormatOptions struct {
	ShowDetails bool
}

// ConsoleFormatter renders API results for the terminal
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatMetadata formats the metadata block of a list response
func (f *ConsoleFormatter) FormatMetadata(meta edinet.Metadata) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Date:      %s\n", meta.Parameter.Date)
	fmt.Fprintf(&sb, "Documents: %d\n", meta.ResultSet.Count)
	fmt.Fprintf(&sb, "Status:    %s %s\n", meta.Status, meta.Message)
	if meta.ProcessDateTime != "" {
		fmt.Fprintf(&sb, "Processed: %s JST\n", meta.ProcessDateTime)
	}

	return sb.String()
}

// FormatDocumentList formats documents as a tree
func (f *ConsoleFormatter) FormatDocumentList(docs []edinet.Document, options FormatOptions) string {
	if len(docs) == 0 {
		return "No documents found"
	}

	var sb strings.Builder

	sb.WriteString("\nDocument")
	if len(docs) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(docs))

	for i, doc := range docs {
		isLast := i == len(docs)-1
		f.formatDocument(&sb, doc, isLast, options)

		if !isLast {
			sb.WriteString("\u2502\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func (f *ConsoleFormatter) formatDocument(sb *strings.Builder, doc edinet.Document, isLast bool, options FormatOptions) {
	prefix := "\u251c"
	if isLast {
		prefix = "\u2570"
	}

	name := edinet.Value(doc.FilerName)
	if name == "" {
		name = "(no filer)"
	}
	fmt.Fprintf(sb, "%s\u2500\u2500 %s %s", prefix, doc.DocID, name)
	if doc.IsWithdrawn() {
		sb.WriteString(" [WITHDRAWN]")
	}
	sb.WriteString("\n")

	indent := "\u2502   "
	if isLast {
		indent = "    "
	}

	if desc := edinet.Value(doc.DocDescription); desc != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, desc)
	}

	fmt.Fprintf(sb, "%sFormats: %s\n", indent, availableFormats(doc))

	if !options.ShowDetails {
		return
	}

	var codes []string
	if v := edinet.Value(doc.DocTypeCode); v != "" {
		codes = append(codes, "Type: "+v)
	}
	if v := edinet.Value(doc.SecCode); v != "" {
		codes = append(codes, "Sec: "+v)
	}
	if v := edinet.Value(doc.EdinetCode); v != "" {
		codes = append(codes, "EDINET: "+v)
	}
	if v := edinet.Value(doc.FundCode); v != "" {
		codes = append(codes, "Fund: "+v)
	}
	if len(codes) > 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(codes, " | "))
	}

	var dateParts []string
	if v := edinet.Value(doc.SubmitDateTime); v != "" {
		dateParts = append(dateParts, "Submitted: "+v)
	}
	if start, end, ok := doc.Period(); ok {
		dateParts = append(dateParts, fmt.Sprintf("Period: %s to %s", edinet.FormatDate(start), edinet.FormatDate(end)))
	}
	if len(dateParts) > 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(dateParts, " | "))
	}

	if v := edinet.Value(doc.ParentDocID); v != "" {
		fmt.Fprintf(sb, "%sAmends: %s\n", indent, v)
	}
}

func availableFormats(doc edinet.Document) string {
	var names []string
	for _, format := range edinet.Formats {
		if doc.HasFormat(format) {
			names = append(names, format.String())
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// FormatDownloadSummary formats the outcome of a download run
func (f *ConsoleFormatter) FormatDownloadSummary(results []downloadResult) string {
	var downloaded, skipped int
	var failed []downloadResult

	for _, r := range results {
		switch {
		case r.Err != nil:
			failed = append(failed, r)
		case r.Skipped != "":
			skipped++
		default:
			downloaded++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n\u2713 Downloaded %d %s\n", downloaded, plural(downloaded, "document"))
	if skipped > 0 {
		fmt.Fprintf(&sb, "- Skipped %d %s\n", skipped, plural(skipped, "document"))
	}
	if len(failed) > 0 {
		fmt.Fprintf(&sb, "\u2717 Failed %d %s:\n", len(failed), plural(len(failed), "document"))
		for i, r := range failed {
			prefix := "\u251c"
			if i == len(failed)-1 {
				prefix = "\u2570"
			}
			fmt.Fprintf(&sb, "%s\u2500\u2500 %s: %v\n", prefix, r.DocID, r.Err)
		}
	}

	return sb.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
