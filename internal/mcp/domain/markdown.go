package domain

import "strings"

// transactionsMarkdownTable renders transaction entries as a Markdown table
// for hosts that present text content alongside structured output.
func transactionsMarkdownTable(entries []TransactionEntry) string {
	if len(entries) == 0 {
		return "No transactions found."
	}

	var b strings.Builder
	b.WriteString("| Date | Account | Payee | Category | Amount | Memo |\n")
	b.WriteString("| --- | --- | --- | --- | ---: | --- |\n")
	for _, entry := range entries {
		category := entry.CategoryName
		if category == "" {
			category = "(uncategorized)"
		}
		cells := []string{
			entry.Date,
			entry.AccountName,
			entry.PayeeName,
			category,
			entry.AmountDisplay,
			entry.Memo,
		}
		for i, cell := range cells {
			cells[i] = markdownCell(cell)
		}
		b.WriteString("| ")
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// markdownCell flattens newlines and escapes pipes so cell content cannot
// break the table layout.
func markdownCell(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	return strings.ReplaceAll(value, "|", "\\|")
}
