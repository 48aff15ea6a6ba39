package main

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
)

// WriteHTMLReport renders the comment records as a single self-contained
// page: no server, no external assets, works opened straight from disk.
// Client-side controls: keyword filter over the summary and comment
// columns, exact category filter, and per-column click sort (numeric on the
// like-count column, stable for equal keys, direction toggling on repeated
// clicks).
func WriteHTMLReport(stem string, records []CommentRecord) (string, error) {
	path := stem + ".html"
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, fmt.Errorf("creating report dir: %w", err)
	}
	return path, os.WriteFile(path, []byte(renderHTMLReport(records)), 0644)
}

func renderHTMLReport(records []CommentRecord) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Comment Analysis Report</title>
<style>` + reportCSS + `</style>
</head>
<body>
<h1>Comment Analysis Report</h1>
<div class="controls">
<input type="text" id="keywordFilter" onkeyup="filterTable()" placeholder="Filter by keyword...">
<select id="categoryFilter" onchange="filterTable()">
<option value="">All Categories</option>
`)
	for _, category := range CommentCategories {
		fmt.Fprintf(&b, "<option value=%q>%s</option>\n", category, html.EscapeString(category))
	}
	b.WriteString(`</select>
</div>
<table id="resultsTable"><thead><tr>
<th onclick="sortTable(0)">Category</th>
<th onclick="sortTable(1)">Like Count</th>
<th onclick="sortTable(2)">Summary</th>
<th onclick="sortTable(3)">Original Comment</th>
<th onclick="sortTable(4)">Video Title</th>
</tr></thead><tbody>
`)
	for _, r := range records {
		categoryClass := strings.ReplaceAll(r.Category, " ", "-")
		b.WriteString("<tr>")
		fmt.Fprintf(&b, `<td><span class="category %s">%s</span></td>`, categoryClass, html.EscapeString(r.Category))
		fmt.Fprintf(&b, "<td>%d</td>", r.LikeCount)
		fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(r.Summary))
		fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(r.CommentText))
		fmt.Fprintf(&b, "<td><a href=%q>%s</a></td>", r.VideoURL, html.EscapeString(r.VideoTitle))
		b.WriteString("</tr>\n")
	}
	b.WriteString(`</tbody></table>
<script>` + reportJS + `</script>
</body>
</html>
`)
	return b.String()
}

const reportCSS = `
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; margin: 40px; background-color: #f8f9fa; color: #212529; }
h1 { color: #343a40; }
table { width: 100%; border-collapse: collapse; margin-top: 20px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
th, td { padding: 12px 15px; text-align: left; border-bottom: 1px solid #dee2e6; }
thead th { background-color: #e9ecef; cursor: pointer; }
tbody tr:nth-child(even) { background-color: #f2f2f2; }
tbody tr:hover { background-color: #dee2e6; }
.controls { margin-bottom: 20px; display: flex; gap: 15px; align-items: center; }
.controls input, .controls select { padding: 8px 12px; border: 1px solid #ced4da; border-radius: 4px; }
.category { padding: 4px 8px; border-radius: 4px; color: white; font-weight: bold; }
.Positive-Feedback { background-color: #28a745; }
.Negative-Sentiment { background-color: #dc3545; }
.Question { background-color: #007bff; }
.Suggestion { background-color: #ffc107; color: #212529; }
.Other { background-color: #6c757d; }
`

// The sort decorates each row with its current position and uses that as
// the tie-break, so equal keys keep their relative order on every pass.
const reportJS = `
function filterTable() {
    const keyword = document.getElementById('keywordFilter').value.toLowerCase();
    const category = document.getElementById('categoryFilter').value;
    const rows = document.getElementById('resultsTable').tBodies[0].rows;

    for (let i = 0; i < rows.length; i++) {
        const cells = rows[i].getElementsByTagName('td');
        const categoryMatch = (category === '' || cells[0].textContent.trim() === category);
        const keywordMatch = (cells[2].textContent.toLowerCase().includes(keyword) ||
                              cells[3].textContent.toLowerCase().includes(keyword));
        rows[i].style.display = (categoryMatch && keywordMatch) ? '' : 'none';
    }
}

let sortColumn = -1;
let sortAscending = true;

function sortTable(columnIndex) {
    if (sortColumn === columnIndex) {
        sortAscending = !sortAscending;
    } else {
        sortColumn = columnIndex;
        sortAscending = true;
    }
    const dir = sortAscending ? 1 : -1;
    const tbody = document.getElementById('resultsTable').tBodies[0];
    const keyed = Array.from(tbody.rows).map(function (row, position) {
        let key = row.cells[columnIndex].textContent.trim();
        if (columnIndex === 1) {
            key = parseInt(key, 10) || 0;
        } else {
            key = key.toLowerCase();
        }
        return { row: row, key: key, position: position };
    });
    keyed.sort(function (a, b) {
        if (a.key < b.key) return -dir;
        if (a.key > b.key) return dir;
        return a.position - b.position;
    });
    keyed.forEach(function (entry) { tbody.appendChild(entry.row); });
}
`
