package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ogurasousui/timecard-audit/internal/core/audit"
	"github.com/ogurasousui/timecard-audit/internal/core/timecard"
)

// WriteText は監査結果をセクションごとのテキストとして書き出します。
// 各セクションは見出し行と "Employee <label>: <identity>" 行からなり、空行で区切られます。
func WriteText(w io.Writer, r *audit.Report) error {
	bw := bufio.NewWriter(w)
	label := r.Strategy.Label()

	for i, section := range r.Sections {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintln(bw, section.Title)
		for _, identity := range section.Identities {
			fmt.Fprintf(bw, "Employee %s: %s\n", label, identity)
		}
	}

	return bw.Flush()
}

// WriteDiagnostics はスキップした行を 1 行ずつ書き出します。
func WriteDiagnostics(w io.Writer, diags []timecard.Diagnostic) error {
	bw := bufio.NewWriter(w)
	for _, d := range diags {
		fmt.Fprintln(bw, d.String())
	}
	return bw.Flush()
}
