package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/thoreinstein/ntc/internal/registry"
	"github.com/thoreinstein/ntc/internal/toolchain"
)

// Terminal styles. fatih/color disables them when stdout is not a terminal
// or NO_COLOR is set.
var (
	headerStyle = color.New(color.FgCyan, color.Bold)
	boldStyle   = color.New(color.Bold)
	okStyle     = color.New(color.FgGreen)
	warnStyle   = color.New(color.FgYellow)
	errStyle    = color.New(color.FgRed)
	dimStyle    = color.New(color.FgHiBlack)
)

// printReport writes a configure report: one line per attempted family.
func printReport(w io.Writer, report *registry.Report) {
	fmt.Fprintf(w, "%s\n", headerStyle.Sprintf("Host: %s", report.Host))

	registered := make(map[string][]string)
	for _, reg := range report.Registered {
		registered[string(reg.Family)] = append(registered[string(reg.Family)], reg.Toolchain)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, id := range report.Attempted {
		if names, ok := registered[string(id)]; ok {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", id, okStyle.Sprint("registered"), strings.Join(names, ", "))
			continue
		}
		if reason, ok := report.SkipReason(id); ok {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", id, warnStyle.Sprint("skipped"), reason)
			continue
		}
		fmt.Fprintf(tw, "  %s\t%s\t\n", id, dimStyle.Sprint("no toolchains"))
	}
	_ = tw.Flush()
}

// printSnapshotTable writes one row per (toolchain, triple) with the C++
// compiler command line.
func printSnapshotTable(w io.Writer, snap registry.Snapshot) {
	if len(snap.Toolchains) == 0 {
		fmt.Fprintln(w, "No toolchains registered")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		boldStyle.Sprint("TOOLCHAIN"), boldStyle.Sprint("FAMILY"), boldStyle.Sprint("TARGET"), boldStyle.Sprint("C++ COMPILER"))
	for _, tc := range snap.Toolchains {
		for _, tgt := range tc.Targets {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", okStyle.Sprint(tc.Name), tc.Family, tgt.Triple, compilerLine(tgt))
		}
	}
	_ = tw.Flush()
}

func compilerLine(tgt registry.TargetSnapshot) string {
	for _, tool := range tgt.Tools {
		if tool.Role != string(toolchain.RoleCppCompiler) {
			continue
		}
		exe := toolchain.Executable{Name: tool.Executable, Rules: tool.Rules}
		return strings.Join(append([]string{exe.Name}, exe.Arguments()...), " ")
	}
	return dimStyle.Sprint("(vendor default)")
}
