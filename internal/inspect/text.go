package inspect

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteText renders the view as an indented, column-aligned listing.
func (v *View) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, e := range v.Events {
		if e.Known {
			fmt.Fprintf(tw, "%s.%s %s%s\n", e.Owner, e.ID, e.Shape, flags(e.DestroyOnLoad))
		} else {
			fmt.Fprintf(tw, "%s\n", e.ID)
		}
		for _, s := range e.Shadowed {
			fmt.Fprintf(tw, "  shadowed by\t%s\n", s)
		}
		for _, l := range e.Listeners {
			line := fmt.Sprintf("  %d\t%s.%s\t%s\t%s", l.Order, l.Target, l.Method, l.Shape, l.Verdict)
			if l.Problem != "" {
				line += ": " + l.Problem
			}
			fmt.Fprintln(tw, line+flags(l.DestroyOnLoad))
		}
	}

	fmt.Fprintf(tw, "Verified %d listeners, %d failed, %d ignored (no event found)\n",
		v.Verification.Checked, v.Verification.Failed, v.Verification.Ignored)
	return tw.Flush()
}

func flags(destroyOnLoad bool) string {
	if destroyOnLoad {
		return " [DestroyOnLoad]"
	}
	return ""
}
