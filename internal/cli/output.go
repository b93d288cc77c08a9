package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/oktasync/internal/models"
)

// printRecords renders users as an aligned table, one row per user.
func (a *App) printRecords(recs ...models.UserRecord) {
	w := tabwriter.NewWriter(a.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tSTATUS\tTYPE\tUPDATED")

	for _, r := range recs {
		typeName := "-"
		if r.Type != nil {
			typeName = r.Type.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\t%s\n",
			r.User.ID,
			r.Profile.Email,
			r.Profile.FirstName, r.Profile.LastName,
			r.User.Status,
			typeName,
			r.User.UpdatedAt.Format(time.RFC3339),
		)
	}
	_ = w.Flush()
}
