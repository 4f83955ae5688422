package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"text/tabwriter"
)

// csvHeader is always written, so a period with no earnings still produces
// a valid header-only file.
var csvHeader = []string{"period", "store", "track_title", "isrc", "currency", "gross", "share_percent", "share_usd"}

// WriteCSV renders the statement as CSV. Currency figures use two decimal
// places; so does the share percent.
func WriteCSV(w io.Writer, st *Statement) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range st.Rows {
		record := []string{
			row.Period,
			row.Store,
			row.TrackTitle,
			row.ISRC,
			row.Currency,
			fmt.Sprintf("%.2f", row.Gross),
			fmt.Sprintf("%.2f", row.SharePercent),
			fmt.Sprintf("%.2f", row.ShareUSD),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// WriteText renders the statement as a plaintext document, the layout used
// for the printable/PDF-style download. Note the share percent prints at
// one decimal place here versus two in the CSV; both formats predate this
// backend and downstream consumers rely on them as-is.
func WriteText(w io.Writer, st *Statement) error {
	if _, err := fmt.Fprintf(w, "Royalty Statement\nArtist: %s\nPeriod: %s\n\n", st.ArtistName, st.Period); err != nil {
		return fmt.Errorf("failed to write statement header: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STORE\tTRACK\tISRC\tCURRENCY\tGROSS\tSHARE\tSHARE USD")
	for _, row := range st.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%.1f%%\t%.2f\n",
			row.Store, row.TrackTitle, row.ISRC, row.Currency, row.Gross, row.SharePercent, row.ShareUSD)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush statement table: %w", err)
	}

	if _, err := fmt.Fprintf(w, "\nTotal share: %.2f USD\n", st.TotalUSD); err != nil {
		return fmt.Errorf("failed to write statement total: %w", err)
	}
	return nil
}
