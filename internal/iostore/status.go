package iostore

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/hangarlog/schema"
)

// PrintStoreStatus prints entry store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Schema Version: %d\n", status.SchemaVersion)
	_, _ = fmt.Fprintf(w, "Total Entries: %s\n", humanize.Comma(int64(status.TotalEntries)))
	_, _ = fmt.Fprintf(w, "Total Photos: %s\n", humanize.Comma(int64(status.TotalPhotos)))
	if status.TotalEntries > 0 {
		_, _ = fmt.Fprintf(w, "Newest Entry: %s (%s)\n", status.NewestEntryTime.Format("2006-01-02 15:04:05"), humanize.Time(status.NewestEntryTime))
		_, _ = fmt.Fprintf(w, "Oldest Entry: %s (%s)\n", status.OldestEntryTime.Format("2006-01-02 15:04:05"), humanize.Time(status.OldestEntryTime))
	}
	_, _ = fmt.Fprintf(w, "Table Size: %s\n", humanize.Bytes(uint64(max(status.TableSizeBytes, 0))))
}
