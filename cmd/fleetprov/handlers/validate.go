package handlers

import (
	"fmt"
	"io"
)

// Validate parses the inventory and prints records and diagnostics without
// provisioning anything. It returns an error when the file is unreadable
// (wrapped as ErrUnreadableInventory) or when diagnostics were found.
func Validate(out io.Writer, path string) error {
	records, diags, err := parseInventoryFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreadableInventory, err)
	}

	for _, r := range records {
		fmt.Fprintf(out, "ok\t%s\t%s\n", r.Hostname, r.Address)
	}
	for _, d := range diags {
		fmt.Fprintf(out, "error\tline %d\t%s\t%s\n", d.Line, d.Raw, d.Message)
	}
	fmt.Fprintf(out, "%d valid, %d invalid\n", len(records), len(diags))

	if len(diags) > 0 {
		return fmt.Errorf("inventory contains %d invalid line(s)", len(diags))
	}
	return nil
}
