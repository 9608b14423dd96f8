package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lzww0608/uuidgen"
)

var versionNames = map[uuidgen.Version]string{
	uuidgen.VersionTimeBased:     "time-based",
	uuidgen.VersionDCESecurity:   "DCE security",
	uuidgen.VersionNameBasedMD5:  "name-based (MD5)",
	uuidgen.VersionRandom:        "random",
	uuidgen.VersionNameBasedSHA1: "name-based (SHA-1)",
}

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID...",
		Short: "Decode the fields of one or more UUIDs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, arg := range args {
				id, err := uuidgen.Parse(arg)
				if err != nil {
					return fmt.Errorf("%q: %w", arg, err)
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				writeInspection(out, id)
			}
			return nil
		},
	}
}

func writeInspection(w io.Writer, id uuidgen.UUID) {
	in := id.Inspect()

	name, ok := versionNames[in.Version]
	if !ok {
		name = "unknown"
	}
	fmt.Fprintf(w, "uuid:      %s\n", id)
	fmt.Fprintf(w, "version:   %d (%s)\n", in.Version, name)
	fmt.Fprintf(w, "variant:   %s\n", in.Variant)
	if in.Version == uuidgen.VersionTimeBased {
		ts := in.UnixTime()
		fmt.Fprintf(w, "time:      %s\n", ts.Time().Format(time.RFC3339Nano))
		fmt.Fprintf(w, "unix:      %d.%06d%d\n", ts.Seconds, ts.Micros, ts.Hectonanos)
		fmt.Fprintf(w, "clock seq: %d\n", in.ClockSeq)
		fmt.Fprintf(w, "node:      %s\n", uuidgen.FormatNodeID(in.Node))
	}
}

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse ID",
		Short: "Validate a UUID and print its canonical and compact forms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuidgen.Parse(args[0])
			if err != nil {
				return fmt.Errorf("%q: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, id.String())
			fmt.Fprintln(out, id.EncodeToHex())
			return nil
		},
	}
}
