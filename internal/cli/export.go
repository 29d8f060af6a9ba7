package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
	"github.com/kaenlabs/parallel-self-simulator/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export [PROFILE_ID]",
		Short: "Export characters with their history as JSON",
		Long:  "Export one character, or every character (optionally filtered by status), as a JSON array of bundles.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runExport,
	}

	addOwnerFlag(cmd)
	cmd.Flags().StringP("status", "s", "", "Filter by status when exporting all characters")
	cmd.Flags().String("out", "", "Write to a file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	status, _ := cmd.Flags().GetString("status")
	out, _ := cmd.Flags().GetString("out")
	owner, _ := cmd.Flags().GetString("owner")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	var bundles []store.Bundle
	if owner != "" || len(args) > 0 {
		p, err := resolveProfile(cmd.Context(), cmd, s, args)
		if err != nil {
			exitErr("export", err)
		}
		b, err := s.ExportProfile(cmd.Context(), p.ID)
		if err != nil {
			exitErr("export", err)
		}
		bundles = []store.Bundle{*b}
	} else {
		bundles, err = s.ExportAll(cmd.Context(), model.Status(status))
		if err != nil {
			exitErr("export", err)
		}
	}

	b, _ := json.MarshalIndent(bundles, "", "  ")
	if out == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return
	}
	if err := os.WriteFile(out, append(b, '\n'), 0o644); err != nil {
		exitErr("write export", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"exported":%d,"file":%q}`+"\n", len(bundles), out)
}
