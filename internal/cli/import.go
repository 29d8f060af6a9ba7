package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kaenlabs/parallel-self-simulator/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import characters from JSON",
		Long: "Import characters from JSON (stdin or --file). Expects the format produced by export.\n" +
			"Characters are recreated from their traits; their days are generated again on demand.",
		Run: runImport,
	}

	cmd.Flags().String("file", "", "Read from a file instead of stdin")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	file, _ := cmd.Flags().GetString("file")

	var (
		data []byte
		err  error
	)
	if file != "" {
		data, err = os.ReadFile(file)
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		exitErr("read input", err)
	}

	var bundles []store.Bundle
	if err := json.Unmarshal(data, &bundles); err != nil {
		exitErr("parse json", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := s.ImportProfiles(cmd.Context(), bundles)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d,"skipped":%d}`+"\n", imported, len(bundles)-imported)
}
