// Command tablegen lays out tables from YAML descriptions, XLSX worksheets
// or DOCX tables and writes the result through a registered sink.
package main

import (
	"os"
)

func main() {
	if err := RootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
