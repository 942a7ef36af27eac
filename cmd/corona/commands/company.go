package commands

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/limejump/corona-analytics/internal/company"
)

// companyCmd looks up a company
var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Look up a Corona company and its billing details",
	Long: `Finds a company by id or by exact name and prints its billing record.

Example:
  go run ./cmd/corona company --id 100
  go run ./cmd/corona company --name "Sunny Farm Ltd"`,
	Args: cobra.NoArgs,
	RunE: runCompany,
}

var (
	companyID   int64
	companyName string
)

func init() {
	rootCmd.AddCommand(companyCmd)

	companyCmd.Flags().Int64Var(&companyID, "id", 0, "company id")
	companyCmd.Flags().StringVar(&companyName, "name", "", "company name")
}

func runCompany(cmd *cobra.Command, args []string) error {
	if companyID == 0 && companyName == "" {
		return company.ErrNoCompanyKey
	}

	d, err := newDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.close()

	info, err := d.companies.Lookup(cmd.Context(), companyID, companyName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return PrintJSON(out, info)
	}
	printCompany(out, info)
	return nil
}

func printCompany(w io.Writer, info *company.Info) {
	fields := [][2]string{
		{"ID", strconv.FormatInt(info.ID, 10)},
		{"Number", orDash(info.CompanyNumber)},
	}
	if info.ParentCompany != nil {
		fields = append(fields, [2]string{"Parent", strconv.FormatInt(*info.ParentCompany, 10)})
	}
	PrintHeader(w, info.Name, fields)

	if info.Billing == nil {
		PrintWarning(w, "No billing details")
		return
	}

	keys := make([]string, 0, len(info.Billing))
	for k := range info.Billing {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]string, len(keys))
	for i, k := range keys {
		items[i] = fmt.Sprintf("%s: %v", k, info.Billing[k])
	}
	PrintList(w, items)
}
