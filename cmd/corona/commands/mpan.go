package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/limejump/corona-analytics/internal/asset"
	"github.com/limejump/corona-analytics/internal/contract"
)

// mpanCmd resolves one metering point
var mpanCmd = &cobra.Command{
	Use:   "mpan <mpan>",
	Short: "Resolve the live contract and continuity of one MPAN",
	Long: `Fetches the PPA quotes of one MPAN, picks the live contract and prints
the continuity window, site, company and billing details.

By default only signed (contracted) and non-cancelled quotes are considered.

Example:
  go run ./cmd/corona mpan 008450062012345678910
  go run ./cmd/corona mpan 008450062012345678910 --start 2017-11-01 --end 2017-11-30
  go run ./cmd/corona mpan 008450062012345678910 --from 2017-11-01 --to 2017-11-30`,
	Args: cobra.ExactArgs(1),
	RunE: runMPAN,
}

var (
	mpanStart           string
	mpanEnd             string
	mpanContracted      bool
	mpanRemoveCancelled bool
	mpanFrom            string
	mpanTo              string
)

func init() {
	rootCmd.AddCommand(mpanCmd)

	mpanCmd.Flags().StringVar(&mpanStart, "start", "", "only quotes active on or after this date (YYYY-MM-DD)")
	mpanCmd.Flags().StringVar(&mpanEnd, "end", "", "only quotes active on or before this date (YYYY-MM-DD)")
	mpanCmd.Flags().BoolVar(&mpanContracted, "contracted", true, "only signed quotes")
	mpanCmd.Flags().BoolVar(&mpanRemoveCancelled, "remove-cancelled", true, "drop cancelled quotes")
	mpanCmd.Flags().StringVar(&mpanFrom, "from", "", "reporting period start for attribution (YYYY-MM-DD)")
	mpanCmd.Flags().StringVar(&mpanTo, "to", "", "reporting period end for attribution (YYYY-MM-DD)")
}

func runMPAN(cmd *cobra.Command, args []string) error {
	opts := asset.Options{Contracted: mpanContracted, RemoveCancelled: mpanRemoveCancelled}
	var err error
	if opts.Start, err = parseDateFlag("start", mpanStart); err != nil {
		return err
	}
	if opts.End, err = parseDateFlag("end", mpanEnd); err != nil {
		return err
	}
	if (mpanFrom == "") != (mpanTo == "") {
		return fmt.Errorf("--from and --to must be given together")
	}

	d, err := newDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.close()

	sum, err := d.assets.Summary(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", args[0], err)
	}

	var periods []asset.Period
	if mpanFrom != "" {
		from, err := parseDateFlag("from", mpanFrom)
		if err != nil {
			return err
		}
		to, err := parseDateFlag("to", mpanTo)
		if err != nil {
			return err
		}
		if periods, err = sum.Attribution(from, to); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if periods != nil {
			return PrintJSON(out, map[string]interface{}{"summary": sum.View(), "attribution": periods})
		}
		return PrintJSON(out, sum.View())
	}

	printSummary(out, sum)
	if periods != nil {
		printAttribution(out, periods)
	}
	return nil
}

// printSummary renders a summary as a header block and a contract table
func printSummary(w io.Writer, sum *asset.Summary) {
	v := sum.View()

	fields := [][2]string{
		{"MPAN", v.MPAN},
		{"Site", orDash(v.SiteName)},
		{"Postcode", orDash(v.SitePostcode)},
		{"Meter type", orDash(v.MeterType)},
	}
	if v.CompanyID != 0 {
		fields = append(fields, [2]string{"Company", strconv.FormatInt(v.CompanyID, 10)})
	}
	if v.LiveQuoteID != 0 {
		fields = append(fields, [2]string{"Live quote", strconv.FormatInt(v.LiveQuoteID, 10)})
	}
	if v.Window != nil {
		fields = append(fields, [2]string{"Continuous",
			fmt.Sprintf("%s ~ %s (%d days)", v.Window.StartLive, v.Window.EndLive, v.Window.Days)})
	}
	if v.Aggregate != nil {
		fields = append(fields, [2]string{"Aggregate",
			fmt.Sprintf("%s ~ %s (%d days)", v.Aggregate.StartLive, v.Aggregate.EndLive, v.Aggregate.Days)})
	}
	PrintHeader(w, "MPAN "+v.FullMPAN, fields)

	if len(v.Contracts) == 0 {
		PrintWarning(w, "No PPA contracts found")
		return
	}

	widths := []int{10, 10, 10, 10, 10, 9, 4}
	PrintTableHeader(w, []string{"Quote", "Start", "End", "Technology", "kW", "Cancelled", "Live"}, widths)
	for _, c := range v.Contracts {
		live := ""
		if c.Live {
			live = "*"
		}
		PrintTableRow(w, []string{
			strconv.FormatInt(c.QuoteID, 10),
			c.Start,
			c.End,
			orDash(c.Technology),
			c.CapacityKW.String(),
			strconv.FormatBool(c.Cancelled),
			live,
		}, widths)
	}
}

// printAttribution renders the clamped contract periods
func printAttribution(w io.Writer, periods []asset.Period) {
	fmt.Fprintln(w)
	if len(periods) == 0 {
		PrintWarning(w, "No contract covers the reporting period")
		return
	}

	widths := []int{10, 10, 10, 4}
	PrintTableHeader(w, []string{"Quote", "From", "To", "Days"}, widths)
	for _, p := range periods {
		PrintTableRow(w, []string{
			strconv.FormatInt(p.QuoteID, 10),
			contract.FormatDate(p.Start),
			contract.FormatDate(p.End),
			strconv.Itoa(p.Days()),
		}, widths)
	}
}
