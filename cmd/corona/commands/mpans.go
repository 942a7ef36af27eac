package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/limejump/corona-analytics/internal/contract"
)

// mpansCmd lists PPA metering points
var mpansCmd = &cobra.Command{
	Use:   "mpans",
	Short: "List PPA MPANs",
	Long: `Lists the distinct MPANs with a PPA quote matching the filters.

With --meter-type every MPAN is resolved (in parallel, bounded by
CORONA_CONCURRENCY) and described by its first contract.

Example:
  go run ./cmd/corona mpans
  go run ./cmd/corona mpans --start 2017-11-01 --end 2017-11-30 --quote-type flex
  go run ./cmd/corona mpans --meter-type export
  go run ./cmd/corona mpans --quote-ids`,
	Args: cobra.NoArgs,
	RunE: runMPANs,
}

var (
	mpansStart           string
	mpansEnd             string
	mpansContracted      bool
	mpansRemoveCancelled bool
	mpansQuoteType       string
	mpansMeterType       string
	mpansQuoteIDs        bool
)

func init() {
	rootCmd.AddCommand(mpansCmd)

	mpansCmd.Flags().StringVar(&mpansStart, "start", "", "only quotes active on or after this date (YYYY-MM-DD)")
	mpansCmd.Flags().StringVar(&mpansEnd, "end", "", "only quotes active on or before this date (YYYY-MM-DD)")
	mpansCmd.Flags().BoolVar(&mpansContracted, "contracted", true, "only signed quotes")
	mpansCmd.Flags().BoolVar(&mpansRemoveCancelled, "remove-cancelled", true, "drop cancelled quotes")
	mpansCmd.Flags().StringVar(&mpansQuoteType, "quote-type", "", "only quotes of this type")
	mpansCmd.Flags().StringVar(&mpansMeterType, "meter-type", "", "resolve MPANs and keep export or import meters")
	mpansCmd.Flags().BoolVar(&mpansQuoteIDs, "quote-ids", false, "list quote ids instead of MPANs")
}

func runMPANs(cmd *cobra.Command, args []string) error {
	criteria := contract.QueryCriteria{
		Contracted:      mpansContracted,
		RemoveCancelled: mpansRemoveCancelled,
	}
	var err error
	if criteria.Start, err = parseDateFlag("start", mpansStart); err != nil {
		return err
	}
	if criteria.End, err = parseDateFlag("end", mpansEnd); err != nil {
		return err
	}
	if err := criteria.Validate(); err != nil {
		return err
	}

	d, err := newDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case mpansQuoteIDs:
		ids, err := d.assets.ListQuoteIDs(ctx, criteria)
		if err != nil {
			return err
		}
		if jsonOutput {
			return PrintJSON(out, ids)
		}
		items := make([]string, len(ids))
		for i, id := range ids {
			items[i] = strconv.FormatInt(id, 10)
		}
		PrintList(out, items)
		PrintSuccess(out, fmt.Sprintf("%d quotes", len(ids)))

	case mpansMeterType != "":
		assets, err := d.assets.MPANsByMeterType(ctx, criteria, mpansMeterType)
		if err != nil {
			return err
		}
		if jsonOutput {
			return PrintJSON(out, assets)
		}

		keys := make([]string, 0, len(assets))
		for k := range assets {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		widths := []int{21, 24, 10, 6, 10}
		PrintTableHeader(out, []string{"MPAN", "Site", "Technology", "Meter", "kW"}, widths)
		for _, k := range keys {
			a := assets[k]
			PrintTableRow(out, []string{k, orDash(a.SiteName), orDash(a.Technology), a.MeterType, a.CapacityKW.String()}, widths)
		}
		PrintSuccess(out, fmt.Sprintf("%d %s MPANs", len(assets), mpansMeterType))

	default:
		mpans, err := d.assets.ListMPANs(ctx, criteria, mpansQuoteType)
		if err != nil {
			return err
		}
		if jsonOutput {
			return PrintJSON(out, mpans)
		}
		PrintList(out, mpans)
		PrintSuccess(out, fmt.Sprintf("%d MPANs", len(mpans)))
	}

	return nil
}
