package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/limejump/corona-analytics/internal/scheduler"
	"github.com/limejump/corona-analytics/internal/scheduler/jobs"
)

// jobTimeout bounds one scheduled run
const jobTimeout = 30 * time.Minute

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run or inspect scheduled jobs",
	Long: `Runs the job scheduler or a single job.

Jobs:
  summary_warm - resolves every PPA MPAN for the current month (WARM_SCHEDULE)

Subcommands:
  start   - start the scheduler
  list    - list registered jobs
  run     - run one job now

Example:
  go run ./cmd/corona scheduler start
  go run ./cmd/corona scheduler run summary_warm`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler",
		RunE:  runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run a job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

// initScheduler registers every job on a new scheduler
func initScheduler(d *deps) (*scheduler.Scheduler, error) {
	sched := scheduler.New(d.log, jobTimeout)
	if err := sched.AddJob(jobs.NewWarmJob(d.assets, d.cfg.WarmSchedule, d.log)); err != nil {
		return nil, err
	}
	return sched, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.close()

	sched, err := initScheduler(d)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	sched.Start()

	out := cmd.OutOrStdout()
	PrintSuccess(out, "Scheduler started")
	fmt.Fprintln(out, "Registered jobs:")
	PrintList(out, sched.GetAllJobs())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.close()

	sched, err := initScheduler(d)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	stats := sched.GetJobStats()
	if jsonOutput {
		return PrintJSON(out, stats)
	}

	widths := []int{16, 16}
	PrintTableHeader(out, []string{"Job", "Schedule"}, widths)
	for _, name := range sched.GetAllJobs() {
		PrintTableRow(out, []string{name, stats[name].Schedule}, widths)
	}
	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.close()

	sched, err := initScheduler(d)
	if err != nil {
		return err
	}

	result, err := sched.RunJob(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return PrintJSON(out, result)
	}
	if !result.Success {
		PrintError(out, fmt.Sprintf("%s failed after %s: %s", result.JobName, result.Duration.Round(time.Millisecond), result.Error))
		return fmt.Errorf("job %s failed", result.JobName)
	}
	PrintSuccess(out, fmt.Sprintf("%s completed in %s", result.JobName, result.Duration.Round(time.Millisecond)))
	return nil
}
