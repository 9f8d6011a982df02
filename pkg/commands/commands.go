package commands

import (
	"context"
	"os"
	"sort"
	"strconv"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/commands/options"
	"tableflip.dev/tick/pkg/logging"
	"tableflip.dev/tick/pkg/store"
)

var (
	output  = &options.OutputOptions{}
	logOpts = &options.LogOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "tick",
		Short: base.Wrap80("A markdown checklist for the day, on the command line."),
		Long: base.Wrap80("tick keeps today's tasks in one markdown file of checkbox lines. " +
			"Tasks carry estimates, deadlines and difficulty as inline tags, finished days are archived " +
			"into a searchable history, and routines add their tasks each morning."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArg(cmd, output)
	options.AddLogArgs(cmd, logOpts)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addList(topLevel)
	addAdd(topLevel)
	addSub(topLevel)
	addToggle(topLevel)
	addTrack(topLevel)
	addStrike(topLevel)
	addMove(topLevel)
	addSections(topLevel)
	addEdit(topLevel)
	addRoutine(topLevel)
	addFinish(topLevel)
	addRollover(topLevel)
	addHistory(topLevel)
	addReport(topLevel)
	addAgenda(topLevel)
	addWatch(topLevel)
	addCopy(topLevel)
	addExport(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// loadSession opens the configured store and wraps it in a session.
func loadSession() (*app.Session, store.Persistence, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel()
	if logOpts.Level != "" {
		level = logOpts.Level
	}
	logger := logging.New(os.Stderr, level)
	p, err := store.Load(cfg, store.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return &app.Session{
		Store:           p,
		Logger:          logger,
		RoutinesHeading: cfg.RoutinesHeading(),
	}, p, nil
}

func sectionCompletions(toComplete string) []string {
	session, _, err := loadSession()
	if err != nil {
		return nil
	}
	d, err := session.Document(context.Background())
	if err != nil {
		return nil
	}
	var out []string
	for _, s := range d.Sections() {
		if strings.HasPrefix(strings.ToLower(s), strings.ToLower(toComplete)) {
			out = append(out, strconv.Quote(s))
		}
	}
	sort.Strings(out)
	return out
}
