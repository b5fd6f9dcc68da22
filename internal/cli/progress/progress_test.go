package progress

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
	"github.com/julianstephens/habitual/internal/tracker"
)

var testNow = time.Date(2026, 4, 10, 18, 0, 0, 0, time.UTC)

func setupTestContext(t *testing.T) (*cli.Context, *strings.Builder) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "habitual.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	now := func() time.Time { return testNow }
	rec := &notifier.Recorder{}
	out := &strings.Builder{}
	return &cli.Context{
		Store:  store,
		UserID: "local",
		Loc:    time.UTC,
		Now:    now,
		Out:    out,
		Tracker: &tracker.Tracker{
			Store: store, Reminders: rec, Announcer: rec,
			Config: notifier.DefaultConfig(), Now: now, Loc: time.UTC,
		},
	}, out
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percentage int
		want       string
	}{
		{0, "[░░░░░░░░░░]"},
		{50, "[█████░░░░░]"},
		{100, "[██████████]"},
		{130, "[██████████]"},
		{-5, "[░░░░░░░░░░]"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.percentage, 10); got != tt.want {
			t.Errorf("progressBar(%d) = %q, want %q", tt.percentage, got, tt.want)
		}
	}
}

func TestProgressCmdFreshUser(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&ProgressCmd{}).Run(ctx); err != nil {
		t.Fatalf("ProgressCmd.Run() error = %v", err)
	}
	for _, want := range []string{"Level 1", "Points:       0", "Achievements: 0/"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestProgressCmdStoredProgress(t *testing.T) {
	ctx, out := setupTestContext(t)
	p := models.DefaultProgress(testNow.Add(-time.Hour))
	p.TotalPoints = 1500
	p.Achievements = []string{"streak_7"}
	p.Stats.BestStreak = 7
	if err := ctx.Store.SaveProgress("local", p); err != nil {
		t.Fatal(err)
	}

	if err := (&ProgressCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"1,500", "Achievements: 1/", "best streak 7", "1 hour ago"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := (&AchievementsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "A Week on Fire") || strings.Contains(out.String(), "A Month of Success") {
		t.Errorf("achievements output:\n%s", out.String())
	}

	out.Reset()
	if err := (&AchievementsCmd{All: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "· 🚀") {
		t.Errorf("locked achievements not listed:\n%s", out.String())
	}
}

func TestEmptyListings(t *testing.T) {
	tests := []struct {
		name string
		cmd  interface{ Run(*cli.Context) error }
		want string
	}{
		{"achievements", &AchievementsCmd{}, "No achievements unlocked yet."},
		{"badges", &BadgesCmd{}, "No badges earned yet."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := setupTestContext(t)
			if err := tt.cmd.Run(ctx); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestChallengesCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := ctx.Store.AddHabit(models.NewHabit("h1", "local", "Run", models.CategoryFitness, testNow)); err != nil {
		t.Fatal(err)
	}

	if err := (&ChallengesCmd{}).Run(ctx); err != nil {
		t.Fatalf("ChallengesCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Week of 2026-04-06") {
		t.Errorf("output = %q", out.String())
	}
	if !strings.Contains(out.String(), "[ ]") {
		t.Errorf("no open challenges listed:\n%s", out.String())
	}
}
