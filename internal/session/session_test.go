package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/mastery"
	"github.com/abhisek/quizdeck/internal/shuffle"
	"github.com/abhisek/quizdeck/internal/stats"
	"github.com/abhisek/quizdeck/internal/store"
)

var fixedNow = time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)

func testModule() *catalog.Module {
	return &catalog.Module{
		ID:   "m1",
		Name: "Networking",
		Questions: []catalog.Question{
			{ID: "q1", Block: "A", Question: "One?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0, Explanation: "first"},
			{ID: "q2", Block: "A", Question: "Two?", Options: []string{"a", "b", "c"}, CorrectAnswer: 2},
			{ID: "q3", Block: "B", Question: "Three?", Options: []string{"x", "y"}, CorrectAnswer: 1},
		},
	}
}

func testDeps(t *testing.T) (Deps, *store.Store) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:session_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return Deps{
		Learner: store.NewLearner(st.KV(), nil),
		Events:  st.EventRepo(),
		Rng:     shuffle.NewRand(42),
		Now:     func() time.Time { return fixedNow },
	}, st
}

func startSession(t *testing.T, deps Deps, opts Options) *Session {
	t.Helper()
	s, err := New(context.Background(), deps, opts)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return s
}

// answer selects the correct option when correct is true, else any other.
func answer(t *testing.T, s *Session, correct bool) *AnswerResult {
	t.Helper()
	_, sh, ok := s.Current()
	if !ok {
		t.Fatal("no current question")
	}
	pick := sh.Correct
	if !correct {
		pick = (sh.Correct + 1) % len(sh.Options)
	}
	s.Select(pick)
	res := s.Submit(context.Background())
	if res == nil {
		t.Fatal("submit returned nil")
	}
	return res
}

func TestNew_Validation(t *testing.T) {
	deps, _ := testDeps(t)
	ctx := context.Background()
	mod := []*catalog.Module{testModule()}

	if _, err := New(ctx, Deps{}, Options{Modules: mod}); err == nil {
		t.Error("expected error without learner")
	}
	if _, err := New(ctx, deps, Options{}); err == nil {
		t.Error("expected error without modules")
	}
	if _, err := New(ctx, deps, Options{Mode: ModeBlock, Modules: mod}); err == nil {
		t.Error("expected error for block mode without block")
	}
	if _, err := New(ctx, deps, Options{Mode: "nope", Modules: mod}); err == nil {
		t.Error("expected error for unknown mode")
	}
	if _, err := New(ctx, deps, Options{Mode: ModeFailed, Modules: mod}); !errors.Is(err, ErrEmpty) {
		t.Errorf("failed mode with no failures: err = %v, want ErrEmpty", err)
	}
}

func TestAdaptive_AsksEachQuestionOnce(t *testing.T) {
	deps, _ := testDeps(t)
	s := startSession(t, deps, Options{Mode: ModeAdaptive, Modules: []*catalog.Module{testModule()}})
	ctx := context.Background()

	seen := map[string]bool{}
	for s.Phase() != PhaseResults {
		q, _, ok := s.Current()
		if !ok {
			t.Fatal("expected a current question")
		}
		if seen[q.ID] {
			t.Fatalf("question %s asked twice", q.ID)
		}
		seen[q.ID] = true
		answer(t, s, true)
		s.Next(ctx)
	}

	if len(seen) != 3 {
		t.Errorf("asked %d questions, want 3", len(seen))
	}
	if s.Next(ctx) {
		t.Error("Next after results should return false")
	}
	if answered, correct := s.Score(); answered != 3 || correct != 3 {
		t.Errorf("score = %d/%d, want 3/3", correct, answered)
	}
}

func TestSubmit_NoSelectionReturnsNil(t *testing.T) {
	deps, _ := testDeps(t)
	s := startSession(t, deps, Options{Modules: []*catalog.Module{testModule()}})

	if res := s.Submit(context.Background()); res != nil {
		t.Errorf("Submit without selection = %+v, want nil", res)
	}
	if s.Phase() != PhasePlaying {
		t.Errorf("phase = %s, want playing", s.Phase())
	}
}

func TestSubmit_GradesInDisplaySpace(t *testing.T) {
	deps, _ := testDeps(t)
	s := startSession(t, deps, Options{Mode: ModeSequential, Modules: []*catalog.Module{testModule()}})
	ctx := context.Background()

	q, _, _ := s.Current()
	res := answer(t, s, true)
	if !res.Correct || res.Selected != q.CorrectAnswer || res.CorrectIndex != q.CorrectAnswer {
		t.Errorf("correct answer graded as %+v", res)
	}
	if res.Explanation != "first" {
		t.Errorf("explanation = %q", res.Explanation)
	}
	if s.Phase() != PhaseFeedback {
		t.Errorf("phase = %s, want feedback", s.Phase())
	}

	// Selections after grading are ignored.
	s.Select(0)
	if s.Submit(ctx) != nil {
		t.Error("second submit should return nil")
	}

	s.Next(ctx)
	q, _, _ = s.Current()
	res = answer(t, s, false)
	if res.Correct || res.Selected == q.CorrectAnswer || res.Selected < 0 {
		t.Errorf("wrong answer graded as %+v", res)
	}

	m := deps.Learner.Stats(ctx)
	if m["q1"].Correct != 1 || m["q2"].Incorrect != 1 {
		t.Errorf("stats = %+v", m)
	}
	if m["q1"].LastAttempt == "" {
		t.Error("expected lastAttempt to be recorded")
	}
}

func TestSequential_OrderAndPrevious(t *testing.T) {
	deps, _ := testDeps(t)
	s := startSession(t, deps, Options{Mode: ModeSequential, Modules: []*catalog.Module{testModule()}})
	ctx := context.Background()

	if s.Previous() {
		t.Error("Previous at the first question should fail")
	}

	var order []string
	for s.Phase() != PhaseResults {
		q, _, _ := s.Current()
		order = append(order, q.ID)
		if cur, total := s.Progress(); cur != len(order) || total != 3 {
			t.Errorf("progress = %d/%d at %s", cur, total, q.ID)
		}
		s.Next(ctx)
	}
	if strings.Join(order, ",") != "q1,q2,q3" {
		t.Errorf("order = %v", order)
	}

	s2 := startSession(t, deps, Options{Mode: ModeSequential, Modules: []*catalog.Module{testModule()}})
	s2.Next(ctx)
	if !s2.Previous() {
		t.Fatal("Previous should step back")
	}
	if q, _, _ := s2.Current(); q.ID != "q1" {
		t.Errorf("after Previous current = %s, want q1", q.ID)
	}
}

func TestFailedMode_ListIsSnapshotted(t *testing.T) {
	deps, _ := testDeps(t)
	ctx := context.Background()
	deps.Learner.SaveStats(ctx, stats.Map{
		"q1": {Correct: 0, Incorrect: 1},
		"q2": {Correct: 3, Incorrect: 0},
	})

	s := startSession(t, deps, Options{Mode: ModeFailed, Modules: []*catalog.Module{testModule()}})
	if _, total := s.Progress(); total != 1 {
		t.Fatalf("pool = %d, want 1", total)
	}
	answer(t, s, true)
	if _, total := s.Progress(); total != 1 {
		t.Errorf("pool changed after answering: %d", total)
	}
	if s.Next(ctx) {
		t.Error("expected end of list")
	}
}

func TestBookmarkedAndBlockModes(t *testing.T) {
	deps, _ := testDeps(t)
	ctx := context.Background()
	deps.Learner.SaveBookmarks(ctx, []string{"q3", "unknown"})

	s := startSession(t, deps, Options{Mode: ModeBookmarked, Modules: []*catalog.Module{testModule()}})
	if q, _, _ := s.Current(); q.ID != "q3" {
		t.Errorf("bookmarked current = %s, want q3", q.ID)
	}

	b := startSession(t, deps, Options{Mode: ModeBlock, Block: "A", Modules: []*catalog.Module{testModule()}})
	if _, total := b.Progress(); total != 2 {
		t.Errorf("block A pool = %d, want 2", total)
	}
}

func TestToggleBookmark(t *testing.T) {
	deps, _ := testDeps(t)
	ctx := context.Background()
	s := startSession(t, deps, Options{Mode: ModeSequential, Modules: []*catalog.Module{testModule()}})

	if !s.ToggleBookmark(ctx) {
		t.Error("expected bookmark on")
	}
	if got := deps.Learner.Bookmarks(ctx); len(got) != 1 || got[0] != "q1" {
		t.Errorf("bookmarks = %v", got)
	}
	if s.ToggleBookmark(ctx) {
		t.Error("expected bookmark off")
	}
}

func TestTimeAttack_CountdownEndsSession(t *testing.T) {
	deps, _ := testDeps(t)
	ctx := context.Background()
	s := startSession(t, deps, Options{Mode: ModeTimeAttack, TimeLimit: 3 * time.Second, Modules: []*catalog.Module{testModule()}})

	if s.Countdown() == nil || s.Countdown().Remaining() != 3 {
		t.Fatal("expected a 3 second countdown")
	}
	answer(t, s, true)
	s.Next(ctx)

	s.Tick(ctx)
	s.Tick(ctx)
	if s.Phase() == PhaseResults {
		t.Fatal("session ended early")
	}
	if got := s.Tick(ctx); got != 0 {
		t.Errorf("remaining = %d, want 0", got)
	}
	if s.Phase() != PhaseResults {
		t.Fatalf("phase = %s, want results", s.Phase())
	}
	if s.Next(ctx) {
		t.Error("Next after expiry should not load a question")
	}

	sum := s.Summary()
	if sum.TimeLimit != 3*time.Second || sum.Answered != 1 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestTimeAttack_DefaultLimit(t *testing.T) {
	deps, _ := testDeps(t)
	s := startSession(t, deps, Options{Mode: ModeTimeAttack, Modules: []*catalog.Module{testModule()}})
	if got := s.Countdown().Total(); got != 180 {
		t.Errorf("default limit = %ds, want 180", got)
	}
}

func TestSummary_BlocksAndTransitions(t *testing.T) {
	deps, _ := testDeps(t)
	ctx := context.Background()
	s := startSession(t, deps, Options{Mode: ModeSequential, Modules: []*catalog.Module{testModule()}})

	answer(t, s, true)
	s.Next(ctx)
	answer(t, s, false)
	s.Next(ctx)
	answer(t, s, true)
	s.Next(ctx)

	sum := s.Summary()
	if sum.Answered != 3 || sum.Correct != 2 || sum.Incorrect != 1 {
		t.Errorf("counts = %+v", sum)
	}
	if sum.Accuracy < 66.6 || sum.Accuracy > 66.7 {
		t.Errorf("accuracy = %f", sum.Accuracy)
	}
	if len(sum.Blocks) != 2 || sum.Blocks[0] != (BlockResult{Block: "A", Attempted: 2, Correct: 1}) {
		t.Errorf("blocks = %+v", sum.Blocks)
	}

	// Every question answered once at 66% accuracy: none -> covered.
	if len(sum.Transitions) != 1 {
		t.Fatalf("transitions = %+v", sum.Transitions)
	}
	tr := sum.Transitions[0]
	if tr.From != mastery.LevelNone || tr.To != mastery.LevelCovered || !tr.Promoted() {
		t.Errorf("transition = %+v", tr)
	}
}

func TestEventsRecorded(t *testing.T) {
	deps, st := testDeps(t)
	ctx := context.Background()
	s := startSession(t, deps, Options{Mode: ModeSequential, Modules: []*catalog.Module{testModule()}})

	answer(t, s, true)
	s.End(ctx)
	s.End(ctx)

	sessions, err := st.EventRepo().QuerySessionEvents(ctx, store.QueryOpts{})
	if err != nil {
		t.Fatalf("query sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("session events = %d, want 2", len(sessions))
	}
	if sessions[0].Action != store.SessionEnd || sessions[0].QuestionsAsked != 1 || sessions[0].SessionID != s.ID() {
		t.Errorf("end event = %+v", sessions[0])
	}
	if sessions[1].Scope != "m1" {
		t.Errorf("scope = %q", sessions[1].Scope)
	}

	answers, err := st.EventRepo().QueryAnswerEvents(ctx, store.QueryOpts{})
	if err != nil {
		t.Fatalf("query answers: %v", err)
	}
	if len(answers) != 1 || answers[0].ModuleID != "m1" || !answers[0].Correct {
		t.Errorf("answers = %+v", answers)
	}
}

func TestMultiModuleMergesQuestions(t *testing.T) {
	deps, _ := testDeps(t)
	other := &catalog.Module{ID: "m2", Name: "Storage", Questions: []catalog.Question{
		{ID: "s1", Block: "C", Question: "Disk?", Options: []string{"a", "b"}, CorrectAnswer: 0},
	}}
	s := startSession(t, deps, Options{Mode: ModeSequential, Modules: []*catalog.Module{testModule(), other}})
	if _, total := s.Progress(); total != 4 {
		t.Errorf("merged pool = %d, want 4", total)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMode("random"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
