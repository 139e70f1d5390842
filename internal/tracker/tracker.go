package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Point awards per mutation, and the level threshold step.
const (
	PointsPerTask     = 50
	PointsPerProtocol = 25
	PointsPerSession  = 100
	PointsPerHour     = 20
	PointsPerLevel    = 1000
)

// MinScreenshots is the proof-of-work floor for a coding session.
const MinScreenshots = 4

// ErrTooFewScreenshots is returned by NewSession when the proof-of-work
// precondition is not met. No session is constructed in that case.
var ErrTooFewScreenshots = fmt.Errorf("at least %d screenshots required", MinScreenshots)

// Persisted key layout. Each collection and counter lives under its own key;
// collections are JSON arrays, counters decimal strings.
const (
	KeyTasks      = "tasks"
	KeySessions   = "sessions"
	KeyActivities = "activities"
	KeyProtocols  = "protocols"
	KeyPoints     = "points"
	KeyLevel      = "level"
)

// KV is the persistent store contract the tracker writes through.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
}

// Tracker owns the four collections and the two gamification counters. It is
// the sole writer of the store: every mutation updates memory first, then
// flushes the affected keys. A store failure is reported but never rolls the
// in-memory change back.
//
// Tracker is not safe for concurrent use; the interaction model is strictly
// one mutation at a time.
type Tracker struct {
	kv  KV
	now func() time.Time

	tasks      []Task
	protocols  []LifeProtocol
	sessions   []CodingSession
	activities []Activity
	points     int
	level      int
}

// New hydrates a tracker from the store. Missing or malformed values are
// treated as absent and replaced with defaults, never surfaced as errors.
func New(ctx context.Context, kv KV) (*Tracker, error) {
	t := &Tracker{kv: kv, now: time.Now, level: 1}
	if err := t.hydrate(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tracker) hydrate(ctx context.Context) error {
	if err := t.loadJSON(ctx, KeyTasks, &t.tasks); err != nil {
		return err
	}
	if err := t.loadJSON(ctx, KeyProtocols, &t.protocols); err != nil {
		return err
	}
	if err := t.loadJSON(ctx, KeySessions, &t.sessions); err != nil {
		return err
	}
	if err := t.loadJSON(ctx, KeyActivities, &t.activities); err != nil {
		return err
	}

	points, err := t.loadCounter(ctx, KeyPoints)
	if err != nil {
		return err
	}
	if points > 0 {
		t.points = points
	}
	level, err := t.loadCounter(ctx, KeyLevel)
	if err != nil {
		return err
	}
	if level >= 1 {
		t.level = level
	}
	return nil
}

// loadJSON fills dst from the stored value under key. Malformed JSON is
// logged and discarded ("no prior state").
func (t *Tracker) loadJSON(ctx context.Context, key string, dst any) error {
	raw, ok, err := t.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("hydrate %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		slog.Warn("discarding malformed stored value", "key", key, "err", err)
	}
	return nil
}

func (t *Tracker) loadCounter(ctx context.Context, key string) (int, error) {
	raw, ok, err := t.kv.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("hydrate %s: %w", key, err)
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		slog.Warn("discarding malformed stored value", "key", key, "err", err)
		return 0, nil
	}
	return n, nil
}

// Snapshot views. All accessors return copies; the tracker's slices are
// never handed out.

func (t *Tracker) Tasks() []Task {
	out := make([]Task, len(t.tasks))
	copy(out, t.tasks)
	return out
}

func (t *Tracker) Protocols() []LifeProtocol {
	out := make([]LifeProtocol, len(t.protocols))
	copy(out, t.protocols)
	return out
}

func (t *Tracker) Sessions() []CodingSession {
	out := make([]CodingSession, len(t.sessions))
	copy(out, t.sessions)
	return out
}

func (t *Tracker) Activities() []Activity {
	out := make([]Activity, len(t.activities))
	copy(out, t.activities)
	return out
}

func (t *Tracker) Points() int { return t.points }
func (t *Tracker) Level() int  { return t.level }

// AddTask appends a new pending task. An invalid quadrant falls back to the
// keyword heuristic, so callers may pass the zero value to auto-categorize.
func (t *Tracker) AddTask(ctx context.Context, text string, quadrant Quadrant) (*Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("task text is required")
	}
	if !quadrant.IsValid() {
		quadrant = Categorize(text)
	}

	task := Task{
		ID:        uuid.NewString(),
		Text:      text,
		Quadrant:  quadrant,
		CreatedAt: t.now().UnixMilli(),
	}
	t.tasks = append(t.tasks, task)
	if err := t.saveTasks(ctx); err != nil {
		return &task, err
	}
	return &task, nil
}

// CompleteResult reports the outcome of a completing mutation.
type CompleteResult struct {
	Done          bool // false when the id was stale or already completed
	Task          Task
	PointsAwarded int
	LevelBefore   int
	LevelAfter    int
	LevelUp       bool
	Affirmation   string
}

// CompleteTask marks the task done and awards points. A stale id, or a task
// that is already completed, is a silent no-op: completion is monotonic and
// happens exactly once.
func (t *Tracker) CompleteTask(ctx context.Context, id string) (*CompleteResult, error) {
	idx := -1
	for i := range t.tasks {
		if t.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || t.tasks[idx].Completed {
		return &CompleteResult{}, nil
	}

	t.tasks[idx].Completed = true
	t.tasks[idx].CompletedAt = t.now().UnixMilli()

	res := &CompleteResult{
		Done:        true,
		Task:        t.tasks[idx],
		Affirmation: randomAffirmation(),
	}
	t.applyAward(res, PointsPerTask)

	if err := t.saveTasks(ctx); err != nil {
		return res, err
	}
	return res, t.saveCounters(ctx)
}

// DeleteTask removes the task and reports whether anything matched.
func (t *Tracker) DeleteTask(ctx context.Context, id string) (bool, error) {
	for i := range t.tasks {
		if t.tasks[i].ID == id {
			t.tasks = append(t.tasks[:i], t.tasks[i+1:]...)
			return true, t.saveTasks(ctx)
		}
	}
	return false, nil
}

// AddProtocol appends a new life protocol with an empty completion set.
func (t *Tracker) AddProtocol(ctx context.Context, text string) (*LifeProtocol, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("protocol text is required")
	}

	p := LifeProtocol{
		ID:             uuid.NewString(),
		Text:           text,
		CompletedDates: []string{},
		CreatedAt:      t.now().UnixMilli(),
	}
	t.protocols = append(t.protocols, p)
	if err := t.saveProtocols(ctx); err != nil {
		return &p, err
	}
	return &p, nil
}

// CheckProtocol records a completion for the given YYYY-MM-DD day. The append
// is idempotent and irreversible: an already-present date, a malformed date,
// a stale id, or a date before the protocol existed are all silent no-ops.
func (t *Tracker) CheckProtocol(ctx context.Context, id, date string) (*CompleteResult, error) {
	day, err := time.ParseInLocation(time.DateOnly, date, t.now().Location())
	if err != nil {
		return &CompleteResult{}, nil
	}

	idx := -1
	for i := range t.protocols {
		if t.protocols[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &CompleteResult{}, nil
	}
	p := &t.protocols[idx]
	if p.HasDate(date) {
		return &CompleteResult{}, nil
	}
	// Completion days never predate the protocol itself.
	created := time.UnixMilli(p.CreatedAt).In(t.now().Location())
	createdDay := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, created.Location())
	if day.Before(createdDay) {
		return &CompleteResult{}, nil
	}

	p.CompletedDates = append(p.CompletedDates, date)

	res := &CompleteResult{Done: true, Affirmation: randomAffirmation()}
	t.applyAward(res, PointsPerProtocol)

	if err := t.saveProtocols(ctx); err != nil {
		return res, err
	}
	return res, t.saveCounters(ctx)
}

// NewSession validates the proof-of-work boundary and constructs a session.
// This is the only way a session comes into existence, so the tracker itself
// never sees one with fewer than MinScreenshots screenshots.
func (t *Tracker) NewSession(screenshots []string, notes string) (CodingSession, error) {
	if len(screenshots) < MinScreenshots {
		return CodingSession{}, ErrTooFewScreenshots
	}
	return CodingSession{
		ID:          uuid.NewString(),
		Date:        t.now().Format(time.RFC3339),
		Screenshots: screenshots,
		Notes:       notes,
	}, nil
}

// AddSession prepends a pre-validated session (newest first) and awards points.
func (t *Tracker) AddSession(ctx context.Context, s CodingSession) (*CompleteResult, error) {
	t.sessions = append([]CodingSession{s}, t.sessions...)

	res := &CompleteResult{Done: true, Affirmation: randomAffirmation()}
	t.applyAward(res, PointsPerSession)

	if err := t.saveSessions(ctx); err != nil {
		return res, err
	}
	return res, t.saveCounters(ctx)
}

// DeleteSession removes the session and reports whether anything matched.
func (t *Tracker) DeleteSession(ctx context.Context, id string) (bool, error) {
	for i := range t.sessions {
		if t.sessions[i].ID == id {
			t.sessions = append(t.sessions[:i], t.sessions[i+1:]...)
			return true, t.saveSessions(ctx)
		}
	}
	return false, nil
}

// NewActivity constructs a time-logged activity for the given moment.
// Hours must be positive; the category is a free string.
func (t *Tracker) NewActivity(category, description string, hours float64, at time.Time) (Activity, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Activity{}, errors.New("activity description is required")
	}
	if hours <= 0 {
		return Activity{}, errors.New("hours must be positive")
	}
	return Activity{
		ID:          uuid.NewString(),
		Category:    category,
		Description: description,
		Hours:       hours,
		Date:        at.Format(time.RFC3339),
		Timestamp:   at.UnixMilli(),
	}, nil
}

// AddActivity appends an activity and awards floor(20 x hours) points.
func (t *Tracker) AddActivity(ctx context.Context, a Activity) (*CompleteResult, error) {
	t.activities = append(t.activities, a)

	res := &CompleteResult{Done: true}
	t.applyAward(res, int(math.Floor(a.Hours*PointsPerHour)))

	if err := t.saveActivities(ctx); err != nil {
		return res, err
	}
	return res, t.saveCounters(ctx)
}

// Reset empties every collection, zeroes the counters, and wipes the store.
func (t *Tracker) Reset(ctx context.Context) error {
	t.tasks = nil
	t.protocols = nil
	t.sessions = nil
	t.activities = nil
	t.points = 0
	t.level = 1
	if err := t.kv.Clear(ctx); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}
	return nil
}

// applyAward adds points and advances the level by at most one step. A single
// oversized award crossing several thresholds still only moves one level;
// the check is deliberately not a loop.
func (t *Tracker) applyAward(res *CompleteResult, amount int) {
	res.PointsAwarded = amount
	res.LevelBefore = t.level

	t.points += amount
	if t.points >= t.level*PointsPerLevel {
		t.level++
	}

	res.LevelAfter = t.level
	res.LevelUp = res.LevelAfter > res.LevelBefore
}

func (t *Tracker) saveTasks(ctx context.Context) error { return t.saveJSON(ctx, KeyTasks, t.tasks) }

func (t *Tracker) saveProtocols(ctx context.Context) error {
	return t.saveJSON(ctx, KeyProtocols, t.protocols)
}

func (t *Tracker) saveSessions(ctx context.Context) error {
	return t.saveJSON(ctx, KeySessions, t.sessions)
}

func (t *Tracker) saveActivities(ctx context.Context) error {
	return t.saveJSON(ctx, KeyActivities, t.activities)
}

func (t *Tracker) saveJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := t.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func (t *Tracker) saveCounters(ctx context.Context) error {
	if err := t.kv.Set(ctx, KeyPoints, strconv.Itoa(t.points)); err != nil {
		return fmt.Errorf("persist points: %w", err)
	}
	if err := t.kv.Set(ctx, KeyLevel, strconv.Itoa(t.level)); err != nil {
		return fmt.Errorf("persist level: %w", err)
	}
	return nil
}
