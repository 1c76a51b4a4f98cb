package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/opsdeck/qcdesk-backend/internal/data/store"
	types "github.com/opsdeck/qcdesk-backend/internal/domain"
	"github.com/opsdeck/qcdesk-backend/internal/platform/logger"
)

const (
	recentDatesWindow = 7
	workdayHours      = 9
)

// DashboardRow is one (date, agent, project) group of evaluation records.
// Averages are nil when the group has no contributing records; zero is a
// real score, never a placeholder.
type DashboardRow struct {
	Date           string   `json:"date"`
	AgentName      string   `json:"agent_name"`
	ProjectName    string   `json:"project_name"`
	Submissions    int      `json:"submissions"`
	RegularAverage *float64 `json:"regular_average"`
	ReworkAverage  *float64 `json:"rework_average"`
}

type ProjectRollup struct {
	ProjectName    string `json:"project_name"`
	DistinctAgents int    `json:"distinct_agents"`
}

type TimeSlotCell struct {
	TimeSlot string   `json:"time_slot"`
	Average  *float64 `json:"average"`
	HasData  bool     `json:"has_data"`
}

type TimeSeriesPoint struct {
	Date  string         `json:"date"`
	Slots []TimeSlotCell `json:"slots"`
}

type DashboardSummary struct {
	Rows         []DashboardRow    `json:"rows"`
	Projects     []ProjectRollup   `json:"projects"`
	ProjectCount int               `json:"project_count"`
	Recent       []TimeSeriesPoint `json:"recent"`
	Production   []ProductionRow   `json:"production"`
}

// ProductionRow is one date of production logs, every agent's entries
// summed together. Billable hours accumulate actual/target per log;
// requiredRemaining may go negative when the day overshoots the baseline.
type ProductionRow struct {
	Date              string  `json:"date"`
	TotalTarget       int     `json:"total_target"`
	TotalActual       int     `json:"total_actual"`
	BillableHours     float64 `json:"billable_hours"`
	Accuracy          int     `json:"accuracy"`
	RequiredRemaining float64 `json:"required_remaining"`
}

type SummaryService interface {
	Dashboard(ctx context.Context, windowStart, windowEnd string) (*DashboardSummary, error)
	Production(ctx context.Context, windowStart, windowEnd string) ([]ProductionRow, error)
}

type summaryService struct {
	backend store.Backend
	log     *logger.Logger
}

func NewSummaryService(backend store.Backend, log *logger.Logger) SummaryService {
	return &summaryService{
		backend: backend,
		log:     log.With("service", "SummaryService"),
	}
}

func inWindow(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// avg rounds to the nearest integer. The rows are display values; the
// stored scores stay unrounded.
func avg(sum, n int) *float64 {
	if n == 0 {
		return nil
	}
	v := math.Round(float64(sum) / float64(n))
	return &v
}

// effectiveReworkScore is the score a rework record contributes: its rework
// score when present, its plain score otherwise.
func effectiveReworkScore(r *types.EvaluationRecord) int {
	if r.ReworkScore != nil {
		return *r.ReworkScore
	}
	return r.Score
}

// SummarizeRecords groups evaluation records by (date, agent, project) and
// sorts the rows newest date first.
func SummarizeRecords(records []*types.EvaluationRecord, windowStart, windowEnd string) []DashboardRow {
	type acc struct {
		submissions int
		regularSum  int
		regularN    int
		reworkSum   int
		reworkN     int
	}
	type key struct{ date, agent, project string }

	groups := map[key]*acc{}
	for _, r := range records {
		if r == nil || !inWindow(r.Date, windowStart, windowEnd) {
			continue
		}
		k := key{r.Date, r.AgentName, r.ProjectName}
		g := groups[k]
		if g == nil {
			g = &acc{}
			groups[k] = g
		}
		g.submissions++
		switch r.Classification {
		case types.ClassificationRegular:
			g.regularSum += r.Score
			g.regularN++
		case types.ClassificationRework:
			g.reworkSum += effectiveReworkScore(r)
			g.reworkN++
		}
	}

	rows := make([]DashboardRow, 0, len(groups))
	for k, g := range groups {
		rows = append(rows, DashboardRow{
			Date:           k.date,
			AgentName:      k.agent,
			ProjectName:    k.project,
			Submissions:    g.submissions,
			RegularAverage: avg(g.regularSum, g.regularN),
			ReworkAverage:  avg(g.reworkSum, g.reworkN),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date > rows[j].Date
		}
		if rows[i].AgentName != rows[j].AgentName {
			return rows[i].AgentName < rows[j].AgentName
		}
		return rows[i].ProjectName < rows[j].ProjectName
	})
	return rows
}

// ProjectRollups counts distinct agents per project over the window.
func ProjectRollups(records []*types.EvaluationRecord, windowStart, windowEnd string) []ProjectRollup {
	agents := map[string]map[string]struct{}{}
	for _, r := range records {
		if r == nil || !inWindow(r.Date, windowStart, windowEnd) {
			continue
		}
		if agents[r.ProjectName] == nil {
			agents[r.ProjectName] = map[string]struct{}{}
		}
		agents[r.ProjectName][r.AgentName] = struct{}{}
	}
	rollups := make([]ProjectRollup, 0, len(agents))
	for project, set := range agents {
		rollups = append(rollups, ProjectRollup{ProjectName: project, DistinctAgents: len(set)})
	}
	sort.Slice(rollups, func(i, j int) bool { return rollups[i].ProjectName < rollups[j].ProjectName })
	return rollups
}

// RecentSeries builds the time series for the 7 most recent distinct dates,
// one cell per time slot. Slots without records keep a nil average and
// HasData false so the client renders an explicit no-data marker.
func RecentSeries(records []*types.EvaluationRecord) []TimeSeriesPoint {
	type slotAcc struct {
		sum, n int
	}
	byDate := map[string]map[string]*slotAcc{}
	for _, r := range records {
		if r == nil || r.Classification != types.ClassificationRegular {
			continue
		}
		if byDate[r.Date] == nil {
			byDate[r.Date] = map[string]*slotAcc{}
		}
		a := byDate[r.Date][r.TimeSlot]
		if a == nil {
			a = &slotAcc{}
			byDate[r.Date][r.TimeSlot] = a
		}
		a.sum += r.Score
		a.n++
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if len(dates) > recentDatesWindow {
		dates = dates[:recentDatesWindow]
	}

	points := make([]TimeSeriesPoint, 0, len(dates))
	for _, d := range dates {
		slots := make([]TimeSlotCell, 0, len(types.TimeSlots))
		for _, slot := range types.TimeSlots {
			cell := TimeSlotCell{TimeSlot: slot}
			if a := byDate[d][slot]; a != nil && a.n > 0 {
				cell.Average = avg(a.sum, a.n)
				cell.HasData = true
			}
			slots = append(slots, cell)
		}
		points = append(points, TimeSeriesPoint{Date: d, Slots: slots})
	}
	return points
}

// SummarizeProduction groups production logs by date alone, one row per
// day across all agents. A log with a zero target contributes nothing to
// billable hours.
func SummarizeProduction(logs []*types.ProductionLog, windowStart, windowEnd string) []ProductionRow {
	type acc struct {
		target, actual int
		billable       float64
	}
	groups := map[string]*acc{}
	for _, l := range logs {
		if l == nil || !inWindow(l.Date, windowStart, windowEnd) {
			continue
		}
		g := groups[l.Date]
		if g == nil {
			g = &acc{}
			groups[l.Date] = g
		}
		g.target += l.Target
		g.actual += l.Actual
		if l.Target > 0 {
			g.billable += float64(l.Actual) / float64(l.Target)
		}
	}

	rows := make([]ProductionRow, 0, len(groups))
	for date, g := range groups {
		accuracy := 0
		if g.target > 0 {
			accuracy = int(math.Round(float64(g.actual) / float64(g.target) * 100))
		}
		rows = append(rows, ProductionRow{
			Date:              date,
			TotalTarget:       g.target,
			TotalActual:       g.actual,
			BillableHours:     round2(g.billable),
			Accuracy:          accuracy,
			RequiredRemaining: round2(workdayHours - g.billable),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	return rows
}

// Dashboard fetches records and production logs in parallel and builds
// every dashboard block from them.
func (s *summaryService) Dashboard(ctx context.Context, windowStart, windowEnd string) (*DashboardSummary, error) {
	var (
		records []*types.EvaluationRecord
		logs    []*types.ProductionLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.backend.ListEvaluationRecords(gctx)
		if err != nil {
			return fmt.Errorf("listing evaluation records: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		logs, err = s.backend.ListProductionLogs(gctx)
		if err != nil {
			return fmt.Errorf("listing production logs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	projects := ProjectRollups(records, windowStart, windowEnd)
	return &DashboardSummary{
		Rows:         SummarizeRecords(records, windowStart, windowEnd),
		Projects:     projects,
		ProjectCount: len(projects),
		Recent:       RecentSeries(records),
		Production:   SummarizeProduction(logs, windowStart, windowEnd),
	}, nil
}

func (s *summaryService) Production(ctx context.Context, windowStart, windowEnd string) ([]ProductionRow, error) {
	logs, err := s.backend.ListProductionLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing production logs: %w", err)
	}
	return SummarizeProduction(logs, windowStart, windowEnd), nil
}
