package service

import (
	"sort"
	"strconv"

	"github.com/guttosm/stacking-service/internal/domain/model"
)

// DefaultBranchLimit bounds the number of distinct search states expanded per match.
const DefaultBranchLimit = 200000

// Matcher partitions a cart into stacking-group packages and a loose package.
type Matcher interface {
	Match(cart []model.Item, groups []model.GroupDefinition) ([]model.Package, error)
	MatchWithStrategy(cart []model.Item, groups []model.GroupDefinition, strategy Strategy) (MatchResult, error)
	Strategy() Strategy
}

// MatchResult carries the selected packages plus search statistics.
type MatchResult struct {
	Packages []model.Package
	Score    Score
	Branches int
	// Truncated is set when the branch limit was hit and the cart was
	// shipped loose instead.
	Truncated bool
}

// MatcherOption configures a StackingMatcher.
type MatcherOption func(*StackingMatcher)

// StackingMatcher implements Matcher with a memoized depth-first search
// over per-group repeat counts.
type StackingMatcher struct {
	strategy    Strategy
	defaults    model.Defaults
	branchLimit int
}

// NewStackingMatcher creates a matcher using MinimizeVolume and 10cm/1kg defaults.
func NewStackingMatcher(opts ...MatcherOption) *StackingMatcher {
	m := &StackingMatcher{
		strategy:    MinimizeVolume{},
		defaults:    model.StandardDefaults(),
		branchLimit: DefaultBranchLimit,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithStrategy sets the default comparison strategy.
func WithStrategy(s Strategy) MatcherOption {
	return func(m *StackingMatcher) {
		if s != nil {
			m.strategy = s
		}
	}
}

// WithDefaults sets the fallback measurements for units without data.
func WithDefaults(d model.Defaults) MatcherOption {
	return func(m *StackingMatcher) {
		if d.DimensionCM > 0 {
			m.defaults.DimensionCM = d.DimensionCM
		}
		if d.WeightKG > 0 {
			m.defaults.WeightKG = d.WeightKG
		}
	}
}

// WithBranchLimit caps the expanded search states. Zero or negative disables the cap.
func WithBranchLimit(limit int) MatcherOption {
	return func(m *StackingMatcher) {
		m.branchLimit = limit
	}
}

// Strategy returns the matcher's default strategy.
func (m *StackingMatcher) Strategy() Strategy {
	return m.strategy
}

// Match runs the search with the default strategy.
func (m *StackingMatcher) Match(cart []model.Item, groups []model.GroupDefinition) ([]model.Package, error) {
	result, err := m.MatchWithStrategy(cart, groups, m.strategy)
	if err != nil {
		return nil, err
	}
	return result.Packages, nil
}

// MatchWithStrategy runs the search with the given strategy. Every input
// unit appears exactly once in the returned packages.
func (m *StackingMatcher) MatchWithStrategy(cart []model.Item, groups []model.GroupDefinition, strategy Strategy) (MatchResult, error) {
	if strategy == nil {
		strategy = m.strategy
	}
	for _, g := range groups {
		if err := g.Validate(); err != nil {
			return MatchResult{}, err
		}
	}

	remaining, units, err := m.reduce(cart)
	if err != nil {
		return MatchResult{}, err
	}
	if remaining.empty() {
		return MatchResult{Packages: []model.Package{}}, nil
	}

	s := newSearch(groups, units, strategy, m.branchLimit)
	best := s.explore(0, remaining, nil)

	if s.exceeded || best == nil {
		return MatchResult{
			Packages:  s.packages(remaining, nil),
			Score:     s.looseScore(remaining),
			Branches:  s.branches,
			Truncated: s.exceeded,
		}, nil
	}

	return MatchResult{Packages: s.packages(remaining, best.plan), Score: best.score, Branches: s.branches}, nil
}

// reduce sums duplicate cart lines and keeps the first-seen unit data per
// product with defaults applied.
func (m *StackingMatcher) reduce(cart []model.Item) (multiset, map[int64]model.Item, error) {
	remaining := make(multiset, len(cart))
	units := make(map[int64]model.Item, len(cart))
	for _, item := range cart {
		if item.Quantity < 1 {
			return nil, nil, &model.ConfigurationError{Field: "quantity", Reason: "must be at least 1 for product " + formatProductID(item.ProductID)}
		}
		remaining[item.ProductID] += item.Quantity
		if _, seen := units[item.ProductID]; !seen {
			units[item.ProductID] = item.WithDefaults(m.defaults)
		}
	}
	return remaining, units, nil
}

// multiset maps product id to unit count. Values are never mutated after
// construction; operations return new multisets.
type multiset map[int64]int

func (ms multiset) empty() bool {
	for _, qty := range ms {
		if qty > 0 {
			return false
		}
	}
	return true
}

// instances returns how many times required fits into ms.
func (ms multiset) instances(required map[int64]int) int {
	best := -1
	for pid, need := range required {
		if need <= 0 {
			continue
		}
		n := ms[pid] / need
		if best == -1 || n < best {
			best = n
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// without returns a copy of ms with count × required removed. ok is false
// when ms does not hold enough units.
func (ms multiset) without(required map[int64]int, count int) (multiset, bool) {
	out := make(multiset, len(ms))
	for pid, qty := range ms {
		out[pid] = qty
	}
	for pid, need := range required {
		left := out[pid] - need*count
		if left < 0 {
			return nil, false
		}
		if left == 0 {
			delete(out, pid)
			continue
		}
		out[pid] = left
	}
	return out, true
}

// application records a group index applied count times.
type application struct {
	group int
	count int
}

// plan is an immutable list of applications in group order. Suffixes are
// shared between memoized results.
type plan struct {
	app  application
	next *plan
}

// outcome is the best completion of one search state.
type outcome struct {
	plan  *plan
	score Score
}

// search holds the read-only inputs of one match, its memo and the branch
// counter.
type search struct {
	groups   []model.GroupDefinition
	units    map[int64]model.Item
	strategy Strategy
	limit    int
	branches int
	exceeded bool

	// lastTouch[j] is the highest group index after j sharing a product
	// with group j, or -1.
	lastTouch []int
	memo      map[string]*outcome
	scores    map[application]Score
}

func newSearch(groups []model.GroupDefinition, units map[int64]model.Item, strategy Strategy, limit int) *search {
	s := &search{
		groups:    groups,
		units:     units,
		strategy:  strategy,
		limit:     limit,
		lastTouch: make([]int, len(groups)),
		memo:      make(map[string]*outcome),
		scores:    make(map[application]Score),
	}
	for j := range groups {
		s.lastTouch[j] = -1
		for k := len(groups) - 1; k > j; k-- {
			if sharesProduct(groups[j].Required, groups[k].Required) {
				s.lastTouch[j] = k
				break
			}
		}
	}
	return s
}

// explore returns the best maximal completion from group index idx.
// pending lists the earlier groups that are below their cap and still fit
// remaining; a leaf is maximal only when none of them fits anymore. The
// result depends only on (idx, remaining, pending), so it is memoized.
func (s *search) explore(idx int, remaining multiset, pending []int) *outcome {
	for _, j := range pending {
		// nothing from idx on can take units away from group j
		if s.lastTouch[j] < idx {
			return nil
		}
	}

	key := stateKey(idx, remaining, pending)
	if out, ok := s.memo[key]; ok {
		return out
	}

	s.branches++
	if s.limit > 0 && s.branches > s.limit {
		s.exceeded = true
		return nil
	}

	var best *outcome
	if idx == len(s.groups) {
		best = &outcome{score: s.looseScore(remaining)}
		s.memo[key] = best
		return best
	}

	g := s.groups[idx]
	limit := g.Cap(remaining.instances(g.Required))

	consider := func(count int, next multiset) {
		childPending := make([]int, 0, len(pending)+1)
		for _, j := range pending {
			if next.instances(s.groups[j].Required) > 0 {
				childPending = append(childPending, j)
			}
		}
		atCap := count > 0 && g.MaxQuantity > 0 && count >= g.MaxQuantity
		if !atCap && next.instances(g.Required) > 0 {
			childPending = append(childPending, idx)
		}

		sub := s.explore(idx+1, next, childPending)
		if sub == nil {
			return
		}
		out := sub
		if count > 0 {
			app := application{group: idx, count: count}
			out = &outcome{plan: &plan{app: app, next: sub.plan}, score: sub.score.add(s.groupScore(app))}
		}
		if best == nil || prefer(s.strategy, out.score, best.score) {
			best = out
		}
	}

	for count := 1; count <= limit; count++ {
		next, ok := remaining.without(g.Required, count)
		if !ok {
			break
		}
		consider(count, next)
		if s.exceeded {
			return nil
		}
	}
	consider(0, remaining)
	if s.exceeded {
		return nil
	}

	s.memo[key] = best
	return best
}

// groupScore scores the packages of one application.
func (s *search) groupScore(app application) Score {
	if score, ok := s.scores[app]; ok {
		return score
	}
	var score Score
	for _, p := range groupPackages(s.groups[app.group], app.count) {
		score.Volume += p.Volume()
		score.GroupedUnits += p.Units()
		score.Packages++
	}
	s.scores[app] = score
	return score
}

func (s *search) looseScore(remaining multiset) Score {
	if remaining.empty() {
		return Score{}
	}
	return Score{Volume: looseVolume(remaining, s.units), Packages: 1}
}

// packages materialises a plan: group packages in group order, then the
// loose package of whatever is left.
func (s *search) packages(remaining multiset, p *plan) []model.Package {
	out := make([]model.Package, 0, 4)
	for ; p != nil; p = p.next {
		g := s.groups[p.app.group]
		out = append(out, groupPackages(g, p.app.count)...)
		remaining, _ = remaining.without(g.Required, p.app.count)
	}
	if loose, ok := loosePackage(remaining, s.units); ok {
		out = append(out, loose)
	}
	return out
}

func (a Score) add(b Score) Score {
	return Score{
		Volume:       a.Volume + b.Volume,
		GroupedUnits: a.GroupedUnits + b.GroupedUnits,
		Packages:     a.Packages + b.Packages,
	}
}

func sharesProduct(a, b map[int64]int) bool {
	for pid, need := range a {
		if need > 0 && b[pid] > 0 {
			return true
		}
	}
	return false
}

// stateKey encodes a search state; remaining is written in product order.
func stateKey(idx int, remaining multiset, pending []int) string {
	pids := make([]int64, 0, len(remaining))
	for pid, qty := range remaining {
		if qty > 0 {
			pids = append(pids, pid)
		}
	}
	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })

	buf := make([]byte, 0, 16+len(pids)*12+len(pending)*4)
	buf = strconv.AppendInt(buf, int64(idx), 10)
	buf = append(buf, '|')
	for _, pid := range pids {
		buf = strconv.AppendInt(buf, pid, 10)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(remaining[pid]), 10)
		buf = append(buf, ',')
	}
	buf = append(buf, '|')
	for _, j := range pending {
		buf = strconv.AppendInt(buf, int64(j), 10)
		buf = append(buf, ',')
	}
	return string(buf)
}

func formatProductID(id int64) string {
	return strconv.FormatInt(id, 10)
}
