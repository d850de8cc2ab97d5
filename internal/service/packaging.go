package service

import (
	"sort"

	"github.com/guttosm/stacking-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// measurePlaces is the number of decimals kept for derived dimensions and weights.
const measurePlaces = 4

func round(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(measurePlaces).Float64()
	return f
}

// multiply keeps products like 0.1*3 exact before rounding.
func multiply(v float64, n int) float64 {
	f, _ := decimal.NewFromFloat(v).Mul(decimal.NewFromInt(int64(n))).Round(measurePlaces).Float64()
	return f
}

// contentLines turns a quantity map into lines sorted by product id.
func contentLines(quantities map[int64]int, factor int) []model.ContentLine {
	lines := make([]model.ContentLine, 0, len(quantities))
	for pid, qty := range quantities {
		if qty*factor <= 0 {
			continue
		}
		lines = append(lines, model.ContentLine{ProductID: pid, Quantity: qty * factor})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}

// groupPackages derives the packages produced by applying g count times.
// Multiple-mode groups yield count identical packages; single-mode groups
// yield one stacked package.
func groupPackages(g model.GroupDefinition, count int) []model.Package {
	if count <= 0 {
		return nil
	}

	if g.StackingMode == model.StackingMultiple {
		packages := make([]model.Package, 0, count)
		for i := 0; i < count; i++ {
			packages = append(packages, model.Package{
				Source:        model.SourceGroup,
				GroupID:       g.ID,
				InstanceCount: 1,
				Contents:      contentLines(g.Required, 1),
				Weight:        round(g.BaseWeight),
				Height:        round(g.BaseHeight),
				Width:         round(g.BaseWidth),
				Length:        round(g.BaseLength),
			})
		}
		return packages
	}

	extra := count - 1
	return []model.Package{{
		Source:        model.SourceGroup,
		GroupID:       g.ID,
		InstanceCount: count,
		Contents:      contentLines(g.Required, count),
		Weight:        multiply(g.BaseWeight, count),
		Height:        round(g.BaseHeight + multiply(g.HeightIncrement, extra)),
		Width:         round(g.BaseWidth + multiply(g.WidthIncrement, extra)),
		Length:        round(g.BaseLength + multiply(g.LengthIncrement, extra)),
	}}
}

// loosePackage packs every leftover unit into one bounding box: widest
// width, longest length, heights stacked. ok is false when nothing is left.
func loosePackage(remaining multiset, units map[int64]model.Item) (pkg model.Package, ok bool) {
	if remaining.empty() {
		return model.Package{}, false
	}

	pkg = model.Package{Source: model.SourceLoose, Contents: contentLines(remaining, 1)}
	height := decimal.Zero
	weight := decimal.Zero
	for _, line := range pkg.Contents {
		unit := units[line.ProductID]
		qty := decimal.NewFromInt(int64(line.Quantity))
		if unit.UnitWidth > pkg.Width {
			pkg.Width = unit.UnitWidth
		}
		if unit.UnitLength > pkg.Length {
			pkg.Length = unit.UnitLength
		}
		height = height.Add(decimal.NewFromFloat(unit.UnitHeight).Mul(qty))
		weight = weight.Add(decimal.NewFromFloat(unit.UnitWeight).Mul(qty))
	}
	pkg.Height, _ = height.Round(measurePlaces).Float64()
	pkg.Weight, _ = weight.Round(measurePlaces).Float64()
	pkg.Width = round(pkg.Width)
	pkg.Length = round(pkg.Length)
	return pkg, true
}

// looseVolume is the scoring volume of leftovers: each unit at its own size.
func looseVolume(remaining multiset, units map[int64]model.Item) float64 {
	total := 0.0
	for pid, qty := range remaining {
		total += units[pid].UnitVolume() * float64(qty)
	}
	return total
}
