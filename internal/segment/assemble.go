// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/lytoc-benchmark/internal/logging"
	"github.com/pdiddy/lytoc-benchmark/pkg/types"
)

const defaultMinContentLength = 10

// Assembler turns homework documents into exercise records.
type Assembler struct {
	minLength  int
	duplicates types.DuplicatePolicy
	logger     *log.Logger
}

// NewAssembler creates an Assembler. A non-positive MinContentLength selects
// the default of 10 characters; an empty DuplicateIDs selects preserve.
// A nil logger discards diagnostics.
func NewAssembler(cfg types.SegmentConfig, logger *log.Logger) *Assembler {
	minLength := cfg.MinContentLength
	if minLength <= 0 {
		minLength = defaultMinContentLength
	}
	dup := cfg.DuplicateIDs
	if dup == "" {
		dup = types.DuplicatesPreserve
	}
	return &Assembler{
		minLength:  minLength,
		duplicates: dup,
		logger:     logging.OrDiscard(logger),
	}
}

// DocumentResult holds the records of one homework and the number of
// exercise spans dropped as too short.
type DocumentResult struct {
	Records []types.ExerciseRecord
	Dropped int
}

// Assemble segments a single homework. Records come out in exercise order,
// then sub-problem order.
func (a *Assembler) Assemble(doc types.HomeworkDocument) DocumentResult {
	hw := "hw" + doc.ID
	stripped, start := StripHeader(doc.Text)
	if start > 0 {
		a.logger.Debug("stripped header", "homework", hw, "lines", start)
	}

	var res DocumentResult
	for _, span := range TokenizeExercises(stripped) {
		cleaned := CleanTrailing(strings.TrimSpace(span.Body))

		// Split before trimming: an empty last sub-problem ends in "N) ".
		if subs := SplitSubProblems(cleaned); len(subs) > 0 {
			for _, sub := range subs {
				label := sub.Label
				if strings.HasSuffix(sub.Content, label+")") {
					a.logger.Debug("empty sub-problem kept", "homework", hw, "exercise", span.Label, "sub", label)
				}
				res.Records = append(res.Records, types.ExerciseRecord{
					Homework:       hw,
					ExerciseNumber: span.Label,
					SubProblem:     &label,
					Content:        sub.Content,
					FullID:         fmt.Sprintf("%s_ex%s_%s", hw, span.Label, label),
				})
			}
			continue
		}

		body := strings.TrimSpace(cleaned)
		if n := utf8.RuneCountInString(body); n < a.minLength {
			a.logger.Debug("dropped short exercise", "homework", hw, "exercise", span.Label, "length", n, "min", a.minLength)
			res.Dropped++
			continue
		}

		res.Records = append(res.Records, types.ExerciseRecord{
			Homework:       hw,
			ExerciseNumber: span.Label,
			Content:        body,
			FullID:         fmt.Sprintf("%s_ex%s", hw, span.Label),
		})
	}
	return res
}

// Batch is the outcome of assembling a whole set of homeworks.
type Batch struct {
	Records []types.ExerciseRecord
	Stats   types.DatasetStats
}

// AssembleAll segments docs in the given order, applies the full_id
// duplicate policy across the whole batch and computes statistics. When
// onDoc is non-nil it is called after each document.
func (a *Assembler) AssembleAll(docs []types.HomeworkDocument, onDoc func(types.HomeworkDocument, DocumentResult)) Batch {
	var (
		records []types.ExerciseRecord
		dropped int
	)
	for _, doc := range docs {
		res := a.Assemble(doc)
		if onDoc != nil {
			onDoc(doc, res)
		}
		records = append(records, res.Records...)
		dropped += res.Dropped
	}

	b := Batch{Records: a.ResolveDuplicates(records)}
	b.Stats = Summarize(b.Records)
	b.Stats.Dropped = dropped
	return b
}

// ResolveDuplicates logs every repeated full_id and, under the suffix policy,
// renames later occurrences to full_id-2, full_id-3, ... in place.
func (a *Assembler) ResolveDuplicates(records []types.ExerciseRecord) []types.ExerciseRecord {
	seen := make(map[string]int, len(records))
	for i := range records {
		id := records[i].FullID
		seen[id]++
		n := seen[id]
		if n == 1 {
			continue
		}
		a.logger.Warn("duplicate full_id", "full_id", id, "occurrence", n, "policy", a.duplicates)
		if a.duplicates == types.DuplicatesSuffix {
			records[i].FullID = id + "-" + strconv.Itoa(n)
		}
	}
	return records
}

// Summarize counts records overall and per homework. PerHomework is ordered
// by homework number.
func Summarize(records []types.ExerciseRecord) types.DatasetStats {
	var stats types.DatasetStats
	counts := make(map[string]int)
	for _, r := range records {
		stats.Total++
		if r.HasSubProblem() {
			stats.WithSubProblems++
		}
		counts[r.Homework]++
	}

	stats.Homeworks = len(counts)
	for hw, n := range counts {
		stats.PerHomework = append(stats.PerHomework, types.HomeworkCount{Homework: hw, Count: n})
	}
	sort.Slice(stats.PerHomework, func(i, j int) bool {
		return homeworkLess(stats.PerHomework[i].Homework, stats.PerHomework[j].Homework)
	})
	return stats
}

// homeworkLess orders "hw2" before "hw10", falling back to string order.
func homeworkLess(a, b string) bool {
	na, errA := strconv.Atoi(strings.TrimPrefix(a, "hw"))
	nb, errB := strconv.Atoi(strings.TrimPrefix(b, "hw"))
	if errA == nil && errB == nil && na != nb {
		return na < nb
	}
	return a < b
}
