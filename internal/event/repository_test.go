// AngelaMos | 2026
// repository_test.go

package event

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mkrzemien-software/homely-sub001/internal/task"
)

func TestSeverityOrderFollowsPriorityRank(t *testing.T) {
	highClause := fmt.Sprintf(
		"WHEN '%s' THEN %d",
		task.PriorityHigh, task.PriorityRank(task.PriorityHigh),
	)
	mediumClause := fmt.Sprintf(
		"WHEN '%s' THEN %d",
		task.PriorityMedium, task.PriorityRank(task.PriorityMedium),
	)
	lowClause := fmt.Sprintf(
		"ELSE %d", task.PriorityRank(task.PriorityLow),
	)

	for _, clause := range []string{highClause, mediumClause, lowClause} {
		if !strings.Contains(severityOrder, clause) {
			t.Errorf("severityOrder missing %q:\n%s", clause, severityOrder)
		}
	}

	// Due date is the primary sort, priority the tie-break, id the final
	// stabilizer.
	dueIdx := strings.Index(severityOrder, "due_date ASC")
	caseIdx := strings.Index(severityOrder, "CASE priority")
	idIdx := strings.Index(severityOrder, "id ASC")
	if dueIdx < 0 || caseIdx < 0 || idIdx < 0 ||
		!(dueIdx < caseIdx && caseIdx < idIdx) {
		t.Errorf("sort key order wrong:\n%s", severityOrder)
	}

	if task.PriorityRank(task.PriorityHigh) >= task.PriorityRank(task.PriorityLow) {
		t.Error("high does not rank before low")
	}
}
