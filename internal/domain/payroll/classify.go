package payroll

import (
	"strings"

	"atelier/internal/domain/ledger"
	"atelier/internal/domain/workers"
)

type Class string

const (
	ClassSmallAdvance Class = "small_advance"
	ClassDebtIssuance Class = "large_debt_issuance"
	ClassSettlement   Class = "settlement"
	ClassUnrelated    Class = "unrelated"
)

// ClassifiedEntry is one journal entry with its resolved role and worker
// attribution. WorkerID is empty when the entry could not be attributed;
// unattributed entries are excluded from every aggregate.
type ClassifiedEntry struct {
	Entry    ledger.Entry
	Class    Class
	WorkerID string
	Meta     *Meta
}

// Classify labels a journal slice. Trusted metadata is authoritative for
// both role and attribution. Untagged entries fall back to the category
// vocabulary, and then to a name-substring match against the description —
// but only for directory-sourced workers, since locally added workers have
// no canonical name in manual bookkeeping text.
func Classify(entries []ledger.Entry, roster []workers.Identity) []ClassifiedEntry {
	out := make([]ClassifiedEntry, 0, len(entries))
	for _, entry := range entries {
		classified := ClassifiedEntry{Entry: entry, Class: ClassUnrelated}
		if meta, ok := DecodeMeta(entry.Notes); ok {
			classified.Meta = &meta
			classified.WorkerID = meta.WorkerID
			classified.Class = classFromKind(meta.Kind)
		} else if class := classFromCategory(entry.Category); class != ClassUnrelated {
			classified.Class = class
			classified.WorkerID = matchWorkerByName(entry.Description, roster)
		}
		out = append(out, classified)
	}
	return out
}

func classFromKind(kind string) Class {
	switch kind {
	case KindSmallAdvance:
		return ClassSmallAdvance
	case KindLargeDebt:
		return ClassDebtIssuance
	case KindSettlement:
		return ClassSettlement
	}
	return ClassUnrelated
}

func classFromCategory(category string) Class {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case CategoryAdvance, CategorySmallAdvance:
		return ClassSmallAdvance
	case CategoryDebt, CategoryLargeDebt, CategoryDeduction:
		return ClassDebtIssuance
	}
	return ClassUnrelated
}

func matchWorkerByName(description string, roster []workers.Identity) string {
	haystack := strings.ToLower(description)
	for _, worker := range roster {
		if worker.Origin != workers.OriginDirectory {
			continue
		}
		needle := strings.ToLower(strings.TrimSpace(worker.Name))
		if needle != "" && strings.Contains(haystack, needle) {
			return worker.ID
		}
	}
	return ""
}
