package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getcarekorea/content-engine/internal/data/repos"
	types "github.com/getcarekorea/content-engine/internal/domain"
	"github.com/getcarekorea/content-engine/internal/pkg/dbctx"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

const (
	maxHospitals  = 5
	maxProcedures = 8
)

// Provider renders directory data (hospitals, procedures) into the factual
// reference block used to ground generated articles.
type Provider struct {
	log        *logger.Logger
	hospitals  repos.HospitalRepo
	procedures repos.ProcedureRepo
}

func NewProvider(log *logger.Logger, hospitals repos.HospitalRepo, procedures repos.ProcedureRepo) *Provider {
	return &Provider{
		log:        log.With("service", "FactsProvider"),
		hospitals:  hospitals,
		procedures: procedures,
	}
}

// FactualContext returns a compact plain-text summary of directory facts for
// the category. Empty string (no error) when the directory has nothing for
// this category.
func (p *Provider) FactualContext(ctx context.Context, locale, category string) (string, error) {
	category = strings.TrimSpace(strings.ToLower(category))
	if category == "" {
		return "", nil
	}
	dbc := dbctx.New(ctx)

	hospitals, err := p.hospitals.ListBySpecialty(dbc, category, maxHospitals)
	if err != nil {
		return "", fmt.Errorf("list hospitals: %w", err)
	}
	procedures, err := p.procedures.ListByCategory(dbc, category, maxProcedures)
	if err != nil {
		return "", fmt.Errorf("list procedures: %w", err)
	}
	if len(hospitals) == 0 && len(procedures) == 0 {
		return "", nil
	}

	var b strings.Builder
	if len(hospitals) > 0 {
		b.WriteString("Verified hospitals:\n")
		for _, h := range hospitals {
			b.WriteString("- " + hospitalLine(h) + "\n")
		}
	}
	if len(procedures) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Verified procedures and price ranges:\n")
		for _, pr := range procedures {
			b.WriteString("- " + procedureLine(pr) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func hospitalLine(h *types.Hospital) string {
	parts := []string{h.Name}
	if h.City != "" {
		parts = append(parts, h.City)
	}
	if accs := jsonStrings(h.Accreditations); len(accs) > 0 {
		parts = append(parts, strings.Join(accs, ", "))
	}
	if h.Rating > 0 {
		parts = append(parts, fmt.Sprintf("rating %.1f (%d reviews)", h.Rating, h.ReviewCount))
	}
	if langs := jsonStrings(h.Languages); len(langs) > 0 {
		parts = append(parts, "languages: "+strings.Join(langs, "/"))
	}
	return strings.Join(parts, "; ")
}

func procedureLine(pr *types.Procedure) string {
	line := pr.Name
	if pr.PriceMinUSD > 0 || pr.PriceMaxUSD > 0 {
		line += fmt.Sprintf(": $%s-$%s USD", formatInt(pr.PriceMinUSD), formatInt(pr.PriceMaxUSD))
	}
	if pr.RecoveryDays > 0 {
		line += fmt.Sprintf(", ~%d recovery days", pr.RecoveryDays)
	}
	return line
}

func jsonStrings(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// formatInt adds thousands separators so prices read naturally in prose.
func formatInt(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
